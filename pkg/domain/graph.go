package domain

// PageTransition is a navigation edge offered by a page.
type PageTransition struct {
	To    Page   `json:"to"`
	Label string `json:"label"`
}

// PageNode describes a page and the navigation it offers.
type PageNode struct {
	Page        Page             `json:"page"`
	Title       string           `json:"title"`
	Transitions []PageTransition `json:"transitions"`
}
