package runner

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/storefront/pkg/domain"
)

// CommandKind tells the runner what to do with a parsed line.
type CommandKind int

const (
	// CommandRefresh re-renders the current page.
	CommandRefresh CommandKind = iota
	// CommandIntent applies Command.Intent to the session.
	CommandIntent
	CommandHelp
	CommandQuit
)

// Command is a parsed input line.
type Command struct {
	Kind   CommandKind
	Intent domain.Intent
}

// ErrUnknownCommand is returned for input the runner does not understand.
var ErrUnknownCommand = errors.New("unknown command")

// HelpText lists the commands understood by ParseCommand.
const HelpText = `Commands:
  home | products | cart | go <page>   move between pages
  add <id>                             add a plant to the cart
  inc <id> | dec <id>                  change a quantity
  rm <id>                              remove a plant from the cart
  checkout                             proceed to checkout
  help | quit`

// ParseCommand converts a line of user input into a Command.
// Lines that start with '{' are decoded as a JSON intent.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Kind: CommandRefresh}, nil
	}
	if strings.HasPrefix(line, "{") {
		var intent domain.Intent
		if err := json.Unmarshal([]byte(line), &intent); err != nil {
			return Command{}, fmt.Errorf("invalid intent: %w", err)
		}
		if err := intent.Validate(); err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandIntent, Intent: intent}, nil
	}

	fields := strings.Fields(line)
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "help", "?":
		return Command{Kind: CommandHelp}, nil
	case "quit", "exit", "q":
		return Command{Kind: CommandQuit}, nil
	case "checkout":
		return intentCommand(domain.Checkout()), nil
	case "home", "landing":
		return intentCommand(domain.Navigate(domain.PageLanding)), nil
	case "products", "shop", "start":
		return intentCommand(domain.Navigate(domain.PageProducts)), nil
	case "cart":
		return intentCommand(domain.Navigate(domain.PageCart)), nil
	case "go":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("usage: go <page>")
		}
		page, err := domain.ParsePage(args[0])
		if err != nil {
			return Command{}, err
		}
		return intentCommand(domain.Navigate(page)), nil
	}

	build, ok := productVerbs[verb]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
	if len(args) != 1 {
		return Command{}, fmt.Errorf("usage: %s <id>", verb)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return Command{}, fmt.Errorf("invalid product id %q", args[0])
	}
	return intentCommand(build(id)), nil
}

var productVerbs = map[string]func(int) domain.Intent{
	"add":    func(id int) domain.Intent { return domain.Intent{Type: domain.IntentAddToCart, ProductID: id} },
	"inc":    domain.IncreaseQuantity,
	"+":      domain.IncreaseQuantity,
	"dec":    domain.DecreaseQuantity,
	"-":      domain.DecreaseQuantity,
	"rm":     domain.RemoveFromCart,
	"remove": domain.RemoveFromCart,
}

func intentCommand(in domain.Intent) Command {
	return Command{Kind: CommandIntent, Intent: in}
}
