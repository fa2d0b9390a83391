package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`  ____                     _ _          `, "#86efac"},
	{` |  _ \ __ _ _ __ __ _  __| (_)___  ___ `, "#4ade80"},
	{` | |_) / _' | '__/ _' |/ _' | / __|/ _ \`, "#22c55e"},
	{` |  __/ (_| | | | (_| | (_| | \__ \  __/`, "#16a34a"},
	{` |_|   \__,_|_|  \__,_|\__,_|_|___/\___|`, "#15803d"},
}

// PrintBanner writes the Paradise Nursery banner in shades of green.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()

	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w, termenv.String("        N U R S E R Y").Faint())
	fmt.Fprintln(w)
}
