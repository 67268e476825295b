package term

import (
	"github.com/fatih/color"
)

var (
	GreenHighlight  = color.New(color.FgGreen).SprintFunc()
	RedHighlight    = color.New(color.FgRed).SprintFunc()
	YellowHighlight = color.New(color.FgYellow).SprintFunc()

	MagentaHighlight = color.New(color.FgMagenta).SprintFunc()

	Underline = color.New(color.Underline).SprintFunc()

	Highlight = MagentaHighlight
)

// ColoredAction returns the name of a watch group action, colored by its
// kind.
func ColoredAction(action string) string {
	switch action {
	case "reload":
		return YellowHighlight(action)
	case "app":
		return GreenHighlight(action)
	default:
		return action
	}
}
