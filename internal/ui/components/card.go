package components

import "github.com/abhisek/prepiz/internal/ui/theme"

// ContentWidth returns the inner width used for cards so stacked boxes
// line up.
func ContentWidth(frameWidth int) int {
	// Leave room for the card border (2) and padding (4).
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card of content width cw.
func Card(content string, cw int) string {
	return theme.Card.Width(cw).Render(content)
}

// Banner renders a highlighted one-line announcement such as a level-up.
func Banner(text string) string {
	return theme.Banner.Render(text)
}
