package output

import (
	"fmt"
	"strings"
)

// PercentBar renders a visual progress bar for a 0-100 percentage.
// Example: "████████░░ 80%"
func PercentBar(percent float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int((percent / 100.0) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	var style func(string) string
	switch {
	case percent >= 70:
		style = func(s string) string { return StyleSuccess.Render(s) }
	case percent >= 40:
		style = func(s string) string { return StyleWarning.Render(s) }
	default:
		style = func(s string) string { return StyleError.Render(s) }
	}

	return fmt.Sprintf("%s %s", style(bar), StyleMuted.Render(fmt.Sprintf("%.0f%%", percent)))
}

// RatingBar renders a 1-5 rating as filled and empty dots.
// Example: "●●●●○ 4/5"
func RatingBar(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	bar := strings.Repeat("●", rating) + strings.Repeat("○", 5-rating)

	styled := bar
	switch {
	case rating >= 4:
		styled = StyleSuccess.Render(bar)
	case rating == 3:
		styled = StyleWarning.Render(bar)
	case rating > 0:
		styled = StyleError.Render(bar)
	}
	return fmt.Sprintf("%s %s", styled, StyleMuted.Render(fmt.Sprintf("%d/5", rating)))
}

// Minutes renders a minute count as "1h 30m" or "45m".
func Minutes(m float64) string {
	total := int(m + 0.5)
	if total < 60 {
		return fmt.Sprintf("%dm", total)
	}
	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}

// Seconds renders a second count in the same style as Minutes.
func Seconds(s int) string {
	return Minutes(float64(s) / 60)
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
