// Package ascii renders width-aware text boxes for terminal summaries.
package ascii

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Box builds a box containing the provided lines and returns it as a string.
// Lines are left-aligned with single-space padding on each side. Multi-width
// runes (emoji, CJK, etc.) are accounted for so the borders stay aligned.
func Box(lines []string) string {
	return BoxWithTitle("", lines)
}

// BoxWithTitle builds a box with an optional title embedded in the top border.
func BoxWithTitle(title string, lines []string) string {
	if len(lines) == 0 && title == "" {
		return ""
	}

	trimmed := make([]string, len(lines))
	maxWidth := 0
	if title != "" {
		// The title row renders as "┌─ Title ─┐" and needs one more column
		// than the title itself to keep a border segment after it.
		maxWidth = StringWidth(title) + 1
	}
	for i, line := range lines {
		trimmed[i] = strings.TrimRight(line, " ")
		if w := StringWidth(trimmed[i]); w > maxWidth {
			maxWidth = w
		}
	}

	leftPadding, rightPadding := 1, 1
	innerWidth := maxWidth + leftPadding + rightPadding

	var sb strings.Builder
	if title == "" {
		sb.WriteString("┌" + strings.Repeat("─", innerWidth) + "┐\n")
	} else {
		// Title is embedded as "┌─ Title ─...─┐" with the tail border filling
		// the remaining width.
		head := "┌─ " + title + " "
		used := StringWidth(title) + 3
		tail := innerWidth - used
		if tail < 0 {
			tail = 0
		}
		sb.WriteString(head + strings.Repeat("─", tail) + "┐\n")
	}
	for _, line := range trimmed {
		fill := innerWidth - leftPadding - rightPadding - StringWidth(line)
		if fill < 0 {
			fill = 0
		}
		sb.WriteString("│ " + line + strings.Repeat(" ", fill) + " │\n")
	}
	sb.WriteString("└" + strings.Repeat("─", innerWidth) + "┘\n")
	return sb.String()
}

// DrawBox prints a box containing the provided lines.
func DrawBox(lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Print(Box(lines))
}

// TruncateForBox truncates a string so that its display width fits within the
// provided width. An ellipsis ("...") is appended when truncation occurs and
// there is space for it.
func TruncateForBox(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return substringWithWidth(value, width)
	}
	return substringWithWidth(value, width-3) + "..."
}

func substringWithWidth(s string, target int) string {
	if target <= 0 {
		return ""
	}
	width := 0
	var sb strings.Builder
	for _, r := range s {
		w := RuneWidth(r)
		if width+w > target {
			break
		}
		width += w
		sb.WriteRune(r)
	}
	return sb.String()
}

// RuneWidth returns the display width of a single rune.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// StringWidth returns the display width of a string, accounting for
// multi-width Unicode characters (emoji, CJK, etc.).
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}
