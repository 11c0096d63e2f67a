package modals

import "strings"

// RenderSelectableList renders a simple list with selection highlighting.
func RenderSelectableList(items []string, selectedIndex int) string {
	var result strings.Builder
	for i, item := range items {
		style := ModalItemStyle
		prefix := "  "
		if i == selectedIndex {
			style = ModalSelectedStyle
			prefix = "> "
		}
		result.WriteString(style.Render(prefix+item) + "\n")
	}
	return result.String()
}

// RenderSelectableListWithFocus renders a list where the highlight is only
// shown while focused; marker is shown next to the selection otherwise.
func RenderSelectableListWithFocus(items []string, selectedIndex int, focused bool, marker string) string {
	var result strings.Builder
	for i, item := range items {
		style := ModalItemStyle
		prefix := "  "
		if focused && i == selectedIndex {
			style = ModalSelectedStyle
			prefix = "> "
		} else if i == selectedIndex {
			prefix = marker
		}
		result.WriteString(style.Render(prefix+item) + "\n")
	}
	return result.String()
}

// TruncateString truncates a string from the end with ellipsis
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
