// Package ui holds the terminal palette shared by command output and list cards.
//
// [Palette] wraps a handful of named [lipgloss.Style] values (title, ok, err, warn, help); [Styles] is the default instance.
package ui
