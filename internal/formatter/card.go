package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/fivhter/internal/models"
	"github.com/desertthunder/fivhter/internal/ui"
)

// RenderCard draws a bordered card for a list: title, author line, ranked items and counts.
// A width of 0 lets the content decide.
func RenderCard(list models.TopFiveList, width int) string {
	p := ui.Styles

	var b strings.Builder
	b.WriteString(p.Title(list.Title))
	b.WriteString("\n")

	meta := "by " + author(list)
	if list.Category != nil {
		meta += " · " + *list.Category
	}
	if list.Visibility == models.VisibilityPrivate {
		meta += " · private"
	}
	b.WriteString(p.Help(meta))
	b.WriteString("\n")

	if list.Description != nil && *list.Description != "" {
		b.WriteString("\n")
		b.WriteString(*list.Description)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, item := range list.Items {
		fmt.Fprintf(&b, "%s %s\n", p.As(fmt.Sprintf("#%d", item.Rank), p.Accent()), item.Title)
		if item.Description != nil && *item.Description != "" {
			fmt.Fprintf(&b, "   %s\n", p.Help(*item.Description))
		}
	}

	b.WriteString("\n")
	b.WriteString(p.OK(fmt.Sprintf("★ %d", list.VoteCount)))
	b.WriteString("  ")
	b.WriteString(p.Help(fmt.Sprintf("%d comments", list.CommentCount)))

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent()).
		Padding(0, 1)
	if width > 0 {
		style = style.Width(width)
	}

	return style.Render(b.String())
}

// RenderRow is the one line summary used by list listings.
func RenderRow(list models.TopFiveList) string {
	p := ui.Styles
	return fmt.Sprintf("%s  %s  %s  %s",
		p.As(list.ID, p.Accent()),
		list.Title,
		p.Help("by "+author(list)),
		p.OK(fmt.Sprintf("★ %d", list.VoteCount)),
	)
}

// RenderMarkdown renders the Markdown export for the terminal. A style of "" picks one
// from the terminal background; width 0 wraps at 80 columns.
func RenderMarkdown(list models.TopFiveList, style string, width int) (string, error) {
	md, err := ExportToMarkdown(list)
	if err != nil {
		return "", err
	}

	if width <= 0 {
		width = 80
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render(string(md))
}
