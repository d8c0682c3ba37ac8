package main

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rpggio/cloneai/internal/domain/project"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	idStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

const dateLayout = "2006-01-02 15:04"

// renderProjectList formats one project per line: id, date, name.
func renderProjectList(projects []project.Project) string {
	if len(projects) == 0 {
		return mutedStyle.Render("No projects yet.") + "\n"
	}
	var b strings.Builder
	for _, p := range projects {
		b.WriteString(idStyle.Render(p.ID))
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render(p.CreatedAt().Format(dateLayout)))
		b.WriteString("  ")
		b.WriteString(p.Name)
		b.WriteString("\n")
	}
	return b.String()
}

// renderAnalysis renders analysis markdown for the terminal. The raw text
// is returned if glamour cannot render it.
func renderAnalysis(analysis string, width int) string {
	if strings.TrimSpace(analysis) == "" {
		return ""
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return analysis + "\n"
	}
	out, err := r.Render(analysis)
	if err != nil {
		return analysis + "\n"
	}
	return out
}
