package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/testplanhq/testplan/pkg/domain/model"
)

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	PaddingLeft(1).
	PaddingRight(1)

var countStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
var labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
var warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

// renderExtractSummary prints the human-readable outcome of one extraction.
func renderExtractSummary(source, strategy string, reqs []model.Requirement, comps []model.DesignComponent) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Extraction Summary") + "\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Source:"), source))
	b.WriteString(fmt.Sprintf("%s %s\n\n", labelStyle.Render("Strategy:"), strategy))

	b.WriteString(fmt.Sprintf("%s requirements, %s components\n",
		countStyle.Render(fmt.Sprintf("%d", len(reqs))),
		countStyle.Render(fmt.Sprintf("%d", len(comps)))))

	if byPriority := countByPriority(reqs); len(byPriority) > 0 {
		b.WriteString(labelStyle.Render("By priority:") + " ")
		b.WriteString(formatCounts(byPriority, []string{"Critical", "High", "Medium", "Low"}) + "\n")
	}
	if byType := countByType(comps); len(byType) > 0 {
		b.WriteString(labelStyle.Render("By type:") + " ")
		b.WriteString(formatCounts(byType, []string{"API", "Service", "UI", "Database", "Integration", "Component"}) + "\n")
	}

	if len(reqs) == 0 && len(comps) == 0 {
		b.WriteString(warnStyle.Render("Nothing extracted. Check the document format.") + "\n")
	}

	return b.String()
}

func countByPriority(reqs []model.Requirement) map[string]int {
	counts := make(map[string]int)
	for _, r := range reqs {
		counts[string(r.Priority)]++
	}
	return counts
}

func countByType(comps []model.DesignComponent) map[string]int {
	counts := make(map[string]int)
	for _, c := range comps {
		counts[string(c.Type)]++
	}
	return counts
}

func formatCounts(counts map[string]int, order []string) string {
	var parts []string
	for _, key := range order {
		if n, ok := counts[key]; ok {
			parts = append(parts, fmt.Sprintf("%s=%d", key, n))
		}
	}
	return strings.Join(parts, " ")
}
