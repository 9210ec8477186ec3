package extract

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/testplanhq/testplan/pkg/domain/model"
)

// StructuredExtractor handles documents with explicitly labeled blocks:
//
//	REQUIREMENT REQ-001: Title
//	Priority: High
//	Acceptance Criteria:
//	- criterion
//
// Blocks are anchored by a case-insensitive prefix token and run until the
// next anchor or end of text. The scan is greedy and non-overlapping, so an
// anchor-looking line inside a list still starts a new block.
type StructuredExtractor struct {
	logger *slog.Logger
}

func NewStructuredExtractor(logger *slog.Logger) *StructuredExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &StructuredExtractor{logger: logger}
}

// anchorPattern matches both requirement and component block openers so one
// scan can delimit every block. Longer alternatives come first; "req" must
// not shadow "requirement".
var anchorPattern = regexp.MustCompile(`(?mi)^[ \t]*(requirement|req|design|component)\b[ \t]*[:#-]?[ \t]*`)

// blockIDPattern recognizes an explicit identifier right after the anchor,
// e.g. "REQ-001" or "COMP7". It is case-sensitive on purpose: a lowercase
// word after "REQUIREMENT:" is the start of the title, not an ID.
var blockIDPattern = regexp.MustCompile(`^([A-Z][A-Z0-9]*-?\d+[A-Z0-9-]*)[ \t]*[:\-]?[ \t]*`)

var (
	priorityLabel = regexp.MustCompile(`(?i)priority\s*[:\-]\s*(critical|high|medium|low)`)
	categoryLabel = regexp.MustCompile(`(?i)category\s*[:\-]\s*([A-Za-z/-]+)`)
	typeLabel     = regexp.MustCompile(`(?i)type\s*[:\-]\s*([A-Za-z]+)`)

	criteriaHeading   = regexp.MustCompile(`(?i)^(acceptance\s+criteria|criteria)\s*[:\-]?\s*$`)
	interfacesHeading = regexp.MustCompile(`(?i)^interfaces?\s*[:\-]?\s*$`)
	dependencyHeading = regexp.MustCompile(`(?i)^dependencies\s*[:\-]?\s*$`)
	rulesHeading      = regexp.MustCompile(`(?i)^(business\s+rules?|rules?)\s*[:\-]?\s*$`)

	bulletLine  = regexp.MustCompile(`^[-*•]\s*(.+)$`)
	numberLine  = regexp.MustCompile(`^\d+[.)]\s*(.+)$`)
	labeledLine = regexp.MustCompile(`^[A-Za-z][A-Za-z /]*:`)
)

type structuredBlock struct {
	anchor string // lowercased prefix token
	id     string
	body   string
}

// scanBlocks splits text into anchored blocks. The first matching anchor
// wins; bodies never overlap.
func scanBlocks(text string) []structuredBlock {
	matches := anchorPattern.FindAllStringSubmatchIndex(text, -1)
	blocks := make([]structuredBlock, 0, len(matches))

	for i, m := range matches {
		bodyStart := m[1]
		bodyEnd := len(text)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}

		anchor := strings.ToLower(text[m[2]:m[3]])
		body := text[bodyStart:bodyEnd]

		id := ""
		if idm := blockIDPattern.FindStringSubmatch(body); idm != nil {
			id = idm[1]
			body = body[len(idm[0]):]
		}

		blocks = append(blocks, structuredBlock{
			anchor: anchor,
			id:     id,
			body:   strings.TrimSpace(body),
		})
	}

	return blocks
}

func (e *StructuredExtractor) Requirements(_ context.Context, src Source) []model.Requirement {
	return structuredRequirements(sourceText(src))
}

func (e *StructuredExtractor) Components(_ context.Context, src Source) []model.DesignComponent {
	return structuredComponents(sourceText(src))
}

func sourceText(src Source) string {
	if src.Text != "" {
		return src.Text
	}
	return string(src.Data)
}

func structuredRequirements(text string) []model.Requirement {
	var reqs []model.Requirement
	counter := 1

	for _, b := range scanBlocks(text) {
		if b.anchor != "requirement" && b.anchor != "req" {
			continue
		}

		id := b.id
		if id == "" {
			id = formatID("REQ", counter)
		}
		counter++

		reqs = append(reqs, model.Requirement{
			ID:                 id,
			Title:              firstLine(b.body),
			Description:        b.body,
			Priority:           extractPriority(b.body),
			Category:           extractCategory(b.body),
			AcceptanceCriteria: collectSection(b.body, criteriaHeading),
			Dependencies:       collectSection(b.body, dependencyHeading),
		})
	}

	return reqs
}

func structuredComponents(text string) []model.DesignComponent {
	var comps []model.DesignComponent
	counter := 1

	for _, b := range scanBlocks(text) {
		if b.anchor != "design" && b.anchor != "component" {
			continue
		}

		id := b.id
		if id == "" {
			id = formatID("COMP", counter)
		}
		counter++

		comps = append(comps, model.DesignComponent{
			ID:            id,
			Name:          firstLine(b.body),
			Type:          extractComponentType(b.body),
			Description:   b.body,
			Interfaces:    collectSection(b.body, interfacesHeading),
			Dependencies:  collectSection(b.body, dependencyHeading),
			BusinessRules: collectSection(b.body, rulesHeading),
		})
	}

	return comps
}

// firstLine returns the first non-empty line of a block body, or "Untitled"
// for empty or malformed bodies.
func firstLine(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return "Untitled"
}

func extractPriority(body string) model.Priority {
	if m := priorityLabel.FindStringSubmatch(body); m != nil {
		return model.ParsePriority(m[1])
	}
	return model.PriorityMedium
}

func extractCategory(body string) model.Category {
	if m := categoryLabel.FindStringSubmatch(body); m != nil {
		return model.ParseCategory(m[1])
	}
	return model.CategoryFunctional
}

func extractComponentType(body string) model.ComponentType {
	if m := typeLabel.FindStringSubmatch(body); m != nil {
		return model.ParseComponentType(m[1])
	}
	return model.TypeComponent
}

// collectSection gathers the bullet or numbered list items following a
// section heading, stopping at the next labeled line or body end.
func collectSection(body string, heading *regexp.Regexp) []string {
	lines := strings.Split(body, "\n")
	var items []string
	inSection := false

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if !inSection {
			if heading.MatchString(line) {
				inSection = true
			}
			continue
		}

		if line == "" {
			continue
		}
		if m := bulletLine.FindStringSubmatch(line); m != nil {
			items = append(items, strings.TrimSpace(m[1]))
			continue
		}
		if m := numberLine.FindStringSubmatch(line); m != nil {
			items = append(items, strings.TrimSpace(m[1]))
			continue
		}
		if labeledLine.MatchString(line) {
			break
		}
	}

	return items
}
