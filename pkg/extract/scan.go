package extract

import (
	"regexp"
	"strings"

	"github.com/testplanhq/testplan/pkg/domain/model"
)

// Aggressive fallback scans for PDF-extracted text. The narrative and
// structured extractors assume reasonably clean input; text recovered from
// a PDF container often loses its formatting, so these passes trade
// precision for recall and run only when the primary extractor under-yields.

var (
	featureListPhrase = regexp.MustCompile(`(?i)(integrates?|includes?|features?|provides?)\s+([^.!?]+(?:,\s*[^.!?]+)*)`)
	featureSplit      = regexp.MustCompile(`,|\s+and\s+`)
	sentenceSplit     = regexp.MustCompile(`[.!?]+`)
	scanBulletLine    = regexp.MustCompile(`(?m)^[ \t]*[•\-*\d.)]+[ \t]*([^\n]{20,})`)

	leadingArticle   = regexp.MustCompile(`(?i)^(and\s+|the\s+)`)
	sectionNumber    = regexp.MustCompile(`^\d+\.\d*\s*`)
	leadingRecordID  = regexp.MustCompile(`^[A-Z]+-\d+\s*`)
	requirementWord  = regexp.MustCompile(`(?i)^requirement:?\s*`)
	numberedSection  = regexp.MustCompile(`\d+\.\d+`)
	criteriaMarker   = regexp.MustCompile(`^[-•\d.\s]+`)
	numberedCriteria = regexp.MustCompile(`^\d+\.\s`)
)

// capabilityVerbs signal that a sentence states something the system does
// rather than background prose.
var capabilityVerbs = []string{
	"can ", "will ", "allows ", "enables ", "provides ", "supports ",
	"offers ", "delivers ", "features ", "includes ", "helps ", "assists ",
}

// enhancedRequirements is the aggressive narrative-path pass: explicit
// comma-separated feature lists, capability sentences, then bullet and
// numbered lines. All three scans share one counter under the PDF-REQ
// prefix.
func enhancedRequirements(content string) []model.Requirement {
	var reqs []model.Requirement
	nextID := 1

	for _, m := range featureListPhrase.FindAllStringSubmatch(content, -1) {
		for _, raw := range featureSplit.Split(m[2], -1) {
			feature := strings.TrimSpace(raw)
			if len(feature) <= 10 || strings.Contains(strings.ToLower(feature), "into") {
				continue
			}

			reqs = append(reqs, model.Requirement{
				ID:                 formatID("PDF-REQ", nextID),
				Title:              cleanFeatureName(feature),
				Description:        "System must provide " + strings.ToLower(feature) + " functionality",
				Priority:           model.PriorityHigh,
				Category:           featureCategory(feature),
				AcceptanceCriteria: featureListCriteria(feature),
			})
			nextID++
		}
	}

	for _, raw := range sentenceSplit.Split(content, -1) {
		sentence := strings.TrimSpace(raw)
		if len(sentence) < 20 || !isCapabilitySentence(sentence) {
			continue
		}

		reqs = append(reqs, model.Requirement{
			ID:                 formatID("PDF-REQ", nextID),
			Title:              capabilitySentenceTitle(sentence),
			Description:        sentence,
			Priority:           scanPriority(sentence),
			Category:           scanCategory(sentence),
			AcceptanceCriteria: capabilitySentenceCriteria(sentence),
		})
		nextID++
	}

	for _, m := range scanBulletLine.FindAllStringSubmatch(content, -1) {
		feature := strings.TrimSpace(m[1])
		lower := strings.ToLower(feature)
		if strings.Contains(feature, "?") ||
			strings.Contains(lower, "page ") || strings.Contains(lower, "section ") {
			continue
		}

		reqs = append(reqs, model.Requirement{
			ID:          formatID("PDF-REQ", nextID),
			Title:       scanFeatureTitle(feature),
			Description: feature,
			Priority:    model.PriorityMedium,
			Category:    model.CategoryFunctional,
			AcceptanceCriteria: []string{
				"Feature must be implemented as described",
				"Feature must be accessible to users",
				"Feature must work reliably",
			},
		})
		nextID++
	}

	return reqs
}

func cleanFeatureName(feature string) string {
	name := leadingArticle.ReplaceAllString(feature, "")
	return strings.TrimSpace(strings.Join(strings.Fields(name), " "))
}

func featureCategory(feature string) model.Category {
	lower := strings.ToLower(feature)

	switch {
	case strings.Contains(lower, "appliance"), strings.Contains(lower, "control"):
		return model.CategoryIntegration
	case strings.Contains(lower, "safety"), strings.Contains(lower, "alert"):
		return model.CategoryOperational
	case strings.Contains(lower, "voice"), strings.Contains(lower, "hands-free"):
		return model.CategoryUIUX
	}
	return model.CategoryFunctional
}

// featureListCriteria returns keyword-keyed acceptance criteria for an
// explicitly listed feature, falling back to a generic template.
func featureListCriteria(feature string) []string {
	lower := strings.ToLower(feature)

	switch {
	case strings.Contains(lower, "timer"):
		return []string{
			"User can set multiple timers simultaneously",
			"Timers provide audio and visual notifications when complete",
			"User can modify or cancel active timers",
			"System maintains timer accuracy within 1 second",
		}
	case strings.Contains(lower, "recipe"):
		return []string{
			"System provides step-by-step instructions",
			"User can search by ingredients or category",
			"Instructions are clear and easy to follow",
			"System can scale quantities based on serving size",
		}
	case strings.Contains(lower, "grocery"), strings.Contains(lower, "shopping"):
		return []string{
			"User can create and manage shopping lists",
			"System can suggest items based on usage",
			"Lists are accessible across devices",
			"User can check off completed items",
		}
	case strings.Contains(lower, "appliance"), strings.Contains(lower, "device"):
		return []string{
			"System can connect to and control smart devices",
			"Device status is accurately reflected in the system",
			"User can control devices through voice commands",
			"System handles device connectivity issues gracefully",
		}
	case strings.Contains(lower, "safety"):
		return []string{
			"System provides timely safety alerts and reminders",
			"Safety information is accurate and up-to-date",
			"Alerts are prominent and attention-grabbing",
			"User can customize safety alert preferences",
		}
	}

	return []string{
		"Feature must be implemented as described",
		"Feature must be accessible through the primary interface",
		"Feature must work reliably under normal conditions",
		"Feature must provide appropriate user feedback",
	}
}

func isCapabilitySentence(sentence string) bool {
	if strings.Contains(sentence, "?") || len(sentence) <= 30 {
		return false
	}
	lower := strings.ToLower(sentence)
	for _, verb := range capabilityVerbs {
		if strings.Contains(lower, verb) {
			return true
		}
	}
	return false
}

// capabilitySentenceTitle takes the words following the first capability
// verb, capped at eight words or fifty characters.
func capabilitySentenceTitle(sentence string) string {
	words := strings.Fields(sentence)
	var title []string
	titleLen := 0
	foundVerb := false

	limit := len(words)
	if limit > 8 {
		limit = 8
	}
	for i := 0; i < limit; i++ {
		word := strings.ToLower(words[i]) + " "
		isVerb := false
		for _, verb := range capabilityVerbs {
			if word == verb {
				isVerb = true
				break
			}
		}
		if isVerb {
			foundVerb = true
			continue
		}
		if foundVerb {
			title = append(title, words[i])
			titleLen += len(words[i]) + 1
			if titleLen > 50 {
				break
			}
		}
	}

	if len(title) == 0 {
		return "System Capability"
	}
	return strings.Join(title, " ")
}

func capabilitySentenceCriteria(capability string) []string {
	criteria := []string{
		"System must implement the capability as described",
		"Feature must be accessible to authorized users",
		"System must handle the capability reliably under normal conditions",
	}
	lower := strings.ToLower(capability)

	if strings.Contains(lower, "voice") || strings.Contains(lower, "speech") {
		criteria = append(criteria,
			"Voice recognition must achieve acceptable accuracy",
			"System must handle various accents and speech patterns")
	}
	if strings.Contains(lower, "timer") || strings.Contains(lower, "time") {
		criteria = append(criteria,
			"Timer functionality must be precise and reliable",
			"Multiple timers must be supported simultaneously")
	}
	if strings.Contains(lower, "notification") || strings.Contains(lower, "alert") {
		criteria = append(criteria,
			"Notifications must be delivered promptly",
			"Users must be able to customize notification preferences")
	}

	return criteria
}

// scanFeatureTitle shortens a scanned bullet into a title at the first
// linking word, or the first four words.
func scanFeatureTitle(feature string) string {
	words := strings.Fields(feature)
	if len(words) <= 4 {
		return feature
	}

	linkWords := map[string]bool{
		"can": true, "will": true, "allows": true, "enables": true,
		"provides": true, "supports": true, "using": true, "through": true,
		"via": true, "with": true,
	}

	limit := len(words)
	if limit > 6 {
		limit = 6
	}
	for i := 1; i < limit; i++ {
		if linkWords[strings.ToLower(words[i])] {
			return strings.Join(words[:i], " ")
		}
	}

	return strings.Join(words[:4], " ")
}

func scanPriority(content string) model.Priority {
	lower := strings.ToLower(content)

	switch {
	case strings.Contains(lower, "essential"), strings.Contains(lower, "critical"),
		strings.Contains(lower, "must"), strings.Contains(lower, "required"),
		strings.Contains(lower, "core"):
		return model.PriorityHigh
	case strings.Contains(lower, "nice"), strings.Contains(lower, "optional"),
		strings.Contains(lower, "enhance"), strings.Contains(lower, "additional"):
		return model.PriorityLow
	}
	return model.PriorityMedium
}

func scanCategory(content string) model.Category {
	lower := strings.ToLower(content)

	switch {
	case strings.Contains(lower, "performance"), strings.Contains(lower, "speed"),
		strings.Contains(lower, "response time"), strings.Contains(lower, "throughput"):
		return model.CategoryPerformance
	case strings.Contains(lower, "security"), strings.Contains(lower, "authentication"),
		strings.Contains(lower, "authorization"), strings.Contains(lower, "encryption"):
		return model.CategorySecurity
	case strings.Contains(lower, "interface"), strings.Contains(lower, "ui"),
		strings.Contains(lower, "user"), strings.Contains(lower, "display"):
		return model.CategoryUIUX
	case strings.Contains(lower, "api"), strings.Contains(lower, "service"),
		strings.Contains(lower, "integration"):
		return model.CategoryIntegration
	}
	return model.CategoryFunctional
}

// isRequirementLine reports whether a scanned line looks like it states a
// requirement: modal verbs, a numbered section, or a long period-terminated
// sentence that is not a figure or table caption.
func isRequirementLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "requirement") || strings.Contains(lower, "shall") ||
		strings.Contains(lower, "must") || strings.Contains(lower, "should") {
		return true
	}
	if numberedSection.MatchString(line) {
		return true
	}
	return len(line) > 20 && strings.HasSuffix(line, ".") &&
		!strings.Contains(line, "Figure") && !strings.Contains(line, "Table")
}

func isComponentLine(line string) bool {
	lower := strings.ToLower(line)
	for _, keyword := range []string{
		"component", "service", "api", "interface",
		"module", "system", "database", "server",
	} {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// scanRequirementLines is the last-resort structured-path scan: any line
// that looks like a requirement statement becomes a record, pulling
// following lines as description and bullet lines as criteria candidates.
func scanRequirementLines(content string) []model.Requirement {
	lines := strings.Split(content, "\n")
	var reqs []model.Requirement
	nextID := 1

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || !isRequirementLine(line) {
			continue
		}

		title := scanRequirementTitle(line)
		description := followingDescription(lines, i)

		reqs = append(reqs, model.Requirement{
			ID:                 formatID("REQ", nextID),
			Title:              title,
			Description:        description,
			Priority:           model.PriorityMedium,
			Category:           scanCategory(title + " " + description),
			AcceptanceCriteria: followingCriteria(lines, i),
		})
		nextID++
	}

	return reqs
}

func scanRequirementTitle(line string) string {
	title := sectionNumber.ReplaceAllString(line, "")
	title = leadingRecordID.ReplaceAllString(title, "")
	title = strings.TrimSpace(requirementWord.ReplaceAllString(title, ""))

	if len(title) > 100 {
		title = title[:97] + "..."
	}
	if title == "" {
		return "PDF Requirement"
	}
	return title
}

// followingDescription joins up to four lines after the index, stopping at
// a blank line or the next candidate record line.
func followingDescription(lines []string, start int) string {
	var parts []string

	end := start + 5
	if end > len(lines) {
		end = len(lines)
	}
	for i := start + 1; i < end; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || isRequirementLine(line) || isComponentLine(line) {
			break
		}
		parts = append(parts, line)
	}

	if len(parts) == 0 {
		return "Extracted from PDF document"
	}
	return strings.Join(parts, " ")
}

// followingCriteria collects bullet or numbered lines from the nine lines
// after the index, stopping at the next candidate record line.
func followingCriteria(lines []string, start int) []string {
	var criteria []string

	end := start + 10
	if end > len(lines) {
		end = len(lines)
	}
	for i := start + 1; i < end; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "• ") ||
			numberedCriteria.MatchString(line) {
			criteria = append(criteria, strings.TrimSpace(criteriaMarker.ReplaceAllString(line, "")))
			continue
		}
		if isRequirementLine(line) || isComponentLine(line) {
			break
		}
	}

	return criteria
}

// scanComponentLines is the analogous component scan over architecture
// keyword lines.
func scanComponentLines(content string) []model.DesignComponent {
	lines := strings.Split(content, "\n")
	var comps []model.DesignComponent
	nextID := 1

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || !isComponentLine(line) {
			continue
		}

		comps = append(comps, model.DesignComponent{
			ID:          formatID("COMP", nextID),
			Name:        scanComponentName(line),
			Type:        scanComponentType(line),
			Description: followingDescription(lines, i),
		})
		nextID++
	}

	return comps
}

func scanComponentName(line string) string {
	name := sectionNumber.ReplaceAllString(line, "")
	name = strings.TrimSpace(leadingRecordID.ReplaceAllString(name, ""))

	if len(name) > 50 {
		name = name[:47] + "..."
	}
	if name == "" {
		return "PDF Component"
	}
	return name
}

func scanComponentType(line string) model.ComponentType {
	lower := strings.ToLower(line)

	switch {
	case strings.Contains(lower, "api"), strings.Contains(lower, "endpoint"),
		strings.Contains(lower, "rest"):
		return model.TypeAPI
	case strings.Contains(lower, "database"), strings.Contains(lower, "db"),
		strings.Contains(lower, "storage"), strings.Contains(lower, "data"):
		return model.TypeDatabase
	case strings.Contains(lower, "ui"), strings.Contains(lower, "interface"),
		strings.Contains(lower, "screen"), strings.Contains(lower, "page"):
		return model.TypeUI
	case strings.Contains(lower, "service"), strings.Contains(lower, "server"),
		strings.Contains(lower, "backend"):
		return model.TypeService
	}
	return model.TypeComponent
}
