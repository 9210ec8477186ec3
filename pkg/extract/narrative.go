package extract

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/testplanhq/testplan/pkg/domain/model"
)

// NarrativeExtractor derives records from unstructured prose: press
// releases, product descriptions, FAQ documents. Requirements come from
// three independent passes (feature lists, Q/A blocks, metric sentences)
// whose outputs are concatenated without merging. Over-generation is
// accepted behavior here: downstream plan generation prefers duplicated
// coverage over a dropped capability.
type NarrativeExtractor struct {
	logger *slog.Logger
}

func NewNarrativeExtractor(logger *slog.Logger) *NarrativeExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &NarrativeExtractor{logger: logger}
}

var (
	keyFeaturesSection = regexp.MustCompile(`(?i)key features[^:\n]*:([^\n]*(?:\n[ \t]*[•\-*][ \t]*[^\n]+)*)`)
	bulletFeature      = regexp.MustCompile(`(?m)^[ \t]*[•\-*][ \t]*([^:\n]+):[ \t]*([^\n]+)`)
	looseBullet        = regexp.MustCompile(`(?m)^[ \t]*[•\-*][ \t]*([^\n]{20,})`)

	integrationMention = regexp.MustCompile(`(?i)(integrat|work|connect|seamless)[^\n]*(?:with|using)\s+(\w+(?:\s+\w+)*)`)
	metricSentence     = regexp.MustCompile(`(?i)(\d+)%\s+(accuracy|satisfaction|success)\s+(?:rate|in)\s+([^\n.]+)`)

	questionWordPrefix = regexp.MustCompile(`(?i)^(how|what|when|where|why|can|will|does)\s+`)
	accuracyFigure     = regexp.MustCompile(`(\d+)%\s+accuracy`)
)

// titleVerbs mark where a feature bullet's name ends and its behavior
// description begins.
var titleVerbs = map[string]bool{
	"uses": true, "analyzes": true, "provides": true, "suggests": true,
	"monitors": true, "works": true, "integrates": true, "leverages": true,
}

func (e *NarrativeExtractor) Requirements(_ context.Context, src Source) []model.Requirement {
	content := sourceText(src)

	features := featureRequirements(content)
	qa := qaRequirements(content)
	metrics := metricRequirements(content)

	e.logger.Debug("narrative requirement passes complete",
		"source", src.Name,
		"features", len(features), "qa", len(qa), "metrics", len(metrics))

	reqs := make([]model.Requirement, 0, len(features)+len(qa)+len(metrics))
	reqs = append(reqs, features...)
	reqs = append(reqs, qa...)
	reqs = append(reqs, metrics...)
	return reqs
}

func (e *NarrativeExtractor) Components(_ context.Context, src Source) []model.DesignComponent {
	content := sourceText(src)

	comps, next := integrationComponents(content, 1)
	defaults, _ := defaultComponents(content, next)
	comps = append(comps, defaults...)

	tech, _ := technicalComponents(content, 100)
	comps = append(comps, tech...)

	e.logger.Debug("narrative component passes complete",
		"source", src.Name, "components", len(comps))

	return comps
}

// featureRequirements runs the feature-list pass. The primary scan parses
// "name: description" bullets inside a "key features" section; a looser
// second scan picks up any remaining bullet line long enough to describe
// behavior, skipping lines already captured and lines that are questions.
// IDs count from 1 in this pass's namespace.
func featureRequirements(content string) []model.Requirement {
	var reqs []model.Requirement
	nextID := 1

	// Byte ranges of bullets the primary scan consumed, so the loose scan
	// does not emit them again.
	var consumed [][2]int

	if sec := keyFeaturesSection.FindStringSubmatchIndex(content); sec != nil {
		secStart := sec[2]
		featuresText := content[sec[2]:sec[3]]

		for _, m := range bulletFeature.FindAllStringSubmatchIndex(featuresText, -1) {
			name := strings.TrimSpace(featuresText[m[2]:m[3]])
			desc := strings.TrimSpace(featuresText[m[4]:m[5]])
			consumed = append(consumed, [2]int{secStart + m[0], secStart + m[1]})

			reqs = append(reqs, model.Requirement{
				ID:                 formatID("NAR-REQ", nextID),
				Title:              name,
				Description:        desc,
				Priority:           featurePriority(name, desc),
				Category:           model.CategoryFunctional,
				AcceptanceCriteria: featureCriteria(desc),
			})
			nextID++
		}
	}

	for _, m := range looseBullet.FindAllStringSubmatchIndex(content, -1) {
		if overlapsAny(m[0], consumed) {
			continue
		}
		text := strings.TrimSpace(content[m[2]:m[3]])
		if len(text) < 20 || strings.Contains(text, "?") {
			continue
		}

		reqs = append(reqs, model.Requirement{
			ID:                 formatID("NAR-REQ", nextID),
			Title:              featureTitle(text),
			Description:        text,
			Priority:           featurePriority("", text),
			Category:           model.CategoryFunctional,
			AcceptanceCriteria: featureCriteria(text),
		})
		nextID++
	}

	return reqs
}

func overlapsAny(pos int, ranges [][2]int) bool {
	for _, r := range ranges {
		if pos >= r[0] && pos < r[1] {
			return true
		}
	}
	return false
}

// featureTitle shortens a loose bullet into a title: everything before the
// first behavior verb, or the first four words.
func featureTitle(text string) string {
	words := strings.Fields(text)
	if len(words) <= 4 {
		return text
	}

	limit := len(words)
	if limit > 6 {
		limit = 6
	}
	for i := 1; i < limit; i++ {
		if titleVerbs[strings.ToLower(words[i])] {
			return strings.Join(words[:i], " ")
		}
	}

	return strings.Join(words[:4], " ")
}

func featurePriority(name, description string) model.Priority {
	combined := strings.ToLower(name + " " + description)

	switch {
	case strings.Contains(combined, "core"), strings.Contains(combined, "key"),
		strings.Contains(combined, "primary"), strings.Contains(combined, "essential"):
		return model.PriorityHigh
	case strings.Contains(combined, "nice"), strings.Contains(combined, "optional"),
		strings.Contains(combined, "future"):
		return model.PriorityLow
	}
	return model.PriorityMedium
}

func featureCriteria(description string) []string {
	criteria := []string{
		"Feature must be implemented as described: " + description,
		"Feature must be accessible to all eligible users",
		"Feature must perform reliably under normal usage conditions",
	}

	lower := strings.ToLower(description)
	if strings.Contains(lower, "predict") {
		criteria = append(criteria, "Prediction accuracy must meet specified thresholds")
	}
	if strings.Contains(lower, "notification") {
		criteria = append(criteria, "Notifications must be delivered in a timely manner")
	}
	if strings.Contains(lower, "voice") {
		criteria = append(criteria, "Voice recognition must achieve acceptable accuracy rates")
	}

	return criteria
}

// qaBlock is one question/answer pair found in an FAQ section.
type qaBlock struct {
	question string
	answer   string
}

// scanQABlocks walks lines pairing "Q:" with the following "A:" and its
// continuation lines. An answer runs until a blank line or the next
// question.
func scanQABlocks(content string) []qaBlock {
	lines := strings.Split(content, "\n")
	var blocks []qaBlock

	for i := 0; i < len(lines); {
		question, ok := cutLinePrefix(lines[i], "q:")
		if !ok {
			i++
			continue
		}

		j := i + 1
		for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
			j++
		}

		answer, ok := "", false
		if j < len(lines) {
			answer, ok = cutLinePrefix(lines[j], "a:")
		}
		if !ok {
			i++
			continue
		}

		parts := []string{answer}
		for j++; j < len(lines); j++ {
			line := strings.TrimSpace(lines[j])
			if line == "" {
				break
			}
			if _, isQ := cutLinePrefix(lines[j], "q:"); isQ {
				break
			}
			parts = append(parts, line)
		}

		blocks = append(blocks, qaBlock{
			question: question,
			answer:   strings.Join(parts, "\n"),
		})
		i = j
	}

	return blocks
}

// cutLinePrefix trims the line and strips a case-insensitive prefix,
// returning the trimmed remainder.
func cutLinePrefix(line, prefix string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < len(prefix) || !strings.EqualFold(trimmed[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(trimmed[len(prefix):]), true
}

// qaRequirements runs the question/answer pass. Only blocks describing a
// system capability become requirements; purely informational questions are
// excluded even when the answer sounds capable. IDs count from 100.
func qaRequirements(content string) []model.Requirement {
	var reqs []model.Requirement
	nextID := 100

	for _, block := range scanQABlocks(content) {
		if !isCapabilityQA(block.question, block.answer) {
			continue
		}

		reqs = append(reqs, model.Requirement{
			ID:                 formatID("NAR-REQ", nextID),
			Title:              capabilityTitle(block.question),
			Description:        capabilityDescription(block.answer),
			Priority:           qaPriority(block.question, block.answer),
			Category:           qaCategory(block.question, block.answer),
			AcceptanceCriteria: qaCriteria(block.answer),
		})
		nextID++
	}

	return reqs
}

func isCapabilityQA(question, answer string) bool {
	lowerQ := strings.ToLower(question)

	if strings.Contains(lowerQ, "how does") &&
		(strings.Contains(lowerQ, "protect") || strings.Contains(lowerQ, "work") ||
			strings.Contains(lowerQ, "integrate") || strings.Contains(lowerQ, "accurate")) {
		return true
	}

	if strings.Contains(lowerQ, "what happens") || strings.Contains(lowerQ, "can i") {
		return false
	}

	return containsCapabilityVerb(answer) && len(answer) > 50
}

func containsCapabilityVerb(answer string) bool {
	lower := strings.ToLower(answer)
	for _, verb := range []string{"can", "will", "support", "allow", "enable", "provide"} {
		if strings.Contains(lower, verb) {
			return true
		}
	}
	return false
}

// capabilityTitle turns a question into a title by dropping the leading
// question word and the trailing question mark.
func capabilityTitle(question string) string {
	title := questionWordPrefix.ReplaceAllString(question, "")
	title = strings.TrimSuffix(title, "?")
	return strings.TrimSpace(title)
}

// capabilityDescription keeps the first sentence of the answer, or truncates
// long unpunctuated answers at 200 characters.
func capabilityDescription(answer string) string {
	sentences := strings.SplitN(answer, ".", 2)
	if first := strings.TrimSpace(sentences[0]); first != "" && len(first) < 200 {
		return first + "."
	}
	if len(answer) > 200 {
		return answer[:200] + "..."
	}
	return answer
}

func qaPriority(question, answer string) model.Priority {
	combined := strings.ToLower(question + " " + answer)
	for _, cue := range []string{"privacy", "security", "accurate", "protect"} {
		if strings.Contains(combined, cue) {
			return model.PriorityHigh
		}
	}
	return model.PriorityMedium
}

func qaCategory(question, answer string) model.Category {
	combined := strings.ToLower(question + " " + answer)

	switch {
	case strings.Contains(combined, "privacy"), strings.Contains(combined, "security"),
		strings.Contains(combined, "protect"):
		return model.CategorySecurity
	case strings.Contains(combined, "performance"), strings.Contains(combined, "speed"),
		strings.Contains(combined, "accuracy"):
		return model.CategoryPerformance
	case strings.Contains(combined, "integrate"), strings.Contains(combined, "connect"):
		return model.CategoryIntegration
	}
	return model.CategoryFunctional
}

func qaCriteria(answer string) []string {
	var criteria []string
	lower := strings.ToLower(answer)

	if strings.Contains(lower, "accuracy") || strings.Contains(lower, "accurate") {
		if m := accuracyFigure.FindStringSubmatch(lower); m != nil {
			criteria = append(criteria, "System must achieve "+m[1]+"% accuracy")
		} else {
			criteria = append(criteria, "System must meet specified accuracy requirements")
		}
	}

	if strings.Contains(lower, "privacy") || strings.Contains(lower, "security") {
		criteria = append(criteria,
			"Must comply with privacy and security standards",
			"User data must be protected and encrypted")
	}

	if strings.Contains(lower, "integrate") || strings.Contains(lower, "work with") {
		criteria = append(criteria,
			"Must integrate seamlessly with specified systems",
			"Integration must be reliable and performant")
	}

	if len(criteria) == 0 {
		criteria = append(criteria,
			"Feature must work as described in Q&A response",
			"User experience must be intuitive and reliable")
	}

	return criteria
}

// metricRequirements runs the metric pass: every "N% accuracy/satisfaction/
// success" sentence becomes a High-priority performance requirement with
// criteria demanding the stated threshold and its ongoing measurement. IDs
// count from 200.
func metricRequirements(content string) []model.Requirement {
	var reqs []model.Requirement
	nextID := 200

	for _, m := range metricSentence.FindAllStringSubmatch(content, -1) {
		percentage, metric, context := m[1], strings.ToLower(m[2]), strings.TrimSpace(m[3])

		reqs = append(reqs, model.Requirement{
			ID:          formatID("NAR-REQ", nextID),
			Title:       "Performance Requirement: " + metric,
			Description: fmt.Sprintf("System must achieve %s%% %s %s", percentage, metric, context),
			Priority:    model.PriorityHigh,
			Category:    model.CategoryPerformance,
			AcceptanceCriteria: []string{
				fmt.Sprintf("Achieve minimum %s%% %s", percentage, metric),
				"Measure and report " + metric + " metrics",
				"Continuously monitor performance in " + context,
			},
		})
		nextID++
	}

	return reqs
}

// integrationComponents synthesizes one Integration component per distinct
// integration target mentioned in the text.
func integrationComponents(content string, nextID int) ([]model.DesignComponent, int) {
	var comps []model.DesignComponent
	seen := make(map[string]bool)

	for _, m := range integrationMention.FindAllStringSubmatch(content, -1) {
		target := strings.TrimSpace(m[2])
		key := strings.ToLower(target)
		if target == "" || seen[key] {
			continue
		}
		seen[key] = true

		comps = append(comps, model.DesignComponent{
			ID:            formatID("NAR-COMP", nextID),
			Name:          target + " Integration",
			Type:          model.TypeIntegration,
			Description:   "Integration component for connecting with " + target,
			Interfaces:    []string{"Integration API for " + target},
			Dependencies:  []string{target + " Service"},
			BusinessRules: []string{"Must maintain compatibility with " + target},
		})
		nextID++
	}

	return comps, nextID
}

// technicalTerms seed the technical-component pass: the first mention of
// each term yields one Service component described by its surrounding text.
var technicalTerms = []string{
	"machine learning", "AI", "artificial intelligence",
	"API", "database", "service", "algorithm", "model",
}

func technicalComponents(content string, nextID int) ([]model.DesignComponent, int) {
	var comps []model.DesignComponent

	for _, term := range technicalTerms {
		pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(term) + `\s+([^\n.]+)`)
		m := pattern.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		context := strings.TrimSpace(m[1])

		comps = append(comps, model.DesignComponent{
			ID:            formatID("NAR-COMP", nextID),
			Name:          capitalizeFirst(term) + " Component",
			Type:          model.TypeService,
			Description:   capitalizeFirst(term) + " component that " + context,
			Interfaces:    []string{"REST API for " + term},
			BusinessRules: []string{"Must handle " + term + " operations efficiently"},
		})
		nextID++
	}

	return comps, nextID
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
