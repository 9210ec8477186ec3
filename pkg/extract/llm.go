package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/testplanhq/testplan/pkg/domain/ai"
	"github.com/testplanhq/testplan/pkg/domain/model"
)

// LLMExtractor asks an AI provider to extract records from any textual
// document. The provider is constrained to return a bare JSON array; the
// reply is sliced to its array payload, schema-checked, and mapped with
// per-entry validation. A reply that yields nothing is retried once with a
// reinforced instruction, and a second failure delegates to the rule-based
// extractors, so the caller never observes an AI failure as an error, only as
// a quieter result.
type LLMExtractor struct {
	provider ai.Provider
	logger   *slog.Logger
}

func NewLLMExtractor(provider ai.Provider, logger *slog.Logger) *LLMExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMExtractor{provider: provider, logger: logger}
}

const requirementSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title"],
    "properties": {
      "id": { "type": "string" },
      "title": { "type": "string" },
      "description": { "type": "string" },
      "priority": { "type": "string" },
      "category": { "type": "string" },
      "acceptanceCriteria": { "type": "array", "items": { "type": "string" } },
      "dependencies": { "type": "array", "items": { "type": "string" } },
      "inferred": { "type": "boolean" },
      "notes": { "type": "string" }
    }
  }
}`

const componentSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name"],
    "properties": {
      "id": { "type": "string" },
      "name": { "type": "string" },
      "type": { "type": "string" },
      "description": { "type": "string" },
      "interfaces": { "type": "array", "items": { "type": "string" } },
      "dependencies": { "type": "array", "items": { "type": "string" } },
      "businessRules": { "type": "array", "items": { "type": "string" } },
      "inferred": { "type": "boolean" },
      "notes": { "type": "string" }
    }
  }
}`

var (
	requirementSchemaLoader = gojsonschema.NewStringLoader(requirementSchemaJSON)
	componentSchemaLoader   = gojsonschema.NewStringLoader(componentSchemaJSON)
)

const jsonReinforcement = "\n\nIMPORTANT: Your previous response was invalid. Return ONLY a JSON array with valid fields. Do not include any extra text, markdown, or code fences."

const requirementsSystem = "You are a senior QA requirements engineer. You return a JSON array of requirement objects and nothing else."

const componentsSystem = "You are a senior software architect. You return a JSON array of design component objects and nothing else."

func requirementsPrompt(document string) string {
	return `Analyze the document below and extract ALL functional and non-functional requirements.

RULES:
- Use ONLY requirement statements supported by the document.
- If inference is required, set "inferred": true and justify briefly in "notes".
- Do NOT invent requirements. Deduplicate and consolidate.
- IDs must be sequential: REQ-001, REQ-002, ...
- Category is one of: Functional, Performance, Security, Integration, UI/UX, Data, Operational.
- Priority is one of: Critical, High, Medium, Low.
- Output MUST be a single valid JSON array. No comments, no markdown, no extra text.

Each object MUST match this shape:
[
  {
    "id": "REQ-001",
    "title": "Concise requirement title",
    "description": "Detailed requirement statement with context and purpose.",
    "priority": "High",
    "category": "Functional",
    "acceptanceCriteria": ["Specific, measurable, testable criteria"],
    "inferred": false,
    "notes": ""
  }
]

DOCUMENT TO ANALYZE:
=====================================
` + document + `
=====================================

Return ONLY the JSON array. Ensure valid JSON with no trailing commas.`
}

func componentsPrompt(document string) string {
	return `Analyze the document below and extract ALL design components present.

RULES:
- Use ONLY evidence in the document; if a component is inferred, set "inferred": true and explain in "notes".
- Deduplicate synonyms. IDs must be sequential: COMP-001, COMP-002, ...
- Type is one of: API, Service, UI, Database, Integration, Component.
- Dependencies and interfaces are short descriptive strings.
- Output MUST be a single valid JSON array. No comments, no markdown, no extra text.

Each object MUST match this shape:
[
  {
    "id": "COMP-001",
    "name": "User Authentication Service",
    "type": "Service",
    "description": "Handles authentication and session issuance.",
    "interfaces": ["REST API for login/logout"],
    "dependencies": ["User Database"],
    "businessRules": ["MFA required for administrators"],
    "inferred": false,
    "notes": ""
  }
]

DOCUMENT TO ANALYZE:
=====================================
` + document + `
=====================================

Return ONLY the JSON array. Ensure valid JSON with no trailing commas.`
}

func (e *LLMExtractor) Requirements(ctx context.Context, src Source) []model.Requirement {
	text, ok := e.promptText(src)
	if !ok {
		return e.fallback(src, text).Requirements(ctx, src)
	}
	prompt := requirementsPrompt(text)

	res := llmAttempt(ctx, e, prompt, requirementsSystem, requirementSchemaLoader, mapLLMRequirements)
	if res.Tag != ResultOK {
		e.logger.Warn("ai requirement extraction yielded nothing, retrying",
			"source", src.Name, "reason", res.Reason)
		res = llmAttempt(ctx, e, prompt+jsonReinforcement, requirementsSystem,
			requirementSchemaLoader, mapLLMRequirements)
	}
	if res.Tag == ResultOK {
		return res.Records
	}

	e.logger.Warn("ai requirement extraction failed after retry, using rule-based extraction",
		"source", src.Name, "reason", res.Reason)
	return e.fallback(src, text).Requirements(ctx, src)
}

func (e *LLMExtractor) Components(ctx context.Context, src Source) []model.DesignComponent {
	text, ok := e.promptText(src)
	if !ok {
		return e.fallback(src, text).Components(ctx, src)
	}
	prompt := componentsPrompt(text)

	res := llmAttempt(ctx, e, prompt, componentsSystem, componentSchemaLoader, mapLLMComponents)
	if res.Tag != ResultOK {
		e.logger.Warn("ai component extraction yielded nothing, retrying",
			"source", src.Name, "reason", res.Reason)
		res = llmAttempt(ctx, e, prompt+jsonReinforcement, componentsSystem,
			componentSchemaLoader, mapLLMComponents)
	}
	if res.Tag == ResultOK {
		return res.Records
	}

	e.logger.Warn("ai component extraction failed after retry, using rule-based extraction",
		"source", src.Name, "reason", res.Reason)
	return e.fallback(src, text).Components(ctx, src)
}

// promptText returns the document text to embed in the prompt. Binary PDF
// sources are decoded first so the model sees the page text, never the raw
// container bytes; an undecodable or empty PDF reports false and the caller
// goes straight to the rule-based chain.
func (e *LLMExtractor) promptText(src Source) (string, bool) {
	if src.Text != "" || len(src.Data) == 0 {
		return sourceText(src), true
	}

	text, err := pdfPlainText(src.Data, e.logger)
	if err != nil {
		e.logger.Warn("pdf text extraction for ai prompt failed, using rule-based extraction",
			"source", src.Name, "error", err)
		return "", false
	}
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

// fallback builds the rule-based extractor the document would have gotten
// without AI assist.
func (e *LLMExtractor) fallback(src Source, text string) Extractor {
	_, extractor := Select(Classify(src.Name, text), Options{Logger: e.logger})
	return extractor
}

// llmAttempt performs one provider round trip: complete, slice the array
// payload, schema-check, and map entries. Transport errors tag the result
// Failed; an unparseable or empty payload tags it Empty.
func llmAttempt[T any](ctx context.Context, e *LLMExtractor, prompt, system string,
	schema gojsonschema.JSONLoader, mapEntries func(*slog.Logger, string) []T) Result[T] {

	resp, err := e.provider.Complete(ctx, ai.CompletionRequest{
		Prompt:      prompt,
		System:      system,
		Temperature: 0.1,
		MaxTokens:   4000,
	})
	if err != nil {
		return Failed[T]("complete: %v", err)
	}

	payload := sliceJSONArray(resp.Text)
	validateAgainstSchema(e.logger, schema, payload)

	return Ok(mapEntries(e.logger, payload))
}

// sliceJSONArray cuts the reply down to its first-[ to last-] span. Models
// occasionally wrap the array in prose despite instructions; anything
// without an array span becomes the empty array.
func sliceJSONArray(reply string) string {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start < 0 || end <= start {
		return "[]"
	}
	return reply[start : end+1]
}

// validateAgainstSchema is advisory: mapping has its own per-entry checks,
// so schema violations are logged rather than rejecting the payload.
func validateAgainstSchema(logger *slog.Logger, schema gojsonschema.JSONLoader, payload string) {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewStringLoader(payload))
	if err != nil {
		logger.Debug("ai payload schema validation errored", "error", err)
		return
	}
	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			issues = append(issues, fmt.Sprintf("%s", desc))
		}
		logger.Debug("ai payload does not conform to schema", "issues", strings.Join(issues, "; "))
	}
}

type llmRequirement struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Priority           string   `json:"priority"`
	Category           string   `json:"category"`
	AcceptanceCriteria []string `json:"acceptanceCriteria"`
	Dependencies       []string `json:"dependencies"`
	Inferred           bool     `json:"inferred"`
	Notes              string   `json:"notes"`
}

type llmComponent struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Description   string   `json:"description"`
	Interfaces    []string `json:"interfaces"`
	Dependencies  []string `json:"dependencies"`
	BusinessRules []string `json:"businessRules"`
	Inferred      bool     `json:"inferred"`
	Notes         string   `json:"notes"`
}

// mapLLMRequirements unmarshals the payload and maps well-formed entries.
// Entries missing id or title are dropped silently; a count is logged so
// the omission is traceable.
func mapLLMRequirements(logger *slog.Logger, payload string) []model.Requirement {
	var entries []llmRequirement
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		logger.Debug("ai requirement payload is not a valid array", "error", err)
		return nil
	}

	var reqs []model.Requirement
	dropped := 0
	for _, entry := range entries {
		if entry.ID == "" || entry.Title == "" {
			dropped++
			continue
		}
		reqs = append(reqs, model.Requirement{
			ID:                 entry.ID,
			Title:              entry.Title,
			Description:        entry.Description,
			Priority:           model.ParsePriority(entry.Priority),
			Category:           model.ParseCategory(entry.Category),
			AcceptanceCriteria: entry.AcceptanceCriteria,
			Dependencies:       entry.Dependencies,
		})
	}

	if dropped > 0 {
		logger.Debug("dropped ai requirement entries missing id or title", "count", dropped)
	}
	return reqs
}

func mapLLMComponents(logger *slog.Logger, payload string) []model.DesignComponent {
	var entries []llmComponent
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		logger.Debug("ai component payload is not a valid array", "error", err)
		return nil
	}

	var comps []model.DesignComponent
	dropped := 0
	for _, entry := range entries {
		if entry.ID == "" || entry.Name == "" {
			dropped++
			continue
		}
		comps = append(comps, model.DesignComponent{
			ID:            entry.ID,
			Name:          entry.Name,
			Type:          model.ParseComponentType(entry.Type),
			Description:   entry.Description,
			Interfaces:    entry.Interfaces,
			Dependencies:  entry.Dependencies,
			BusinessRules: entry.BusinessRules,
		})
	}

	if dropped > 0 {
		logger.Debug("dropped ai component entries missing id or name", "count", dropped)
	}
	return comps
}
