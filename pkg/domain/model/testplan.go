package model

import (
	"fmt"
	"time"
)

// Severity classifies the impact of a test case failing.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityMajor    Severity = "Major"
	SeverityMinor    Severity = "Minor"
)

// SeverityForPriority maps a requirement priority onto a defect severity.
func SeverityForPriority(p Priority) Severity {
	switch p {
	case PriorityCritical, PriorityHigh:
		return SeverityCritical
	case PriorityLow:
		return SeverityMinor
	default:
		return SeverityMajor
	}
}

// TestStep is one numbered action with its expected outcome.
type TestStep struct {
	Number   int    `json:"number" yaml:"number"`
	Action   string `json:"action" yaml:"action"`
	Expected string `json:"expected" yaml:"expected"`
}

// TestCase is a single executable test derived from a requirement or component.
type TestCase struct {
	ID                  string   `json:"id" yaml:"id"`
	Title               string   `json:"title" yaml:"title"`
	Description         string   `json:"description" yaml:"description"`
	Objective           string   `json:"objective" yaml:"objective"`
	TestType            string   `json:"test_type" yaml:"test_type"`
	TestLevel           string   `json:"test_level" yaml:"test_level"`
	Priority            Priority `json:"priority" yaml:"priority"`
	Severity            Severity `json:"severity" yaml:"severity"`
	Preconditions       []string `json:"preconditions,omitempty" yaml:"preconditions,omitempty"`
	Steps               []TestStep `json:"steps" yaml:"steps"`
	ExpectedResult      string   `json:"expected_result" yaml:"expected_result"`
	RelatedRequirements []string `json:"related_requirements,omitempty" yaml:"related_requirements,omitempty"`
	RelatedComponents   []string `json:"related_components,omitempty" yaml:"related_components,omitempty"`
	EstimatedTime       string   `json:"estimated_time,omitempty" yaml:"estimated_time,omitempty"`
}

// TestStrategy captures the overall approach for a plan.
type TestStrategy struct {
	TestTypes      []string `json:"test_types" yaml:"test_types"`
	TestLevels     []string `json:"test_levels" yaml:"test_levels"`
	Approach       string   `json:"approach" yaml:"approach"`
	Tools          []string `json:"tools,omitempty" yaml:"tools,omitempty"`
	Environments   []string `json:"environments,omitempty" yaml:"environments,omitempty"`
	RiskAssessment string   `json:"risk_assessment,omitempty" yaml:"risk_assessment,omitempty"`
}

// TestPlan is the top-level document produced for a project.
type TestPlan struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Version     string       `json:"version" yaml:"version"`
	CreatedBy   string       `json:"created_by" yaml:"created_by"`
	CreatedAt   time.Time    `json:"created_at" yaml:"created_at"`
	Objectives  []string     `json:"objectives" yaml:"objectives"`
	Scope       []string     `json:"scope" yaml:"scope"`
	OutOfScope  []string     `json:"out_of_scope,omitempty" yaml:"out_of_scope,omitempty"`
	Strategy    TestStrategy `json:"strategy" yaml:"strategy"`
	TestCases   []TestCase   `json:"test_cases" yaml:"test_cases"`
}

// Validate checks the plan for structural integrity.
func (p *TestPlan) Validate() []error {
	var errs []error
	if p.ID == "" {
		errs = append(errs, fmt.Errorf("plan ID is required"))
	}
	if p.Title == "" {
		errs = append(errs, fmt.Errorf("plan title is required"))
	}

	seen := make(map[string]bool)
	for i, tc := range p.TestCases {
		if tc.ID == "" {
			errs = append(errs, fmt.Errorf("test case at index %d missing ID", i))
		}
		if seen[tc.ID] {
			errs = append(errs, fmt.Errorf("duplicate test case ID: %s", tc.ID))
		}
		seen[tc.ID] = true
	}
	return errs
}
