package generate_test

import (
	"strings"
	"testing"

	"github.com/testplanhq/testplan/pkg/domain/model"
	"github.com/testplanhq/testplan/pkg/generate"
)

func loginRequirement() model.Requirement {
	return model.Requirement{
		ID:          "REQ-001",
		Title:       "User Login",
		Description: "Users must authenticate before accessing the dashboard",
		Priority:    model.PriorityHigh,
		Category:    model.CategoryFunctional,
		AcceptanceCriteria: []string{
			"Valid users log in",
			"Invalid passwords are rejected",
		},
	}
}

// threeComponents keeps the component set above the default-suite threshold
// while giving exactly one component dependencies.
func threeComponents() []model.DesignComponent {
	return []model.DesignComponent{
		{ID: "COMP-001", Name: "Auth Service", Type: model.TypeService, Dependencies: []string{"Auth DB", "Token Cache"}},
		{ID: "COMP-002", Name: "Web UI", Type: model.TypeUI},
		{ID: "COMP-003", Name: "Auth DB", Type: model.TypeDatabase},
	}
}

func TestCases_FunctionalStepsFromCriteria(t *testing.T) {
	cases := generate.Cases([]model.Requirement{loginRequirement()}, threeComponents())

	tc := cases[0]
	if tc.ID != "TC_001" || tc.TestType != "Functional" {
		t.Fatalf("expected functional case first, got %s %s", tc.ID, tc.TestType)
	}
	if tc.Title != "Verify User Login" {
		t.Errorf("unexpected title %q", tc.Title)
	}
	// Setup step, one step per criterion, closing validation step.
	if len(tc.Steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(tc.Steps))
	}
	if tc.Steps[1].Action != "Verify: Valid users log in" {
		t.Errorf("unexpected criterion step %q", tc.Steps[1].Action)
	}
	if tc.Steps[3].Number != 4 {
		t.Errorf("steps not numbered sequentially: %+v", tc.Steps[3])
	}
	if tc.ExpectedResult != "All acceptance criteria are met and requirement is satisfied" {
		t.Errorf("unexpected expected result %q", tc.ExpectedResult)
	}
	if len(tc.RelatedRequirements) != 1 || tc.RelatedRequirements[0] != "REQ-001" {
		t.Errorf("expected traceability to REQ-001, got %v", tc.RelatedRequirements)
	}
	if tc.Severity != model.SeverityCritical {
		t.Errorf("expected Critical severity for High priority, got %s", tc.Severity)
	}
}

func TestCases_FunctionalDefaultStepsWithoutCriteria(t *testing.T) {
	req := loginRequirement()
	req.AcceptanceCriteria = nil

	cases := generate.Cases([]model.Requirement{req}, threeComponents())

	if len(cases[0].Steps) != 4 {
		t.Fatalf("expected 4 default steps, got %d", len(cases[0].Steps))
	}
	if !strings.Contains(cases[0].Steps[1].Action, "Execute the primary functionality") {
		t.Errorf("unexpected default step %q", cases[0].Steps[1].Action)
	}
}

func TestCases_IntegrationPerDependentComponent(t *testing.T) {
	cases := generate.Cases([]model.Requirement{loginRequirement()}, threeComponents())

	var integrations []model.TestCase
	for _, tc := range cases {
		if tc.TestType == "Integration" {
			integrations = append(integrations, tc)
		}
	}
	if len(integrations) != 1 {
		t.Fatalf("expected 1 integration case for the dependent component, got %d", len(integrations))
	}

	tc := integrations[0]
	if tc.Priority != model.PriorityHigh {
		t.Errorf("expected High priority, got %s", tc.Priority)
	}
	// Setup, one step per dependency, error handling, performance, consistency.
	if len(tc.Steps) != 6 {
		t.Fatalf("expected 6 steps for two dependencies, got %d", len(tc.Steps))
	}
	if !strings.Contains(tc.Steps[0].Action, "Auth DB, Token Cache") {
		t.Errorf("setup step does not list dependencies: %q", tc.Steps[0].Action)
	}
	if !strings.Contains(tc.Steps[2].Action, "Token Cache") {
		t.Errorf("expected per-dependency step for Token Cache, got %q", tc.Steps[2].Action)
	}
	if len(tc.RelatedComponents) != 1 || tc.RelatedComponents[0] != "COMP-001" {
		t.Errorf("expected traceability to COMP-001, got %v", tc.RelatedComponents)
	}
}

func TestCases_DefaultSuiteForSparseComponents(t *testing.T) {
	comps := []model.DesignComponent{
		{ID: "COMP-001", Name: "Standalone Service", Type: model.TypeService},
	}

	cases := generate.Cases(nil, comps)

	if len(cases) != 5 {
		t.Fatalf("expected the 5 default integration cases, got %d", len(cases))
	}
	if cases[0].ID != "TC_001" || cases[0].Title != "User Authentication System Integration Test" {
		t.Errorf("unexpected first default case: %s %q", cases[0].ID, cases[0].Title)
	}
	if !strings.Contains(cases[0].Steps[0].Action, "authentication service") {
		t.Errorf("unexpected authentication scenario step %q", cases[0].Steps[0].Action)
	}
	if !strings.Contains(cases[1].Steps[0].Expected, "CRUD") {
		t.Errorf("unexpected database scenario step %q", cases[1].Steps[0].Expected)
	}
	// Scenarios without a dedicated template fall back to the generic steps.
	if !strings.Contains(cases[4].Steps[0].Action, "component communication") {
		t.Errorf("unexpected generic scenario step %q", cases[4].Steps[0].Action)
	}
}

func TestCases_DefaultSuiteSkippedWhenCovered(t *testing.T) {
	cases := generate.Cases(nil, threeComponents())

	for _, tc := range cases {
		if strings.HasSuffix(tc.Title, "Integration Test") {
			t.Errorf("default suite ran despite adequate components: %q", tc.Title)
		}
	}
	if len(cases) != 1 {
		t.Errorf("expected only the component integration case, got %d", len(cases))
	}
}

func TestCases_BoundaryForFunctionalRequirements(t *testing.T) {
	cases := generate.Cases([]model.Requirement{loginRequirement()}, threeComponents())

	var boundary *model.TestCase
	for i, tc := range cases {
		if tc.TestType == "Boundary" {
			boundary = &cases[i]
		}
	}
	if boundary == nil {
		t.Fatal("expected a boundary case for the functional requirement")
	}
	if boundary.Title != "Boundary test for User Login" {
		t.Errorf("unexpected title %q", boundary.Title)
	}
	if !strings.Contains(boundary.Steps[0].Action, "minimum valid input") {
		t.Errorf("expected generic boundary steps, got %q", boundary.Steps[0].Action)
	}
}

func TestCases_BoundaryKeywordTriggersNonFunctional(t *testing.T) {
	req := model.Requirement{
		ID:          "REQ-002",
		Title:       "Stock Prediction",
		Description: "The engine predicts demand with 95% accuracy",
		Priority:    model.PriorityHigh,
		Category:    model.CategoryPerformance,
	}

	cases := generate.Cases([]model.Requirement{req}, threeComponents())

	var boundary *model.TestCase
	for i, tc := range cases {
		if tc.TestType == "Boundary" {
			boundary = &cases[i]
		}
	}
	if boundary == nil {
		t.Fatal("expected a boundary case for the accuracy requirement")
	}
	if !strings.Contains(boundary.Steps[0].Action, "minimal user data") {
		t.Errorf("expected prediction boundary template, got %q", boundary.Steps[0].Action)
	}
}

func TestCases_NoBoundaryWithoutTrigger(t *testing.T) {
	req := model.Requirement{
		ID:          "REQ-003",
		Title:       "Audit Logging",
		Description: "All access is logged for review",
		Priority:    model.PriorityMedium,
		Category:    model.CategorySecurity,
	}

	cases := generate.Cases([]model.Requirement{req}, threeComponents())

	for _, tc := range cases {
		if tc.TestType == "Boundary" {
			t.Errorf("unexpected boundary case %q", tc.Title)
		}
	}
}

func TestCases_NegativePerRequirement(t *testing.T) {
	cases := generate.Cases([]model.Requirement{loginRequirement()}, threeComponents())

	last := cases[len(cases)-1]
	if last.TestType != "Negative" {
		t.Fatalf("expected the negative case last, got %s", last.TestType)
	}
	if len(last.Steps) != 6 {
		t.Errorf("expected 6 negative steps, got %d", len(last.Steps))
	}
	if !strings.Contains(last.Steps[4].Action, "SQL injection") {
		t.Errorf("unexpected malicious input step %q", last.Steps[4].Action)
	}
}

func TestCases_IDsAreSequentialAndUnique(t *testing.T) {
	cases := generate.Cases([]model.Requirement{loginRequirement()}, threeComponents())

	// Functional, integration, boundary, negative.
	want := []string{"TC_001", "TC_002", "TC_003", "TC_004"}
	if len(cases) != len(want) {
		t.Fatalf("expected %d cases, got %d", len(want), len(cases))
	}
	for i, tc := range cases {
		if tc.ID != want[i] {
			t.Errorf("case %d: expected %s, got %s", i, want[i], tc.ID)
		}
	}
}

func TestCases_SharedMetadataDefaults(t *testing.T) {
	cases := generate.Cases([]model.Requirement{loginRequirement()}, threeComponents())

	for _, tc := range cases {
		if tc.TestLevel != "System" {
			t.Errorf("%s: expected System test level, got %q", tc.ID, tc.TestLevel)
		}
		if tc.EstimatedTime != "15 minutes" {
			t.Errorf("%s: expected 15 minutes estimate, got %q", tc.ID, tc.EstimatedTime)
		}
		if len(tc.Preconditions) != 3 {
			t.Errorf("%s: expected 3 preconditions, got %d", tc.ID, len(tc.Preconditions))
		}
		if !strings.HasPrefix(tc.Objective, "Verify ") {
			t.Errorf("%s: unexpected objective %q", tc.ID, tc.Objective)
		}
	}
}
