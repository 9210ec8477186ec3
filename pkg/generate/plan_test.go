package generate_test

import (
	"strings"
	"testing"

	"github.com/testplanhq/testplan/pkg/domain/model"
	"github.com/testplanhq/testplan/pkg/generate"
)

func TestPlan_Metadata(t *testing.T) {
	plan := generate.Plan(generate.PlanOptions{Project: "Smart Pantry"}, nil, nil)

	if plan.ID != "TP_SMART_PANTRY" {
		t.Errorf("expected TP_SMART_PANTRY, got %q", plan.ID)
	}
	if plan.Title != "Test Plan for Smart Pantry" {
		t.Errorf("unexpected title %q", plan.Title)
	}
	if plan.Version != "1.0" {
		t.Errorf("expected default version 1.0, got %q", plan.Version)
	}
	if plan.CreatedBy != "TestPlan Generator" {
		t.Errorf("unexpected default author %q", plan.CreatedBy)
	}
	if plan.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestPlan_ObjectivesIncludeCounts(t *testing.T) {
	reqs := []model.Requirement{loginRequirement()}
	comps := threeComponents()

	plan := generate.Plan(generate.PlanOptions{Project: "Portal", Version: "2.1"}, reqs, comps)

	if len(plan.Objectives) != 7 {
		t.Fatalf("expected 5 standard objectives plus 2 counts, got %d", len(plan.Objectives))
	}
	if plan.Objectives[5] != "Validate 1 documented requirements" {
		t.Errorf("unexpected requirement objective %q", plan.Objectives[5])
	}
	if plan.Objectives[6] != "Test integration of 3 system components" {
		t.Errorf("unexpected component objective %q", plan.Objectives[6])
	}
}

func TestPlan_ScopeDeduplicatesCategoriesAndTypes(t *testing.T) {
	reqs := []model.Requirement{
		{ID: "REQ-001", Title: "Login", Category: model.CategoryFunctional},
		{ID: "REQ-002", Title: "Export", Category: model.CategoryFunctional},
		{ID: "REQ-003", Title: "Encrypt", Category: model.CategorySecurity},
	}
	comps := []model.DesignComponent{
		{ID: "COMP-001", Name: "Store", Type: model.TypeDatabase},
		{ID: "COMP-002", Name: "Archive", Type: model.TypeDatabase},
	}

	plan := generate.Plan(generate.PlanOptions{Project: "Portal"}, reqs, comps)

	want := []string{
		"Functional requirements",
		"Security requirements",
		"Database components",
		"Functional testing",
		"Integration testing",
		"System testing",
		"User acceptance testing",
	}
	if len(plan.Scope) != len(want) {
		t.Fatalf("expected %d scope entries, got %d: %v", len(want), len(plan.Scope), plan.Scope)
	}
	for i, entry := range want {
		if plan.Scope[i] != entry {
			t.Errorf("scope[%d]: expected %q, got %q", i, entry, plan.Scope[i])
		}
	}
}

func TestPlan_StrategyFollowsComponentTypes(t *testing.T) {
	comps := []model.DesignComponent{
		{ID: "COMP-001", Name: "Gateway", Type: model.TypeAPI},
		{ID: "COMP-002", Name: "Dashboard", Type: model.TypeUI},
		{ID: "COMP-003", Name: "Store", Type: model.TypeDatabase},
		{ID: "COMP-004", Name: "Mirror", Type: model.TypeDatabase},
	}

	plan := generate.Plan(generate.PlanOptions{Project: "Portal"}, nil, comps)

	if len(plan.Strategy.TestTypes) != 7 {
		t.Fatalf("expected 4 standard plus 3 component-driven test types, got %v", plan.Strategy.TestTypes)
	}
	for _, want := range []string{"API Testing", "UI Testing", "Database Testing"} {
		found := false
		for _, tt := range plan.Strategy.TestTypes {
			if tt == want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %q in test types %v", want, plan.Strategy.TestTypes)
		}
	}
	if len(plan.Strategy.TestLevels) != 4 {
		t.Errorf("expected 4 test levels, got %v", plan.Strategy.TestLevels)
	}
	if !strings.Contains(plan.Strategy.Approach, "Risk-based") {
		t.Errorf("unexpected approach %q", plan.Strategy.Approach)
	}
}

func TestPlan_ServiceComponentsAddNoTestTypes(t *testing.T) {
	comps := []model.DesignComponent{
		{ID: "COMP-001", Name: "Engine", Type: model.TypeService},
	}

	plan := generate.Plan(generate.PlanOptions{Project: "Portal"}, nil, comps)

	if len(plan.Strategy.TestTypes) != 4 {
		t.Errorf("expected only the standard test types, got %v", plan.Strategy.TestTypes)
	}
}

func TestPlan_ValidatesCleanly(t *testing.T) {
	plan := generate.Plan(generate.PlanOptions{Project: "Smart Pantry", Version: "1.0"},
		[]model.Requirement{loginRequirement()}, threeComponents())

	if errs := plan.Validate(); len(errs) != 0 {
		t.Errorf("expected a valid plan, got %v", errs)
	}
	if len(plan.TestCases) == 0 {
		t.Error("expected generated test cases in the plan")
	}
	if len(plan.OutOfScope) != 6 {
		t.Errorf("expected 6 out-of-scope entries, got %d", len(plan.OutOfScope))
	}
}
