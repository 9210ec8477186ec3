package export_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/testplanhq/testplan/pkg/domain/model"
	"github.com/testplanhq/testplan/pkg/export"
)

func samplePlan() *model.TestPlan {
	return &model.TestPlan{
		ID:          "TP_SMART_PANTRY",
		Title:       "Test Plan for Smart Pantry",
		Description: "Comprehensive test plan generated from requirements and design documents",
		Version:     "1.0",
		CreatedBy:   "TestPlan Generator",
		CreatedAt:   time.Date(2026, 8, 30, 10, 15, 0, 0, time.UTC),
		Objectives:  []string{"Verify all functional requirements are implemented correctly"},
		Scope:       []string{"Functional requirements", "Functional testing"},
		OutOfScope:  []string{"Security penetration testing"},
		Strategy: model.TestStrategy{
			TestTypes:      []string{"Functional Testing", "Integration Testing"},
			TestLevels:     []string{"Unit Testing", "System Testing"},
			Approach:       "Risk-based testing approach focusing on critical functionality first.",
			Tools:          []string{"Test Management Tool"},
			Environments:   []string{"Development Environment"},
			RiskAssessment: "Medium risk project.",
		},
		TestCases: []model.TestCase{
			{
				ID:            "TC_001",
				Title:         "Verify User Login",
				Description:   "Functional test to verify login",
				TestType:      "Functional",
				Priority:      model.PriorityHigh,
				Severity:      model.SeverityCritical,
				Preconditions: []string{"System is accessible and running"},
				Steps: []model.TestStep{
					{Number: 1, Action: "Navigate to the login feature", Expected: "Feature loads"},
					{Number: 2, Action: "Verify: Valid users log in", Expected: "Criterion is satisfied"},
				},
				ExpectedResult:      "All acceptance criteria are met and requirement is satisfied",
				RelatedRequirements: []string{"REQ-001"},
			},
		},
	}
}

func TestText_Sections(t *testing.T) {
	var buf bytes.Buffer
	if err := export.Text(&buf, samplePlan()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := buf.String()

	for _, want := range []string{
		"         TEST PLAN DOCUMENT\n",
		"Test Plan ID: TP_SMART_PANTRY\n",
		"Created Date: 2026-08-30T10:15:00\n",
		"TEST OBJECTIVES:\n================\n• Verify all functional requirements are implemented correctly\n",
		"TEST SCOPE:\n===========\n",
		"OUT OF SCOPE:\n=============\n• Security penetration testing\n",
		"TEST STRATEGY:\n==============\n",
		"\nRisk Assessment:\nMedium risk project.\n",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestText_TestCaseDetail(t *testing.T) {
	var buf bytes.Buffer
	if err := export.Text(&buf, samplePlan()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := buf.String()

	for _, want := range []string{
		"Test Case ID: TC_001\n",
		"Priority: High\nSeverity: Critical\n",
		"Preconditions:\n• System is accessible and running\n",
		"1. Navigate to the login feature\n   Expected: Feature loads\n",
		"2. Verify: Valid users log in\n   Expected: Criterion is satisfied\n",
		"Overall Expected Result:\nAll acceptance criteria are met and requirement is satisfied\n",
		"Related Requirements: REQ-001\n",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}

	if !strings.Contains(doc, strings.Repeat("=", 80)) {
		t.Error("expected a case separator line")
	}
	if strings.Contains(doc, "Related Components:") {
		t.Error("components line rendered for case without related components")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestText_WriteErrorIsWrapped(t *testing.T) {
	err := export.Text(failingWriter{}, samplePlan())
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected wrapped write error, got %v", err)
	}
}
