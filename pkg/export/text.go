// Package export renders test plans into distributable documents.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/testplanhq/testplan/pkg/domain/model"
)

const caseSeparatorWidth = 80

// Text renders the plan as a plain-text document.
func Text(w io.Writer, plan *model.TestPlan) error {
	var b strings.Builder

	b.WriteString("=====================================\n")
	b.WriteString("         TEST PLAN DOCUMENT\n")
	b.WriteString("=====================================\n\n")

	fmt.Fprintf(&b, "Test Plan ID: %s\n", plan.ID)
	fmt.Fprintf(&b, "Title: %s\n", plan.Title)
	fmt.Fprintf(&b, "Version: %s\n", plan.Version)
	fmt.Fprintf(&b, "Created By: %s\n", plan.CreatedBy)
	fmt.Fprintf(&b, "Created Date: %s\n", plan.CreatedAt.Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&b, "Description: %s\n\n", plan.Description)

	writeSection(&b, "TEST OBJECTIVES:", plan.Objectives)
	writeSection(&b, "TEST SCOPE:", plan.Scope)
	writeSection(&b, "OUT OF SCOPE:", plan.OutOfScope)

	writeStrategy(&b, plan.Strategy)

	b.WriteString("TEST CASES:\n")
	b.WriteString("===========\n\n")
	for _, tc := range plan.TestCases {
		writeTestCase(&b, tc)
		b.WriteString("\n" + strings.Repeat("=", caseSeparatorWidth) + "\n\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write test plan document: %w", err)
	}
	return nil
}

func writeSection(b *strings.Builder, heading string, items []string) {
	b.WriteString(heading + "\n")
	b.WriteString(strings.Repeat("=", len(heading)) + "\n")
	for _, item := range items {
		b.WriteString("• " + item + "\n")
	}
	b.WriteString("\n")
}

func writeStrategy(b *strings.Builder, strategy model.TestStrategy) {
	b.WriteString("TEST STRATEGY:\n")
	b.WriteString("==============\n")

	b.WriteString("\nTest Types:\n")
	for _, t := range strategy.TestTypes {
		b.WriteString("• " + t + "\n")
	}

	b.WriteString("\nTest Levels:\n")
	for _, l := range strategy.TestLevels {
		b.WriteString("• " + l + "\n")
	}

	b.WriteString("\nApproach:\n")
	b.WriteString(strategy.Approach + "\n")

	b.WriteString("\nTest Tools:\n")
	for _, tool := range strategy.Tools {
		b.WriteString("• " + tool + "\n")
	}

	b.WriteString("\nTest Environments:\n")
	for _, env := range strategy.Environments {
		b.WriteString("• " + env + "\n")
	}

	b.WriteString("\nRisk Assessment:\n")
	b.WriteString(strategy.RiskAssessment + "\n\n")
}

func writeTestCase(b *strings.Builder, tc model.TestCase) {
	fmt.Fprintf(b, "Test Case ID: %s\n", tc.ID)
	fmt.Fprintf(b, "Title: %s\n", tc.Title)
	fmt.Fprintf(b, "Description: %s\n", tc.Description)
	fmt.Fprintf(b, "Type: %s\n", tc.TestType)
	fmt.Fprintf(b, "Priority: %s\n", tc.Priority)
	fmt.Fprintf(b, "Severity: %s\n", tc.Severity)

	if len(tc.Preconditions) > 0 {
		b.WriteString("Preconditions:\n")
		for _, p := range tc.Preconditions {
			b.WriteString("• " + p + "\n")
		}
	}

	b.WriteString("\nTest Steps:\n")
	for _, step := range tc.Steps {
		fmt.Fprintf(b, "%d. %s\n", step.Number, step.Action)
		fmt.Fprintf(b, "   Expected: %s\n", step.Expected)
	}

	b.WriteString("\nOverall Expected Result:\n")
	b.WriteString(tc.ExpectedResult + "\n")

	if len(tc.RelatedRequirements) > 0 {
		fmt.Fprintf(b, "\nRelated Requirements: %s\n", strings.Join(tc.RelatedRequirements, ", "))
	}
	if len(tc.RelatedComponents) > 0 {
		fmt.Fprintf(b, "Related Components: %s\n", strings.Join(tc.RelatedComponents, ", "))
	}
}
