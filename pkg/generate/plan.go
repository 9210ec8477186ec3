package generate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/testplanhq/testplan/pkg/domain/model"
)

// PlanOptions name the project the plan is for.
type PlanOptions struct {
	Project   string
	Version   string
	CreatedBy string
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Plan assembles the full test plan: metadata, objectives, scope, strategy,
// and the generated test case set.
func Plan(opts PlanOptions, reqs []model.Requirement, comps []model.DesignComponent) model.TestPlan {
	createdBy := opts.CreatedBy
	if createdBy == "" {
		createdBy = "TestPlan Generator"
	}
	version := opts.Version
	if version == "" {
		version = "1.0"
	}

	return model.TestPlan{
		ID:          "TP_" + strings.ToUpper(whitespaceRun.ReplaceAllString(opts.Project, "_")),
		Title:       "Test Plan for " + opts.Project,
		Description: "Comprehensive test plan generated from requirements and design documents",
		Version:     version,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
		Objectives:  objectives(reqs, comps),
		Scope:       scope(reqs, comps),
		OutOfScope:  outOfScope(),
		Strategy:    strategy(comps),
		TestCases:   Cases(reqs, comps),
	}
}

func objectives(reqs []model.Requirement, comps []model.DesignComponent) []string {
	objectives := []string{
		"Verify all functional requirements are implemented correctly",
		"Ensure system integration works as designed",
		"Validate system performance meets specified criteria",
		"Confirm system security and data integrity",
		"Test system usability and user experience",
	}

	if len(reqs) > 0 {
		objectives = append(objectives, fmt.Sprintf("Validate %d documented requirements", len(reqs)))
	}
	if len(comps) > 0 {
		objectives = append(objectives, fmt.Sprintf("Test integration of %d system components", len(comps)))
	}

	return objectives
}

// scope lists each distinct requirement category and component type once,
// then the standard testing areas.
func scope(reqs []model.Requirement, comps []model.DesignComponent) []string {
	var scope []string
	seen := make(map[string]bool)

	for _, req := range reqs {
		entry := string(req.Category) + " requirements"
		if req.Category != "" && !seen[entry] {
			scope = append(scope, entry)
			seen[entry] = true
		}
	}
	for _, comp := range comps {
		entry := string(comp.Type) + " components"
		if comp.Type != "" && !seen[entry] {
			scope = append(scope, entry)
			seen[entry] = true
		}
	}

	return append(scope,
		"Functional testing",
		"Integration testing",
		"System testing",
		"User acceptance testing",
	)
}

func outOfScope() []string {
	return []string{
		"Performance testing beyond basic validation",
		"Load testing with production-level data",
		"Security penetration testing",
		"Third-party system testing",
		"Hardware compatibility testing",
		"Disaster recovery testing",
	}
}

// strategy starts from the four standard test types and adds API, UI, and
// Database testing when components of those types were extracted.
func strategy(comps []model.DesignComponent) model.TestStrategy {
	testTypes := []string{
		"Functional Testing",
		"Integration Testing",
		"System Testing",
		"User Acceptance Testing",
	}

	added := make(map[string]bool)
	for _, comp := range comps {
		var extra string
		switch comp.Type {
		case model.TypeAPI:
			extra = "API Testing"
		case model.TypeUI:
			extra = "UI Testing"
		case model.TypeDatabase:
			extra = "Database Testing"
		default:
			continue
		}
		if !added[extra] {
			testTypes = append(testTypes, extra)
			added[extra] = true
		}
	}

	return model.TestStrategy{
		TestTypes: testTypes,
		TestLevels: []string{
			"Unit Testing",
			"Integration Testing",
			"System Testing",
			"Acceptance Testing",
		},
		Approach: "Risk-based testing approach focusing on critical functionality first. " +
			"Combination of manual and automated testing based on test case complexity.",
		Tools: []string{
			"Test Management Tool",
			"Automation Framework",
			"API Testing Tool",
			"Database Testing Tool",
			"Performance Testing Tool",
		},
		Environments: []string{
			"Development Environment",
			"System Integration Testing Environment",
			"User Acceptance Testing Environment",
			"Production-like Environment",
		},
		RiskAssessment: "Medium risk project. Key risks include integration complexity " +
			"and data migration. Mitigation through comprehensive integration testing " +
			"and early stakeholder involvement.",
	}
}
