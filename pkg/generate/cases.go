// Package generate turns extracted requirements and design components into
// a test plan: functional, integration, boundary, and negative cases with
// IEEE-829-style metadata.
package generate

import (
	"fmt"
	"strings"

	"github.com/testplanhq/testplan/pkg/domain/model"
)

// Cases derives the full test case set. One shared counter numbers every
// case (TC_001, TC_002, ...) in generation order: functional cases per
// requirement, integration cases per component with dependencies, the
// default integration suite for sparse component sets, then boundary and
// negative cases.
func Cases(reqs []model.Requirement, comps []model.DesignComponent) []model.TestCase {
	var cases []model.TestCase
	nextID := 1

	for _, req := range reqs {
		var tc model.TestCase
		tc, nextID = functionalCase(req, nextID)
		cases = append(cases, tc)
	}

	integrations := 0
	for _, comp := range comps {
		if len(comp.Dependencies) == 0 {
			continue
		}
		var tc model.TestCase
		tc, nextID = integrationCase(comp, nextID)
		cases = append(cases, tc)
		integrations++
	}

	// Sparse component sets still need integration coverage of the usual
	// system seams.
	if integrations == 0 || len(comps) < 3 {
		var defaults []model.TestCase
		defaults, nextID = defaultIntegrationCases(nextID)
		cases = append(cases, defaults...)
	}

	var boundary []model.TestCase
	boundary, nextID = boundaryCases(reqs, nextID)
	cases = append(cases, boundary...)

	negative, _ := negativeCases(reqs, nextID)
	cases = append(cases, negative...)

	return cases
}

func caseID(n int) string {
	return fmt.Sprintf("TC_%03d", n)
}

// newCase fills the metadata every generated case shares.
func newCase(id, title, description, testType string, priority model.Priority) model.TestCase {
	return model.TestCase{
		ID:          id,
		Title:       title,
		Description: description,
		Objective:   "Verify " + strings.ToLower(title),
		TestType:    testType,
		TestLevel:   "System",
		Priority:    priority,
		Severity:    model.SeverityForPriority(priority),
		Preconditions: []string{
			"System is accessible and running",
			"Test data is available",
			"User has appropriate permissions",
		},
		EstimatedTime: "15 minutes",
	}
}

// functionalCase builds the positive test for one requirement. Steps come
// from the acceptance criteria when present, framed by a setup and a
// validation step; otherwise a four-step default covers access, execution,
// verification, and input variation.
func functionalCase(req model.Requirement, nextID int) (model.TestCase, int) {
	tc := newCase(caseID(nextID), "Verify "+req.Title,
		"Functional test to verify "+req.Description, "Functional", req.Priority)
	tc.RelatedRequirements = []string{req.ID}

	lowerTitle := strings.ToLower(req.Title)
	if len(req.AcceptanceCriteria) > 0 {
		tc.Steps = append(tc.Steps, model.TestStep{
			Number:   1,
			Action:   "Navigate to the " + lowerTitle + " feature",
			Expected: "Feature interface is accessible and loads properly",
		})
		number := 2
		for _, criterion := range req.AcceptanceCriteria {
			tc.Steps = append(tc.Steps, model.TestStep{
				Number:   number,
				Action:   "Verify: " + criterion,
				Expected: "Criterion is satisfied: " + criterion,
			})
			number++
		}
		tc.Steps = append(tc.Steps, model.TestStep{
			Number:   number,
			Action:   "Validate overall functionality and user experience",
			Expected: "All acceptance criteria are met and user can complete the workflow successfully",
		})
	} else {
		tc.Steps = []model.TestStep{
			{Number: 1, Action: "Access the system and navigate to " + lowerTitle,
				Expected: "System is accessible and feature is available in the interface"},
			{Number: 2, Action: "Execute the primary functionality: " + req.Title,
				Expected: "Feature executes without errors and provides expected functionality"},
			{Number: 3, Action: "Verify the result matches the requirement: " + req.Description,
				Expected: "System behavior aligns with documented requirement and user expectations"},
			{Number: 4, Action: "Test with different valid inputs and user scenarios",
				Expected: "System handles various valid scenarios consistently and correctly"},
		}
	}

	tc.ExpectedResult = "All acceptance criteria are met and requirement is satisfied"
	return tc, nextID + 1
}

// integrationCase builds one test per dependent component: a health-check
// setup step, one data-flow step per dependency, then error handling,
// performance, and consistency checks.
func integrationCase(comp model.DesignComponent, nextID int) (model.TestCase, int) {
	tc := newCase(caseID(nextID), "Integration test for "+comp.Name,
		"Verify integration between "+comp.Name+" and its dependencies",
		"Integration", model.PriorityHigh)
	tc.RelatedComponents = []string{comp.ID}

	tc.Steps = append(tc.Steps, model.TestStep{
		Number:   1,
		Action:   "Ensure all dependent systems are running and accessible: " + strings.Join(comp.Dependencies, ", "),
		Expected: "All dependencies are online and responding to health checks",
	})
	number := 2
	for _, dep := range comp.Dependencies {
		tc.Steps = append(tc.Steps, model.TestStep{
			Number:   number,
			Action:   "Test data flow and communication between " + comp.Name + " and " + dep,
			Expected: "Data is exchanged correctly, APIs respond within SLA, no data loss or corruption",
		})
		number++
	}
	tc.Steps = append(tc.Steps,
		model.TestStep{Number: number,
			Action:   "Test error handling when dependencies are unavailable or return errors",
			Expected: "System handles dependency failures gracefully with appropriate fallback mechanisms"},
		model.TestStep{Number: number + 1,
			Action:   "Verify integration performance under normal and peak load conditions",
			Expected: "Integration meets performance requirements and doesn't create bottlenecks"},
		model.TestStep{Number: number + 2,
			Action:   "Validate data consistency and integrity across integrated components",
			Expected: "Data remains consistent across all systems and no data corruption occurs"},
	)

	tc.ExpectedResult = "All integrations work correctly without errors"
	return tc, nextID + 1
}

// defaultIntegrationScenarios cover the seams most systems have regardless
// of what the documents described.
var defaultIntegrationScenarios = []string{
	"User Authentication System Integration",
	"Database Integration and Data Persistence",
	"External API Integration",
	"Frontend-Backend Integration",
	"Third-party Service Integration",
}

func defaultIntegrationCases(nextID int) ([]model.TestCase, int) {
	var cases []model.TestCase

	for _, scenario := range defaultIntegrationScenarios {
		tc := newCase(caseID(nextID), scenario+" Test",
			"Verify "+strings.ToLower(scenario)+" works correctly with the main system",
			"Integration", model.PriorityHigh)
		tc.Steps = scenarioSteps(scenario)
		tc.ExpectedResult = "Integration works seamlessly with proper error handling and performance"
		cases = append(cases, tc)
		nextID++
	}

	return cases, nextID
}

func scenarioSteps(scenario string) []model.TestStep {
	switch {
	case strings.Contains(scenario, "Authentication"):
		return []model.TestStep{
			{Number: 1, Action: "Verify user login integration with authentication service",
				Expected: "Users can successfully authenticate and receive proper session tokens"},
			{Number: 2, Action: "Test session management and token validation across system components",
				Expected: "Session tokens are validated correctly and user permissions are enforced"},
			{Number: 3, Action: "Verify logout and session cleanup integration",
				Expected: "User sessions are properly terminated and resources are cleaned up"},
		}
	case strings.Contains(scenario, "Database"):
		return []model.TestStep{
			{Number: 1, Action: "Test data creation, reading, updating, and deletion operations",
				Expected: "All CRUD operations work correctly with proper data validation"},
			{Number: 2, Action: "Verify transaction handling and data consistency",
				Expected: "Database transactions maintain ACID properties and data integrity"},
			{Number: 3, Action: "Test database connection pooling and error handling",
				Expected: "System handles database connectivity issues gracefully"},
		}
	case strings.Contains(scenario, "API"):
		return []model.TestStep{
			{Number: 1, Action: "Test API request/response handling and data format validation",
				Expected: "API calls are made correctly with proper request formatting and response parsing"},
			{Number: 2, Action: "Verify API error handling and retry mechanisms",
				Expected: "System handles API failures gracefully with appropriate retry logic"},
			{Number: 3, Action: "Test API rate limiting and timeout handling",
				Expected: "System respects API rate limits and handles timeouts appropriately"},
		}
	}
	return []model.TestStep{
		{Number: 1, Action: "Verify component communication and data exchange",
			Expected: "Components communicate correctly and exchange data as expected"},
		{Number: 2, Action: "Test error handling and fallback mechanisms",
			Expected: "System handles integration failures gracefully"},
		{Number: 3, Action: "Validate end-to-end workflow integration",
			Expected: "Complete user workflows work correctly across integrated components"},
	}
}

// boundaryCases covers functional requirements, plus any requirement whose
// description mentions a boundary condition. Step templates are keyed on
// the capability described.
func boundaryCases(reqs []model.Requirement, nextID int) ([]model.TestCase, int) {
	var cases []model.TestCase

	for _, req := range reqs {
		if req.Category != model.CategoryFunctional && !mentionsBoundaryCondition(req.Description) {
			continue
		}

		tc := newCase(caseID(nextID), "Boundary test for "+req.Title,
			"Test edge cases and boundary conditions for "+req.Description,
			"Boundary", req.Priority)
		tc.RelatedRequirements = []string{req.ID}
		tc.Steps = boundarySteps(req)
		tc.ExpectedResult = "System handles all boundary conditions and edge cases correctly without errors or performance issues"
		cases = append(cases, tc)
		nextID++
	}

	return cases, nextID
}

func boundarySteps(req model.Requirement) []model.TestStep {
	lower := strings.ToLower(req.Description)

	switch {
	case strings.Contains(lower, "predict") || strings.Contains(lower, "recommend"):
		return []model.TestStep{
			{Number: 1, Action: "Test with minimal user data (new user with no history)",
				Expected: "System should provide basic recommendations or gracefully handle lack of data"},
			{Number: 2, Action: "Test with maximum user data (extensive purchase and browsing history)",
				Expected: "System should process large datasets efficiently and provide accurate predictions"},
			{Number: 3, Action: "Test with edge case scenarios (conflicting preferences, seasonal changes)",
				Expected: "System should handle complex scenarios and provide reasonable recommendations"},
		}
	case strings.Contains(lower, "notification") || strings.Contains(lower, "alert"):
		return []model.TestStep{
			{Number: 1, Action: "Test notification frequency limits (minimum and maximum intervals)",
				Expected: "System should respect notification preferences and avoid spam"},
			{Number: 2, Action: "Test with large number of simultaneous notifications",
				Expected: "System should handle notification queues efficiently without delays"},
			{Number: 3, Action: "Test notification delivery during system peak loads",
				Expected: "Notifications should be delivered reliably even under high system load"},
		}
	}

	lowerTitle := strings.ToLower(req.Title)
	return []model.TestStep{
		{Number: 1, Action: "Test with minimum valid input data for " + lowerTitle,
			Expected: "System should accept and process minimal valid input correctly"},
		{Number: 2, Action: "Test with maximum allowed input data for " + lowerTitle,
			Expected: "System should handle large input volumes without performance degradation"},
		{Number: 3, Action: "Test with edge case inputs (empty strings, special characters, unicode)",
			Expected: "System should validate input properly and handle edge cases gracefully"},
	}
}

var boundaryKeywords = []string{
	"limit", "maximum", "minimum", "range", "length", "size", "threshold",
	"capacity", "volume", "frequency", "rate", "count", "number", "amount",
	"percentage", "accuracy", "performance", "speed", "time", "duration",
}

func mentionsBoundaryCondition(description string) bool {
	lower := strings.ToLower(description)
	for _, keyword := range boundaryKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// negativeCases builds one error-path test per requirement with a fixed
// six-step template covering invalid input, authorization, validation,
// malicious input, and error logging.
func negativeCases(reqs []model.Requirement, nextID int) ([]model.TestCase, int) {
	var cases []model.TestCase

	for _, req := range reqs {
		tc := newCase(caseID(nextID), "Negative test for "+req.Title,
			"Test error handling and invalid scenarios for "+req.Description,
			"Negative", req.Priority)
		tc.RelatedRequirements = []string{req.ID}
		tc.Steps = []model.TestStep{
			{Number: 1, Action: "Access the " + strings.ToLower(req.Title) + " feature",
				Expected: "Feature interface is accessible"},
			{Number: 2, Action: "Provide invalid input data (empty, null, malformed, out-of-range values)",
				Expected: "System should reject invalid input with clear error message"},
			{Number: 3, Action: "Attempt to access feature without proper authentication/authorization",
				Expected: "System should deny access with appropriate security message"},
			{Number: 4, Action: "Submit incomplete or missing required data",
				Expected: "System should validate input and display specific error messages for missing fields"},
			{Number: 5, Action: "Test with malicious input (SQL injection, XSS, script injection)",
				Expected: "System should sanitize input and prevent security vulnerabilities"},
			{Number: 6, Action: "Verify error logging and monitoring",
				Expected: "System should log errors appropriately without exposing sensitive information"},
		}
		tc.ExpectedResult = "System handles all error scenarios gracefully with appropriate error messages, maintains security, logs errors properly, and preserves system stability"
		cases = append(cases, tc)
		nextID++
	}

	return cases, nextID
}
