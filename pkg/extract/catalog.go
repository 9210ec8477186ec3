package extract

import (
	"strings"

	"github.com/testplanhq/testplan/pkg/domain/model"
)

// componentFamily is one entry of the default-component catalog: a family
// of domain keywords plus the canonical component synthesized when a
// narrative document mentions that family. The dependency, interface, and
// business-rule lists are a fixed knowledge table, not derived from the
// text; keeping them here makes the heuristic catalog auditable and
// extensible without touching the scanning logic.
type componentFamily struct {
	Name     string
	Type     model.ComponentType
	Triggers []string
	Deps     []string
	APIs     []string
	Rules    []string
}

var componentCatalog = []componentFamily{
	{
		Name:     "User Authentication System",
		Type:     model.TypeService,
		Triggers: []string{"user", "login", "account", "authentication"},
		Deps:     []string{"User Database", "Session Management Service", "Security Token Service"},
		APIs:     []string{"REST API for user login/logout", "Token validation endpoint", "User session management API"},
		Rules:    []string{"Must enforce strong password policies", "Must implement secure session management", "Must comply with data privacy regulations"},
	},
	{
		Name:     "Recommendation Engine",
		Type:     model.TypeService,
		Triggers: []string{"recommend", "suggest", "predict"},
		Deps:     []string{"User Behavior Analytics", "Product Catalog Service", "Machine Learning Platform"},
		APIs:     []string{"Recommendation API endpoint", "User preference update API", "Product similarity API"},
		Rules:    []string{"Must respect user privacy preferences", "Must provide explainable recommendations", "Must handle cold start scenarios"},
	},
	{
		Name:     "Notification Service",
		Type:     model.TypeService,
		Triggers: []string{"notification", "alert", "notify"},
		Deps:     []string{"Message Queue Service", "User Preference Service", "External Notification Providers"},
		APIs:     []string{"Send notification API", "Notification preference API", "Notification status API"},
		Rules:    []string{"Must respect user notification preferences", "Must implement rate limiting to prevent spam", "Must provide opt-out mechanisms"},
	},
	{
		Name:     "Data Analytics Platform",
		Type:     model.TypeService,
		Triggers: []string{"analyz", "data", "pattern"},
		Deps:     []string{"Data Collection Service", "Data Storage System", "Reporting Engine"},
		APIs:     []string{"Data ingestion API", "Analytics query API", "Report generation API"},
		Rules:    []string{"Must anonymize personal data", "Must ensure data accuracy and integrity", "Must comply with data retention policies"},
	},
	{
		Name:     "Mobile Application Interface",
		Type:     model.TypeUI,
		Triggers: []string{"mobile", "app", "ios", "android"},
		Deps:     []string{"Backend API Gateway", "Authentication Service", "Content Delivery Network"},
		APIs:     []string{"User interface components", "API integration layer", "State management interface"},
		Rules:    []string{"Must be responsive and accessible", "Must provide consistent user experience", "Must handle offline scenarios gracefully"},
	},
	{
		Name:     "Web Application Interface",
		Type:     model.TypeUI,
		Triggers: []string{"website", "web", "browser"},
		Deps:     []string{"Backend API Gateway", "Authentication Service", "Content Delivery Network"},
		APIs:     []string{"User interface components", "API integration layer", "State management interface"},
		Rules:    []string{"Must be responsive and accessible", "Must provide consistent user experience", "Must handle offline scenarios gracefully"},
	},
}

// matchesFamily reports whether lowered content mentions the family.
func (f componentFamily) matches(lowerContent string) bool {
	for _, t := range f.Triggers {
		if strings.Contains(lowerContent, t) {
			return true
		}
	}
	return false
}

// defaultComponents synthesizes the catalog components whose keyword family
// appears in the content, continuing the supplied ID counter. The counter
// is threaded explicitly so passes stay independently testable.
func defaultComponents(content string, nextID int) ([]model.DesignComponent, int) {
	lower := strings.ToLower(content)
	var comps []model.DesignComponent

	for _, fam := range componentCatalog {
		if !fam.matches(lower) {
			continue
		}
		comps = append(comps, model.DesignComponent{
			ID:            formatID("NAR-COMP", nextID),
			Name:          fam.Name,
			Type:          fam.Type,
			Description:   "System component for " + strings.ToLower(fam.Name),
			Interfaces:    append([]string(nil), fam.APIs...),
			Dependencies:  append([]string(nil), fam.Deps...),
			BusinessRules: append([]string(nil), fam.Rules...),
		})
		nextID++
	}

	return comps, nextID
}
