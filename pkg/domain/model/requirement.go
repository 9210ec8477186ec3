// Package model defines the normalized records produced by document
// extraction: requirements, design components, and the test plan
// structures generated from them.
package model

import (
	"fmt"
	"strings"
)

// Priority classifies how important a requirement is.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

// Category classifies the kind of behavior a requirement describes.
type Category string

const (
	CategoryFunctional  Category = "Functional"
	CategoryPerformance Category = "Performance"
	CategorySecurity    Category = "Security"
	CategoryIntegration Category = "Integration"
	CategoryUIUX        Category = "UI/UX"
	CategoryData        Category = "Data"
	CategoryOperational Category = "Operational"
)

// Requirement is a normalized statement of required system behavior.
// Records are immutable once returned from an extractor; consumers only read them.
type Requirement struct {
	ID                 string   `json:"id" yaml:"id"`
	Title              string   `json:"title" yaml:"title"`
	Description        string   `json:"description" yaml:"description"`
	Priority           Priority `json:"priority" yaml:"priority"`
	Category           Category `json:"category" yaml:"category"`
	AcceptanceCriteria []string `json:"acceptance_criteria" yaml:"acceptance_criteria"`
	Dependencies       []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// ParsePriority maps free-form text to a Priority, defaulting to Medium.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return PriorityCritical
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	case "medium":
		return PriorityMedium
	default:
		return PriorityMedium
	}
}

// ParseCategory maps free-form text to a Category, defaulting to Functional.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "performance":
		return CategoryPerformance
	case "security":
		return CategorySecurity
	case "integration":
		return CategoryIntegration
	case "ui/ux", "ui-ux", "ui", "ux":
		return CategoryUIUX
	case "data":
		return CategoryData
	case "operational":
		return CategoryOperational
	case "functional":
		return CategoryFunctional
	default:
		return CategoryFunctional
	}
}

// Validate checks the requirement for structural integrity.
func (r *Requirement) Validate() []error {
	var errs []error
	if r.ID == "" {
		errs = append(errs, fmt.Errorf("requirement ID is required"))
	}
	if r.Title == "" {
		errs = append(errs, fmt.Errorf("requirement '%s' missing title", r.ID))
	}
	if r.Priority == "" {
		errs = append(errs, fmt.Errorf("requirement '%s' missing priority", r.ID))
	}
	if r.Category == "" {
		errs = append(errs, fmt.Errorf("requirement '%s' missing category", r.ID))
	}
	return errs
}

func (r *Requirement) String() string {
	return fmt.Sprintf("Requirement{id=%s, title=%q, priority=%s}", r.ID, r.Title, r.Priority)
}
