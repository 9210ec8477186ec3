package model

import (
	"fmt"
	"strings"
)

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ComponentType classifies a design component.
type ComponentType string

const (
	TypeAPI         ComponentType = "API"
	TypeService     ComponentType = "Service"
	TypeUI          ComponentType = "UI"
	TypeDatabase    ComponentType = "Database"
	TypeIntegration ComponentType = "Integration"
	TypeComponent   ComponentType = "Component"
)

// DesignComponent is a normalized description of a system part.
// Dependencies may name components outside the current batch; those are
// treated as external references and are not validated.
type DesignComponent struct {
	ID            string        `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	Type          ComponentType `json:"type" yaml:"type"`
	Description   string        `json:"description" yaml:"description"`
	Interfaces    []string      `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	Dependencies  []string      `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	BusinessRules []string      `json:"business_rules,omitempty" yaml:"business_rules,omitempty"`
}

// ParseComponentType maps free-form text to a ComponentType, defaulting to Component.
func ParseComponentType(s string) ComponentType {
	switch normalizeToken(s) {
	case "api":
		return TypeAPI
	case "service":
		return TypeService
	case "ui":
		return TypeUI
	case "database", "db":
		return TypeDatabase
	case "integration":
		return TypeIntegration
	default:
		return TypeComponent
	}
}

// Validate checks the component for structural integrity.
func (c *DesignComponent) Validate() []error {
	var errs []error
	if c.ID == "" {
		errs = append(errs, fmt.Errorf("component ID is required"))
	}
	if c.Name == "" {
		errs = append(errs, fmt.Errorf("component '%s' missing name", c.ID))
	}
	if c.Type == "" {
		errs = append(errs, fmt.Errorf("component '%s' missing type", c.ID))
	}
	return errs
}

func (c *DesignComponent) String() string {
	return fmt.Sprintf("DesignComponent{id=%s, name=%q, type=%s}", c.ID, c.Name, c.Type)
}
