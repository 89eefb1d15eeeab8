package check

import (
	"github.com/stacklint/stacklint/pkg/state"
	"github.com/stacklint/stacklint/pkg/telemetry"
)

// Options configures a Validator.
type Options struct {
	// VariablesFile points at an optional tfvars-style file of global
	// variable values merged under the directory's own declarations.
	VariablesFile string
	// Lenient echoes unresolvable variable references back instead of
	// failing the load.
	Lenient bool
	// Logger overrides the default component logger.
	Logger *telemetry.Logger
}

// Validator exposes the entities and variables of a configuration
// directory for assertion-style testing.
type Validator struct {
	// ErrorOnMissingAttribute makes attribute collection report
	// entities that lack the requested attribute instead of silently
	// skipping them.
	ErrorOnMissingAttribute bool

	view   *state.View
	logger *telemetry.Logger
}

// NewValidator loads the merged, interpolated view of the directory.
func NewValidator(dir string, opts Options) (*Validator, error) {
	logger := opts.Logger
	if logger == nil {
		base, err := telemetry.NewLogger(telemetry.DefaultConfig())
		if err != nil {
			return nil, err
		}
		logger = base.NewComponentLogger("check")
	}
	view, _, err := state.Load(dir, state.Options{
		VariablesFile: opts.VariablesFile,
		Lenient:       opts.Lenient,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}
	return &Validator{view: view, logger: logger}, nil
}

// Resources returns the resources of the given types. Resources tagged
// skip-testing are left out with a warning.
func (v *Validator) Resources(types ...string) *EntitySet {
	var entities []Entity
	for _, resourceType := range types {
		group, ok := v.view.Resources()[resourceType].(map[string]interface{})
		if !ok {
			continue
		}
		for name, raw := range group {
			data, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			if tags, ok := data["tags"].(map[string]interface{}); ok && truthy(tags["skip-testing"]) {
				v.logger.WithResource(resourceType, name).
					Warn("skipping resource testing due to user overriding tag")
				continue
			}
			entities = append(entities, Entity{Type: resourceType, Name: name, Data: data})
		}
	}
	return newEntitySet(v, entities)
}

// Data returns the data sources of the given types.
func (v *Validator) Data(types ...string) *EntitySet {
	return v.category("data", types)
}

// Providers returns the providers of the given types.
func (v *Validator) Providers(types ...string) *EntitySet {
	return v.category("provider", types)
}

// Terraform returns the terraform blocks of the given types.
func (v *Validator) Terraform(types ...string) *EntitySet {
	return v.category("terraform", types)
}

func (v *Validator) category(category string, types []string) *EntitySet {
	var entities []Entity
	group := v.view.Category(category)
	for _, entityType := range types {
		if data, ok := group[entityType]; ok {
			entities = append(entities, Entity{Type: entityType, Name: entityType, Data: data})
		}
	}
	return newEntitySet(v, entities)
}

// Variable returns the named variable with its default value, nil when
// the variable is undeclared or carries no default.
func (v *Validator) Variable(name string) Variable {
	value, _ := v.view.VariableDefault(name)
	return Variable{Name: name, Value: value}
}

// VariableValue resolves a ${var.name} style reference against the
// loaded view.
func (v *Validator) VariableValue(reference string) (interface{}, error) {
	return v.view.VariableValue(reference)
}
