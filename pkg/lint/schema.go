package lint

import (
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// IsValidRegex reports whether pattern compiles as a regular expression.
func IsValidRegex(pattern string) bool {
	_, err := regexp.Compile(pattern)
	return err == nil
}

// NamingRule couples a resource type with the naming convention for its
// instances and, optionally, per-field value conventions.
type NamingRule struct {
	Resource string      `yaml:"resource" validate:"required"`
	Regex    string      `yaml:"regex" validate:"required,regexp"`
	Fields   []FieldRule `yaml:"fields" validate:"omitempty,dive"`
}

// FieldRule couples a dotted attribute path with the regex its resolved
// value must match.
type FieldRule struct {
	Value string `yaml:"value" validate:"required"`
	Regex string `yaml:"regex" validate:"required,regexp"`
}

// newSchemaValidator builds the validator used for rule-file schemas. The
// regexp tag enforces that a pattern compiles.
func newSchemaValidator() *validator.Validate {
	v := validator.New()
	// RegisterValidation only errors on an empty tag name.
	_ = v.RegisterValidation("regexp", func(fl validator.FieldLevel) bool {
		return IsValidRegex(fl.Field().String())
	})
	return v
}

// LoadNamingRules reads and validates a naming rules file, returning the
// immutable RuleSet held for the lifetime of a validation run.
func LoadNamingRules(path string) (*RuleSet, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, &InvalidNamingError{Reason: "could not expand naming file path", Err: err}
	}
	raw, err := os.ReadFile(expanded)
	if err != nil {
		return nil, &InvalidNamingError{Reason: "could not load naming file", Err: err}
	}
	var rules []NamingRule
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return nil, &InvalidNamingError{Reason: "unable to parse yaml file, please check that it is valid", Err: err}
	}
	schema := newSchemaValidator()
	for _, rule := range rules {
		if err := schema.Struct(rule); err != nil {
			return nil, &InvalidNamingError{Reason: "naming rules do not match the schema", Err: err}
		}
	}
	return &RuleSet{rules: rules}, nil
}

// PositionEntry maps one desired filename pattern to the resource types
// that belong in it.
type PositionEntry struct {
	Filename      string
	ResourceTypes []string
}

// Positioning is the ordered filename-pattern to resource-types mapping
// used for file-placement checks. Order follows the rules file, so the
// first entry naming a type wins.
type Positioning struct {
	entries []PositionEntry
}

// TargetFor returns the expected filename pattern for a resource type, or
// "unknown" when no entry references it.
func (p *Positioning) TargetFor(resourceType string) string {
	for _, entry := range p.entries {
		for _, candidate := range entry.ResourceTypes {
			if candidate == resourceType {
				return entry.Filename
			}
		}
	}
	return "unknown"
}

// LoadPositioningRules reads and validates a positioning rules file. Every
// key must be a filename ending in .tf mapping to a list of resource type
// strings.
func LoadPositioningRules(path string) (*Positioning, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, &InvalidPositioningError{Reason: "could not expand positioning file path", Err: err}
	}
	raw, err := os.ReadFile(expanded)
	if err != nil {
		return nil, &InvalidPositioningError{Reason: "could not load positioning file", Err: err}
	}
	var document yaml.Node
	if err := yaml.Unmarshal(raw, &document); err != nil {
		return nil, &InvalidPositioningError{Reason: "unable to parse yaml file, please check that it is valid", Err: err}
	}
	if len(document.Content) == 0 {
		return &Positioning{}, nil
	}
	root := document.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &InvalidPositioningError{Reason: "positioning rules must be a mapping of filenames to resource types"}
	}

	positioning := &Positioning{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]
		if !strings.HasSuffix(keyNode.Value, ".tf") {
			return nil, &InvalidPositioningError{Reason: "positioning keys must be filenames ending in .tf, got " + keyNode.Value}
		}
		var resourceTypes []string
		if err := valueNode.Decode(&resourceTypes); err != nil {
			return nil, &InvalidPositioningError{Reason: "positioning values must be lists of resource type strings", Err: err}
		}
		positioning.entries = append(positioning.entries, PositionEntry{
			Filename:      keyNode.Value,
			ResourceTypes: resourceTypes,
		})
	}
	return positioning, nil
}
