package lint

import (
	"fmt"
	"regexp"

	"github.com/stacklint/stacklint/pkg/state"
	"github.com/stacklint/stacklint/pkg/telemetry"
)

// RuleSet holds the validated naming rules of one rules file and can
// search them by resource type.
type RuleSet struct {
	rules []NamingRule
}

// Rules exposes the underlying rules.
func (s *RuleSet) Rules() []NamingRule {
	return s.rules
}

// RuleForResource returns the first rule declared for the given resource
// type, or nil when no rule matches.
func (s *RuleSet) RuleForResource(resourceType string) *Rule {
	for _, rule := range s.rules {
		if rule.Resource == resourceType {
			return &Rule{NamingRule: rule}
		}
	}
	return nil
}

// Rule applies one naming rule to a resource. Validation is a pure
// function over its inputs; findings are returned, never accumulated.
type Rule struct {
	NamingRule
}

// Validate checks the resource name against the rule regex and every field
// rule against the resolved field values. interpolated holds the resolved
// attribute data, original the pre-interpolation data; when a field value
// differs between the two, the original is recorded in the finding for
// diagnostic context.
func (r *Rule) Validate(resourceType, name string, interpolated, original map[string]interface{}, logger *telemetry.Logger) []RuleError {
	if r.Regex == "" {
		return nil
	}
	var errors []RuleError
	errors = append(errors, r.validateName(resourceType, name, logger)...)
	errors = append(errors, r.validateFields(resourceType, name, interpolated, original, logger)...)
	return errors
}

func (r *Rule) validateName(resourceType, name string, logger *telemetry.Logger) []RuleError {
	re, err := regexp.Compile(r.Regex)
	if err != nil {
		logger.WithRule(r.Regex).WithError(err).Error("rule regex does not compile")
		return nil
	}
	if matchesAtStart(re, name) {
		return nil
	}
	return []RuleError{{
		ResourceType: resourceType,
		Entity:       name,
		Field:        "id",
		Regex:        r.Regex,
		Value:        name,
	}}
}

func (r *Rule) validateFields(resourceType, name string, interpolated, original map[string]interface{}, logger *telemetry.Logger) []RuleError {
	var errors []RuleError
	for _, field := range r.Fields {
		if field.Regex == "" {
			continue
		}
		re, err := regexp.Compile(field.Regex)
		if err != nil {
			logger.WithRule(field.Regex).WithError(err).Error("field regex does not compile")
			continue
		}
		value, found := state.LookupPath(interpolated, field.Value)
		if !found {
			logger.WithResource(resourceType, name).
				Debugf("field %s not present, nothing to check", field.Value)
			continue
		}
		valueString, ok := value.(string)
		if !ok {
			logger.WithResource(resourceType, name).
				Errorf("error matching for regex, values passed were, rule:%s value:%v", field.Regex, value)
			continue
		}
		if matchesAtStart(re, valueString) {
			continue
		}
		originalValue := ""
		if raw, ok := state.LookupPath(original, field.Value); ok && !equalValues(raw, value) {
			originalValue = fmt.Sprint(raw)
		}
		errors = append(errors, RuleError{
			ResourceType:  resourceType,
			Entity:        name,
			Field:         field.Value,
			Regex:         field.Regex,
			Value:         valueString,
			OriginalValue: originalValue,
		})
	}
	return errors
}

// matchesAtStart applies prefix-anchored matching: the pattern must match
// starting at the first byte of s.
func matchesAtStart(re *regexp.Regexp, s string) bool {
	loc := re.FindStringIndex(s)
	return loc != nil && loc[0] == 0
}

func equalValues(a, b interface{}) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}
