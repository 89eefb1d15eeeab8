package check

import (
	"fmt"
	"regexp"
)

// Variable models one declared variable and its default value. A nil
// Value means the variable carries no default.
type Variable struct {
	Name  string
	Value interface{}
}

// Exists asserts that the variable has a non-empty default value.
func (v Variable) Exists() error {
	if !truthy(v.Value) {
		return fmt.Errorf("Variable '%s' should have a default value", v.Name)
	}
	return nil
}

// Equals asserts that the variable default equals the given value.
func (v Variable) Equals(value interface{}) error {
	if !equalValues(v.Value, value) {
		return fmt.Errorf("Variable '%s' should have a default value of %v. Is: %v", v.Name, value, v.Value)
	}
	return nil
}

// MatchesRegex asserts that the variable default is a string matching
// the expression.
func (v Variable) MatchesRegex(regex string) error {
	re, err := regexp.Compile(regex)
	if err != nil {
		return fmt.Errorf("invalid regex %q: %w", regex, err)
	}
	text, ok := v.Value.(string)
	if !ok || !re.MatchString(text) {
		return fmt.Errorf("Variable '%s' value should match regex '%s'. Is: %v", v.Name, regex, v.Value)
	}
	return nil
}
