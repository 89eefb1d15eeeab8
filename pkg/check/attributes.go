package check

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Attribute is one attribute value together with the entity it came
// from.
type Attribute struct {
	entity Entity
	Name   string
	Value  interface{}
}

// ResourceType returns the type of the owning entity.
func (a Attribute) ResourceType() string {
	return a.entity.Type
}

// ResourceName returns the name of the owning entity.
func (a Attribute) ResourceName() string {
	return a.entity.Name
}

func (a Attribute) label() string {
	return fmt.Sprintf("%s.%s.%s", a.entity.Type, a.entity.Name, a.Name)
}

func (a Attribute) valueMap() (map[string]interface{}, bool) {
	value, ok := a.Value.(map[string]interface{})
	return value, ok
}

// AttributeSet holds collected attributes and provides assertions over
// all of them at once.
type AttributeSet struct {
	validator  *Validator
	attributes []Attribute
}

// Attributes returns the collected attributes.
func (s *AttributeSet) Attributes() []Attribute {
	return s.attributes
}

// Len returns the number of attributes in the set.
func (s *AttributeSet) Len() int {
	return len(s.attributes)
}

// Attribute descends one level into every attribute of the set. List
// values contribute each element under the joined name; map values
// contribute the named child when present.
func (s *AttributeSet) Attribute(name string) (*AttributeSet, error) {
	var findings []string
	var attributes []Attribute
	for _, attribute := range s.attributes {
		joined := attribute.Name + "." + name
		if list, ok := attribute.Value.([]interface{}); ok {
			for _, entry := range list {
				attributes = append(attributes, Attribute{entity: attribute.entity, Name: joined, Value: entry})
			}
			continue
		}
		value, ok := attribute.valueMap()
		if !ok {
			continue
		}
		if child, present := value[name]; present {
			attributes = append(attributes, Attribute{entity: attribute.entity, Name: joined, Value: child})
		} else if s.validator.ErrorOnMissingAttribute {
			findings = append(findings, fmt.Sprintf("[%s] should have attribute: '%s'", attribute.label(), name))
		}
	}
	return &AttributeSet{validator: s.validator, attributes: attributes}, aggregate(findings)
}

// ShouldEqual asserts that every attribute value equals the given value.
func (s *AttributeSet) ShouldEqual(value interface{}) error {
	var findings []string
	for _, attribute := range s.attributes {
		if !equalValues(attribute.Value, value) {
			findings = append(findings, fmt.Sprintf("[%s] should be '%v'. Is: '%v'", attribute.label(), value, attribute.Value))
		}
	}
	return aggregate(findings)
}

// ShouldNotEqual asserts that no attribute value equals the given value.
func (s *AttributeSet) ShouldNotEqual(value interface{}) error {
	var findings []string
	for _, attribute := range s.attributes {
		if equalValues(attribute.Value, value) {
			findings = append(findings, fmt.Sprintf("[%s] should not be '%v'. Is: '%v'", attribute.label(), value, attribute.Value))
		}
	}
	return aggregate(findings)
}

// ShouldHaveAttributes asserts that every attribute value is a mapping
// carrying all the named child attributes.
func (s *AttributeSet) ShouldHaveAttributes(names ...string) error {
	var findings []string
	for _, attribute := range s.attributes {
		value, _ := attribute.valueMap()
		for _, name := range names {
			if _, present := value[name]; !present {
				findings = append(findings, fmt.Sprintf("[%s] should have attribute: '%s'", attribute.label(), name))
			}
		}
	}
	return aggregate(findings)
}

// ShouldNotHaveAttributes asserts that no attribute value carries any of
// the named child attributes.
func (s *AttributeSet) ShouldNotHaveAttributes(names ...string) error {
	var findings []string
	for _, attribute := range s.attributes {
		value, _ := attribute.valueMap()
		for _, name := range names {
			if _, present := value[name]; present {
				findings = append(findings, fmt.Sprintf("[%s] should not have attribute: '%s'", attribute.label(), name))
			}
		}
	}
	return aggregate(findings)
}

// ShouldMatchRegex asserts that every attribute value is a string
// matching the expression. Non-string values fail the assertion.
func (s *AttributeSet) ShouldMatchRegex(regex string) error {
	re, err := regexp.Compile(regex)
	if err != nil {
		return fmt.Errorf("invalid regex %q: %w", regex, err)
	}
	var findings []string
	for _, attribute := range s.attributes {
		text, ok := attribute.Value.(string)
		if !ok || !re.MatchString(text) {
			findings = append(findings, fmt.Sprintf("[%s] with value '%v' should match regex '%s'", attribute.label(), attribute.Value, regex))
		}
	}
	return aggregate(findings)
}

// ShouldNotMatchRegex asserts that no string attribute value matches
// the expression. Non-string values pass.
func (s *AttributeSet) ShouldNotMatchRegex(regex string) error {
	re, err := regexp.Compile(regex)
	if err != nil {
		return fmt.Errorf("invalid regex %q: %w", regex, err)
	}
	var findings []string
	for _, attribute := range s.attributes {
		if text, ok := attribute.Value.(string); ok && re.MatchString(text) {
			findings = append(findings, fmt.Sprintf("[%s] with value '%v' should not match regex '%s'", attribute.label(), attribute.Value, regex))
		}
	}
	return aggregate(findings)
}

// ShouldBeValidJSON asserts that every attribute value is a string
// holding well-formed JSON.
func (s *AttributeSet) ShouldBeValidJSON() error {
	var findings []string
	for _, attribute := range s.attributes {
		text, ok := attribute.Value.(string)
		if !ok || !json.Valid([]byte(text)) {
			findings = append(findings, fmt.Sprintf("[%s] is not valid json", attribute.label()))
		}
	}
	return aggregate(findings)
}

// IfHasAttributeWithValue keeps the attributes whose mapping value
// holds the named child equal to the given value.
func (s *AttributeSet) IfHasAttributeWithValue(name string, value interface{}) *AttributeSet {
	var attributes []Attribute
	for _, attribute := range s.attributes {
		mapping, ok := attribute.valueMap()
		if !ok {
			continue
		}
		if child, present := mapping[name]; present && equalValues(child, value) {
			attributes = append(attributes, attribute)
		}
	}
	return &AttributeSet{validator: s.validator, attributes: attributes}
}

// IfNotHasAttributeWithValue keeps the attributes whose mapping value
// lacks the named child or holds a different value.
func (s *AttributeSet) IfNotHasAttributeWithValue(name string, value interface{}) *AttributeSet {
	var attributes []Attribute
	for _, attribute := range s.attributes {
		mapping, ok := attribute.valueMap()
		if !ok {
			continue
		}
		if child, present := mapping[name]; !present || !equalValues(child, value) {
			attributes = append(attributes, attribute)
		}
	}
	return &AttributeSet{validator: s.validator, attributes: attributes}
}
