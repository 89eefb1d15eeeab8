package check

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
)

// Entity is one named configuration object: a resource, a data source,
// a provider or a terraform block.
type Entity struct {
	Type string
	Name string
	Data interface{}
}

func (e Entity) dataMap() (map[string]interface{}, bool) {
	data, ok := e.Data.(map[string]interface{})
	return data, ok
}

// EntitySet is an ordered collection of entities supporting chained
// filters and attribute assertions. Filters return new sets; the
// receiver is never mutated.
type EntitySet struct {
	validator *Validator
	entities  []Entity
}

func newEntitySet(validator *Validator, entities []Entity) *EntitySet {
	sort.Slice(entities, func(i, j int) bool { return entities[i].Name < entities[j].Name })
	return &EntitySet{validator: validator, entities: entities}
}

// Entities returns the entities of the set in name order.
func (s *EntitySet) Entities() []Entity {
	return s.entities
}

// Len returns the number of entities in the set.
func (s *EntitySet) Len() int {
	return len(s.entities)
}

// OfType narrows the set to entities of the given types.
func (s *EntitySet) OfType(types ...string) *EntitySet {
	var entities []Entity
	for _, entity := range s.entities {
		for _, entityType := range types {
			if entity.Type == entityType {
				entities = append(entities, entity)
				break
			}
		}
	}
	return newEntitySet(s.validator, entities)
}

// Attribute collects the named attribute from every entity in the set.
// List values contribute one attribute per element. When the validator
// has ErrorOnMissingAttribute set, entities lacking the attribute turn
// into findings.
func (s *EntitySet) Attribute(name string) (*AttributeSet, error) {
	var findings []string
	var attributes []Attribute
	for _, entity := range s.entities {
		data, ok := entity.dataMap()
		if !ok {
			attributes = append(attributes, Attribute{entity: entity, Name: name, Value: entity.Data})
			continue
		}
		value, present := data[name]
		if !present {
			if s.validator.ErrorOnMissingAttribute {
				findings = append(findings, fmt.Sprintf("[%s.%s] should have attribute: '%s'", entity.Type, entity.Name, name))
			}
			continue
		}
		if list, isList := value.([]interface{}); isList {
			for _, entry := range list {
				attributes = append(attributes, Attribute{entity: entity, Name: name, Value: entry})
			}
			continue
		}
		attributes = append(attributes, Attribute{entity: entity, Name: name, Value: value})
	}
	return &AttributeSet{validator: s.validator, attributes: attributes}, aggregate(findings)
}

// AttributeMatchingRegex collects every attribute whose name matches the
// expression from every entity in the set.
func (s *EntitySet) AttributeMatchingRegex(regex string) (*AttributeSet, error) {
	re, err := regexp.Compile(regex)
	if err != nil {
		return nil, fmt.Errorf("invalid regex %q: %w", regex, err)
	}
	var findings []string
	var attributes []Attribute
	for _, entity := range s.entities {
		data, ok := entity.dataMap()
		if !ok {
			continue
		}
		names := make([]string, 0, len(data))
		for name := range data {
			names = append(names, name)
		}
		sort.Strings(names)
		matched := false
		for _, name := range names {
			if re.MatchString(name) {
				attributes = append(attributes, Attribute{entity: entity, Name: name, Value: data[name]})
				matched = true
			}
		}
		if s.validator.ErrorOnMissingAttribute && !matched {
			findings = append(findings, fmt.Sprintf("[%s.%s] should have attribute matching regex: '%s'", entity.Type, entity.Name, regex))
		}
	}
	return &AttributeSet{validator: s.validator, attributes: attributes}, aggregate(findings)
}

// ShouldHaveAttributes asserts that every entity carries all the named
// attributes.
func (s *EntitySet) ShouldHaveAttributes(names ...string) error {
	var findings []string
	for _, entity := range s.entities {
		data, _ := entity.dataMap()
		for _, name := range names {
			if _, present := data[name]; !present {
				findings = append(findings, fmt.Sprintf("[%s.%s] should have attribute: '%s'", entity.Type, entity.Name, name))
			}
		}
	}
	return aggregate(findings)
}

// ShouldNotHaveAttributes asserts that no entity carries any of the
// named attributes.
func (s *EntitySet) ShouldNotHaveAttributes(names ...string) error {
	var findings []string
	for _, entity := range s.entities {
		data, _ := entity.dataMap()
		for _, name := range names {
			if _, present := data[name]; present {
				findings = append(findings, fmt.Sprintf("[%s.%s] should not have attribute(s): '%s'", entity.Type, entity.Name, name))
			}
		}
	}
	return aggregate(findings)
}

// IfHasAttribute keeps the entities carrying the named attribute.
func (s *EntitySet) IfHasAttribute(name string) *EntitySet {
	return s.filter(func(entity Entity) bool {
		data, _ := entity.dataMap()
		_, present := data[name]
		return present
	})
}

// IfNotHasAttribute keeps the entities lacking the named attribute.
func (s *EntitySet) IfNotHasAttribute(name string) *EntitySet {
	return s.filter(func(entity Entity) bool {
		data, _ := entity.dataMap()
		_, present := data[name]
		return !present
	})
}

// IfHasAttributeWithValue keeps the entities whose named attribute
// equals the given value.
func (s *EntitySet) IfHasAttributeWithValue(name string, value interface{}) *EntitySet {
	return s.filter(func(entity Entity) bool {
		data, _ := entity.dataMap()
		attributeValue, present := data[name]
		return present && equalValues(attributeValue, value)
	})
}

// IfNotHasAttributeWithValue keeps the entities whose named attribute
// exists and differs from the given value.
func (s *EntitySet) IfNotHasAttributeWithValue(name string, value interface{}) *EntitySet {
	return s.filter(func(entity Entity) bool {
		data, _ := entity.dataMap()
		attributeValue, present := data[name]
		return present && !equalValues(attributeValue, value)
	})
}

// IfHasAttributeWithRegexValue keeps the entities whose named attribute
// is a string matching the expression. Non-string values never match.
func (s *EntitySet) IfHasAttributeWithRegexValue(name, regex string) *EntitySet {
	re, err := regexp.Compile(regex)
	if err != nil {
		return newEntitySet(s.validator, nil)
	}
	return s.filter(func(entity Entity) bool {
		data, _ := entity.dataMap()
		text, ok := data[name].(string)
		return ok && re.MatchString(text)
	})
}

// IfNotHasAttributeWithRegexValue keeps the entities whose named
// attribute is a string not matching the expression.
func (s *EntitySet) IfNotHasAttributeWithRegexValue(name, regex string) *EntitySet {
	re, err := regexp.Compile(regex)
	if err != nil {
		return newEntitySet(s.validator, nil)
	}
	return s.filter(func(entity Entity) bool {
		data, _ := entity.dataMap()
		text, ok := data[name].(string)
		return ok && !re.MatchString(text)
	})
}

// IfHasSubAttribute keeps the entities whose parent attribute holds a
// truthy child attribute.
func (s *EntitySet) IfHasSubAttribute(parent, name string) *EntitySet {
	return s.filter(func(entity Entity) bool {
		return truthy(subValue(entity, parent, name))
	})
}

// IfNotHasSubAttribute keeps the entities whose parent attribute lacks
// a truthy child attribute.
func (s *EntitySet) IfNotHasSubAttribute(parent, name string) *EntitySet {
	return s.filter(func(entity Entity) bool {
		return !truthy(subValue(entity, parent, name))
	})
}

// IfHasSubAttributeWithValue keeps the entities whose nested attribute
// equals the given value.
func (s *EntitySet) IfHasSubAttributeWithValue(parent, name string, value interface{}) *EntitySet {
	return s.filter(func(entity Entity) bool {
		return equalValues(subValue(entity, parent, name), value)
	})
}

// IfNotHasSubAttributeWithValue keeps the entities whose nested
// attribute differs from the given value.
func (s *EntitySet) IfNotHasSubAttributeWithValue(parent, name string, value interface{}) *EntitySet {
	return s.filter(func(entity Entity) bool {
		return !equalValues(subValue(entity, parent, name), value)
	})
}

// IfHasSubAttributeWithRegexValue keeps the entities whose nested
// attribute is a string matching the expression.
func (s *EntitySet) IfHasSubAttributeWithRegexValue(parent, name, regex string) *EntitySet {
	re, err := regexp.Compile(regex)
	if err != nil {
		return newEntitySet(s.validator, nil)
	}
	return s.filter(func(entity Entity) bool {
		text, ok := subValue(entity, parent, name).(string)
		return ok && re.MatchString(text)
	})
}

// IfNotHasSubAttributeWithRegexValue keeps the entities whose nested
// attribute is a string not matching the expression.
func (s *EntitySet) IfNotHasSubAttributeWithRegexValue(parent, name, regex string) *EntitySet {
	re, err := regexp.Compile(regex)
	if err != nil {
		return newEntitySet(s.validator, nil)
	}
	return s.filter(func(entity Entity) bool {
		text, ok := subValue(entity, parent, name).(string)
		return ok && !re.MatchString(text)
	})
}

func (s *EntitySet) filter(keep func(Entity) bool) *EntitySet {
	var entities []Entity
	for _, entity := range s.entities {
		if keep(entity) {
			entities = append(entities, entity)
		}
	}
	return newEntitySet(s.validator, entities)
}

func subValue(entity Entity, parent, name string) interface{} {
	data, ok := entity.dataMap()
	if !ok {
		return nil
	}
	parentMap, ok := data[parent].(map[string]interface{})
	if !ok {
		return nil
	}
	return parentMap[name]
}

// equalValues compares attribute values; numeric values of differing
// widths compare by their printed form.
func equalValues(left, right interface{}) bool {
	if reflect.DeepEqual(left, right) {
		return true
	}
	if left == nil || right == nil {
		return false
	}
	return fmt.Sprint(left) == fmt.Sprint(right)
}

func truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}
