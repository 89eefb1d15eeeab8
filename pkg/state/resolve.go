package state

import (
	"regexp"
	"strconv"
	"strings"
)

// subscriptRe extracts a subscript from a composite variable name.
var subscriptRe = regexp.MustCompile(`\[[^\]]*\]`)

// resolveReference resolves a full ${var.*} reference string against the
// aggregate variable mapping. In strict mode an unknown name yields a
// MissingVariableError; otherwise the original reference string is echoed
// back so callers can detect the placeholder. An out-of-range list index
// is always an error.
func (v *View) resolveReference(reference string) (interface{}, error) {
	if !strings.HasPrefix(reference, "${var.") {
		return reference, nil
	}

	name := strings.SplitN(reference, "var.", 2)[1]
	name = strings.SplitN(name, "}", 2)[0]
	subscript := subscriptRe.FindString(name)
	if subscript != "" {
		name = strings.SplitN(name, "[", 2)[0]
	}

	variables, _ := v.state["variable"].(map[string]interface{})
	value, found := variables[name]
	if !found {
		return v.unresolved(reference)
	}

	if subscript == "" {
		return value, nil
	}

	switch typed := value.(type) {
	case map[string]interface{}:
		key, ok := subscriptKey(subscript)
		if !ok {
			return v.unresolved(reference)
		}
		keyed, found := typed[key]
		if !found {
			return v.unresolved(reference)
		}
		return keyed, nil
	case []interface{}:
		index, ok := subscriptIndex(subscript)
		if !ok {
			return v.unresolved(reference)
		}
		if index < 0 || index >= len(typed) {
			return nil, &IndexOutOfRangeError{Reference: reference, Index: index, Length: len(typed)}
		}
		return typed[index], nil
	default:
		// A subscript on a scalar variable is ignored and the scalar
		// returned, mirroring the lookup behavior of the state view.
		return value, nil
	}
}

// unresolved applies the strictness policy to a failed lookup.
func (v *View) unresolved(reference string) (interface{}, error) {
	if v.strict {
		return nil, &MissingVariableError{Reference: reference}
	}
	return reference, nil
}

// subscriptKey parses a ["key"]-style subscript into the map key.
func subscriptKey(subscript string) (string, bool) {
	inner := strings.TrimSpace(subscript[1 : len(subscript)-1])
	if len(inner) >= 2 {
		if (inner[0] == '"' && inner[len(inner)-1] == '"') ||
			(inner[0] == '\'' && inner[len(inner)-1] == '\'') {
			return inner[1 : len(inner)-1], true
		}
	}
	if inner == "" {
		return "", false
	}
	return inner, true
}

// subscriptIndex parses an [N]-style subscript into the list index.
func subscriptIndex(subscript string) (int, bool) {
	inner := strings.TrimSpace(subscript[1 : len(subscript)-1])
	index, err := strconv.Atoi(inner)
	if err != nil {
		return 0, false
	}
	return index, true
}
