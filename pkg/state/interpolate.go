package state

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// interpolationRe finds an embedded ${...} span in a string value or key.
var interpolationRe = regexp.MustCompile(`\$\{.*\}`)

// interpolateTree walks a nested mapping and interpolates every string key
// and string value independently. A single pass is performed; substitution
// results are not re-scanned.
func (v *View) interpolateTree(data map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(data))
	for key, value := range data {
		interpolatedKey, err := v.interpolateString(key)
		if err != nil {
			return nil, err
		}
		if keyString, ok := interpolatedKey.(string); ok {
			key = keyString
		}
		switch typed := value.(type) {
		case string:
			interpolated, err := v.interpolateString(typed)
			if err != nil {
				return nil, err
			}
			value = interpolated
		case map[string]interface{}:
			interpolated, err := v.interpolateTree(typed)
			if err != nil {
				return nil, err
			}
			value = interpolated
		}
		out[key] = value
	}
	return out, nil
}

// interpolateString substitutes the first embedded interpolation span of s.
// A ${var.*} span resolving to a string replaces the matched span; a span
// covering the whole string may also resolve to a list or mapping, which
// then replaces the value wholesale. A ${format(...)} span replaces the
// whole value with the formatted result.
func (v *View) interpolateString(s string) (interface{}, error) {
	span := interpolationRe.FindString(s)
	if span == "" {
		return s, nil
	}

	switch {
	case strings.HasPrefix(span, "${var."):
		resolved, err := v.resolveReference(span)
		if err != nil {
			return nil, err
		}
		if resolvedString, ok := resolved.(string); ok {
			if resolvedString == span {
				v.logger.Errorf("could not interpolate variable %q, maybe not set in variables?", s)
			}
			return strings.Replace(s, span, resolvedString, 1), nil
		}
		if span == s {
			return resolved, nil
		}
		v.logger.Errorf("cannot substitute non-string value of %q into string context %q", span, s)
		return s, nil
	case strings.Contains(span, "${format("):
		return v.interpolateFormat(s), nil
	default:
		return s, nil
	}
}

// interpolateFormat evaluates a single-argument ${format(...)} call. The
// contents between the first '(' and the last ')' are split on the first
// comma into a quoted printf template and one literal argument. Anything
// that does not fit that shape is returned unchanged.
func (v *View) interpolateFormat(s string) string {
	open := strings.Index(s, "(")
	closing := strings.LastIndex(s, ")")
	if open < 0 || closing < open {
		return s
	}
	contents := s[open+1 : closing]
	template, argument, found := strings.Cut(contents, ",")
	if !found {
		v.logger.Errorf("unsupported format call %q, only a single argument is supported", s)
		return s
	}
	template = unquoteLiteral(strings.TrimSpace(template))
	return applyFormat(template, parseLiteral(strings.TrimSpace(argument)))
}

// applyFormat renders a printf-style template with one argument.
func applyFormat(template string, argument interface{}) string {
	// %s on numeric arguments is rendered as its default representation.
	template = strings.ReplaceAll(template, "%s", "%v")
	return fmt.Sprintf(template, argument)
}

// parseLiteral interprets a format argument as a number or quoted string.
func parseLiteral(literal string) interface{} {
	if number, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return number
	}
	if number, err := strconv.ParseFloat(literal, 64); err == nil {
		return number
	}
	return unquoteLiteral(literal)
}

// unquoteLiteral strips one level of single or double quotes.
func unquoteLiteral(literal string) string {
	if len(literal) >= 2 {
		if (literal[0] == '"' && literal[len(literal)-1] == '"') ||
			(literal[0] == '\'' && literal[len(literal)-1] == '\'') {
			return literal[1 : len(literal)-1]
		}
	}
	return literal
}
