package state

import (
	"strconv"
	"strings"
)

// countIndexToken is the literal replaced with the instance index inside
// expanded counted resources.
const countIndexToken = "count.index"

// expandCounted rewrites every resource carrying a positive integer count
// into count independent instances named base.0 through base.(count-1).
// The count attribute is not carried into the expansions, and instances
// share no mutable structure with the original or with each other.
func expandCounted(resources map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(resources))
	for resourceType, entries := range resources {
		typed, ok := entries.(map[string]interface{})
		if !ok {
			out[resourceType] = entries
			continue
		}
		expanded := make(map[string]interface{}, len(typed))
		for name, data := range typed {
			dataMap, ok := data.(map[string]interface{})
			if !ok {
				expanded[name] = data
				continue
			}
			count, counted := countOf(dataMap)
			if !counted {
				expanded[name] = dataMap
				continue
			}
			for index := 0; index < count; index++ {
				instance := name + "." + strconv.Itoa(index)
				expanded[instance] = substituteIndex(deepCopyMap(dataMap), strconv.Itoa(index))
			}
		}
		out[resourceType] = expanded
	}
	return out
}

// countOf extracts a positive integer count attribute.
func countOf(data map[string]interface{}) (int, bool) {
	switch count := data["count"].(type) {
	case int:
		return count, count > 0
	case int64:
		return int(count), count > 0
	case float64:
		return int(count), count > 0
	case string:
		parsed, err := strconv.Atoi(count)
		return parsed, err == nil && parsed > 0
	default:
		return 0, false
	}
}

// substituteIndex replaces the count.index token in every string key and
// string value, recursing through nested mappings. The count attribute
// itself is dropped.
func substituteIndex(data map[string]interface{}, index string) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for key, value := range data {
		if key == "count" {
			continue
		}
		key = strings.ReplaceAll(key, countIndexToken, index)
		switch typed := value.(type) {
		case string:
			value = strings.ReplaceAll(typed, countIndexToken, index)
		case map[string]interface{}:
			value = substituteIndex(typed, index)
		}
		out[key] = value
	}
	return out
}
