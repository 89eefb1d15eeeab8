package state

// Merge deep-merges src into dst and returns dst. When a key holds a
// mapping on both sides the mappings are combined recursively, so nested
// keys unique to either side survive the merge. Any other collision is
// resolved in favor of src.
func Merge(dst, src map[string]interface{}) map[string]interface{} {
	if dst == nil {
		dst = make(map[string]interface{}, len(src))
	}
	for key, value := range src {
		existing, ok := dst[key]
		if !ok {
			dst[key] = value
			continue
		}
		existingMap, existingIsMap := existing.(map[string]interface{})
		valueMap, valueIsMap := value.(map[string]interface{})
		if existingIsMap && valueIsMap {
			dst[key] = Merge(existingMap, valueMap)
			continue
		}
		dst[key] = value
	}
	return dst
}

// deepCopy returns a copy of value sharing no mutable structure with the
// original. Maps and slices are copied recursively, scalars as-is.
func deepCopy(value interface{}) interface{} {
	switch typed := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(typed))
		for k, v := range typed {
			out[k] = deepCopy(v)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(typed))
		for i, v := range typed {
			out[i] = deepCopy(v)
		}
		return out
	default:
		return value
	}
}

// deepCopyMap is deepCopy specialized for the common top-level shape.
func deepCopyMap(value map[string]interface{}) map[string]interface{} {
	if value == nil {
		return nil
	}
	return deepCopy(value).(map[string]interface{})
}
