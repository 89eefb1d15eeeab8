package state

import (
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl"
	"github.com/mitchellh/go-homedir"

	"github.com/stacklint/stacklint/pkg/telemetry"
)

// FileResource identifies one resource block as declared in a single file,
// before any merging or interpolation has happened.
type FileResource struct {
	Filename string
	Type     string
	Name     string
	Data     map[string]interface{}
}

// ParseDirectory parses every *.tf file directly under dir into a fragment
// mapping. Files that fail to parse are logged and dropped; they never
// abort the run. The returned FileResource slice lists every resource
// block encountered, in file enumeration order.
func ParseDirectory(dir string, logger *telemetry.Logger) ([]map[string]interface{}, []FileResource, error) {
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return nil, nil, err
	}
	paths, err := filepath.Glob(filepath.Join(expanded, "*.tf"))
	if err != nil {
		return nil, nil, err
	}

	var fragments []map[string]interface{}
	var fileResources []FileResource
	for _, path := range paths {
		filename := filepath.Base(path)
		fragment, err := parseFile(path)
		if err != nil {
			logger.WithFile(filename).WithError(err).Warn("could not parse file, dropping it from the resource set")
			continue
		}
		fragments = append(fragments, fragment)
		fileResources = append(fileResources, fileResourcesOf(filename, fragment)...)
	}
	return fragments, fileResources, nil
}

// ParseVariablesFile loads a tfvars-style file of global variables. A
// missing or unparsable file is logged and treated as empty.
func ParseVariablesFile(path string, logger *telemetry.Logger) map[string]interface{} {
	if path == "" {
		return map[string]interface{}{}
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		logger.WithFile(path).WithError(err).Warn("could not expand variables file path")
		return map[string]interface{}{}
	}
	variables, err := parseFile(expanded)
	if err != nil {
		logger.WithFile(path).WithError(err).Warn("could not parse variables file")
		return map[string]interface{}{}
	}
	return variables
}

// parseFile decodes one HCL file into a nested mapping. The HCL decoder
// represents repeated blocks as lists of single-key objects; normalize
// collapses those back into nested mappings so that
// resource -> type -> name -> attributes holds throughout the state.
func parseFile(path string) (map[string]interface{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := hcl.ParseBytes(raw)
	if err != nil {
		return nil, err
	}
	var decoded map[string]interface{}
	if err := hcl.DecodeObject(&decoded, root.Node); err != nil {
		return nil, err
	}
	return normalize(decoded).(map[string]interface{}), nil
}

// normalize rewrites HCL block-lists ([]map, one element per repeated
// block) into plain nested mappings, merging repeated blocks under the
// same key. Lists that contain anything other than mappings are kept as
// lists.
func normalize(value interface{}) interface{} {
	switch typed := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(typed))
		for k, v := range typed {
			out[k] = normalize(v)
		}
		return out
	case []map[string]interface{}:
		merged := map[string]interface{}{}
		for _, entry := range typed {
			merged = Merge(merged, normalize(entry).(map[string]interface{}))
		}
		return merged
	case []interface{}:
		allMaps := len(typed) > 0
		for _, entry := range typed {
			if _, ok := entry.(map[string]interface{}); !ok {
				allMaps = false
				break
			}
		}
		if allMaps {
			merged := map[string]interface{}{}
			for _, entry := range typed {
				merged = Merge(merged, normalize(entry).(map[string]interface{}))
			}
			return merged
		}
		out := make([]interface{}, len(typed))
		for i, entry := range typed {
			out[i] = normalize(entry)
		}
		return out
	default:
		return value
	}
}

// fileResourcesOf extracts the resource blocks of one parsed fragment.
func fileResourcesOf(filename string, fragment map[string]interface{}) []FileResource {
	resources, ok := fragment["resource"].(map[string]interface{})
	if !ok {
		return nil
	}
	var out []FileResource
	for resourceType, entries := range resources {
		typed, ok := entries.(map[string]interface{})
		if !ok {
			continue
		}
		for name, data := range typed {
			dataMap, ok := data.(map[string]interface{})
			if !ok {
				continue
			}
			out = append(out, FileResource{
				Filename: filename,
				Type:     resourceType,
				Name:     name,
				Data:     dataMap,
			})
		}
	}
	return out
}
