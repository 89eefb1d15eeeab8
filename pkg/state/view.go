package state

import (
	"sort"
	"strconv"
	"strings"

	"github.com/stacklint/stacklint/pkg/telemetry"
)

// Options configures how a View is built.
type Options struct {
	// VariablesFile is an optional tfvars file of global variables.
	VariablesFile string

	// Lenient disables strict variable resolution. Unresolvable
	// references are echoed back instead of failing construction.
	Lenient bool

	// Logger receives parse and interpolation diagnostics. A default
	// logger is used when nil.
	Logger *telemetry.Logger
}

// View is the aggregate state of a set of parsed fragments together with
// the resolved resource view: counted resources expanded and string
// interpolations applied. A View is immutable after construction.
type View struct {
	state     map[string]interface{}
	resources map[string]interface{}
	strict    bool
	logger    *telemetry.Logger
}

// NewView merges the given fragments (and optional global variables) into
// one aggregate state and resolves the resource view. Construction fails
// with MissingVariableError when a reference cannot be resolved and
// lenient resolution is off, and with IndexOutOfRangeError on an invalid
// list subscript.
func NewView(fragments []map[string]interface{}, globals map[string]interface{}, lenient bool, logger *telemetry.Logger) (*View, error) {
	if logger == nil {
		logger, _ = telemetry.NewLogger(telemetry.DefaultConfig())
	}
	view := &View{
		state:  map[string]interface{}{},
		strict: !lenient,
		logger: logger.NewComponentLogger("state"),
	}
	if len(globals) > 0 {
		view.state = Merge(view.state, map[string]interface{}{"variable": deepCopyMap(globals)})
	}
	for _, fragment := range fragments {
		view.state = Merge(view.state, filterVariableDefaults(fragment))
	}

	resources, _ := view.state["resource"].(map[string]interface{})
	resolved, err := view.interpolateTree(expandCounted(deepCopyMap(resources)))
	if err != nil {
		return nil, err
	}
	view.resources = resolved
	return view, nil
}

// Load parses a configuration directory (plus the optional variables file
// from opts) and builds its resolved view. The returned FileResource slice
// preserves the per-file, pre-interpolation resource data for callers that
// need the original values.
func Load(dir string, opts Options) (*View, []FileResource, error) {
	logger := opts.Logger
	if logger == nil {
		defaultLogger, err := telemetry.NewLogger(telemetry.DefaultConfig())
		if err != nil {
			return nil, nil, err
		}
		logger = defaultLogger
	}
	parseLogger := logger.NewComponentLogger("parser")
	fragments, fileResources, err := ParseDirectory(dir, parseLogger)
	if err != nil {
		return nil, nil, err
	}
	globals := ParseVariablesFile(opts.VariablesFile, parseLogger)
	view, err := NewView(fragments, globals, opts.Lenient, logger)
	if err != nil {
		return nil, nil, err
	}
	return view, fileResources, nil
}

// filterVariableDefaults reduces inline variable declarations to their
// default values; declarations without a default are filtered out.
func filterVariableDefaults(fragment map[string]interface{}) map[string]interface{} {
	declarations, ok := fragment["variable"].(map[string]interface{})
	if !ok {
		return fragment
	}
	defaults := map[string]interface{}{}
	for name, declaration := range declarations {
		body, ok := declaration.(map[string]interface{})
		if !ok {
			continue
		}
		if value, ok := body["default"]; ok {
			defaults[name] = value
		}
	}
	out := make(map[string]interface{}, len(fragment))
	for key, value := range fragment {
		out[key] = value
	}
	out["variable"] = defaults
	return out
}

// Resources returns the resolved resource view keyed by type, then name.
func (v *View) Resources() map[string]interface{} {
	return v.resources
}

// Category returns one top-level category of the aggregate state
// ("data", "provider", "terraform", ...) keyed by type.
func (v *View) Category(name string) map[string]interface{} {
	category, _ := v.state[name].(map[string]interface{})
	return category
}

// VariableDefault returns the aggregate value of a variable by plain name,
// with an explicit absent outcome.
func (v *View) VariableDefault(name string) (interface{}, bool) {
	variables, _ := v.state["variable"].(map[string]interface{})
	value, ok := variables[name]
	return value, ok
}

// VariableValue resolves a full ${var.*} reference string, honoring the
// view's strictness policy.
func (v *View) VariableValue(reference string) (interface{}, error) {
	return v.resolveReference(reference)
}

// ResourceData returns the resolved attribute mapping of one resource,
// with an explicit absent outcome.
func (v *View) ResourceData(resourceType, name string) (map[string]interface{}, bool) {
	entries, ok := v.resources[resourceType].(map[string]interface{})
	if !ok {
		return nil, false
	}
	data, ok := entries[name].(map[string]interface{})
	return data, ok
}

// CountedResourceData returns the resolved attribute mappings of every
// expanded instance of a counted resource, identified by base name.
func (v *View) CountedResourceData(resourceType, baseName string) []map[string]interface{} {
	entries, ok := v.resources[resourceType].(map[string]interface{})
	if !ok {
		return nil
	}
	var names []string
	for name := range entries {
		if strings.HasPrefix(name, baseName) {
			names = append(names, name)
		}
	}
	// Instance names carry a numeric suffix, so order by index rather
	// than lexically (web.10 sorts after web.9, not after web.1).
	sort.Slice(names, func(i, j int) bool {
		left, leftErr := instanceIndex(names[i])
		right, rightErr := instanceIndex(names[j])
		if leftErr == nil && rightErr == nil && left != right {
			return left < right
		}
		return names[i] < names[j]
	})
	var out []map[string]interface{}
	for _, name := range names {
		if dataMap, ok := entries[name].(map[string]interface{}); ok {
			out = append(out, dataMap)
		}
	}
	return out
}

// instanceIndex parses the numeric suffix of an expanded instance name.
func instanceIndex(name string) (int, error) {
	return strconv.Atoi(name[strings.LastIndex(name, ".")+1:])
}

// LookupPath resolves a dotted attribute path against a nested mapping
// with an explicit absent outcome. Paths that run into a non-mapping shape
// resolve to absent rather than failing.
func LookupPath(data map[string]interface{}, path string) (interface{}, bool) {
	var current interface{} = data
	for _, step := range strings.Split(path, ".") {
		currentMap, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = currentMap[step]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
