package lint

import (
	"regexp"
	"strings"

	"github.com/stacklint/stacklint/pkg/state"
	"github.com/stacklint/stacklint/pkg/telemetry"
)

// StackOptions configures a Stack beyond the mandatory configuration
// directory and naming rules file.
type StackOptions struct {
	// PositioningFile is the optional positioning rules file. Without it
	// positioning checks are skipped entirely.
	PositioningFile string

	// VariablesFile is an optional tfvars file of global variables.
	VariablesFile string

	// SkipPositioningFile names one configuration file whose resources
	// are exempt from positioning checks.
	SkipPositioningFile string

	// SkipPositioning disables positioning checks for the whole run,
	// regardless of per-resource tags.
	SkipPositioning bool

	// Lenient disables strict variable resolution during state building.
	Lenient bool

	// Logger receives diagnostics. A default logger is used when nil.
	Logger *telemetry.Logger
}

// Resource is the linting view of one resource: its resolved attribute
// data alongside the original pre-interpolation data from its file.
type Resource struct {
	Filename     string
	Type         string
	Name         string
	Data         map[string]interface{}
	OriginalData map[string]interface{}
}

// Attr returns the resolved value of a top-level attribute with an
// explicit absent outcome.
func (r *Resource) Attr(name string) (interface{}, bool) {
	value, ok := r.Data[name]
	return value, ok
}

// Tags returns the resource's tags mapping, or an empty mapping when the
// resource carries none (or a non-mapping tags attribute).
func (r *Resource) Tags() map[string]interface{} {
	tags, _ := r.Data["tags"].(map[string]interface{})
	return tags
}

// Stack is a collection of resources parsed from one configuration
// directory that can be checked against naming and positioning
// conventions. The rule and positioning sets are immutable once loaded.
type Stack struct {
	Path string

	view        *state.View
	resources   []*Resource
	rules       *RuleSet
	positioning *Positioning
	opts        StackOptions
	logger      *telemetry.Logger

	// deprecation warnings are emitted once per resource and tag
	warned map[string]bool
}

// NewStack parses the configuration directory and loads the rule files.
// Rule-file failures are fatal; malformed configuration files are logged
// and skipped by the parser.
func NewStack(dir, namingFile string, opts StackOptions) (*Stack, error) {
	logger := opts.Logger
	if logger == nil {
		defaultLogger, err := telemetry.NewLogger(telemetry.DefaultConfig())
		if err != nil {
			return nil, err
		}
		logger = defaultLogger
	}

	rules, err := LoadNamingRules(namingFile)
	if err != nil {
		return nil, err
	}
	var positioning *Positioning
	if opts.PositioningFile != "" {
		positioning, err = LoadPositioningRules(opts.PositioningFile)
		if err != nil {
			return nil, err
		}
	}

	view, fileResources, err := state.Load(dir, state.Options{
		VariablesFile: opts.VariablesFile,
		Lenient:       opts.Lenient,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}

	stack := &Stack{
		Path:        dir,
		view:        view,
		rules:       rules,
		positioning: positioning,
		opts:        opts,
		logger:      logger.NewComponentLogger("lint"),
		warned:      map[string]bool{},
	}
	stack.resources = stack.collectResources(fileResources)
	return stack, nil
}

// collectResources pairs every declared resource with its resolved data.
// A counted resource contributes one entry per expanded instance, each
// sharing the original per-file data.
func (s *Stack) collectResources(fileResources []state.FileResource) []*Resource {
	var resources []*Resource
	for _, fr := range fileResources {
		if _, counted := fr.Data["count"]; counted {
			for _, data := range s.view.CountedResourceData(fr.Type, fr.Name) {
				resources = append(resources, &Resource{
					Filename:     fr.Filename,
					Type:         fr.Type,
					Name:         fr.Name,
					Data:         data,
					OriginalData: fr.Data,
				})
			}
			continue
		}
		data, ok := s.view.ResourceData(fr.Type, fr.Name)
		if !ok {
			s.logger.WithResource(fr.Type, fr.Name).Warn("resource missing from resolved view")
			continue
		}
		resources = append(resources, &Resource{
			Filename:     fr.Filename,
			Type:         fr.Type,
			Name:         fr.Name,
			Data:         data,
			OriginalData: fr.Data,
		})
	}
	return resources
}

// Resources returns the linting view of every resource in the stack.
func (s *Stack) Resources() []*Resource {
	return s.resources
}

// Validate checks naming and positioning conventions for every resource
// and returns the ordered findings of this run.
func (s *Stack) Validate() []Finding {
	var findings []Finding
	for _, resource := range s.resources {
		findings = append(findings, s.validateNaming(resource)...)
		if s.positioningEnabled(resource) {
			findings = append(findings, s.validatePositioning(resource)...)
		}
	}
	return findings
}

func (s *Stack) positioningEnabled(resource *Resource) bool {
	if s.positioning == nil {
		s.logger.Info("skipping resource positioning due to positioning file not being provided")
		return false
	}
	if s.opts.SkipPositioning {
		s.logger.Info("skipping resource positioning due to global configuration")
		return false
	}
	if s.opts.SkipPositioningFile != "" && resource.Filename == s.opts.SkipPositioningFile {
		s.logger.WithFile(resource.Filename).Info("skipping resource positioning for exempted file")
		return false
	}
	return true
}

func (s *Stack) validateNaming(resource *Resource) []Finding {
	if s.checkSkipped(resource, "skip-linting", "skip_linting") {
		s.logger.WithResource(resource.Type, resource.Name).
			Warn("skipping resource naming checking due to user overriding tag")
		return nil
	}
	rule := s.rules.RuleForResource(resource.Type)
	if rule == nil {
		s.logger.WithResource(resource.Type, resource.Name).Debug("no matching rule found")
		return nil
	}
	var findings []Finding
	for _, ruleError := range rule.Validate(resource.Type, resource.Name, resource.Data, resource.OriginalData, s.logger) {
		s.logger.WithFile(resource.Filename).WithRule(ruleError.Regex).
			Errorf("naming convention not followed for resource %s with field %s, value: %s",
				ruleError.Entity, ruleError.Field, ruleError.Value)
		findings = append(findings, ResourceError{Filename: resource.Filename, RuleError: ruleError})
	}
	return findings
}

func (s *Stack) validatePositioning(resource *Resource) []Finding {
	if s.checkSkipped(resource, "skip-positioning", "skip_positioning") {
		s.logger.WithResource(resource.Type, resource.Name).
			Warn("skipping resource positioning checking due to user overriding tag")
		return nil
	}
	target := s.positioning.TargetFor(resource.Type)
	expected := strings.TrimSuffix(target, ".tf")
	actual := resource.Filename
	if dot := strings.LastIndex(actual, "."); dot >= 0 {
		actual = actual[:dot]
	}
	re, err := regexp.Compile(expected)
	if err != nil {
		s.logger.WithFile(resource.Filename).WithError(err).
			Error("positioning pattern does not compile")
		return nil
	}
	if loc := re.FindStringIndex(actual); loc != nil && loc[0] == 0 {
		return nil
	}
	s.logger.WithFile(resource.Filename).WithResource(resource.Type, resource.Name).
		Errorf("filename positioning not followed, should be in a file matching %s", target)
	return []Finding{FilenameError{
		Filename: resource.Filename,
		Resource: resource.Name,
		Target:   target,
	}}
}

// checkSkipped reports whether a check is disabled by a per-resource tag.
// The deprecated underscore form is honored, with a deprecation warning
// emitted once per resource and tag.
func (s *Stack) checkSkipped(resource *Resource, tag, deprecatedTag string) bool {
	tags := resource.Tags()
	if len(tags) == 0 {
		return false
	}
	if truthy(tags[deprecatedTag]) {
		key := resource.Name + "/" + deprecatedTag
		if !s.warned[key] {
			s.warned[key] = true
			s.logger.WithResource(resource.Type, resource.Name).
				Warnf("the tag %q is deprecated, please use %q", deprecatedTag, tag)
		}
		return true
	}
	return truthy(tags[tag])
}

// truthy interprets a tag value the way the configuration language's loose
// booleans read: true, non-empty strings, and non-zero numbers enable it.
func truthy(value interface{}) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		return typed != ""
	case int:
		return typed != 0
	case int64:
		return typed != 0
	case float64:
		return typed != 0
	default:
		return false
	}
}
