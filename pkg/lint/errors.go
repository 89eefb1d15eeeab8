package lint

import (
	"fmt"

	"github.com/mitchellh/colorstring"
)

// InvalidNamingError indicates that the naming rules file could not be
// loaded, parsed, or validated against its schema.
type InvalidNamingError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *InvalidNamingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid naming rules: %s: %s", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid naming rules: %s", e.Reason)
}

// Unwrap returns the underlying error.
func (e *InvalidNamingError) Unwrap() error { return e.Err }

// InvalidPositioningError indicates that the positioning rules file could
// not be loaded, parsed, or validated against its schema.
type InvalidPositioningError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *InvalidPositioningError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid positioning rules: %s: %s", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid positioning rules: %s", e.Reason)
}

// Unwrap returns the underlying error.
func (e *InvalidPositioningError) Unwrap() error { return e.Err }

var colorize = &colorstring.Colorize{Colors: colorstring.DefaultColors, Reset: true}

// DisableColor turns off ANSI escapes in finding output.
func DisableColor(disable bool) {
	colorize.Disable = disable
}

// Finding is a single validation finding produced by a Stack run.
type Finding interface {
	fmt.Stringer
	finding()
}

// RuleError records one naming-rule violation.
type RuleError struct {
	ResourceType  string
	Entity        string
	Field         string
	Regex         string
	Value         string
	OriginalValue string
}

// ResourceError is a RuleError tied to the file that declares the
// offending resource.
type ResourceError struct {
	Filename string
	RuleError
}

func (e ResourceError) finding() {}

// String renders the error for terminal output.
func (e ResourceError) String() string {
	text := colorize.Color(fmt.Sprintf(
		"Naming convention not followed on file [bold][red]%s/%s[reset] for resource [bold][red]%s[reset] for field [bold][red]%s[reset]"+
			"\n\tRegex not matched : [bold][red]%s[reset]"+
			"\n\tValue             : [bold][red]%s[reset]",
		e.Filename, e.ResourceType, e.Entity, e.Field, e.Regex, e.Value))
	if e.OriginalValue != "" {
		text += colorize.Color(fmt.Sprintf("\n\tOriginal Value    : [bold][red]%s[reset]", e.OriginalValue))
	}
	return text
}

// FilenameError records one positioning violation: a resource defined in a
// file that does not match the expected target for its type.
type FilenameError struct {
	Filename string
	Resource string
	Target   string
}

func (e FilenameError) finding() {}

// String renders the error for terminal output.
func (e FilenameError) String() string {
	return colorize.Color(fmt.Sprintf(
		"Filename positioning not followed on file [bold][red]%s/%s[reset] for resource [bold][red]%s[reset]. "+
			"\n\tShould be in file : [bold][red]%s[reset].",
		e.Filename, e.Resource, e.Resource, e.Target))
}
