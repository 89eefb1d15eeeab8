// Package check exposes an assertion API over a parsed configuration
// directory, meant to be driven from test code. A Validator loads the
// merged, interpolated view of a directory and hands out filterable
// entity sets:
//
//	v, err := check.NewValidator("./stack", check.Options{})
//	if err != nil { ... }
//	err = v.Resources("aws_instance").
//		IfHasAttribute("tags").
//		ShouldHaveAttributes("ami", "instance_type")
//
// Assertions return a single error aggregating every finding of the
// check, sorted for stable output, or nil when everything passed.
package check
