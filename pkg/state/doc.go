// Package state builds a resolved view of a Terraform configuration
// directory. It parses every *.tf file with the HCL parser, deep-merges the
// per-file fragments into one aggregate state, expands resources declared
// with a count into individually named instances, and interpolates
// ${var.*} references and single-argument ${format(...)} calls in string
// keys and values.
//
// Interpolation is a single pass. A reference that resolves to another
// reference string is not re-interpolated, and there is no dependency graph
// or general expression evaluation.
package state
