// Package lint checks the resources of a Terraform configuration directory
// against user-supplied naming and file-positioning conventions.
//
// Naming rules and the optional positioning map are loaded from YAML files
// and validated against fixed schemas at construction time; a Stack then
// walks every parsed resource (counted resources contribute each expanded
// instance) and collects findings:
//
//	stack, err := lint.NewStack("./stack", "naming.yaml", lint.StackOptions{
//		PositioningFile: "positioning.yaml",
//	})
//	if err != nil {
//		return err
//	}
//	for _, finding := range stack.Validate() {
//		fmt.Println(finding)
//	}
//
// Resources can opt out of individual checks with the boolean tags
// skip-linting and skip-positioning. The deprecated underscore forms are
// honored but logged with a deprecation warning.
package lint
