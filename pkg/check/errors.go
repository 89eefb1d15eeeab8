package check

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// findingFormat renders an aggregated assertion failure as a tab-indented
// block of sorted findings, one per line.
func findingFormat(errs []error) string {
	findings := make([]string, 0, len(errs))
	for _, err := range errs {
		findings = append(findings, err.Error())
	}
	sort.Strings(findings)
	return "\n\t" + strings.Join(findings, "\n\t")
}

// aggregate folds a list of finding messages into one error, or nil when
// the check produced none.
func aggregate(findings []string) error {
	if len(findings) == 0 {
		return nil
	}
	result := &multierror.Error{ErrorFormat: findingFormat}
	for _, finding := range findings {
		result = multierror.Append(result, fmt.Errorf("%s", finding))
	}
	return result
}
