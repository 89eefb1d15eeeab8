package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceErrorString(t *testing.T) {
	DisableColor(true)
	defer DisableColor(false)

	err := ResourceError{
		Filename: "compute.tf",
		RuleError: RuleError{
			ResourceType:  "aws_instance",
			Entity:        "web",
			Field:         "name",
			Regex:         "^prod-",
			Value:         "staging-web",
			OriginalValue: "${var.environment}-web",
		},
	}

	text := err.String()
	assert.Contains(t, text, "Naming convention not followed on file compute.tf/aws_instance for resource web for field name")
	assert.Contains(t, text, "Regex not matched : ^prod-")
	assert.Contains(t, text, "Value             : staging-web")
	assert.Contains(t, text, "Original Value    : ${var.environment}-web")
}

func TestResourceErrorString_OriginalOmittedWhenEmpty(t *testing.T) {
	DisableColor(true)
	defer DisableColor(false)

	err := ResourceError{
		Filename:  "compute.tf",
		RuleError: RuleError{ResourceType: "aws_instance", Entity: "web", Field: "id", Regex: "^ec2-", Value: "web"},
	}

	assert.NotContains(t, err.String(), "Original Value")
}

func TestFilenameErrorString(t *testing.T) {
	DisableColor(true)
	defer DisableColor(false)

	err := FilenameError{Filename: "compute.tf", Resource: "subnet-public", Target: "network.tf"}

	text := err.String()
	assert.Contains(t, text, "Filename positioning not followed on file compute.tf/subnet-public for resource subnet-public")
	assert.Contains(t, text, "Should be in file : network.tf")
}
