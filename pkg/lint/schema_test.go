package lint

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidRegex(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"^foo.*", true},
		{"", true},
		{"[a-z]+", true},
		{"[", false},
		{"(unclosed", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidRegex(tt.pattern))
		})
	}
}

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadNamingRules_Valid(t *testing.T) {
	path := writeRules(t, `
- resource: aws_instance
  regex: "^ec2-.*"
  fields:
    - value: tags.environment
      regex: "^(production|staging)$"
- resource: aws_subnet
  regex: "^subnet-.*"
`)

	rules, err := LoadNamingRules(path)
	require.NoError(t, err)
	require.Len(t, rules.Rules(), 2)
	assert.Equal(t, "aws_instance", rules.Rules()[0].Resource)
	assert.Len(t, rules.Rules()[0].Fields, 1)
}

func TestLoadNamingRules_Failures(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr *InvalidNamingError
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return "random/path" },
		},
		{
			name: "broken yaml",
			path: func(t *testing.T) string { return writeRules(t, ":\n  - ][") },
		},
		{
			name: "missing resource key",
			path: func(t *testing.T) string { return writeRules(t, "- regex: '^a'") },
		},
		{
			name: "regex does not compile",
			path: func(t *testing.T) string {
				return writeRules(t, "- resource: aws_instance\n  regex: '['")
			},
		},
		{
			name: "field regex does not compile",
			path: func(t *testing.T) string {
				return writeRules(t, `
- resource: aws_instance
  regex: '^a'
  fields:
    - value: name
      regex: '['
`)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadNamingRules(tt.path(t))
			require.Error(t, err)
			var invalid *InvalidNamingError
			assert.True(t, errors.As(err, &invalid))
		})
	}
}

func TestLoadPositioningRules_Valid(t *testing.T) {
	path := writeRules(t, `
network.tf:
  - aws_subnet
  - aws_route_table
compute.tf:
  - aws_instance
`)

	positioning, err := LoadPositioningRules(path)
	require.NoError(t, err)
	assert.Equal(t, "network.tf", positioning.TargetFor("aws_subnet"))
	assert.Equal(t, "compute.tf", positioning.TargetFor("aws_instance"))
	assert.Equal(t, "unknown", positioning.TargetFor("aws_iam_role"))
}

func TestLoadPositioningRules_Failures(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return "random/path" },
		},
		{
			name: "broken yaml",
			path: func(t *testing.T) string { return writeRules(t, ":\n  - ][") },
		},
		{
			name: "key without tf suffix",
			path: func(t *testing.T) string { return writeRules(t, "network.txt:\n  - aws_subnet") },
		},
		{
			name: "value not a list",
			path: func(t *testing.T) string { return writeRules(t, "network.tf: aws_subnet") },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPositioningRules(tt.path(t))
			require.Error(t, err)
			var invalid *InvalidPositioningError
			assert.True(t, errors.As(err, &invalid))
		})
	}
}

func TestPositioning_FirstEntryWins(t *testing.T) {
	path := writeRules(t, `
first.tf:
  - aws_instance
second.tf:
  - aws_instance
`)

	positioning, err := LoadPositioningRules(path)
	require.NoError(t, err)
	assert.Equal(t, "first.tf", positioning.TargetFor("aws_instance"))
}
