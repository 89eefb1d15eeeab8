package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// misplacedStack writes a stack with one aws_subnet in compute.tf while
// the positioning rules expect it in network.tf, so a positioning
// violation is reported unless positioning is skipped.
func misplacedStack(t *testing.T) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	stackDir := filepath.Join(dir, "stack")
	require.NoError(t, os.Mkdir(stackDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(stackDir, "compute.tf"), []byte(`
resource "aws_subnet" "subnet-public" {
  cidr_block = "10.0.0.0/24"
}
`), 0644))
	namingFile := filepath.Join(dir, "naming.yaml")
	require.NoError(t, os.WriteFile(namingFile, []byte(`
- resource: aws_subnet
  regex: "^subnet-.*"
`), 0644))
	positioningFile := filepath.Join(dir, "positioning.yaml")
	require.NoError(t, os.WriteFile(positioningFile, []byte(`
network.tf:
  - aws_subnet
`), 0644))
	return stackDir, namingFile, positioningFile
}

func runLint(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCommand("test", "none", "none")
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"lint"}, args...))
	return cmd.Execute()
}

func TestLintCommand_ReportsPositioningViolation(t *testing.T) {
	stackDir, namingFile, positioningFile := misplacedStack(t)

	err := runLint(t, stackDir, "--naming", namingFile, "--positioning", positioningFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "violation")
}

func TestLintCommand_SkipPositioningEnvironment(t *testing.T) {
	stackDir, namingFile, positioningFile := misplacedStack(t)

	// An empty value does not count as set.
	t.Setenv("SKIP_POSITIONING", "")
	err := runLint(t, stackDir, "--naming", namingFile, "--positioning", positioningFile)
	require.Error(t, err)

	t.Setenv("SKIP_POSITIONING", "1")
	err = runLint(t, stackDir, "--naming", namingFile, "--positioning", positioningFile)
	require.NoError(t, err)
}

func TestLintCommand_SkipPositioningFlag(t *testing.T) {
	stackDir, namingFile, positioningFile := misplacedStack(t)

	err := runLint(t, stackDir, "--naming", namingFile, "--positioning", positioningFile, "--skip-positioning")
	require.NoError(t, err)
}
