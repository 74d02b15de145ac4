package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with the given stdin and arguments and
// returns what it wrote to stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestArgs(t *testing.T) {
	out, err := execute(t, "", "(1+2)*3", "10/2-3", "2*(3+4)-5")
	require.NoError(t, err)
	assert.Equal(t, "9\n2\n9\n", out)
}

func TestArgsFailure(t *testing.T) {
	out, err := execute(t, "", "1+1", "5/0", "1&2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 expressions failed")
	assert.Equal(t, "2\n2: division by zero: 5/0\n2: invalid character in expression: '&'\n", out)
}

func TestFormatAndEcho(t *testing.T) {
	out, err := execute(t, "", "--fmt", "%.2f", "--echo", "1/3")
	require.NoError(t, err)
	assert.Equal(t, "1 3 / : 0.33\n", out)
}

func TestBadFormat(t *testing.T) {
	_, err := execute(t, "", "--fmt", "%d", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestInFile(t *testing.T) {
	path := writeFile(t, "exprs.txt", "1+2\n\n  8-3-2  \n8/4/2\n")
	out, err := execute(t, "", "--in", path)
	require.NoError(t, err)
	assert.Equal(t, "3\n3\n1\n", out)
}

func TestInLongLine(t *testing.T) {
	long := strings.Repeat("2*", 50000) + "0"
	path := writeFile(t, "long.txt", long+"\n3-1\n")
	out, err := execute(t, "", "--in", path)
	require.NoError(t, err)
	assert.Equal(t, "0\n2\n", out)
}

func TestInStdin(t *testing.T) {
	out, err := execute(t, "2+3*4\n0.1+0.2\n", "--in", "-")
	require.NoError(t, err)
	assert.Equal(t, "14\n0.30000000000000004\n", out)
}

func TestInMissing(t *testing.T) {
	_, err := execute(t, "", "--in", filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	path := writeFile(t, "rpn.yaml", "format: \"= %.1f\"\necho: true\n")
	out, err := execute(t, "", "--config", path, "7/2")
	require.NoError(t, err)
	assert.Equal(t, "7 2 / : = 3.5\n", out)
}

func TestInteractive(t *testing.T) {
	// A strings.Reader is not a terminal, so there is no prompt.
	out, err := execute(t, "1+2\nmem\n1+\nmem\nexit\n3+3\n")
	require.NoError(t, err)
	want := "3\nsaved result: 3\n2: invalid expression: operator + needs 2 operands, have 1\nsaved result: 3\n"
	assert.Equal(t, want, out)
}

func TestInteractiveLongLine(t *testing.T) {
	long := strings.Repeat("1+", 40000) + "1"
	out, err := execute(t, long+"\nmem\n")
	require.NoError(t, err)
	assert.Equal(t, "40001\nsaved result: 40001\n", out)
}

func TestInteractiveCustomCommands(t *testing.T) {
	path := writeFile(t, "rpn.yaml", "commands:\n  exit: quit\n  memory: m\n")
	out, err := execute(t, "m\n4*4\nm\nquit\n", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "no saved result\n16\nsaved result: 16\n", out)
}

func TestPostfix(t *testing.T) {
	out, err := execute(t, "", "postfix", "2*(3+4)-5", "8-3-2")
	require.NoError(t, err)
	assert.Equal(t, "2 3 4 + * 5 -\n8 3 - 2 -\n", out)
}

func TestPostfixError(t *testing.T) {
	out, err := execute(t, "", "postfix", "(1+2", "1+2")
	require.Error(t, err)
	assert.Equal(t, "1 of 2 expressions failed", err.Error())
	assert.Equal(t, "(1+2: 1: mismatched parentheses: open bracket ( with no close bracket\n1 2 +\n", out)
}

func TestPostfixNeedsArgs(t *testing.T) {
	_, err := execute(t, "", "postfix")
	require.Error(t, err)
}
