package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRegistry(t *testing.T) {
	reg, err := buildRegistry([]string{"net", "net.timeout:net"})
	require.NoError(t, err)

	net, ok := reg.Resolve("net")
	require.True(t, ok)
	timeout, ok := reg.Resolve("net.timeout")
	require.True(t, ok)
	assert.True(t, timeout.Is(net))
}

func TestBuildRegistry_UnknownParent(t *testing.T) {
	_, err := buildRegistry([]string{"child:missing"})
	assert.Error(t, err)
}

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.properties")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLint(t *testing.T) {
	path := writeRules(t, "sqlState.40001 = RETRY\nsqlState.40001;throw = THROW\n")

	out, err := runCmd(t, "lint", path)
	require.NoError(t, err)
	assert.Contains(t, out, "sqlState.40001;throw=THROW")
	assert.Contains(t, out, "sqlState.40001=RETRY")
}

func TestLint_InvalidRuleset(t *testing.T) {
	path := writeRules(t, "sqlState.40001 = MAYBE\n")
	_, err := runCmd(t, "lint", path)
	assert.Error(t, err)
}

func TestExplain(t *testing.T) {
	path := writeRules(t, "sqlState.40001 = RETRY\n")

	out, err := runCmd(t, "explain", path, "--sql-state", "40001", "--message", "restart txn")
	require.NoError(t, err)
	assert.Contains(t, out, "retry:  true")

	out, err = runCmd(t, "explain", path, "--sql-state", "23505")
	require.NoError(t, err)
	assert.Contains(t, out, "no rule matched")
}

func TestExplain_KindAndWrap(t *testing.T) {
	path := writeRules(t, "net = RETRY\n")

	out, err := runCmd(t, "explain", path,
		"--define", "net",
		"--kind", "net",
		"--message", "connection reset",
		"--wrap", "query failed")
	require.NoError(t, err)
	assert.Contains(t, out, "rule:   net=RETRY")
	assert.Contains(t, out, "retry:  true")
	assert.Contains(t, out, "depth:  0")
}
