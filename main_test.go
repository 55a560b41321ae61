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

// writeFile writes content in a new file of a temporary directory and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSolve(t *testing.T) {
	nullTotal := writeFile(t, "a.lin", "x + y > 0 & x + z > 0; x + y + z = 0\n")
	out, _, err := run("solve", nullTotal)
	require.NoError(t, err)
	assert.Equal(t, "c solving "+nullTotal+"\nc alternative 1/1\ns SATISFIABLE\nv x=2 y=-1 z=-1\n", out)
}

func TestSolveSeveralFiles(t *testing.T) {
	paths := []string{
		writeFile(t, "sat.lin", "x > 0 & x < 1 | false"),
		writeFile(t, "unsat.lin", "x > 0 & x < 0"),
		writeFile(t, "second.lin", "x < 0 & x > 0 | y = 3"),
	}
	out, _, err := run(append([]string{"solve", "--workers", "2"}, paths...)...)
	require.NoError(t, err)
	expected := strings.Join([]string{
		"c solving " + paths[0],
		"c alternative 1/1",
		"s SATISFIABLE",
		"v x=1/2",
		"c solving " + paths[1],
		"s UNSATISFIABLE",
		"c solving " + paths[2],
		"c alternative 2/2",
		"s SATISFIABLE",
		"v y=3",
		"",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestSolveCheck(t *testing.T) {
	path := writeFile(t, "check.lin", "x != 0; y >= x")
	out, _, err := run("solve", "--check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "s SATISFIABLE\nv x=1 y=2\nc witness verified\n")
}

func TestSolveExhausted(t *testing.T) {
	path := writeFile(t, "big.lin", "x - y > 0 & x - z > 0 & x < 1 & x < 2")
	out, stderr, err := run("solve", "--max-inequalities", "2", path)
	require.NoError(t, err)
	assert.Contains(t, out, "too many inequalities")
	assert.Contains(t, out, "s UNKNOWN\n")
	assert.Contains(t, stderr, "WARN")
}

func TestSolveErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":      "x > 0 &",
		"coefficient": "param a; a*x > 0",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := run("solve", writeFile(t, name+".lin", content))
			assert.Error(t, err)
		})
	}
	_, _, err := run("solve", filepath.Join(t.TempDir(), "missing.lin"))
	assert.Error(t, err)
	_, _, err = run("solve")
	assert.Error(t, err)
	_, _, err = run("solve", "--workers", "0", writeFile(t, "ok.lin", "x > 0"))
	assert.Error(t, err)
}

func TestExplain(t *testing.T) {
	path := writeFile(t, "unsat.lin", "x > 0; -x > 0; y >= 0;\n(z > 0 | z < 0) & z = 0")
	out, _, err := run("explain", path)
	require.NoError(t, err)
	expected := strings.Join([]string{
		"s UNSATISFIABLE",
		"c alternative 1: z > 0 & z = 0",
		"c alternative 2: -z > 0 & z = 0",
		"",
	}, "\n")
	assert.Equal(t, expected, out)

	out, _, err = run("explain", writeFile(t, "sat.lin", "x > 0"))
	require.NoError(t, err)
	assert.Equal(t, "s SATISFIABLE\n", out)
}

func TestPrint(t *testing.T) {
	path := writeFile(t, "print.lin", "param a, b; # parameters\nx != a & y >= b")
	out, _, err := run("print", path)
	require.NoError(t, err)
	assert.Equal(t, "param a, b;\n-a + x > 0 & -b + y >= 0\na - x > 0 & -b + y >= 0\n", out)

	out, _, err = run("print", writeFile(t, "false.lin", "false"))
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}
