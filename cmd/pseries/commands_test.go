// nolint
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	configFile, symbolsFile, kindName, outFile, latex, verbose = "", "", "polynomial", "", false, false

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

func writeSeries(t *testing.T, dir, name, text string) string {
	file := filepath.Join(dir, name)
	assert.Nil(t, os.WriteFile(file, []byte(text), 0o600))

	return file
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()

	cosine := writeSeries(t, dir, "cos.pser", "[trig_arg]\nname=x\npoly_eval=0;1\n[data]\n2&1&c\n")
	near := writeSeries(t, dir, "near.pser", "[trig_arg]\nname=x\npoly_eval=0;1\n[data]\n1&0&c\n0.1&1&c\n")

	out, err := runCLI(t, "mul", "--kind", "scalar", cosine, cosine)
	assert.Nil(t, err)
	assert.Contains(t, out, "2&0&c\n")
	assert.Contains(t, out, "2&2&c\n")

	out, err = runCLI(t, "add", "-k", "scalar", cosine, cosine)
	assert.Nil(t, err)
	assert.Contains(t, out, "4&1&c\n")

	out, err = runCLI(t, "eval", "-k", "scalar", cosine, "0")
	assert.Nil(t, err)
	assert.Equal(t, "0\t2\n", out)

	out, err = runCLI(t, "print", "--latex", "-k", "scalar", cosine)
	assert.Nil(t, err)
	assert.True(t, strings.HasPrefix(out, "\\begin{tabular}"))

	squared := filepath.Join(dir, "sq.pser")
	_, err = runCLI(t, "pow", "-k", "scalar", "-o", squared, near, "2")
	assert.Nil(t, err)

	out, err = runCLI(t, "eval", "-k", "scalar", squared, "0")
	assert.Nil(t, err)
	assert.True(t, strings.HasPrefix(out, "0\t1.21"))

	_, err = runCLI(t, "pow", "-k", "scalar", cosine, "0.5")
	assert.NotNil(t, err)

	_, err = runCLI(t, "print", "-k", "complex", cosine)
	assert.NotNil(t, err)

	_, err = runCLI(t, "print", filepath.Join(dir, "missing.pser"))
	assert.NotNil(t, err)
}
