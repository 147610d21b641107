package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const roster = "Name,Age,Citizenship,Residence,Net Worth ($bil),Rank\n" +
	"Bill Gates,53,United States,United States,40.0,1\n" +
	",56/58,X,,1.0,5\n" +
	"Gone,70,X,X,,6\n"

func writeRoster(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "billionaire2009.csv")
	require.NoError(t, os.WriteFile(p, []byte(roster), 0o644))
	return p
}

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	cmd := newRootCmd()
	var out, errb bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errb)
	cmd.SetArgs(args)
	code = execute(cmd, &errb)
	return code, out.String(), errb.String()
}

func TestRunPositional(t *testing.T) {
	in := writeRoster(t)
	out := filepath.Join(t.TempDir(), "cleaned.csv")

	code, stdout, _ := run(t, in, out)
	require.Equal(t, 0, code)
	assert.Equal(t, "Cleaned data saved to '"+out+"'\n", stdout)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Name,Age,Citizenship,Residence,Net Worth ($bil),Rank\n"+
		"Bill Gates,53,United States,United States,40.0,1\n"+
		"Unknown,57,X,Unknown,1.0,5\n", string(b))
}

func TestRunMissingSource(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "absent.csv")
	out := filepath.Join(dir, "cleaned.csv")

	code, stdout, stderr := run(t, in, out)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "Error: File '"+in+"' not found.\n", stderr)
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestRunFlagsAndVerbose(t *testing.T) {
	in := writeRoster(t)
	out := filepath.Join(t.TempDir(), "cleaned.jsonl")

	code, stdout, stderr := run(t, "--input", in, "--output", out, "-v")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Citizenship")
	assert.Contains(t, stdout, "Cleaned data saved to '"+out+"'")
	assert.Contains(t, stderr, "level=DEBUG")
	_, err := os.Stat(out)
	assert.NoError(t, err)
}

func TestRunStrict(t *testing.T) {
	p := filepath.Join(t.TempDir(), "ragged.csv")
	require.NoError(t, os.WriteFile(p, []byte(roster+"Short,40\n"), 0o644))
	out := filepath.Join(t.TempDir(), "cleaned.csv")

	code, _, stderr := run(t, p, out)
	require.Equal(t, 0, code, stderr)

	code, _, stderr = run(t, "--strict", p, out)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error: read "+p)
	assert.Contains(t, stderr, "short record")
}

func TestRunTooManyArgs(t *testing.T) {
	code, _, stderr := run(t, "a", "b", "c")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error:")
}

func TestVersion(t *testing.T) {
	code, stdout, _ := run(t, "--version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "billclean "+version+"\n", stdout)
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"cfg.yaml": "input: from-file.csv\noutput: out-file.csv\n",
		"cfg.toml": "input = \"from-file.csv\"\noutput = \"out-file.csv\"\n",
		"cfg.json": `{"input": "from-file.csv", "output": "out-file.csv"}`,
	}
	for name, body := range files {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

			cmd := newRootCmd()
			require.NoError(t, cmd.Flags().Parse([]string{"--output", "from-flag.csv"}))
			cfg, err := loadConfig(p, cmd.Flags())
			require.NoError(t, err)
			assert.Equal(t, "from-file.csv", cfg.Input)
			assert.Equal(t, "from-flag.csv", cfg.Output)
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Parse(nil))
	cfg, err := loadConfig("", cmd.Flags())
	require.NoError(t, err)
	assert.Equal(t, Config{Input: "data/billionaire2009.csv", Output: "data/billionaire2009_cleaned.csv"}, cfg)

	p := filepath.Join(t.TempDir(), "partial.yml")
	require.NoError(t, os.WriteFile(p, []byte("output: elsewhere.csv\n"), 0o644))
	cfg, err = loadConfig(p, cmd.Flags())
	require.NoError(t, err)
	assert.Equal(t, "data/billionaire2009.csv", cfg.Input)
	assert.Equal(t, "elsewhere.csv", cfg.Output)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig("settings.ini", nil)
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	p := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(p, []byte("{"), 0o644))
	_, err = loadConfig(p, nil)
	assert.Error(t, err)
}
