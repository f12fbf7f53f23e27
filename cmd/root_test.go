package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores the defaults of all flags, cobra keeps parsed values between executions
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the root command with stdin and returns stdout and stderr
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(RootCmd)

	var out, errOut bytes.Buffer
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&errOut)
	RootCmd.SetArgs(args)

	err := RootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "dcoll v"+Version+"\n", out)
}

func TestCollSort(t *testing.T) {
	out, _, err := run(t, `["b","a","c"]`, "coll", "sort", "--kind", "list")
	require.NoError(t, err)
	assert.Equal(t, `["a","b","c"]`+"\n", out)

	out, _, err = run(t, `{"y":1,"x":3}`, "coll", "sort", "--kind", "map", "--preserve-keys", "--desc")
	require.NoError(t, err)
	assert.Equal(t, `{"x":3,"y":1}`+"\n", out)
}

func TestCollSetOnMap(t *testing.T) {
	out, _, err := run(t, `{"a":1}`, "coll", "set", "name", `"x"`, "--kind", "map")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"name":"x"}`+"\n", out)
}

func TestCollMapKeepsNumericStringKeys(t *testing.T) {
	out, _, err := run(t, `{"1":"a"}`, "coll", "set", "2", `"b"`, "--kind", "map")
	require.NoError(t, err)
	assert.Equal(t, `{"1":"a","2":"b"}`+"\n", out)

	out, _, err = run(t, `{"1":"a"}`, "coll", "get", "1", "--kind", "map")
	require.NoError(t, err)
	assert.Equal(t, `"a"`+"\n", out)
}

func TestCollAppendAfterRemove(t *testing.T) {
	out, _, err := run(t, `{"1":"b","2":"c"}`, "coll", "append", `"d"`, "--kind", "list")
	require.NoError(t, err)
	assert.Equal(t, `{"1":"b","2":"c","3":"d"}`+"\n", out)
}

func TestCollRejectsInvalidKeys(t *testing.T) {
	_, _, err := run(t, `[1,2]`, "coll", "keys", "--kind", "map")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidKey")
}

func TestCollReadOnly(t *testing.T) {
	_, _, err := run(t, `[1]`, "coll", "append", "3", "--kind", "list", "--read-only")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ReadOnlyViolation")

	// queries still work
	out, _, err := run(t, `[1]`, "coll", "get", "0", "--kind", "list", "--read-only")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestCollRemoveReindex(t *testing.T) {
	out, _, err := run(t, `["a","b"]`, "coll", "remove", "0", "--kind", "list", "--reindex")
	require.NoError(t, err)
	assert.Equal(t, `["b"]`+"\n", out)

	out, _, err = run(t, `["a","b"]`, "coll", "remove", "0", "--kind", "list")
	require.NoError(t, err)
	assert.Equal(t, `{"1":"b"}`+"\n", out)
}

func TestCollFilter(t *testing.T) {
	out, _, err := run(t, `[1,"1",2,null]`, "coll", "filter", "1", "--kind", "list")
	require.NoError(t, err)
	assert.Equal(t, `[1,"1"]`+"\n", out)

	out, _, err = run(t, `[1,null,2]`, "coll", "filter", "--kind", "list")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`+"\n", out)
}

func TestCollStats(t *testing.T) {
	out, _, err := run(t, `[1,2,3]`, "coll", "stats", "--kind", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "count      3")
	assert.Contains(t, out, "sum        6")
	assert.Contains(t, out, "average    2")
	assert.Contains(t, out, "max        3")
}

func TestCollPick(t *testing.T) {
	in := `[{"weight":0},{"weight":5,"id":"x"},"plain"]`
	out, _, err := run(t, in, "coll", "pick", "--kind", "list", "--seed", "1", "--min-weight", "1")
	require.NoError(t, err)
	assert.Equal(t, `1 {"id":"x","weight":5}`+"\n", out)

	_, _, err = run(t, `["plain"]`, "coll", "pick", "--kind", "list")
	assert.Error(t, err)
}

func TestCollConvert(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "doc.bin")

	_, _, err := run(t, `{"a":[1,2],"b":true}`, "coll", "convert", "--kind", "array", "--to", "binary", "-o", bin)
	require.NoError(t, err)

	out, _, err := run(t, "", "coll", "get", "a", "--kind", "array", "-i", bin)
	require.NoError(t, err)
	assert.Equal(t, "[1,2]\n", out)
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "first.json")
	b := filepath.Join(dir, "second.json")
	require.NoError(t, os.WriteFile(a, []byte(`[1,2]`), 0o644))
	require.NoError(t, os.WriteFile(b, []byte(`[3]`), 0o644))

	out, errOut, err := run(t, "", "batch", a, b, "--kind", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
	assert.Contains(t, errOut, "registry.collections")

	_, errOut, err = run(t, "", "batch", a, filepath.Join(dir, "missing.json"), "--kind", "list")
	assert.Error(t, err)
	assert.Contains(t, errOut, "missing.json")
}
