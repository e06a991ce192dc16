package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureDir_CreatesRelativeToCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureDir("downloads")
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(filepath.Join(tmp, "downloads"))
	require.NoError(t, err)
	gotReal, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	require.Equal(t, want, gotReal)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	first, err := EnsureDir(dir)
	require.NoError(t, err)
	second, err := EnsureDir(dir)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureDir_FailsWhenFileInTheWay(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := EnsureDir(filepath.Join(blocker, "sub"))
	require.Error(t, err)
}

func TestSafeName(t *testing.T) {
	tests := map[string]string{
		"report.pdf":          "report.pdf",
		"../../etc/passwd":    "passwd",
		`..\..\windows\x.ini`: "x.ini",
		"":                    "fallback",
		"..":                  "fallback",
		"/":                   "fallback",
		"dir/":                "dir",
	}
	for in, want := range tests {
		assert.Equal(t, want, SafeName(in, "fallback"), in)
	}
}

func TestCreateUnique_AddsCounter(t *testing.T) {
	dir := t.TempDir()

	names := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		f, err := CreateUnique(dir, "notes.txt")
		require.NoError(t, err)
		names = append(names, filepath.Base(f.Name()))
		require.NoError(t, f.Close())
	}

	assert.Equal(t, []string{"notes.txt", "notes (1).txt", "notes (2).txt"}, names)
}
