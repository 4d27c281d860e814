package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo initializes a Loam repository in a fresh temp dir and
// returns the absolute dir with the repository. It fails the test on error.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "resolve temp dir")

	repo, err := loam.Init(dir, opts...)
	require.NoError(t, err, "init loam repo")
	return dir, repo
}

// WritePuzzleFiles writes each name/content pair under dir, bypassing the
// repository so tests can exercise files authored by hand.
func WritePuzzleFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644), "write %s", name)
	}
}
