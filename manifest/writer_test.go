package manifest

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/fixturegen/emit"
	"github.com/teranos/fixturegen/errors"
)

func renderedFile(path, specID, content string) emit.RenderedFile {
	return emit.RenderedFile{Path: path, Language: "go", Content: content, SpecID: specID}
}

func TestWriteCreatesFileAndParents(t *testing.T) {
	fs := afero.NewMemMapFs()
	m, err := Scan(fs, "webapp_go")
	require.NoError(t, err)

	w := NewWriter(fs)
	outcome, err := w.Write(renderedFile("internal/auth/service.go", "auth.service", "package auth\n"), m)
	require.NoError(t, err)
	assert.Equal(t, Written, outcome)

	content, err := afero.ReadFile(fs, "webapp_go/internal/auth/service.go")
	require.NoError(t, err)
	assert.Equal(t, "package auth\n", string(content))

	assert.Equal(t, []string{"internal/auth/service.go"}, m.Written())
}

func TestWriteSkipsPreExisting(t *testing.T) {
	fs := afero.NewMemMapFs()
	original := "original fixture bytes\n"
	require.NoError(t, afero.WriteFile(fs, "webapp_go/internal/auth/service.go", []byte(original), 0o644))

	m, err := Scan(fs, "webapp_go")
	require.NoError(t, err)
	require.True(t, m.PreExisting("internal/auth/service.go"))

	w := NewWriter(fs)
	outcome, err := w.Write(renderedFile("internal/auth/service.go", "auth.service", "regenerated\n"), m)
	require.NoError(t, err)
	assert.Equal(t, Skipped, outcome)

	// Non-destructive: pre-existing bytes untouched.
	content, err := afero.ReadFile(fs, "webapp_go/internal/auth/service.go")
	require.NoError(t, err)
	assert.Equal(t, original, string(content))

	assert.Empty(t, m.Written())
	skips := m.Skips()
	require.Len(t, skips, 1)
	assert.Equal(t, SkipPreExisting, skips[0].Reason)
}

func TestWriteDetectsIntraRunPathCollision(t *testing.T) {
	fs := afero.NewMemMapFs()
	m, err := Scan(fs, "webapp_go")
	require.NoError(t, err)

	w := NewWriter(fs)
	_, err = w.Write(renderedFile("internal/auth/service.go", "auth.service", "first\n"), m)
	require.NoError(t, err)

	outcome, err := w.Write(renderedFile("internal/auth/service.go", "auth.duplicate", "second\n"), m)
	assert.Equal(t, Skipped, outcome)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrPathCollision))

	// First writer wins.
	content, readErr := afero.ReadFile(fs, "webapp_go/internal/auth/service.go")
	require.NoError(t, readErr)
	assert.Equal(t, "first\n", string(content))
}

func TestWriteMarkerRepeatsAreBenign(t *testing.T) {
	fs := afero.NewMemMapFs()
	m, err := Scan(fs, "webapp_py")
	require.NoError(t, err)

	w := NewWriter(fs)
	marker := renderedFile("api/__init__.py", "", "\"\"\"Package api.\"\"\"\n")

	outcome, err := w.Write(marker, m)
	require.NoError(t, err)
	assert.Equal(t, Written, outcome)

	outcome, err = w.Write(marker, m)
	require.NoError(t, err)
	assert.Equal(t, Skipped, outcome)

	skips := m.Skips()
	require.Len(t, skips, 1)
	assert.Equal(t, SkipAlreadyWritten, skips[0].Reason)
}

func TestScanMissingRootIsEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	m, err := Scan(fs, "webapp_rs")
	require.NoError(t, err)
	assert.Empty(t, m.Written())
	assert.False(t, m.PreExisting("src/main.rs"))
}

func TestScanHappensBeforeWrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "webapp_rb/lib/auth.rb", []byte("x"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "webapp_rb/lib/deep/nested/util.rb", []byte("y"), 0o644))

	m, err := Scan(fs, "webapp_rb")
	require.NoError(t, err)

	assert.True(t, m.PreExisting("lib/auth.rb"))
	assert.True(t, m.PreExisting("lib/deep/nested/util.rb"))
	assert.False(t, m.PreExisting("lib/other.rb"))
}
