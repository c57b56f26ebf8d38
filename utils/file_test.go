package utils

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadRootFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UPLOAD_DIR", dir)

	assert.Equal(t, dir, UploadRoot())
	assert.Equal(t, filepath.Join(dir, "games", "cover.png"),
		GetUploadPath(filepath.Join("games", "cover.png")))
	require.NoError(t, EnsureUploadDir())
}

func TestUploadRootDefault(t *testing.T) {
	t.Setenv("UPLOAD_DIR", "")
	assert.Equal(t, "uploads", UploadRoot())
}

func TestSaveFileCreatesParentDirs(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", "cover.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	defer form.RemoveAll()
	fh := form.File["image"][0]

	dest := filepath.Join(t.TempDir(), "games", "cover.png")
	require.NoError(t, SaveFile(fh, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}
