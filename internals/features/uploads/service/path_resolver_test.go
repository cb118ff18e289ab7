// internals/features/uploads/service/path_resolver_test.go
package service

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeFileHeaders builds real multipart file headers from name/content pairs.
func makeFileHeaders(t *testing.T, files map[string]string) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := w.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["file"]
}

func TestResolveStoragePath(t *testing.T) {
	p, err := ResolveStoragePath(3, 1, "post", 0)
	require.NoError(t, err)
	assert.Equal(t, "course/3/hw/1/post", p)

	p, err = ResolveStoragePath(3, 1, "submit", 9)
	require.NoError(t, err)
	assert.Equal(t, "course/3/hw/1/submit/student/9", p)

	_, err = ResolveStoragePath(3, 1, "submit", 0)
	require.Error(t, err)

	_, err = ResolveStoragePath(3, 1, "attachments", 0)
	require.Error(t, err)
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "/uploads/course/3/hw/1/post", PublicURL("course/3/hw/1/post"))
}

func TestAllowedExt(t *testing.T) {
	for name, want := range map[string]bool{
		"photo.png":  true,
		"photo.JPG":  true,
		"photo.jpeg": true,
		"photo.gif":  false,
		"photo.pdf":  false,
		"noext":      false,
	} {
		_, ok := allowedExt(name)
		assert.Equal(t, want, ok, "filename %s", name)
	}
}

func TestSaveUpload(t *testing.T) {
	root := t.TempDir()
	fhs := makeFileHeaders(t, map[string]string{"homework.png": "png-bytes"})

	rel, err := SaveUpload(fhs[0], root, "course/3/hw/1/post")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "course/3/hw/1/post/"))
	assert.True(t, strings.HasSuffix(rel, ".png"))
	// Generated name, not the client's.
	assert.NotContains(t, rel, "homework")

	f, err := os.Open(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestSaveUploadRejectsUnknownExtension(t *testing.T) {
	root := t.TempDir()
	fhs := makeFileHeaders(t, map[string]string{"evil.sh": "#!/bin/sh"})

	_, err := SaveUpload(fhs[0], root, "course/3/hw/1/post")
	require.Error(t, err)
}

func TestReplaceSubmissionImages(t *testing.T) {
	root := t.TempDir()
	dest := "course/3/hw/1/submit/student/9"

	first := makeFileHeaders(t, map[string]string{"a.png": "one"})
	_, err := ReplaceSubmissionImages(first, root, dest)
	require.NoError(t, err)

	second := makeFileHeaders(t, map[string]string{"b.jpg": "two", "c.jpeg": "three"})
	rels, err := ReplaceSubmissionImages(second, root, dest)
	require.NoError(t, err)
	require.Len(t, rels, 2)

	// The first batch is gone, only the latest files remain.
	entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(dest)))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
