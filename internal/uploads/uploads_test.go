package uploads

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestSave_Image(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, "http://localhost:8080/", 1024)

	url, err := s.Save(bytes.NewReader(pngHeader))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/image-"))
	require.True(t, strings.HasSuffix(url, ".png"))

	saved, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	require.Equal(t, pngHeader, saved)
}

func TestSave_RejectsNonImage(t *testing.T) {
	s := New(t.TempDir(), "", 1024)

	_, err := s.Save(strings.NewReader("just some text, honest"))
	require.ErrorIs(t, err, ErrNotImage)
}

func TestSave_RejectsLargeFile(t *testing.T) {
	s := New(t.TempDir(), "", 16)

	big := append(append([]byte{}, pngHeader...), make([]byte, 64)...)
	_, err := s.Save(bytes.NewReader(big))
	require.ErrorIs(t, err, ErrTooLarge)
}
