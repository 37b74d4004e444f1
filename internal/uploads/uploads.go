// Package uploads stores product images on local disk.
package uploads

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrTooLarge = errors.New("file is too large")
	ErrNotImage = errors.New("you can only upload image files (jpeg, png, gif)")
)

var allowed = []string{"image/jpeg", "image/png", "image/gif"}

type Store struct {
	dir      string
	baseURL  string
	maxBytes int64
}

func New(dir, baseURL string, maxBytes int64) *Store {
	return &Store{dir: dir, baseURL: strings.TrimRight(baseURL, "/"), maxBytes: maxBytes}
}

// Save sniffs r, rejects anything that is not a small image, and writes it
// under a fresh name. It returns the public URL of the file.
func (s *Store) Save(r io.Reader) (string, error) {
	// read one byte past the limit so an oversized file is caught
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}

	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowed...) {
		return "", ErrNotImage
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	// e.g. "image-1760520000-1b9d6bcd.png"
	filename := fmt.Sprintf("image-%d-%s%s", time.Now().Unix(), uuid.NewString()[:8], mt.Extension())
	f, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}

	return s.baseURL + "/uploads/" + filename, nil
}
