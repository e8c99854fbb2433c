package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrEmptyFile = errors.New("uploaded file is empty")

// Store writes uploaded files under Dir. With UniqueNames unset, a file whose
// sanitized name already exists is overwritten.
type Store struct {
	Dir         string
	UniqueNames bool
}

func NewStore(dir string, uniqueNames bool) *Store {
	return &Store{Dir: dir, UniqueNames: uniqueNames}
}

// Save copies the upload to disk and returns the path it was written to,
// relative to the process working directory when Dir is relative.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if fh == nil || fh.Size == 0 {
		return "", ErrEmptyFile
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	return s.write(s.resolveName(fh.Filename), src)
}

func (s *Store) resolveName(original string) string {
	name := SanitizeFilename(original)
	if name == "" {
		return uuid.NewString()
	}
	if s.UniqueNames {
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		return stem + "_" + uuid.NewString() + ext
	}
	return name
}

func (s *Store) write(name string, src io.Reader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(s.Dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return path, fmt.Errorf("write %s: %w", path, err)
	}
	if err := dst.Close(); err != nil {
		return path, fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
