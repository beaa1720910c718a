package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFileType = errors.New("unsupported file type")

// PlaceholderPath is recorded when a product is submitted without a file.
const PlaceholderPath = "static/product_img/blank.png"

var allowedExts = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

// Store writes uploaded product images under Dir and hands back the relative
// path that goes into the product record.
type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

// Save validates the extension case-insensitively against the allow-list,
// sanitizes the filename and writes the bytes. An empty filename stores
// nothing and returns the placeholder reference. A disallowed extension is
// rejected with ErrUnsupportedFileType.
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	if filename == "" {
		return PlaceholderPath, nil
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExts[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}

	name := sanitizeFilename(filename)
	if name == "" || strings.Trim(name, "._-") == "" {
		return "", fmt.Errorf("%w: unusable filename %q", ErrUnsupportedFileType, filename)
	}

	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}

	return path.Join("static/product_img", name), nil
}

// sanitizeFilename strips any directory components and reduces the name to a
// safe character set.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.TrimLeft(name, ".")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
