package blob

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Disk stores attachments on the local filesystem and serves them via
// a static URL prefix.
type Disk struct {
	dir     string
	urlBase string
}

// NewDisk creates the storage directory if needed. urlBase is the path
// prefix files are served under, e.g. "/files".
func NewDisk(dir, urlBase string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Disk{dir: dir, urlBase: strings.TrimRight(urlBase, "/")}, nil
}

// Save writes the content under a random name, keeping the original
// extension so mime detection stays meaningful.
func (d *Disk) Save(name string, content io.Reader) (*Object, error) {
	base := sanitize(name)
	ext := filepath.Ext(base)
	stored := uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(d.dir, stored))
	if err != nil {
		return nil, fmt.Errorf("create blob: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, content); err != nil {
		return nil, fmt.Errorf("write blob: %w", err)
	}

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &Object{
		URL:      d.urlBase + "/" + stored,
		Name:     base,
		MimeType: mimeType,
	}, nil
}

// sanitize strips any path components from a client-supplied name.
func sanitize(name string) string {
	base := path.Base(filepath.ToSlash(name))
	if base == "." || base == "/" || base == "" {
		return "file"
	}
	return base
}
