// Package blob stores uploaded attachments and hands back opaque
// references. The chat core only ever sees the resulting URL, name and
// mime type.
package blob

import "io"

// Object describes a stored attachment.
type Object struct {
	URL      string
	Name     string
	MimeType string
}

// Store persists attachment content under a name and returns its
// reference.
type Store interface {
	Save(name string, content io.Reader) (*Object, error)
}
