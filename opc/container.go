// Package opc provides read access to zip-based Office packages (OPC
// containers: .pptx, .docx, .xlsx).
package opc

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Container errors.
var (
	ErrNotPackage = errors.New("opc: not a zip package")
	ErrNoEntry    = errors.New("opc: entry not found")
)

// Container is an open package. Entries keep the archive's order.
type Container struct {
	entries []string
	files   map[string]*zip.File
}

// Open reads the file at path and opens it as a package.
func Open(path string) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening package: %w", err)
	}
	return New(data)
}

// New opens a package from raw bytes. It fails with ErrNotPackage when the
// bytes are not a valid zip container.
func New(data []byte) (*Container, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPackage, err)
	}

	c := &Container{
		entries: make([]string, 0, len(zr.File)),
		files:   make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		name := normalize(f.Name)
		if name == "" {
			continue
		}
		if _, dup := c.files[name]; !dup {
			c.entries = append(c.entries, name)
		}
		c.files[name] = f
	}
	return c, nil
}

// Has reports whether the package contains the named entry.
func (c *Container) Has(name string) bool {
	_, ok := c.files[normalize(name)]
	return ok
}

// List returns the names of all entries under the given prefix, in archive
// order. An empty prefix lists every entry.
func (c *Container) List(prefix string) []string {
	prefix = normalize(prefix)
	var names []string
	for _, name := range c.entries {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names
}

// ReadBytes returns the raw bytes of the named entry.
func (c *Container) ReadBytes(name string) ([]byte, error) {
	f, ok := c.files[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("reading %s: %w", name, ErrNoEntry)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// ReadText returns the named entry decoded as a string.
func (c *Container) ReadText(name string) (string, error) {
	data, err := c.ReadBytes(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Resolve joins a relationship target to its base directory, collapsing
// "../" segments the way package-relative targets require. An absolute
// target ("/ppt/media/a.png") resolves against the package root.
func Resolve(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return normalize(target)
	}
	parts := strings.Split(normalize(baseDir), "/")
	if len(parts) == 1 && parts[0] == "" {
		parts = nil
	}
	for _, seg := range strings.Split(target, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(parts) > 0 {
				parts = parts[:len(parts)-1]
			}
		default:
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, "/")
}

// normalize strips leading slashes and collapses ./ segments so entry
// lookup matches regardless of how the source spelled the path.
func normalize(name string) string {
	name = strings.TrimPrefix(name, "/")
	if !strings.Contains(name, "./") {
		return name
	}
	return Resolve("", name)
}
