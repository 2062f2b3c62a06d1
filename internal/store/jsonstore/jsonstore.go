package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/floatodo/internal/model"
)

// JSON-backed storage. Single file, human-readable, portable.
// No locking; the widget process is the only writer.

// DefaultFileName is the snapshot file used when nothing else is configured.
const DefaultFileName = "todos.json"

// DefaultPath resolves DefaultFileName against the working directory.
func DefaultPath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return filepath.Join(wd, DefaultFileName), nil
}

// File reads and writes a todo snapshot at Path.
type File struct {
	Path string
}

// New returns a File for path, falling back to DefaultPath when path is empty.
func New(path string) (*File, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &File{Path: path}, nil
}

// Load returns the items stored at f.Path. A missing file is an empty list.
func (f *File) Load() ([]model.Item, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Item{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Decode(b)
}

// Save writes items as a 2-space indented JSON array.
func (f *File) Save(items []model.Item) error {
	b, err := Encode(items)
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	return writeAtomic(dir, f.Path, b)
}

// writeAtomic writes b to a temp file next to path and renames it into
// place, so a reader never sees a half-written snapshot.
func writeAtomic(dir, path string, b []byte) error {
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	name := tmp.Name()
	_, werr := tmp.Write(b)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Decode parses a snapshot and checks it against the todo schema.
func Decode(b []byte) ([]model.Item, error) {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}
	var items []model.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// Encode renders items the way the snapshot file stores them: non-ASCII and
// HTML characters literal, two-space indent, no trailing newline.
func Encode(items []model.Item) ([]byte, error) {
	if items == nil {
		items = []model.Item{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
