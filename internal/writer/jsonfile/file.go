// internal/writer/jsonfile/file.go
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const indent = "    "

// File is a JSON document holding a single top-level array.
//
// Every Append is a full read-modify-write of the file. There is no
// locking: two processes appending to the same file at the same time can
// lose records.
type File struct {
	dir  string
	path string
}

// Open returns a handle for dir/name and ensures dir exists.
// The handle is usable even when the directory could not be created:
// every Append retries the creation and reports its own error.
func Open(dir, name string) (*File, error) {
	if name == "" {
		return nil, errors.New("jsonfile: name required")
	}
	f := &File{dir: dir, path: filepath.Join(dir, name)}
	return f, f.EnsureDir()
}

// EnsureDir creates the parent directory if needed. Idempotent.
func (f *File) EnsureDir() error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("jsonfile: create dir %s: %w", f.dir, err)
	}
	return nil
}

// Path returns the file location.
func (f *File) Path() string { return f.path }

// Load returns the current records. A missing, empty or unparsable file
// reads as an empty array.
func (f *File) Load() ([]json.RawMessage, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jsonfile: read %s: %w", f.path, err)
	}

	var out []json.RawMessage
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []json.RawMessage{}, nil
	}
	return out, nil
}

// Append adds v to the end of the array and rewrites the file through a
// temp file + rename, so readers never observe a partial document.
func (f *File) Append(v any) error {
	if err := f.EnsureDir(); err != nil {
		return err
	}

	rec, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("jsonfile: encode record: %w", err)
	}

	records, err := f.Load()
	if err != nil {
		return err
	}
	records = append(records, rec)

	// Marshal + Indent re-flows the stored raw messages so the whole file
	// shares one layout.
	flat, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("jsonfile: encode array: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, flat, "", indent); err != nil {
		return fmt.Errorf("jsonfile: indent: %w", err)
	}
	buf.WriteByte('\n')

	return writeAtomic(f.path, buf.Bytes())
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("jsonfile: temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: close: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: chmod: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: rename: %w", err)
	}
	return nil
}
