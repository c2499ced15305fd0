// Package output stores extracted documents as flat text files and lists
// them back for analysis. Each document lives at <dir>/<ID>.txt with the
// first line "Title: <title>" and the body after it.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gaurav-prasanna/articlescore/core"
)

const (
	textExt     = ".txt"
	snapshotExt = ".md"
	titlePrefix = "Title: "
)

// ErrInvalidID is returned for identifiers that cannot be used as a file stem.
var ErrInvalidID = errors.New("invalid document identifier")

// Writer writes extracted documents to disk.
type Writer struct {
	Dir string
}

// New creates a Writer targeting dir, creating the directory if needed.
// If dir is empty, it defaults to the current working directory.
func New(dir string) (*Writer, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{Dir: dir}, nil
}

// WriteDocument writes doc as <dir>/<ID>.txt and returns the path.
func (w *Writer) WriteDocument(doc core.Document) (string, error) {
	path, err := w.path(doc.ID, textExt)
	if err != nil {
		return "", err
	}
	content := titlePrefix + doc.Title + "\n" + doc.Body
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteSnapshot writes a Markdown snapshot as <dir>/<ID>.md and returns the path.
func (w *Writer) WriteSnapshot(id string, markdown string) (string, error) {
	path, err := w.path(id, snapshotExt)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

func (w *Writer) path(id string, ext string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(w.Dir, id+ext), nil
}

// DocumentFile is a saved document found on disk.
type DocumentFile struct {
	ID   string
	Path string
}

// ListDocuments returns the .txt documents in dir sorted by identifier.
func ListDocuments(dir string) ([]DocumentFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing documents in %s: %w", dir, err)
	}

	var files []DocumentFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, textExt) {
			continue
		}
		files = append(files, DocumentFile{
			ID:   strings.TrimSuffix(name, textExt),
			Path: filepath.Join(dir, name),
		})
	}
	sort.SliceStable(files, func(i, j int) bool { return files[i].ID < files[j].ID })
	return files, nil
}

// ReadDocument returns the full content of a saved document, title line included.
func ReadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading document %s: %w", path, err)
	}
	return string(data), nil
}

// SplitTitle separates the "Title: " line from the body of saved content.
func SplitTitle(content string) (title string, body string) {
	first, rest, _ := strings.Cut(content, "\n")
	if t, ok := strings.CutPrefix(first, titlePrefix); ok {
		return t, rest
	}
	return "", content
}
