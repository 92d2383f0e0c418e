package moneybook

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultBookName is the name used when a directory holds no book yet.
const DefaultBookName = "book"

// FindBook returns the unique book matching the name in the directory.
// With an empty name, it returns the only book found, or a fresh empty
// book with the default name when the directory holds none.
func FindBook(path, name string) (*Book, error) {
	paths, err := findBookPaths(path, name)
	if err != nil {
		return nil, err
	}
	switch len(paths) {
	case 0:
		if name == "" {
			b := NewBook()
			b.name = DefaultBookName
			return b, nil
		}
		return nil, fmt.Errorf("could not find book %q", name)
	case 1:
		return loadBookFile(path, paths[0])
	default:
		return nil, fmt.Errorf("multiple books found for %q", name)
	}
}

// findBookPaths walks the directory for .jsonl book files matching the
// name. A book name is its relative path without the extension.
func findBookPaths(path, name string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && p == path {
				return fs.SkipAll // missing directory means no books yet
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".jsonl") {
			return nil
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}
		bookName := strings.TrimSuffix(rel, ".jsonl")
		if name == "" || name == bookName {
			found = append(found, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not scan book directory %q: %w", path, err)
	}
	return found, nil
}

// loadBookFile opens, decodes, and names a book from a file path.
func loadBookFile(bookPath, fullPath string) (*Book, error) {
	relPath, err := filepath.Rel(bookPath, fullPath)
	if err != nil {
		return nil, fmt.Errorf("could not determine relative path for %q: %w", fullPath, err)
	}
	f, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("could not open book file %q: %w", fullPath, err)
	}
	defer f.Close()

	b, err := DecodeBook(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode book file %q: %w", fullPath, err)
	}
	b.name = strings.TrimSuffix(relPath, ".jsonl")
	return b, nil
}

// SaveBook writes the whole book back to its file within the directory,
// derived from the book's name. The file is fully rewritten: persistence
// is whole-collection replace, never an incremental patch.
func SaveBook(path string, b *Book) error {
	if b.Name() == "" {
		return fmt.Errorf("cannot save book with an empty name")
	}
	filePath := filepath.Join(path, b.Name()+".jsonl")
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("could not create directory for book %q: %w", filePath, err)
	}
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("could not create book file %q: %w", filePath, err)
	}
	defer f.Close()
	if err := EncodeBook(f, b); err != nil {
		return fmt.Errorf("could not encode book %q: %w", b.Name(), err)
	}
	return nil
}
