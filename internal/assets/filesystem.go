package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader reads assets from {basePath}/{styles,templates,glyphs}.
// Reads never leave basePath, symlinks included.
type FilesystemLoader struct {
	basePath string // absolute, symlinks resolved
}

// NewFilesystemLoader checks that basePath is a readable directory.
// Returns ErrInvalidBasePath otherwise.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	dir, err := canonicalDir(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	return &FilesystemLoader{basePath: dir}, nil
}

func canonicalDir(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}
	_, err = os.ReadDir(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("directory does not exist: %s", abs)
	case err != nil:
		if info, serr := os.Stat(abs); serr == nil && !info.IsDir() {
			return "", fmt.Errorf("not a directory: %s", abs)
		}
		return "", fmt.Errorf("cannot read directory: %v", err)
	}
	return abs, nil
}

func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	return f.load(styleKind, name)
}

func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	return f.load(templateKind, name)
}

func (f *FilesystemLoader) LoadGlyph(name string) (string, error) {
	return f.load(glyphKind, name)
}

func (f *FilesystemLoader) load(k kind, name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	path, err := f.contained(filepath.Join(f.basePath, filepath.FromSlash(k.file(name))))
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(path) // #nosec G304 -- contained in basePath
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// contained resolves symlinks in path and rejects anything outside basePath.
// A missing file keeps its literal path; the read reports it.
func (f *FilesystemLoader) contained(path string) (string, error) {
	if real, err := filepath.EvalSymlinks(path); err == nil {
		path = real
	}
	rel, err := filepath.Rel(f.basePath, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: %s escapes %s", ErrPathTraversal, path, f.basePath)
	}
	return path, nil
}

var _ AssetLoader = (*FilesystemLoader)(nil)
