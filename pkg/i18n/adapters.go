package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
)

// TranslationAdapter loads a catalog from some source.
type TranslationAdapter interface {
	Load(ctx context.Context) (Catalog, error)
}

// MapAdapter serves an in-memory catalog.
type MapAdapter struct {
	Data Catalog
}

func (a *MapAdapter) Load(_ context.Context) (Catalog, error) {
	if a.Data == nil {
		return make(Catalog), nil
	}
	return a.Data, nil
}

// FileAdapter loads a single catalog file.
type FileAdapter struct {
	parser Parser
	path   string
}

// NewFileAdapter creates a FileAdapter. A nil parser is chosen from the file extension.
func NewFileAdapter(parser Parser, path string) *FileAdapter {
	return &FileAdapter{parser: parser, path: path}
}

func (a *FileAdapter) Load(ctx context.Context) (Catalog, error) {
	if a.path == "" {
		return nil, errors.Join(ErrFailedToReadFile, errors.New("file path is empty"))
	}
	dir, name := filepath.Split(a.path)
	if dir == "" {
		dir = "."
	}
	return loadFile(ctx, os.DirFS(dir), name, a.parser)
}

// DirectoryAdapter loads and merges every catalog file in a directory. Files are read
// in name order; later files override keys of earlier ones.
type DirectoryAdapter struct {
	parser Parser
	path   string
}

// NewDirectoryAdapter creates a DirectoryAdapter. With a nil parser every JSON, YAML
// and TOML file is read with the parser matching its extension; otherwise only files
// the parser supports are read.
func NewDirectoryAdapter(parser Parser, path string) *DirectoryAdapter {
	return &DirectoryAdapter{parser: parser, path: path}
}

func (a *DirectoryAdapter) Load(ctx context.Context) (Catalog, error) {
	if a.path == "" {
		return nil, errors.Join(ErrFailedToReadDirectory, errors.New("directory path is empty"))
	}
	info, err := os.Stat(a.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDirectory, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrFailedToReadDirectory, a.path)
	}
	return loadDir(ctx, os.DirFS(a.path), ".", a.parser)
}

// EmbeddedFsAdapter loads catalogs from a directory of an fs.FS such as embed.FS.
type EmbeddedFsAdapter struct {
	parser Parser
	fsys   fs.FS
	dir    string
}

// NewEmbeddedFsAdapter creates an EmbeddedFsAdapter. Parser selection follows
// NewDirectoryAdapter.
func NewEmbeddedFsAdapter(parser Parser, fsys fs.FS, dir string) *EmbeddedFsAdapter {
	if dir == "" {
		dir = "."
	}
	return &EmbeddedFsAdapter{parser: parser, fsys: fsys, dir: dir}
}

func (a *EmbeddedFsAdapter) Load(ctx context.Context) (Catalog, error) {
	if a.fsys == nil {
		return nil, errors.Join(ErrFailedToReadDirectory, errors.New("file system is nil"))
	}
	return loadDir(ctx, a.fsys, a.dir, a.parser)
}

func loadDir(ctx context.Context, fsys fs.FS, dir string, parser Parser) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDirectory, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	result := make(Catalog)
	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		p := parser
		if p == nil {
			p = NewParserForFile(entry.Name())
		}
		if p == nil || !p.SupportsFileExtension(filepath.Ext(entry.Name())) {
			continue
		}

		catalog, err := loadFile(ctx, fsys, path.Join(dir, entry.Name()), p)
		if err != nil {
			return nil, err
		}
		result.merge(catalog)
		loaded++
	}

	if loaded == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoTranslationFiles, dir)
	}
	return result, nil
}

func loadFile(ctx context.Context, fsys fs.FS, name string, parser Parser) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}
	if parser == nil {
		parser = NewParserForFile(name)
		if parser == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, name)
		}
	}

	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTranslationFile, name)
	}

	catalog, err := parser.Parse(ctx, string(content))
	if err != nil {
		return nil, errors.Join(ErrFailedToParseFile, fmt.Errorf("%s: %w", name, err))
	}
	return catalog, nil
}
