package i18n

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Parser decodes a catalog file. The top-level keys of the content are cultures.
type Parser interface {
	Parse(ctx context.Context, content string) (Catalog, error)

	// SupportsFileExtension accepts the extension with or without the leading dot.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile picks a parser from the file extension, or returns nil.
func NewParserForFile(filename string) Parser {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")

	switch strings.ToLower(ext) {
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	case "toml":
		return NewTOMLParser()
	default:
		return nil
	}
}

// toCatalog checks that every culture maps to a table and normalizes nested tables
// to map[string]any.
func toCatalog(data map[string]any) (Catalog, error) {
	result := make(Catalog, len(data))
	for lang, val := range data {
		if strings.TrimSpace(lang) == "" {
			return nil, fmt.Errorf("%w: empty culture", ErrInvalidCatalog)
		}
		messages, ok := normalize(val)
		if !ok {
			return nil, fmt.Errorf("%w: culture %q: expected a table, got %T", ErrInvalidCatalog, lang, val)
		}
		result[lang] = messages
	}
	return result, nil
}

func normalize(val any) (map[string]any, bool) {
	var out map[string]any
	switch m := val.(type) {
	case map[string]any:
		out = make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
	case map[any]any:
		out = make(map[string]any, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
	default:
		return nil, false
	}
	for k, v := range out {
		if nested, ok := normalize(v); ok {
			out[k] = nested
		}
	}
	return out, true
}

func hasExtension(ext string, names ...string) bool {
	ext = strings.TrimPrefix(ext, ".")
	for _, n := range names {
		if strings.EqualFold(ext, n) {
			return true
		}
	}
	return false
}
