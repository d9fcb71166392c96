package i18n

import (
	"context"
	"errors"

	"gopkg.in/yaml.v3"
)

// YAMLParser reads catalogs with one top-level mapping per culture.
type YAMLParser struct{}

func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

func (p *YAMLParser) Parse(ctx context.Context, content string) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	var data map[string]any
	if err := yaml.Unmarshal([]byte(content), &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	return toCatalog(data)
}

func (p *YAMLParser) SupportsFileExtension(ext string) bool {
	return hasExtension(ext, "yaml", "yml")
}
