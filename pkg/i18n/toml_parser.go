package i18n

import (
	"context"
	"errors"

	"github.com/BurntSushi/toml"
)

// TOMLParser reads catalogs with one table per culture:
//
//	[de]
//	NotEmptyValidator = "'{PropertyName}' darf nicht leer sein."
type TOMLParser struct{}

func NewTOMLParser() *TOMLParser {
	return &TOMLParser{}
}

func (p *TOMLParser) Parse(ctx context.Context, content string) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	var data map[string]any
	if _, err := toml.Decode(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseTOML, err)
	}
	return toCatalog(data)
}

func (p *TOMLParser) SupportsFileExtension(ext string) bool {
	return hasExtension(ext, "toml")
}
