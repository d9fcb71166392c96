package i18n

import (
	"context"
	"encoding/json"
	"errors"
)

// JSONParser reads catalogs such as {"en": {"NotEmptyValidator": "..."}}.
type JSONParser struct{}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) Parse(ctx context.Context, content string) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	return toCatalog(data)
}

func (p *JSONParser) SupportsFileExtension(ext string) bool {
	return hasExtension(ext, "json")
}
