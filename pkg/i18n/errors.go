package i18n

import (
	"errors"
	"fmt"
)

var (
	ErrNilAdapter = errors.New("translation adapter is nil")
	ErrNilParser  = errors.New("catalog parser is nil")

	ErrFailedToMarshalJSON = errors.New("failed to marshal translations to JSON")
	ErrFailedToParseJSON   = errors.New("failed to parse JSON content")
	ErrFailedToParseYAML   = errors.New("failed to parse YAML content")
	ErrFailedToParseTOML   = errors.New("failed to parse TOML content")
	ErrInvalidCatalog      = errors.New("invalid catalog structure")

	// Loading. Cancellation errors are joined with ctx.Err().
	ErrLoadingCancelled      = errors.New("loading translations cancelled")
	ErrFailedToReadFile      = errors.New("failed to read translation file")
	ErrFailedToParseFile     = errors.New("failed to parse translation file")
	ErrUnsupportedFileType   = errors.New("unsupported translation file type")
	ErrFailedToReadDirectory = errors.New("failed to read translation directory")
	ErrNoTranslationFiles    = errors.New("no translation files found")
	ErrEmptyTranslationFile  = errors.New("translation file is empty")
	ErrInvalidLanguageCode   = errors.New("invalid language code")
)

// ErrLanguageNotSupported indicates that the requested language is not available.
type ErrLanguageNotSupported struct {
	Lang string
}

func (e *ErrLanguageNotSupported) Error() string {
	return fmt.Sprintf("language not supported: %s", e.Lang)
}
