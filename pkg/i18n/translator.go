package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Translator serves message templates from a catalog loaded through an adapter.
// It is safe for concurrent use and implements validator.LanguageManager.
type Translator struct {
	mu           sync.RWMutex
	translations Catalog
	matcher      language.Matcher
	// matchable holds the cultures whose codes parse as BCP 47 tags, in matcher order.
	matchable []string

	defaultLang    string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
	adapter        TranslationAdapter
}

// NewTranslator loads the adapter's catalog and builds a Translator.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		adapter:       adapter,
	}
	for _, option := range options {
		option(t)
	}

	if err := t.Reload(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload reads the catalog from the adapter again and swaps it in.
func (t *Translator) Reload(ctx context.Context) error {
	translations, err := t.adapter.Load(ctx)
	if err != nil {
		return err
	}
	if err := validateTranslations(translations); err != nil {
		return err
	}

	matchable, tags := t.matchableCultures(translations)

	t.mu.Lock()
	t.translations = translations
	t.matchable = matchable
	t.matcher = language.NewMatcher(tags)
	t.mu.Unlock()

	t.logger.InfoContext(ctx, "translations loaded", slog.Any("languages", t.SupportedLanguages()))
	return nil
}

func validateTranslations(trans Catalog) error {
	for lang, messages := range trans {
		if strings.TrimSpace(lang) == "" {
			return fmt.Errorf("%w: empty language code", ErrInvalidCatalog)
		}
		if messages == nil {
			return fmt.Errorf("%w: nil translations for language %s", ErrInvalidCatalog, lang)
		}
	}
	return nil
}

// matchableCultures returns the parseable cultures with the default language first,
// since the matcher falls back to its first tag.
func (t *Translator) matchableCultures(trans Catalog) ([]string, []language.Tag) {
	langs := make([]string, 0, len(trans))
	for lang := range trans {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		if (langs[i] == t.defaultLang) != (langs[j] == t.defaultLang) {
			return langs[i] == t.defaultLang
		}
		return langs[i] < langs[j]
	})

	var (
		matchable []string
		tags      []language.Tag
	)
	for _, lang := range langs {
		tag, err := language.Parse(lang)
		if err != nil {
			t.logger.Warn("culture is not a valid language tag", slog.String("culture", lang), slog.Any("error", err))
			continue
		}
		matchable = append(matchable, lang)
		tags = append(tags, tag)
	}
	return matchable, tags
}

// SupportedLanguages returns the catalog's cultures, sorted.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// DefaultLanguage returns the culture used when a lookup cannot be resolved.
func (t *Translator) DefaultLanguage() string { return t.defaultLang }

// ResolveCulture maps culture to a catalog culture: exact match first, then the closest
// language ("en-GB" -> "en", "de-AT" -> "de"). It reports false when nothing matches.
func (t *Translator) ResolveCulture(culture string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.resolveCulture(culture)
}

func (t *Translator) resolveCulture(culture string) (string, bool) {
	if culture == "" {
		return "", false
	}
	if _, ok := t.translations[culture]; ok {
		return culture, true
	}
	for lang := range t.translations {
		if strings.EqualFold(lang, culture) {
			return lang, true
		}
	}

	tag, err := language.Parse(culture)
	if err != nil || len(t.matchable) == 0 {
		return "", false
	}
	if _, index, conf := t.matcher.Match(tag); conf >= language.High && index < len(t.matchable) {
		return t.matchable[index], true
	}

	base, _ := tag.Base()
	for _, lang := range t.matchable {
		if candidate, err := language.Parse(lang); err == nil {
			if b, _ := candidate.Base(); b == base {
				return lang, true
			}
		}
	}
	return "", false
}

// GetString returns the raw template for key in culture, or "" when there is none.
// The culture is resolved with ResolveCulture; unresolved cultures and keys missing in
// the resolved culture fall back to the default language. Placeholders are not
// substituted.
func (t *Translator) GetString(key, culture string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	candidates := make([]string, 0, 2)
	if lang, ok := t.resolveCulture(culture); ok {
		candidates = append(candidates, lang)
	}
	if len(candidates) == 0 || candidates[0] != t.defaultLang {
		candidates = append(candidates, t.defaultLang)
	}

	for _, lang := range candidates {
		if s, ok := t.lookupString(lang, key); ok {
			return s
		}
	}
	if t.missingLogMode {
		t.logger.Warn("template not found", slog.String("culture", culture), slog.String("key", key))
	}
	return ""
}

// HasTranslation reports whether lang has a string for key. No culture resolution applies.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.lookupString(lang, key)
	return ok
}

func (t *Translator) lookupString(lang, key string) (string, bool) {
	messages, ok := t.translations[lang]
	if !ok {
		return "", false
	}
	val, ok := messages[key]
	if !ok {
		val, ok = lookupNested(messages, key)
	}
	if !ok {
		return "", false
	}
	switch v := val.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}

// lookupNested follows a dotted key through nested tables: "validators.NotEmptyValidator".
func lookupNested(m map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	current := m
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		if current, ok = val.(map[string]any); !ok {
			return nil, false
		}
	}
	return nil, false
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// T translates key for lang, substituting "%{name}" parameters given as key/value
// pairs. Cultures resolve like GetString. Missing keys return the key itself when
// WithFallbackToKey is on (the default), otherwise "".
//
//	// "welcome": "Hello, %{name}!"
//	translator.T("en", "welcome", "name", "John") // "Hello, John!"
func (t *Translator) T(lang, key string, args ...string) string {
	tmpl := t.GetString(key, lang)
	if tmpl == "" {
		if !t.fallbackToKey {
			return ""
		}
		tmpl = key
	}
	return substitute(tmpl, args)
}

// Tc is T with the culture taken from the context.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

// Td is T with an explicit fallback instead of the key.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	tmpl := t.GetString(key, lang)
	if tmpl == "" {
		tmpl = defaultValue
	}
	return substitute(tmpl, args)
}

func substitute(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

// ExportJSON returns the templates of lang as JSON, e.g. for client-side rendering.
func (t *Translator) ExportJSON(lang string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	messages, ok := t.translations[lang]
	if !ok {
		return "", &ErrLanguageNotSupported{Lang: lang}
	}
	b, err := json.Marshal(messages)
	if err != nil {
		return "", errors.Join(ErrFailedToMarshalJSON, err)
	}
	return string(b), nil
}
