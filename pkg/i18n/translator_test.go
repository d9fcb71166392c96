package i18n_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/i18n"
)

func newTranslator(t *testing.T, opts ...i18n.Option) *i18n.Translator {
	t.Helper()
	tr, err := i18n.NewTranslator(context.Background(), i18n.NewDirectoryAdapter(nil, "testdata/messages"), opts...)
	require.NoError(t, err)
	return tr
}

func TestNewTranslator(t *testing.T) {
	t.Parallel()

	t.Run("loads the catalog", func(t *testing.T) {
		t.Parallel()
		tr := newTranslator(t)
		assert.Equal(t, []string{"de", "en", "fr"}, tr.SupportedLanguages())
		assert.Equal(t, "en", tr.DefaultLanguage())
	})

	t.Run("nil adapter", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewTranslator(context.Background(), nil)
		assert.ErrorIs(t, err, i18n.ErrNilAdapter)
	})

	t.Run("adapter errors are returned", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewTranslator(context.Background(), i18n.NewFileAdapter(nil, "testdata/broken/en.json"))
		assert.ErrorIs(t, err, i18n.ErrFailedToParseFile)
	})

	t.Run("invalid catalog", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: i18n.Catalog{"": {"a": "b"}}})
		assert.ErrorIs(t, err, i18n.ErrInvalidCatalog)

		_, err = i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: i18n.Catalog{"en": nil}})
		assert.ErrorIs(t, err, i18n.ErrInvalidCatalog)
	})

	t.Run("empty catalog", func(t *testing.T) {
		t.Parallel()
		tr, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{})
		require.NoError(t, err)
		assert.Empty(t, tr.SupportedLanguages())
		assert.Empty(t, tr.GetString("NotEmptyValidator", "en"))
	})

	t.Run("logs loaded languages", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		newTranslator(t, i18n.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
		assert.Contains(t, buf.String(), "translations loaded")
	})
}

func TestTranslator_ResolveCulture(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	tests := []struct {
		culture string
		want    string
		ok      bool
	}{
		{"de", "de", true},
		{"DE", "de", true},
		{"en-GB", "en", true},
		{"de-AT", "de", true},
		{"fr-CA", "fr", true},
		{"ja", "", false},
		{"not a tag", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.culture, func(t *testing.T) {
			t.Parallel()
			got, ok := tr.ResolveCulture(tt.culture)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranslator_GetString(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	t.Run("exact culture", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "'{PropertyName}' darf nicht leer sein.", tr.GetString("NotEmptyValidator", "de"))
	})

	t.Run("regional culture uses the language", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "'{PropertyName}' darf nicht leer sein.", tr.GetString("NotEmptyValidator", "de-CH"))
	})

	t.Run("unknown culture uses the default language", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "'{PropertyName}' is required.", tr.GetString("NotEmptyValidator", "ja"))
		assert.Equal(t, "'{PropertyName}' is required.", tr.GetString("NotEmptyValidator", ""))
	})

	t.Run("key missing in culture falls back to default language", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "'{PropertyName}' needs a valid email address.", tr.GetString("validators.EmailValidator", "de"))
	})

	t.Run("nested keys", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "'{PropertyName}' n'est pas une adresse email valide.", tr.GetString("validators.EmailValidator", "fr"))
	})

	t.Run("missing key returns empty string", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, tr.GetString("LengthValidator", "de"))
		assert.Empty(t, tr.GetString("validators", "en"))
	})

	t.Run("placeholders are left alone", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "'{PropertyName}' muss größer oder gleich '{ComparisonValue}' sein.",
			tr.GetString("GreaterThanOrEqualValidator", "de"))
	})

	t.Run("other default language", func(t *testing.T) {
		t.Parallel()
		fr := newTranslator(t, i18n.WithDefaultLanguage("fr"))
		assert.Equal(t, "'{PropertyName}' ne doit pas être vide.", fr.GetString("NotEmptyValidator", "ja"))
	})

	t.Run("missing templates are logged on request", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logged := newTranslator(t,
			i18n.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
			i18n.WithMissingTranslationsLogging(true),
		)
		logged.GetString("LengthValidator", "de")
		assert.Contains(t, buf.String(), "template not found")
		assert.Contains(t, buf.String(), "key=LengthValidator")
	})
}

func TestTranslator_T(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	assert.Equal(t, "Willkommen, Ada!", tr.T("de", "welcome", "name", "Ada"))
	assert.Equal(t, "Welcome, Ada!", tr.T("en-US", "welcome", "name", "Ada"))
	assert.Equal(t, "Welcome, %{name}!", tr.T("en", "welcome"))
	assert.Equal(t, "Welcome, %{name}!", tr.T("en", "welcome", "other", "x"))
	assert.Equal(t, "Welcome, Ada!", tr.T("en", "welcome", "name", "Ada", "dangling"))

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "missing.key", tr.T("en", "missing.key"))

		strict := newTranslator(t, i18n.WithFallbackToKey(false))
		assert.Empty(t, strict.T("en", "missing.key"))
	})

	t.Run("explicit default", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Hi Ada", tr.Td("en", "missing", "Hi %{name}", "name", "Ada"))
		assert.Equal(t, "Bienvenue, Ada !", tr.Td("fr", "welcome", "unused", "name", "Ada"))
	})

	t.Run("culture from context", func(t *testing.T) {
		t.Parallel()
		ctx := i18n.SetLocale(context.Background(), "fr")
		assert.Equal(t, "Bienvenue, Ada !", tr.Tc(ctx, "welcome", "name", "Ada"))
		assert.Equal(t, "Welcome, Ada!", tr.Tc(context.Background(), "welcome", "name", "Ada"))
	})
}

func TestTranslator_HasTranslation(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	assert.True(t, tr.HasTranslation("en", "welcome"))
	assert.True(t, tr.HasTranslation("en", "validators.EmailValidator"))
	assert.False(t, tr.HasTranslation("en", "validators"))
	assert.False(t, tr.HasTranslation("de", "validators.EmailValidator"))
	assert.False(t, tr.HasTranslation("en-GB", "welcome"))
}

func TestTranslator_ExportJSON(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	out, err := tr.ExportJSON("de")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "Willkommen, %{name}!", decoded["welcome"])

	_, err = tr.ExportJSON("ja")
	var notSupported *i18n.ErrLanguageNotSupported
	require.ErrorAs(t, err, &notSupported)
	assert.Equal(t, "ja", notSupported.Lang)
}

func TestTranslator_Reload(t *testing.T) {
	t.Parallel()
	adapter := &i18n.MapAdapter{Data: i18n.Catalog{"en": {"greeting": "Hi"}}}
	tr, err := i18n.NewTranslator(context.Background(), adapter)
	require.NoError(t, err)
	assert.Equal(t, "Hi", tr.GetString("greeting", "en"))

	adapter.Data = i18n.Catalog{"en": {"greeting": "Hello"}, "es": {"greeting": "Hola"}}
	require.NoError(t, tr.Reload(context.Background()))
	assert.Equal(t, "Hello", tr.GetString("greeting", "en"))
	assert.Equal(t, "Hola", tr.GetString("greeting", "es-MX"))
}

func TestTranslator_Concurrency(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%4 == 0 {
				assert.NoError(t, tr.Reload(context.Background()))
				return
			}
			assert.NotEmpty(t, tr.GetString("NotEmptyValidator", "de-AT"))
		}()
	}
	wg.Wait()
}
