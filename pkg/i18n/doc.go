// Package i18n loads localized message catalogs and serves their templates.
//
// A catalog maps cultures to templates and is read through a TranslationAdapter:
// MapAdapter for in-memory data, FileAdapter for a single file, DirectoryAdapter for a
// directory and EmbeddedFsAdapter for an fs.FS such as embed.FS. Files are decoded by
// a Parser (JSONParser, YAMLParser, TOMLParser), chosen from the extension when none is
// given.
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewDirectoryAdapter(nil, "./messages"),
//		i18n.WithDefaultLanguage("en"),
//	)
//	if err != nil {
//		return err
//	}
//
//	v := validator.New[User](validator.WithLanguageManager(tr))
//
// Translator.GetString returns raw templates for validator messages and never falls
// back to the key. Cultures resolve by exact code first and then by language matching,
// so "en-GB" is served from "en" when no "en-GB" table exists. Translator.T substitutes
// "%{name}" parameters for other strings.
//
// SetLocale and LocaleFromContext carry a culture on a context.Context; asynchronous
// validation picks it up when no culture is passed explicitly.
package i18n
