package i18n

// DefaultLanguage is the culture used when none is given.
const DefaultLanguage = "en"

// Catalog maps a culture to its message templates. Values are strings or nested maps
// addressed with dotted keys ("validators.NotEmptyValidator").
type Catalog map[string]map[string]any

// merge copies every culture of src into c; keys in src win.
func (c Catalog) merge(src Catalog) {
	for lang, messages := range src {
		if c[lang] == nil {
			c[lang] = make(map[string]any, len(messages))
		}
		for k, v := range messages {
			c[lang][k] = v
		}
	}
}
