package cmd

import (
	"context"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/rulekit/pkg/i18n"
	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// Issue kinds.
const (
	KindMissing            = "missing"
	KindUnknownPlaceholder = "unknown_placeholder"
	KindUnsupportedCulture = "unsupported_culture"
)

// Issue is one problem found in a catalog.
type Issue struct {
	Culture string `json:"culture"`
	Key     string `json:"key,omitempty"`
	Kind    string `json:"kind"`
	Detail  string `json:"detail,omitempty"`
}

// Report lists the issues per checked culture.
type Report struct {
	Cultures []string `json:"cultures"`
	Issues   []Issue  `json:"issues"`
}

func (r Report) OK() bool { return len(r.Issues) == 0 }

// Check verifies that every culture has a template for each built-in validator key and
// that templates only use placeholders the validator supplies. Without cultures every
// culture of the catalog is checked.
func Check(ctx context.Context, tr *i18n.Translator, log *slog.Logger, cultures []string) Report {
	supported := tr.SupportedLanguages()
	if len(cultures) == 0 {
		cultures = supported
	}

	report := Report{Cultures: cultures, Issues: []Issue{}}
	for _, culture := range cultures {
		cctx := i18n.SetLocale(ctx, culture)
		if !slices.Contains(supported, culture) {
			report.Issues = append(report.Issues, Issue{Culture: culture, Kind: KindUnsupportedCulture})
			log.WarnContext(cctx, "culture not in catalog")
			continue
		}

		before := len(report.Issues)
		for _, key := range validator.DefaultTemplateKeys() {
			if !tr.HasTranslation(culture, key) {
				report.Issues = append(report.Issues, Issue{Culture: culture, Key: key, Kind: KindMissing})
				continue
			}
			known := validator.KnownPlaceholders(key)
			for _, p := range validator.Placeholders(tr.GetString(key, culture)) {
				if !slices.Contains(known, p) {
					report.Issues = append(report.Issues, Issue{
						Culture: culture,
						Key:     key,
						Kind:    KindUnknownPlaceholder,
						Detail:  p,
					})
				}
			}
		}
		log.DebugContext(cctx, "culture checked", logger.FailureCount(len(report.Issues)-before))
	}
	return report
}
