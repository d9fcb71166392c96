package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/rulekit/pkg/i18n"
	"github.com/dmitrymomot/rulekit/pkg/logger"
)

// ErrProblemsFound is returned in strict mode when the catalog has issues.
var ErrProblemsFound = errors.New("catalog has problems")

type options struct {
	cultures []string
	strict   bool
	asJSON   bool
	verbose  bool
}

// NewRootCommand builds the catalogcheck command.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "catalogcheck [path]",
		Short: "Check a validation message catalog",
		Long: `catalogcheck loads a message catalog file or directory (JSON, YAML or TOML)
and reports, per culture, the built-in validators without a template and the
templates that reference placeholders the validator never supplies.

The path defaults to the current directory.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), path, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.cultures, "culture", nil, "cultures to check (default: every culture in the catalog)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit with status 1 when problems are found")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	return cmd
}

// Execute runs the command with os.Args.
func Execute() error {
	cmd := NewRootCommand()
	err := cmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func run(ctx context.Context, stdout, stderr io.Writer, path string, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := logger.New(
		logger.WithTextFormatter(),
		logger.WithOutput(stderr),
		logger.WithLevel(level),
		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
			c := i18n.LocaleFromContext(ctx)
			return logger.Culture(c), c != ""
		}),
	)

	adapter, err := adapterFor(path)
	if err != nil {
		return err
	}
	tr, err := i18n.NewTranslator(ctx, adapter, i18n.WithLogger(log))
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	log.DebugContext(ctx, "catalog loaded", logger.File(path))

	report := Check(ctx, tr, log, opts.cultures)
	if opts.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(stdout, report)
	}

	if opts.strict && !report.OK() {
		return fmt.Errorf("%w: %d issue(s)", ErrProblemsFound, len(report.Issues))
	}
	return nil
}

func adapterFor(path string) (i18n.TranslationAdapter, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return i18n.NewDirectoryAdapter(nil, path), nil
	}
	return i18n.NewFileAdapter(nil, path), nil
}

func printReport(w io.Writer, r Report) {
	if r.OK() {
		fmt.Fprintf(w, "ok: %d culture(s) checked\n", len(r.Cultures))
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CULTURE\tKIND\tKEY\tDETAIL")
	for _, is := range r.Issues {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", is.Culture, is.Kind, is.Key, is.Detail)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "%d issue(s) in %d culture(s)\n", len(r.Issues), len(r.Cultures))
}
