// Command polyglot scans a codebase for translation call sites and diffs the
// referenced keys against the project's locale files. Missing keys are the
// actionable signal (non-zero exit in strict mode); unused keys are
// advisory. It can also export all locales into a single reviewable file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/polyglot/pkg/extract"
	"github.com/dmitrymomot/polyglot/pkg/i18n"
)

func main() {
	var (
		configDir   = flag.String("config", ".", "directory containing i18n.toml")
		sources     = flag.String("source", ".", "comma-separated source roots to scan")
		locales     = flag.String("locales", "", "locales directory (overrides load_path)")
		markers     = flag.String("markers", "", "comma-separated call markers (overrides call_markers)")
		base        = flag.String("base", "", "base locale for the diff (overrides default_locale)")
		namespace   = flag.String("namespace", "", "compile-time namespace prefix for extracted keys")
		minify      = flag.Bool("minify", false, "assign short codes to extracted keys")
		minifiedOut = flag.String("minified-out", "", "write the key->code mapping to this YAML file")
		strict      = flag.Bool("strict", false, "exit non-zero when keys are missing")
		exportPath  = flag.String("export", "", "export all locales to this file instead of extracting")
		missed      = flag.String("missed", "default", "export fill mode for missing cells: default or empty")
		verbose     = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	log := newLogger(*verbose)

	cfg, err := i18n.LoadConfig(*configDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if *locales != "" {
		cfg.LoadPath = *locales
	}
	if *markers != "" {
		cfg.CallMarkers = splitList(*markers)
	}
	if *base != "" {
		cfg.DefaultLocale = *base
	}
	if *minify {
		cfg.MinifyKey = true
	}
	if !filepath.IsAbs(cfg.LoadPath) {
		cfg.LoadPath = filepath.Join(*configDir, cfg.LoadPath)
	}

	if *exportPath != "" {
		runExport(log, cfg, *exportPath, *missed)
		return
	}

	opts := extract.FromConfig(cfg)
	opts.SourceRoots = splitList(*sources)
	opts.Namespace = *namespace

	report, err := extract.Run(context.Background(), opts)
	if err != nil {
		log.Fatal().Err(err).Msg("extraction failed")
	}

	if report.LoadDiagnostics != nil {
		for line := range strings.SplitSeq(report.LoadDiagnostics.Error(), "\n") {
			log.Warn().Msg(line)
		}
	}
	for _, c := range report.Conflicts {
		log.Debug().
			Str("locale", c.Locale).
			Str("key", c.Key).
			Str("winner", c.NewSource).
			Str("loser", c.OldSource).
			Msg("translation overwritten")
	}
	for _, w := range report.Warnings {
		log.Warn().Str("site", w.Site.String()).Msg(w.Reason)
	}

	for _, u := range report.Unused {
		fmt.Printf("unused: %s (%s)\n", u.Key, u.Source)
	}
	for _, m := range report.Missing {
		refs := make([]string, len(m.Sites))
		for i, s := range m.Sites {
			refs[i] = s.String()
		}
		fmt.Printf("missing: %s (%s)\n", m.Key, strings.Join(refs, ", "))
	}

	if *minifiedOut != "" && len(report.Minified) > 0 {
		if err := writeMinified(*minifiedOut, report.MinifiedMap()); err != nil {
			log.Fatal().Err(err).Msg("failed to write minified mapping")
		}
		log.Info().Str("path", *minifiedOut).Int("keys", len(report.Minified)).Msg("minified mapping written")
	}

	log.Info().
		Int("missing", len(report.Missing)).
		Int("unused", len(report.Unused)).
		Msg("extraction finished")

	if *strict && len(report.Missing) > 0 {
		os.Exit(1)
	}
}

func runExport(log zerolog.Logger, cfg i18n.Config, outPath, missed string) {
	var mode i18n.MissedMode
	switch missed {
	case "default":
		mode = i18n.MissedDefault
	case "empty":
		mode = i18n.MissedEmpty
	default:
		log.Fatal().Str("missed", missed).Msg("invalid missed mode")
	}

	docs, diag := i18n.LoadDir(os.DirFS(cfg.LoadPath))
	if diag != nil {
		for line := range strings.SplitSeq(diag.Error(), "\n") {
			log.Warn().Msg(line)
		}
	}

	store, diag := i18n.Load(docs)
	if diag != nil {
		for line := range strings.SplitSeq(diag.Error(), "\n") {
			log.Warn().Msg(line)
		}
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(outPath)), ".")
	data, err := i18n.Export(store, nil, cfg.DefaultLocale, mode, format)
	if err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatal().Err(err).Msg("failed to write export file")
	}
	log.Info().Str("path", outPath).Int("entries", store.Len()).Msg("exported")
}

func writeMinified(path string, mapping map[string]string) error {
	data, err := yaml.Marshal(mapping)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	var w = zerolog.NewConsoleWriter()
	w.Out = os.Stderr
	w.NoColor = !isatty.IsTerminal(os.Stderr.Fd())

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
