package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"pyrs/translator-go/pkg/config"
	"pyrs/translator-go/pkg/driver"
	"pyrs/translator-go/pkg/highlight"
	"pyrs/translator-go/pkg/logger"
)

const (
	bannerTitle = "Generated Rust code:"
	bannerRule  = "===================="
)

// commonFlags are shared by translate, watch and repl. Values left empty
// fall back to the project file.
type commonFlags struct {
	configPath string
	color      string
	report     string
	tryMode    string
	handlers   string
	noBanner   bool
	verbose    bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "project file")
	fs.StringVar(&c.color, "color", "", "auto, always or never")
	fs.StringVar(&c.report, "report", "", "text or yaml")
	fs.StringVar(&c.tryMode, "try", "", "capture or duplicate")
	fs.StringVar(&c.handlers, "handlers", "", "first or reject")
	fs.BoolVar(&c.noBanner, "no-banner", false, "omit the banner")
	fs.BoolVar(&c.verbose, "v", false, "debug logging")
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }
	return fs
}

// settings is the resolved configuration for one command run.
type settings struct {
	cfg     *config.Config
	options driver.Options
	banner  bool
	report  string
}

// resolveSettings loads the project file, applies flag overrides and
// initialises logging. The returned cleanup closes the log file.
func resolveSettings(flags *commonFlags, stdout, stderr io.Writer) (*settings, func(), error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Resolve(flags.configPath, wd)
	if err != nil {
		return nil, nil, err
	}
	override(&cfg.Output.Color, flags.color)
	override(&cfg.Output.Report, flags.report)
	override(&cfg.Translator.TryMode, flags.tryMode)
	override(&cfg.Translator.Handlers, flags.handlers)
	if flags.noBanner {
		cfg.Output.Banner = false
	}
	if flags.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logCfg, err := cfg.LoggerConfig()
	if err != nil {
		return nil, nil, err
	}
	logCfg.Output = stderr
	if err := logger.Init(logCfg); err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = logger.Close() }
	if cfg.Path != "" {
		logger.Debug("Loaded project file", "path", cfg.Path)
	}

	trOpts, err := cfg.TranslatorOptions()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	mode, err := cfg.ColorMode()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return &settings{
		cfg: cfg,
		options: driver.Options{
			Translator: trOpts,
			Highlight:  highlight.ForWriter(mode, stdout),
			Jobs:       cfg.Batch.Jobs,
		},
		banner: cfg.Output.Banner,
		report: cfg.Output.Report,
	}, cleanup, nil
}

func override(dst *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = strings.ToLower(value)
	}
}

func writeBanner(w io.Writer) {
	fmt.Fprintln(w, bannerTitle)
	fmt.Fprintln(w, bannerRule)
}

// outputText is what the user sees for one file.
func outputText(out *driver.Output) string {
	switch out.Status {
	case driver.StatusFailed:
		return fmt.Sprintf("Error translating the source code: %v", out.Err)
	case driver.StatusFetchFailed:
		return fmt.Sprintf("Error reading the source code: %v", out.Err)
	default:
		return out.Display
	}
}

func writeReport(w io.Writer, format string, outputs []*driver.Output) error {
	if format == config.ReportYAML {
		return driver.WriteYAMLReport(w, outputs)
	}
	return driver.WriteTextReport(w, outputs)
}
