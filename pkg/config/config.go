// Package config loads pyrs.yml, the optional project file that sets
// translator policies, output options, logging and batch concurrency.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"pyrs/translator-go/pkg/highlight"
	"pyrs/translator-go/pkg/logger"
	"pyrs/translator-go/pkg/translator"
)

// FileName is the project file looked up by Discover.
const FileName = "pyrs.yml"

// ToolVersion is checked against the `requires` constraint of a project file.
const ToolVersion = "0.4.0"

// Config is the resolved project configuration. Zero-valued fields are
// filled from Default when a file is loaded.
type Config struct {
	Path       string
	Requires   string
	Translator TranslatorConfig
	Output     OutputConfig
	Log        LogConfig
	Batch      BatchConfig
}

type TranslatorConfig struct {
	TryMode  string
	Handlers string
}

type OutputConfig struct {
	Color  string
	Banner bool
	Report string
}

type LogConfig struct {
	Level  string
	Format string
	File   string
}

// BatchConfig bounds concurrent translations; zero means one per CPU.
type BatchConfig struct {
	Jobs int
}

// Default returns the configuration used when no project file exists.
func Default() *Config {
	return &Config{
		Translator: TranslatorConfig{
			TryMode:  string(translator.TryCapture),
			Handlers: string(translator.HandlersFirst),
		},
		Output: OutputConfig{
			Color:  string(highlight.ModeAuto),
			Banner: true,
			Report: ReportText,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Report formats accepted by output.report.
const (
	ReportText = "text"
	ReportYAML = "yaml"
)

// Load parses a project file, rejecting unknown keys, invalid values and a
// `requires` constraint that ToolVersion does not satisfy.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var raw configDisk
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}

	cfg := raw.toConfig()
	cfg.Path = abs
	if cfg.Log.File != "" && !filepath.IsAbs(cfg.Log.File) {
		cfg.Log.File = filepath.Join(filepath.Dir(abs), cfg.Log.File)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", abs, err)
	}
	if err := cfg.CheckRequires(ToolVersion); err != nil {
		return nil, fmt.Errorf("config: %s: %w", abs, err)
	}
	return cfg, nil
}

// Discover walks from dir towards the filesystem root and returns the first
// pyrs.yml found, or "" when there is none.
func Discover(dir string) (string, error) {
	start, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", dir, err)
	}
	current := filepath.Clean(start)
	for {
		candidate := filepath.Join(current, FileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("config: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}

// Resolve loads explicit when it is set, otherwise the file discovered from
// dir, otherwise the defaults.
func Resolve(explicit, dir string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	found, err := Discover(dir)
	if err != nil {
		return nil, err
	}
	if found == "" {
		return Default(), nil
	}
	return Load(found)
}

// Validate reports the first setting that the translator, highlighter or
// logger would reject.
func (c *Config) Validate() error {
	if _, err := translator.ParseTryMode(c.Translator.TryMode); err != nil {
		return err
	}
	if _, err := translator.ParseHandlerPolicy(c.Translator.Handlers); err != nil {
		return err
	}
	if _, err := highlight.ParseMode(c.Output.Color); err != nil {
		return err
	}
	switch c.Output.Report {
	case ReportText, ReportYAML:
	default:
		return fmt.Errorf("unknown report format %q (want text or yaml)", c.Output.Report)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.Log.Format)
	}
	if c.Batch.Jobs < 0 {
		return fmt.Errorf("batch.jobs must not be negative, got %d", c.Batch.Jobs)
	}
	return nil
}

// CheckRequires verifies version against the `requires` constraint. An empty
// constraint accepts every version.
func (c *Config) CheckRequires(version string) error {
	expr := strings.TrimSpace(c.Requires)
	if expr == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(expr)
	if err != nil {
		return fmt.Errorf("invalid requires constraint %q: %w", expr, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid tool version %q: %w", version, err)
	}
	if ok, reasons := constraint.Validate(v); !ok {
		msgs := make([]string, 0, len(reasons))
		for _, reason := range reasons {
			msgs = append(msgs, reason.Error())
		}
		return fmt.Errorf("pyrs %s does not satisfy requires %q: %s", version, expr, strings.Join(msgs, "; "))
	}
	return nil
}

// TranslatorOptions converts the translator section.
func (c *Config) TranslatorOptions() (translator.Options, error) {
	mode, err := translator.ParseTryMode(c.Translator.TryMode)
	if err != nil {
		return translator.Options{}, err
	}
	policy, err := translator.ParseHandlerPolicy(c.Translator.Handlers)
	if err != nil {
		return translator.Options{}, err
	}
	return translator.Options{TryMode: mode, Handlers: policy}, nil
}

// LoggerConfig converts the log section. Output is left for the caller.
func (c *Config) LoggerConfig() (logger.Config, error) {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return logger.Config{}, err
	}
	return logger.Config{
		Level:   level,
		Format:  c.Log.Format,
		LogFile: c.Log.File,
	}, nil
}

// ColorMode converts output.color.
func (c *Config) ColorMode() (highlight.Mode, error) {
	return highlight.ParseMode(c.Output.Color)
}

type configDisk struct {
	Requires   string         `yaml:"requires"`
	Translator translatorDisk `yaml:"translator"`
	Output     outputDisk     `yaml:"output"`
	Log        logDisk        `yaml:"log"`
	Batch      batchDisk      `yaml:"batch"`
}

type translatorDisk struct {
	TryMode  string `yaml:"try_mode"`
	Handlers string `yaml:"handlers"`
}

type outputDisk struct {
	Color  string `yaml:"color"`
	Banner *bool  `yaml:"banner"`
	Report string `yaml:"report"`
}

type logDisk struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type batchDisk struct {
	Jobs int `yaml:"jobs"`
}

func (d configDisk) toConfig() *Config {
	cfg := Default()
	cfg.Requires = strings.TrimSpace(d.Requires)
	setString(&cfg.Translator.TryMode, d.Translator.TryMode)
	setString(&cfg.Translator.Handlers, d.Translator.Handlers)
	setString(&cfg.Output.Color, d.Output.Color)
	if d.Output.Banner != nil {
		cfg.Output.Banner = *d.Output.Banner
	}
	setString(&cfg.Output.Report, d.Output.Report)
	setString(&cfg.Log.Level, d.Log.Level)
	setString(&cfg.Log.Format, d.Log.Format)
	cfg.Log.File = strings.TrimSpace(d.Log.File)
	cfg.Batch.Jobs = d.Batch.Jobs
	return cfg
}

func setString(dst *string, value string) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value != "" {
		*dst = value
	}
}
