package main

import (
	"fmt"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	skemadiff "github.com/reoring/skemadiff"
	"github.com/reoring/skemadiff/i18n"
	"github.com/reoring/skemadiff/internal/config"
	"github.com/reoring/skemadiff/internal/report"
	"github.com/reoring/skemadiff/source"
)

func runDiff(cmd *cobra.Command, oldPath, newPath string) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	logger := newLogger(cmd, verbose)

	cfg, cfgPath, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cfgPath != "" {
		level.Debug(logger).Log("msg", "loaded settings", "path", cfgPath)
	}

	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	inFormat, err := source.ParseFormat(cfg.Input.Format)
	if err != nil {
		return err
	}
	useColor, err := colorEnabled(cfg.Output.Color, isTerminal(cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	tr := i18n.New(cfg.Output.Lang)
	changes, err := skemadiff.DiffFiles(cmd.Context(), oldPath, newPath,
		source.Options{Format: inFormat, Strict: cfg.Input.Strict, CRDKind: cfg.Input.CRDKind},
		skemadiff.DiffOpt{MaxDepth: cfg.Diff.MaxDepth, Logger: logger},
	)
	if err != nil {
		if iss, ok := skemadiff.AsIssues(err); ok {
			return &exitError{code: 1, msg: formatIssues(tr, iss)}
		}
		return err
	}

	p := report.NewPrinter(cmd.OutOrStdout(), report.Options{
		Format:       format,
		Color:        useColor,
		BreakingOnly: cfg.Output.BreakingOnly,
		Translator:   tr,
	})
	for _, c := range changes {
		if err := p.Print(c); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := p.Summary(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	total, breaking := p.Counts()
	level.Info(logger).Log("msg", "diff complete", "changes", total, "breaking", breaking)
	if cfg.Diff.FailOnBreaking && breaking > 0 {
		return &exitError{code: 2}
	}
	return nil
}

// loadSettings reads the settings file and applies explicitly set flags on
// top of it.
func loadSettings(cmd *cobra.Command) (config.Config, string, error) {
	cfgPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, "", fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, cfgPath, err = config.Discover(".")
	}
	if err != nil {
		return config.Config{}, "", err
	}

	flags := cmd.Flags()
	strFlags := map[string]*string{
		"format":       &cfg.Output.Format,
		"color":        &cfg.Output.Color,
		"lang":         &cfg.Output.Lang,
		"input-format": &cfg.Input.Format,
		"crd-kind":     &cfg.Input.CRDKind,
	}
	for name, dst := range strFlags {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetString(name); err != nil {
			return config.Config{}, "", fmt.Errorf("failed to get %s flag: %w", name, err)
		}
	}
	boolFlags := map[string]*bool{
		"breaking-only":    &cfg.Output.BreakingOnly,
		"fail-on-breaking": &cfg.Diff.FailOnBreaking,
		"strict":           &cfg.Input.Strict,
	}
	for name, dst := range boolFlags {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetBool(name); err != nil {
			return config.Config{}, "", fmt.Errorf("failed to get %s flag: %w", name, err)
		}
	}
	if flags.Changed("max-depth") {
		if cfg.Diff.MaxDepth, err = flags.GetInt("max-depth"); err != nil {
			return config.Config{}, "", fmt.Errorf("failed to get max-depth flag: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", err
	}
	return cfg, cfgPath, nil
}

func colorEnabled(mode string, tty bool) (bool, error) {
	switch strings.ToLower(mode) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return tty, nil
	}
	return false, fmt.Errorf("invalid color mode %q (want auto|on|off)", mode)
}

func newLogger(cmd *cobra.Command, verbose bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(cmd.ErrOrStderr()))
	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowWarn())
}

func formatIssues(tr i18n.Translator, iss skemadiff.Issues) string {
	var b strings.Builder
	for i, it := range iss {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(tr.Message(it.Code, nil))
		if it.Document != "" {
			fmt.Fprintf(&b, " [%s]", it.Document)
		}
		if it.Path != "" {
			fmt.Fprintf(&b, " %s", it.Path)
		}
		if it.Message != "" {
			fmt.Fprintf(&b, ": %s", it.Message)
		}
	}
	return b.String()
}
