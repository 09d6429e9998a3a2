package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/tabular/pkg/arrowconv"
	"github.com/ajitpratap0/tabular/pkg/config"
	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/logger"
	"github.com/ajitpratap0/tabular/pkg/table"
)

const (
	formatJSON  = "json"
	formatArrow = "arrow"
)

// env is the configuration and logger a command runs with.
type env struct {
	cfg     *config.Config
	ctx     context.Context
	command string
	log     *zap.Logger
}

// resolveConfig applies the config file and flag overrides to the defaults.
func resolveConfig(flags *globalFlags) (*config.Config, error) {
	cfg := config.Default()
	if flags.configFile != "" {
		loaded, err := config.LoadConfig(flags.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	// stdout carries command output
	if len(cfg.Logging.OutputPaths) == 0 {
		cfg.Logging.OutputPaths = []string{"stderr"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setup(cmd *cobra.Command, flags *globalFlags) (*env, error) {
	cfg, err := resolveConfig(flags)
	if err != nil {
		return nil, err
	}
	l, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to initialize logger")
	}
	logger.ReplaceGlobal(l)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	e := &env{cfg: cfg, ctx: ctx, command: cmd.Name()}
	e.relabel()
	return e, nil
}

// withTable labels later log lines with the table being processed.
func (e *env) withTable(path string) {
	e.ctx = context.WithValue(e.ctx, logger.TableKey, path)
	e.relabel()
}

// withColumn labels later log lines with the column being processed.
func (e *env) withColumn(name string) {
	e.ctx = context.WithValue(e.ctx, logger.ColumnKey, name)
	e.relabel()
}

func (e *env) relabel() {
	e.log = logger.WithContext(e.ctx).With(
		zap.String("component", "tabular-cli"),
		zap.String("command", e.command))
}

func (e *env) options() []table.Option {
	return []table.Option{table.WithConfig(e.cfg), table.WithLogger(e.log)}
}

func detectFormat(path, explicit string) (string, error) {
	if explicit != "" {
		switch f := strings.ToLower(explicit); f {
		case formatJSON, formatArrow:
			return f, nil
		default:
			return "", errors.Newf(errors.ErrorTypeConfig, "unknown format %q", explicit)
		}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".arrow", ".arrows", ".ipc":
		return formatArrow, nil
	default:
		return formatJSON, nil
	}
}

// readTable loads path and casts it.
func (e *env) readTable(path, format string) (*table.Table, error) {
	e.withTable(path)
	format, err := detectFormat(path, format)
	if err != nil {
		return nil, err
	}

	var raw *table.Table
	switch format {
	case formatArrow:
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to open input")
		}
		defer f.Close()
		raw, err = arrowconv.ReadIPC(f, e.options()...)
		if err != nil {
			return nil, err
		}
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to read input")
		}
		raw, err = table.UnmarshalJSON(data, e.options()...)
		if err != nil {
			return nil, err
		}
	}

	e.log.Info("table loaded",
		zap.String("format", format),
		zap.Int("rows", raw.RowCount()),
		zap.Int("columns", len(raw.ColumnNames())))

	return raw.Cast()
}
