package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/tabular/pkg/arrowconv"
	"github.com/ajitpratap0/tabular/pkg/columns"
	"github.com/ajitpratap0/tabular/pkg/config"
	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/json"
	"github.com/ajitpratap0/tabular/pkg/table"
	"github.com/ajitpratap0/tabular/pkg/value"
)

// columnSummary is one entry of describe's output.
type columnSummary struct {
	Name     string                 `json:"name"`
	Type     columns.ColumnType     `json:"type"`
	Rows     int                    `json:"rows"`
	Nulls    int                    `json:"nulls"`
	Distinct int                    `json:"distinct"`
	Stats    map[string]value.Value `json:"stats,omitempty"`
	Skipped  map[string]string      `json:"skipped,omitempty"`
}

type statistic struct {
	name string
	fn   func(columns.Numeric) (value.Value, error)
}

var statistics = []statistic{
	{"sum", columns.Numeric.Sum},
	{"min", columns.Numeric.Min},
	{"max", columns.Numeric.Max},
	{"mean", columns.Numeric.Mean},
	{"median", columns.Numeric.Median},
	{"mode", columns.Numeric.Mode},
	{"variance", columns.Numeric.Variance},
	{"stdev", columns.Numeric.Stdev},
}

func summarize(col columns.Column) columnSummary {
	s := columnSummary{
		Name:  col.Name(),
		Type:  col.Type(),
		Rows:  col.Len(),
		Nulls: col.Count(value.Null),
	}

	seen := make(map[value.Key]struct{})
	for _, v := range col.Values() {
		seen[v.Key()] = struct{}{}
	}
	s.Distinct = len(seen)

	num, ok := col.(columns.Numeric)
	if !ok {
		return s
	}
	s.Stats = make(map[string]value.Value)
	for _, st := range statistics {
		v, err := st.fn(num)
		if err != nil {
			if s.Skipped == nil {
				s.Skipped = make(map[string]string)
			}
			s.Skipped[st.name] = string(errors.TypeOf(err))
			continue
		}
		s.Stats[st.name] = v
	}
	return s
}

func newDescribeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "describe FILE",
		Short: "Cast a table and print per-column statistics",
		Long: `Cast every column of FILE to its declared type, validate it and print a JSON
summary per column. Statistics that cannot be computed, such as the mean of a
column holding nulls, are listed under "skipped" with the reason.

Example:
  tabular describe --config tabular.yaml sales.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			tbl, err := e.readTable(args[0], flags.format)
			if err != nil {
				return err
			}
			if err := tbl.Validate(); err != nil {
				return err
			}

			var out []columnSummary
			it := tbl.Columns().Iter()
			for col, ok := it.Next(); ok; col, ok = it.Next() {
				out = append(out, summarize(col))
			}
			if err := it.Err(); err != nil {
				return err
			}

			e.log.Debug("table described", zap.Int("columns", len(out)))
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

func newCountsCmd(flags *globalFlags) *cobra.Command {
	var column string

	cmd := &cobra.Command{
		Use:   "counts FILE",
		Short: "Print the distinct values of a column by descending count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			tbl, err := e.readTable(args[0], flags.format)
			if err != nil {
				return err
			}
			e.withColumn(column)
			col, err := tbl.ColumnByName(column)
			if err != nil {
				return err
			}
			counts, err := col.Counts()
			if err != nil {
				return err
			}
			e.log.Info("column counted", zap.Int("distinct", counts.RowCount()))
			return writeJSON(cmd.OutOrStdout(), counts)
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "Column to count (required)")
	_ = cmd.MarkFlagRequired("column")
	return cmd
}

func newConvertCmd(flags *globalFlags) *cobra.Command {
	var to, compression string

	cmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Cast a table and write it as JSON or an Arrow IPC stream",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			target, err := detectFormat(args[1], to)
			if err != nil {
				return err
			}
			codec, err := arrowconv.ParseCompression(compression)
			if err != nil {
				return err
			}
			tbl, err := e.readTable(args[0], flags.format)
			if err != nil {
				return err
			}

			f, err := os.Create(args[1])
			if err != nil {
				return errors.Wrap(err, errors.ErrorTypeData, "failed to create output")
			}
			if err := writeTable(f, tbl, target, codec); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return errors.Wrap(err, errors.ErrorTypeData, "failed to close output")
			}

			e.log.Info("table converted",
				zap.String("output", args[1]),
				zap.String("format", target),
				zap.Int("rows", tbl.RowCount()))
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Output format: json or arrow (default: from file extension)")
	cmd.Flags().StringVar(&compression, "compression", "", "Arrow body compression: none, zstd or lz4")
	return cmd
}

func newInitConfigCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config FILE",
		Short: "Write the effective configuration as YAML",
		Long: `Write the defaults, merged with --config and --log-level when given, to FILE.
The result can be edited and passed back with --config.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(flags)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return errors.Wrap(err, errors.ErrorTypeConfig, "failed to write configuration")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", args[0])
			return nil
		},
	}
}

func writeTable(w io.Writer, tbl *table.Table, format string, codec arrowconv.Compression) error {
	if format == formatArrow {
		return arrowconv.WriteIPC(w, tbl, arrowconv.WithCompression(codec))
	}
	return json.MarshalToWriter(w, tbl)
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to encode output")
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
