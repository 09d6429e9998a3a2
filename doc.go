// Package tabular provides typed, lazily cached column views over immutable
// in-memory tables.
//
// # Overview
//
// A table owns an ordered list of rows, a parallel list of unique column
// names and a list of column type tags. Columns never hold data of their
// own: each one refers back to its table and a slot index and extracts its
// values on first use. Because tables never change, those caches stay
// valid for the life of the column.
//
// Operations that produce new data go through the fork protocol. Map and
// Counts copy the table's rows, names and types, edit the copy and build a
// new table from it. The source table and its columns are unchanged.
//
// # Quick Start
//
// Load raw values, cast them to their column types and compute statistics:
//
//	import (
//	    "github.com/ajitpratap0/tabular/pkg/columns"
//	    "github.com/ajitpratap0/tabular/pkg/table"
//	)
//
//	raw, err := table.New(
//	    []string{"city", "population"},
//	    []columns.ColumnType{columns.TypeText, columns.TypeInt},
//	    [][]any{{"Lyon", "522,250"}, {"Nice", ""}},
//	)
//
//	tbl, err := raw.Cast()            // "522,250" -> 522250, "" -> null
//	err = tbl.Validate()              // every value matches its column type
//
//	col, err := tbl.ColumnByName("population")
//	sum, err := col.(columns.Numeric).Sum()   // nulls are skipped
//	_, err = col.(columns.Numeric).Mean()     // fails: the column has a null
//
// # Key Packages
//
//	pkg/value      - Tagged-union cell values, ordering and equality
//	pkg/columns    - Column views, type variants, statistics, mapping
//	pkg/table      - The immutable table, fork, cast and validate
//	pkg/arrowconv  - Apache Arrow record and IPC stream conversion
//	pkg/config     - YAML configuration with ${VAR_NAME} substitution
//	pkg/errors     - Structured error handling
//	pkg/logger     - Structured logging
//	pkg/metrics    - Prometheus counters for forks, caches and casts
//
// # Arithmetic
//
// Int and Decimal values are combined with exact decimal arithmetic.
// Division and square root keep Decimal.Precision places (28 by default),
// rounding half away from zero. Binary floats are accepted as raw input to
// Int casts but are never turned into decimals.
//
// # Command Line
//
// cmd/tabular wraps the library:
//
//	tabular describe sales.json
//	tabular counts sales.json --column region
//	tabular convert sales.json sales.arrow
//	tabular init-config tabular.yaml
package tabular
