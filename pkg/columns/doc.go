// Package columns provides typed, read-only column views over an immutable
// table.
//
// A Column never owns data. It holds its table and a slot index and fills
// three write-once caches on demand: the raw values, the values without
// nulls, and the values sorted. Because tables never change after
// construction the caches stay valid for the column's lifetime.
//
// Operations that produce new data, Map and Counts, copy the table's rows,
// names and types, edit the copy and hand it to Table.Fork. The original
// table and its columns are left untouched.
//
// The three variants differ in validation and casting:
//
//	TextColumn     strings; "" casts to null
//	IntColumn      int64; text is parsed after stripping thousands separators
//	DecimalColumn  exact decimals; never built from binary floats
//
// IntColumn and DecimalColumn also implement Numeric. Sum, Min and Max skip
// nulls. Mean, Median, Mode, Variance and Stdev fail with an
// ErrorTypeNullComputation error when the column holds any null.
package columns
