package store

import "context"

// RowStore is the tabular persistence backend: one quote per row, a header
// in row 1, rows addressed by 1-based index. New rows are inserted at row 2
// so the most recent submission sits directly under the header.
type RowStore interface {
	// GetRows returns every row including the header. Rows may be shorter
	// than the header when trailing cells are empty.
	GetRows(ctx context.Context) ([][]string, error)
	// GetRow returns the single row at rowIndex (1-based), or nil when the
	// index is past the end of the sheet.
	GetRow(ctx context.Context, rowIndex int) ([]string, error)
	// InsertRowAtTop inserts values as the new row 2, shifting existing
	// data rows down.
	InsertRowAtTop(ctx context.Context, values []string) error
	// UpdateRow overwrites the row at rowIndex (1-based, header = 1).
	UpdateRow(ctx context.Context, rowIndex int, values []string) error
}
