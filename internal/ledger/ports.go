package ledger

import (
	"context"
	"time"
)

// Row is one flattened ledger line mirrored to the external spreadsheet.
type Row struct {
	Kind   string
	ID     int64
	Date   time.Time
	Party  string
	Detail string
	Amount float64
}

// Appender is the outbound port the worker writes ledger rows through.
type Appender interface {
	Append(ctx context.Context, row Row) (rowRef string, err error)
}
