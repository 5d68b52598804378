// Package export defines the outbound ports for mirroring ledger entries
// to external destinations.
package export

import (
	"context"

	"budget/internal/core"
)

// EntryWriter appends one ledger entry to an external mirror and returns
// a reference to the written row.
type EntryWriter interface {
	Append(ctx context.Context, e core.Entry) (rowRef string, err error)
}
