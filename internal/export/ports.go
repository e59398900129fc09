package export

import (
	"context"

	"financeflow/internal/core"
)

// TransactionWriter is the outbound port for transaction export targets.
type TransactionWriter interface {
	// AppendTransaction writes one transaction and returns a target-specific
	// reference to where it landed.
	AppendTransaction(ctx context.Context, tx core.Transaction) (rowRef string, err error)
}
