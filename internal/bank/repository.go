package bank

import (
	"context"

	"github.com/Philanthropists/outcome/internal/bank/bancolombia"
	"github.com/Philanthropists/outcome/internal/bank/banktypes"
)

type Repository struct {
	Banks []banktypes.BankDelegate
}

// GetBanks returns the configured banks, or every supported bank when none
// was configured.
func (r Repository) GetBanks(_ context.Context) []banktypes.BankDelegate {
	if len(r.Banks) > 0 {
		return r.Banks
	}

	return []banktypes.BankDelegate{
		bancolombia.Bancolombia{},
	}
}

// Select returns the first bank that claims to have sent msg.
func (r Repository) Select(ctx context.Context, msg banktypes.Message) (banktypes.BankDelegate, bool) {
	for _, b := range r.GetBanks(ctx) {
		if b.ComesFrom(msg.From()) {
			return b, true
		}
	}

	return nil, false
}
