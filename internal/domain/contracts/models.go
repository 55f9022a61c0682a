package contracts

import (
	"github.com/preston-bernstein/transfer-console/internal/domain/clubs"
	"github.com/preston-bernstein/transfer-console/internal/domain/money"
	"github.com/preston-bernstein/transfer-console/internal/timeutil"
)

// Contract binds a player to a club. A player has at most one active contract.
type Contract struct {
	Club          clubs.Ref     `json:"club" yaml:"club"`
	Start         timeutil.Date `json:"start" yaml:"start"`
	End           timeutil.Date `json:"end" yaml:"end"`
	ReleaseClause money.Amount  `json:"releaseClause" yaml:"releaseClause"`
}
