package market

import (
	"github.com/preston-bernstein/transfer-console/internal/domain/contracts"
	"github.com/preston-bernstein/transfer-console/internal/domain/players"
)

// Listing is one transfer-market row: a player and the contract terms it is offered under.
type Listing struct {
	Player   players.Player     `json:"player" yaml:"player"`
	Contract contracts.Contract `json:"contract" yaml:"contract"`
}
