package server

import (
	"context"

	"github.com/preston-bernstein/transfer-console/internal/gateway"
	"github.com/preston-bernstein/transfer-console/internal/watcher"
)

// Watcher defines the minimal watcher behavior needed by the server.
type Watcher interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() watcher.Status
}

// upstreamProbe refreshes the one listing the service serves without a
// token, which is enough to tell whether it is reachable.
type upstreamProbe struct {
	api gateway.ClubAPI
}

func (p upstreamProbe) Refresh(ctx context.Context) error {
	_, err := p.api.ListNationalities(ctx)
	return err
}
