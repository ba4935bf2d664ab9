// Package auth resolves a verified caller identity from inbound bearer
// credentials. Three interchangeable strategies exist (anonymous, local
// self-issued JWT, federated identity-provider token), selected once at
// startup and never per request. Whatever the strategy, the
// resolved Identity.ID is the value every prediction record is owned by.
package auth

import "context"

// Identity is the resolved caller principal, independent of how it was
// authenticated and of the storage backend.
type Identity struct {
	ID    string
	Email string
}

// Provider turns an inbound bearer credential into a verified Identity.
// Failures surface common.ErrorUnauthorized; no side effects occur before
// authentication succeeds.
type Provider interface {
	Authenticate(ctx context.Context, credential string) (*Identity, error)
}

// AnonymousID is the sentinel owner id used by deployments without an
// account system.
const AnonymousID = "anonymous"

// Anonymous accepts every request and resolves it to the sentinel
// identity. Because every caller maps to the same owner id, history is
// effectively global in this mode. Lowest-security strategy; only for
// deployments that have no account system at all.
type Anonymous struct{}

func (Anonymous) Authenticate(ctx context.Context, credential string) (*Identity, error) {
	return &Identity{ID: AnonymousID}, nil
}
