// Package catalog reads crew, ships, roles and sources from the catalog store
// and turns them into the immutable snapshot a draft runs against.
package catalog

import (
	"context"

	"github.com/DoyleJ11/crew-draft-backend/internal/entity"
)

//go:generate mockgen -destination=mock/mock_gateway.go -package=catalogmock github.com/DoyleJ11/crew-draft-backend/internal/catalog Gateway

// Gateway is read-only access to the catalog. Implementations return raw
// records; validation happens once in LoadSnapshot.
type Gateway interface {
	// FetchCrew returns crew from the given sources. An empty list means all
	// sources.
	FetchCrew(ctx context.Context, sourceIDs []int) ([]entity.CrewRecord, error)
	FetchShips(ctx context.Context, sourceIDs []int) ([]entity.ShipRecord, error)
	FetchSources(ctx context.Context) ([]entity.SourceRecord, error)
	FetchRoles(ctx context.Context) ([]entity.Role, error)
}
