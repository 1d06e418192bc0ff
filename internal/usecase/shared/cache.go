package shared

//go:generate mockgen -source=cache.go -destination=../../../tests/mock/shared/cache.go -package=sharedmock

import (
	"context"

	"github.com/google/uuid"
)

// CatalogInvalidator drops cached catalog reads after an item changes.
// Callers invoke it after commit; a failure only costs freshness until the TTL.
type CatalogInvalidator interface {
	InvalidateItem(ctx context.Context, itemID uuid.UUID) error
}
