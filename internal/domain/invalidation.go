package domain

import (
	"time"

	"github.com/google/uuid"
)

// Invalidation tells cache consumers to drop entries derived from product data.
type Invalidation struct {
	ProductIDs []uuid.UUID `json:"productIds,omitempty"`
	All        bool        `json:"all,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
}

func InvalidateProducts(ids ...uuid.UUID) Invalidation {
	return Invalidation{ProductIDs: ids, OccurredAt: time.Now().UTC()}
}

func InvalidateAll() Invalidation {
	return Invalidation{All: true, OccurredAt: time.Now().UTC()}
}
