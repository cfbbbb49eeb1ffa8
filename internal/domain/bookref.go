package domain

import (
	"strings"

	"github.com/google/uuid"
)

// BookRefKind distinguishes the shapes a card's external book reference can
// arrive in. References are resolved to a canonical catalog or manual id at
// the service boundary before the duplicate check and before persistence.
type BookRefKind string

const (
	// BookRefCatalog is a raw Google Books volume id
	BookRefCatalog BookRefKind = "catalog"
	// BookRefManual is a locally generated id for hand-entered books
	BookRefManual BookRefKind = "manual"
	// BookRefStorage is the row id of a saved book, to be resolved to its
	// catalog id before storing
	BookRefStorage BookRefKind = "storage"
)

// BookRef is a tagged book reference
type BookRef struct {
	Kind  BookRefKind
	Value string
}

// ParseBookRef classifies a raw reference string. A UUID is a saved-book row
// reference, a "manual-" prefix marks a hand-entered book, anything else is
// treated as a catalog volume id.
func ParseBookRef(raw string) BookRef {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "manual-") {
		return BookRef{Kind: BookRefManual, Value: raw}
	}
	if _, err := uuid.Parse(raw); err == nil {
		return BookRef{Kind: BookRefStorage, Value: raw}
	}
	return BookRef{Kind: BookRefCatalog, Value: raw}
}

// StorageID returns the parsed row id of a storage reference
func (r BookRef) StorageID() (uuid.UUID, error) {
	return uuid.Parse(r.Value)
}
