package docstore

import (
	"context"
	"errors"
)

// Common errors
var (
	// ErrNotFound is returned by point operations when no document exists
	// at the given id/partition key pair.
	ErrNotFound = errors.New("document not found")

	// ErrConflict is returned by Create when a document with the same id
	// already exists in the collection.
	ErrConflict = errors.New("document already exists")
)

// Record is one stored document as a plain field map. Timestamps are
// ISO-8601 strings and enums are their string codes at this boundary.
type Record map[string]any

// Query describes an indexed equality query against one collection.
// An empty PartitionKey means a cross-partition scan.
type Query struct {
	PartitionKey string
	Filters      map[string]any
	OrderByDesc  string
	Limit        int
}

// Store is the document-store contract: atomic single-document point
// operations plus partition-scoped equality queries. Documents are
// partitioned by user_id, except preview codes which are partitioned by
// their own code string.
type Store interface {
	Create(ctx context.Context, collection string, partitionKey string, rec Record) (Record, error)
	Read(ctx context.Context, collection string, id string, partitionKey string) (Record, error)
	Replace(ctx context.Context, collection string, id string, partitionKey string, rec Record) (Record, error)
	Delete(ctx context.Context, collection string, id string, partitionKey string) error
	Query(ctx context.Context, collection string, q Query) ([]Record, error)
}

// Collection names. Profiles, onboarding status and chat sessions share
// one collection; preview codes have their own; everything else shares
// the documents collection.
const (
	CollectionDocuments    = "documents"
	CollectionProfiles     = "profiles"
	CollectionPreviewCodes = "preview_codes"
)

// Collections lists every logical collection the store must provision.
func Collections() []string {
	return []string{CollectionDocuments, CollectionProfiles, CollectionPreviewCodes}
}
