package profile

import (
	"context"

	"github.com/google/uuid"
)

// CatalogSortField selects the key the catalog is ordered by. Every backend
// appends the profile id as a trailing tie-break so pagination is stable for
// equal primary keys.
type CatalogSortField int

const (
	SortByName CatalogSortField = iota
	SortByID
	SortByUpdatedAt
)

type CatalogSortOrder int

const (
	SortAsc CatalogSortOrder = iota
	SortDesc
)

// CatalogQuery is the backend-neutral filter/sort/page request. Filters
// combine with AND; the skill list requires every listed skill to be present
// (superset match, not any-of).
type CatalogQuery struct {
	Search       string
	Skills       []string
	OpenToWork   *bool
	Verification *VerificationLevel
	SortField    CatalogSortField
	SortOrder    CatalogSortOrder
	PageNumber   int // 1-based
	PageSize     int
}

func (q CatalogQuery) Validate() error {
	if q.PageNumber < 1 {
		return invalidf("page number must be >= 1, got %d", q.PageNumber)
	}
	if q.PageSize < 1 {
		return invalidf("page size must be >= 1, got %d", q.PageSize)
	}
	return nil
}

// Offset is the number of rows/documents to skip for the requested page.
func (q CatalogQuery) Offset() int {
	return (q.PageNumber - 1) * q.PageSize
}

// CatalogResult is the paged envelope: the sorted page of profiles plus the
// total number of profiles matching the filters.
type CatalogResult struct {
	Items      []*DeveloperProfile
	TotalCount int64
	PageNumber int
	PageSize   int
}

// TotalPages derives ceil(TotalCount / PageSize).
func (r *CatalogResult) TotalPages() int64 {
	if r.PageSize < 1 {
		return 0
	}
	return (r.TotalCount + int64(r.PageSize) - 1) / int64(r.PageSize)
}

// Repository is the persistence contract both store adapters implement with
// identical observable behavior. Lookups signal "absent" with a nil profile
// and nil error; errors are reserved for invariant violations and transport
// failures.
type Repository interface {
	// Create performs the first write of an aggregate. Writing an identity
	// that already exists yields a conflict error.
	Create(ctx context.Context, p *DeveloperProfile) (*DeveloperProfile, error)

	GetByID(ctx context.Context, id uuid.UUID) (*DeveloperProfile, error)

	// GetAll returns every profile, unbounded. Maintenance paths only; the
	// catalog never goes through it.
	GetAll(ctx context.Context) ([]*DeveloperProfile, error)

	// Update replaces the whole aggregate, nested collections included,
	// keyed by identity. Returns nil when the root no longer exists.
	Update(ctx context.Context, p *DeveloperProfile) (*DeveloperProfile, error)

	// Delete reports whether a stored aggregate was actually removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// SearchCatalog applies filters, then sort, then pagination, in that
	// order. Pagination always runs server-side in the store. Name sorting
	// is guaranteed to agree across adapters for ASCII names only: the
	// document store compares names byte-wise while the relational store
	// follows its column collation, so non-ASCII names may order
	// differently between backends.
	SearchCatalog(ctx context.Context, q CatalogQuery) (*CatalogResult, error)
}
