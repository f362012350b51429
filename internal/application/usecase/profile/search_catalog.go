package profile

import (
	"context"
	"fmt"

	"github.com/khoavn/devfolio/internal/domain/profile"
	"github.com/khoavn/devfolio/pkg/apperror"
	"github.com/khoavn/devfolio/pkg/logger"
)

const (
	defaultPageNumber = 1
	defaultPageSize   = 20
)

type SearchCatalogUseCase struct {
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewSearchCatalogUseCase(repo profile.Repository, log logger.Logger) *SearchCatalogUseCase {
	return &SearchCatalogUseCase{profileRepo: repo, logger: log}
}

// SearchCatalogInput carries the raw query-string values. Sort and pagination
// fields fall back to defaults when left empty.
type SearchCatalogInput struct {
	Search       string
	Skills       []string
	OpenToWork   *bool
	Verification *int
	SortBy       string
	SortOrder    string
	PageNumber   int
	PageSize     int
}

type SearchCatalogOutput struct {
	Profiles   []*profile.DeveloperProfile
	TotalCount int64
	PageNumber int
	PageSize   int
	TotalPages int
}

func (uc *SearchCatalogUseCase) Execute(ctx context.Context, input SearchCatalogInput) (*SearchCatalogOutput, error) {
	query, err := buildCatalogQuery(input)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	result, err := uc.profileRepo.SearchCatalog(ctx, query)
	if err != nil {
		return nil, err
	}

	return &SearchCatalogOutput{
		Profiles:   result.Items,
		TotalCount: result.TotalCount,
		PageNumber: result.PageNumber,
		PageSize:   result.PageSize,
		TotalPages: int(result.TotalPages()),
	}, nil
}

func buildCatalogQuery(input SearchCatalogInput) (profile.CatalogQuery, error) {
	sortField, err := parseSortField(input.SortBy)
	if err != nil {
		return profile.CatalogQuery{}, err
	}
	sortOrder, err := parseSortOrder(input.SortOrder)
	if err != nil {
		return profile.CatalogQuery{}, err
	}

	var verification *profile.VerificationLevel
	if input.Verification != nil {
		level, err := profile.NewVerificationLevel(*input.Verification)
		if err != nil {
			return profile.CatalogQuery{}, err
		}
		verification = &level
	}

	pageNumber := input.PageNumber
	if pageNumber == 0 {
		pageNumber = defaultPageNumber
	}
	pageSize := input.PageSize
	if pageSize == 0 {
		pageSize = defaultPageSize
	}

	query := profile.CatalogQuery{
		Search:       input.Search,
		Skills:       input.Skills,
		OpenToWork:   input.OpenToWork,
		Verification: verification,
		SortField:    sortField,
		SortOrder:    sortOrder,
		PageNumber:   pageNumber,
		PageSize:     pageSize,
	}
	if err := query.Validate(); err != nil {
		return profile.CatalogQuery{}, err
	}
	return query, nil
}

func parseSortField(raw string) (profile.CatalogSortField, error) {
	switch raw {
	case "", "updatedAt":
		return profile.SortByUpdatedAt, nil
	case "name":
		return profile.SortByName, nil
	case "id":
		return profile.SortByID, nil
	default:
		return 0, fmt.Errorf("unknown sort field %q", raw)
	}
}

func parseSortOrder(raw string) (profile.CatalogSortOrder, error) {
	switch raw {
	case "", "desc":
		return profile.SortDesc, nil
	case "asc":
		return profile.SortAsc, nil
	default:
		return 0, fmt.Errorf("unknown sort order %q", raw)
	}
}
