package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoavn/devfolio/internal/domain/profile"
	"github.com/khoavn/devfolio/pkg/apperror"
)

// runRepositoryMatrix exercises the backend-neutral repository contract. Both
// store adapters run the exact same assertions, so any observable divergence
// between them fails here. Catalog subtests tag their fixtures with a unique
// marker skill and filter on it, keeping subtests isolated inside one shared
// store.
func runRepositoryMatrix(t *testing.T, repo profile.Repository) {
	ctx := context.Background()

	t.Run("CreateAndGetByID", func(t *testing.T) {
		original := matrixProfile(t, "Linh", "Nguyen", nil)

		created, err := repo.Create(ctx, original)
		require.NoError(t, err)
		require.NotNil(t, created)

		fetched, err := repo.GetByID(ctx, original.ID())
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.True(t, profile.Equal(original, fetched))
	})

	t.Run("GetByIDAbsentIsNilNil", func(t *testing.T) {
		fetched, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, fetched)
	})

	t.Run("DuplicateCreateConflicts", func(t *testing.T) {
		p := matrixProfile(t, "Minh", "Tran", nil)

		_, err := repo.Create(ctx, p)
		require.NoError(t, err)

		_, err = repo.Create(ctx, p)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrConflict))
	})

	t.Run("UpdateRoundTripsFullAggregate", func(t *testing.T) {
		p := fullProfileFixture(t)
		_, err := repo.Create(ctx, p)
		require.NoError(t, err)

		now := time.Now().UTC()
		name, err := profile.NewPersonName("Linh", "Pham")
		require.NoError(t, err)
		p.ChangeName(name, now)
		p.SetOpenToWork(false, now)

		updated, err := repo.Update(ctx, p)
		require.NoError(t, err)
		require.NotNil(t, updated)

		fetched, err := repo.GetByID(ctx, p.ID())
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.True(t, profile.Equal(p, fetched))
		assert.Equal(t, "Pham", fetched.Name().Last())
	})

	t.Run("UpdateSyncsChildCollections", func(t *testing.T) {
		p := matrixProfile(t, "An", "Pham", nil)
		now := time.Now().UTC()

		nameA, err := profile.NewProjectName("alpha")
		require.NoError(t, err)
		nameB, err := profile.NewProjectName("beta")
		require.NoError(t, err)
		keepID := p.AddProject(nameA, nil, nil, profile.ProjectLink{}, nil, now)
		dropID := p.AddProject(nameB, nil, nil, profile.ProjectLink{}, nil, now)

		_, err = repo.Create(ctx, p)
		require.NoError(t, err)

		// mutate one child, drop one, add one
		renamed, err := profile.NewProjectName("alpha-renamed")
		require.NoError(t, err)
		require.NoError(t, p.UpdateProject(keepID, renamed, nil, nil, profile.ProjectLink{}, nil, now))
		require.NoError(t, p.RemoveProject(dropID, now))
		nameC, err := profile.NewProjectName("gamma")
		require.NoError(t, err)
		newID := p.AddProject(nameC, nil, nil, profile.ProjectLink{}, nil, now)

		_, err = repo.Update(ctx, p)
		require.NoError(t, err)

		fetched, err := repo.GetByID(ctx, p.ID())
		require.NoError(t, err)
		require.NotNil(t, fetched)

		projects := fetched.Projects()
		require.Len(t, projects, 2)
		byID := map[uuid.UUID]string{}
		for _, item := range projects {
			byID[item.ID()] = item.Name().Value()
		}
		assert.Equal(t, "alpha-renamed", byID[keepID])
		assert.Equal(t, "gamma", byID[newID])
		_, stillThere := byID[dropID]
		assert.False(t, stillThere)
	})

	t.Run("UpdateMissingRootReportsAbsent", func(t *testing.T) {
		ghost := matrixProfile(t, "Ghost", "Profile", nil)

		updated, err := repo.Update(ctx, ghost)
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("DeleteReportsExistence", func(t *testing.T) {
		p := matrixProfile(t, "Hoa", "Le", nil)
		_, err := repo.Create(ctx, p)
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, p.ID())
		require.NoError(t, err)
		assert.True(t, deleted)

		fetched, err := repo.GetByID(ctx, p.ID())
		require.NoError(t, err)
		assert.Nil(t, fetched)

		deleted, err = repo.Delete(ctx, p.ID())
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("CatalogSearchMatchesEitherNamePart", func(t *testing.T) {
		marker := uniqueMarker()
		seedCatalogProfiles(t, ctx, repo, marker, []catalogSeed{
			{first: "Quang", last: "Vo"},
			{first: "Vu", last: "Quang"},
			{first: "Mai", last: "Dang"},
		})

		result := searchByMarker(t, ctx, repo, marker, func(q *profile.CatalogQuery) {
			q.Search = "quang"
		})
		assert.Equal(t, int64(2), result.TotalCount)
	})

	t.Run("CatalogSearchTreatsWildcardsAsLiterals", func(t *testing.T) {
		marker := uniqueMarker()
		seedCatalogProfiles(t, ctx, repo, marker, []catalogSeed{
			{first: "Gopher", last: "Doe"},
			{first: "go_her", last: "Doe"},
		})

		// "_" is a single-character wildcard in SQL LIKE; it must not make
		// "go_her" match "Gopher".
		result := searchByMarker(t, ctx, repo, marker, func(q *profile.CatalogQuery) {
			q.Search = "go_her"
		})
		require.Equal(t, int64(1), result.TotalCount)
		assert.Equal(t, "go_her", result.Items[0].Name().First())
	})

	t.Run("CatalogSkillsAreContainsAll", func(t *testing.T) {
		marker := uniqueMarker()
		seedCatalogProfiles(t, ctx, repo, marker, []catalogSeed{
			{first: "Anh", last: "Bui", skills: []string{"go", "kafka"}},
			{first: "Binh", last: "Cao", skills: []string{"go"}},
			{first: "Chi", last: "Do", skills: []string{"kafka"}},
		})

		result := searchByMarker(t, ctx, repo, marker, func(q *profile.CatalogQuery) {
			q.Skills = append(q.Skills, "go", "kafka")
		})
		require.Equal(t, int64(1), result.TotalCount)
		assert.Equal(t, "Bui", result.Items[0].Name().Last())
	})

	t.Run("CatalogExactFlagFilters", func(t *testing.T) {
		marker := uniqueMarker()
		seedCatalogProfiles(t, ctx, repo, marker, []catalogSeed{
			{first: "Dat", last: "Ho", openToWork: true, verification: profile.Verified},
			{first: "Em", last: "Ly", openToWork: true, verification: profile.NotVerified},
			{first: "Giang", last: "Ngo", openToWork: false, verification: profile.Verified},
		})

		open := true
		level := profile.Verified
		result := searchByMarker(t, ctx, repo, marker, func(q *profile.CatalogQuery) {
			q.OpenToWork = &open
			q.Verification = &level
		})
		require.Equal(t, int64(1), result.TotalCount)
		assert.Equal(t, "Ho", result.Items[0].Name().Last())
	})

	t.Run("CatalogSortByNameWithTieBreak", func(t *testing.T) {
		marker := uniqueMarker()
		seedCatalogProfiles(t, ctx, repo, marker, []catalogSeed{
			{first: "Zed", last: "Anders"},
			{first: "Amy", last: "Anders"},
			{first: "Bob", last: "Zimmer"},
		})

		result := searchByMarker(t, ctx, repo, marker, func(q *profile.CatalogQuery) {
			q.SortField = profile.SortByName
			q.SortOrder = profile.SortAsc
		})
		require.Len(t, result.Items, 3)
		assert.Equal(t, "Amy", result.Items[0].Name().First())
		assert.Equal(t, "Zed", result.Items[1].Name().First())
		assert.Equal(t, "Zimmer", result.Items[2].Name().Last())
	})

	t.Run("CatalogPaginationIsServerSide", func(t *testing.T) {
		marker := uniqueMarker()
		seeds := make([]catalogSeed, 5)
		for i := range seeds {
			seeds[i] = catalogSeed{first: fmt.Sprintf("Page%02d", i), last: "Walker"}
		}
		seedCatalogProfiles(t, ctx, repo, marker, seeds)

		query := profile.CatalogQuery{
			Skills:     []string{marker},
			SortField:  profile.SortByName,
			SortOrder:  profile.SortAsc,
			PageNumber: 2,
			PageSize:   2,
		}
		result, err := repo.SearchCatalog(ctx, query)
		require.NoError(t, err)

		assert.Equal(t, int64(5), result.TotalCount)
		assert.Equal(t, int64(3), result.TotalPages())
		require.Len(t, result.Items, 2)
		assert.Equal(t, "Page02", result.Items[0].Name().First())
		assert.Equal(t, "Page03", result.Items[1].Name().First())

		lastPage := query
		lastPage.PageNumber = 3
		result, err = repo.SearchCatalog(ctx, lastPage)
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "Page04", result.Items[0].Name().First())
	})

	t.Run("CatalogRejectsInvalidPaging", func(t *testing.T) {
		_, err := repo.SearchCatalog(ctx, profile.CatalogQuery{PageNumber: 0, PageSize: 10})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	})

	t.Run("CatalogEmptyResultKeepsEnvelope", func(t *testing.T) {
		result := searchByMarker(t, ctx, repo, uniqueMarker(), nil)
		assert.Equal(t, int64(0), result.TotalCount)
		assert.NotNil(t, result.Items)
		assert.Empty(t, result.Items)
	})
}

type catalogSeed struct {
	first        string
	last         string
	skills       []string
	openToWork   bool
	verification profile.VerificationLevel
}

func matrixProfile(t *testing.T, first, last string, skills []string) *profile.DeveloperProfile {
	t.Helper()
	now := time.Now().UTC()

	name, err := profile.NewPersonName(first, last)
	require.NoError(t, err)
	email, err := profile.NewEmailAddress(fmt.Sprintf("%s.%s@example.com", first, uuid.NewString()[:8]))
	require.NoError(t, err)

	p, err := profile.NewDeveloperProfile(
		uuid.New(), name, nil, nil, nil,
		profile.NewContactInfo(email, nil, nil, nil),
		profile.SocialLinks{}, profile.NotVerified, false, now,
	)
	require.NoError(t, err)

	if len(skills) > 0 {
		tags := make([]profile.SkillTag, 0, len(skills))
		for _, s := range skills {
			tag, err := profile.NewSkillTag(s)
			require.NoError(t, err)
			tags = append(tags, tag)
		}
		p.ReplaceSkills(tags, now)
	}
	return p
}

func seedCatalogProfiles(t *testing.T, ctx context.Context, repo profile.Repository, marker string, seeds []catalogSeed) {
	t.Helper()
	now := time.Now().UTC()

	for _, seed := range seeds {
		p := matrixProfile(t, seed.first, seed.last, append([]string{marker}, seed.skills...))
		p.SetOpenToWork(seed.openToWork, now)
		p.SetVerified(seed.verification, now)

		_, err := repo.Create(ctx, p)
		require.NoError(t, err)
	}
}

func searchByMarker(t *testing.T, ctx context.Context, repo profile.Repository, marker string, mutate func(*profile.CatalogQuery)) *profile.CatalogResult {
	t.Helper()

	query := profile.CatalogQuery{
		Skills:     []string{marker},
		SortField:  profile.SortByName,
		SortOrder:  profile.SortAsc,
		PageNumber: 1,
		PageSize:   50,
	}
	if mutate != nil {
		mutate(&query)
	}

	result, err := repo.SearchCatalog(ctx, query)
	require.NoError(t, err)
	return result
}

func uniqueMarker() string {
	return "marker-" + uuid.NewString()[:8]
}
