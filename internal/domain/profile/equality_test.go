package profile

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoIdenticalProfiles(t *testing.T) (*DeveloperProfile, *DeveloperProfile) {
	t.Helper()

	id := uuid.New()
	name, err := NewPersonName("An", "Pham")
	require.NoError(t, err)
	email, err := NewEmailAddress("an@example.com")
	require.NoError(t, err)
	contact := NewContactInfo(email, nil, nil, nil)

	build := func() *DeveloperProfile {
		p, err := NewDeveloperProfile(id, name, nil, nil, nil, contact, SocialLinks{}, NotVerified, false, testNow)
		require.NoError(t, err)
		return p
	}
	return build(), build()
}

func TestEqualIdenticalProfiles(t *testing.T) {
	a, b := twoIdenticalProfiles(t)
	assert.True(t, Equal(a, b))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(a, nil))
	assert.False(t, Equal(nil, b))
}

func TestEqualDetectsFieldDrift(t *testing.T) {
	a, b := twoIdenticalProfiles(t)

	b.SetOpenToWork(true, testNow)
	assert.False(t, Equal(a, b))
}

func TestEqualSkillsAreSetSemantics(t *testing.T) {
	a, b := twoIdenticalProfiles(t)

	a.AddSkill(mustSkill(t, "go"), testNow)
	a.AddSkill(mustSkill(t, "kafka"), testNow)
	b.AddSkill(mustSkill(t, "kafka"), testNow)
	b.AddSkill(mustSkill(t, "go"), testNow)

	assert.True(t, Equal(a, b))

	b.AddSkill(mustSkill(t, "redis"), testNow)
	assert.False(t, Equal(a, b))
}

func TestEqualProjectsMatchedByIdentity(t *testing.T) {
	a, b := twoIdenticalProfiles(t)

	name, err := NewProjectName("indexer")
	require.NoError(t, err)
	id := a.AddProject(name, nil, nil, ProjectLink{}, nil, testNow)

	// rebuild the same child on the second profile through the persistence
	// path so identities line up
	item := ProjectItemFromPersistence(id, name, nil, nil, ProjectLink{}, nil)
	rebuilt := FromPersistence(
		b.ID(), b.Name(), b.Role(), b.Summary(), b.Avatar(),
		b.Contact(), b.Social(), b.Verification(), b.OpenToWork(),
		b.YearsOfExperience(), b.Skills(), []ProjectItem{item}, b.WorkExperience(),
		b.CreatedAt(), a.UpdatedAt(),
	)

	assert.True(t, Equal(a, rebuilt))

	// same content under a different identity is not equal
	other := ProjectItemFromPersistence(uuid.New(), name, nil, nil, ProjectLink{}, nil)
	mismatched := FromPersistence(
		b.ID(), b.Name(), b.Role(), b.Summary(), b.Avatar(),
		b.Contact(), b.Social(), b.Verification(), b.OpenToWork(),
		b.YearsOfExperience(), b.Skills(), []ProjectItem{other}, b.WorkExperience(),
		b.CreatedAt(), a.UpdatedAt(),
	)
	assert.False(t, Equal(a, mismatched))
}

func TestEqualComparesProjectIcons(t *testing.T) {
	a, b := twoIdenticalProfiles(t)

	name, err := NewProjectName("indexer")
	require.NoError(t, err)
	iconURL, err := NewURL("https://cdn.example.com/icon.png")
	require.NoError(t, err)
	icon := NewProjectIcon(iconURL)

	id := a.AddProject(name, nil, &icon, ProjectLink{}, nil, testNow)

	withIcon := ProjectItemFromPersistence(id, name, nil, &icon, ProjectLink{}, nil)
	same := FromPersistence(
		b.ID(), b.Name(), b.Role(), b.Summary(), b.Avatar(),
		b.Contact(), b.Social(), b.Verification(), b.OpenToWork(),
		b.YearsOfExperience(), b.Skills(), []ProjectItem{withIcon}, b.WorkExperience(),
		b.CreatedAt(), a.UpdatedAt(),
	)
	assert.True(t, Equal(a, same))

	noIcon := ProjectItemFromPersistence(id, name, nil, nil, ProjectLink{}, nil)
	stripped := FromPersistence(
		b.ID(), b.Name(), b.Role(), b.Summary(), b.Avatar(),
		b.Contact(), b.Social(), b.Verification(), b.OpenToWork(),
		b.YearsOfExperience(), b.Skills(), []ProjectItem{noIcon}, b.WorkExperience(),
		b.CreatedAt(), a.UpdatedAt(),
	)
	assert.False(t, Equal(a, stripped))
}

func TestEqualTimesCompareByInstant(t *testing.T) {
	a, b := twoIdenticalProfiles(t)

	// same instant in a different zone must still be equal
	loc := time.FixedZone("UTC+7", 7*3600)
	shifted := FromPersistence(
		b.ID(), b.Name(), b.Role(), b.Summary(), b.Avatar(),
		b.Contact(), b.Social(), b.Verification(), b.OpenToWork(),
		b.YearsOfExperience(), b.Skills(), b.Projects(), b.WorkExperience(),
		b.CreatedAt().In(loc), b.UpdatedAt().In(loc),
	)
	assert.True(t, Equal(a, shifted))
}
