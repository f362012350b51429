package persistence

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoavn/devfolio/internal/domain/profile"
)

func fullProfileFixture(t *testing.T) *profile.DeveloperProfile {
	t.Helper()
	now := time.Date(2026, 1, 15, 8, 30, 0, 0, time.UTC)

	name, err := profile.NewPersonName("Linh", "Nguyen")
	require.NoError(t, err)
	roleVal, err := profile.NewRoleTitle("Backend Engineer")
	require.NoError(t, err)
	email, err := profile.NewEmailAddress("linh@example.com")
	require.NoError(t, err)
	phone, err := profile.NewPhoneNumber("+84 912 345 678")
	require.NoError(t, err)
	website, err := profile.NewURL("https://linh.dev")
	require.NoError(t, err)
	location, err := profile.NewLocation("Hanoi", "Vietnam")
	require.NoError(t, err)
	avatarURL, err := profile.NewURL("https://cdn.example.com/avatar.png")
	require.NoError(t, err)
	avatar := profile.NewAvatar(avatarURL)
	gitHub, err := profile.NewURL("https://github.com/linhng")
	require.NoError(t, err)

	summary := "Builds data-heavy backend services."
	p, err := profile.NewDeveloperProfile(
		uuid.New(), name, &roleVal, &summary, &avatar,
		profile.NewContactInfo(email, &phone, &website, &location),
		profile.NewSocialLinks(nil, &gitHub, nil, nil),
		profile.Verified, true, now,
	)
	require.NoError(t, err)

	years, err := profile.NewYearsOfExperience(6)
	require.NoError(t, err)
	p.ChangeYearsOfExperience(years, now)

	skills := make([]profile.SkillTag, 0, 3)
	for _, v := range []string{"go", "postgres", "kafka"} {
		tag, err := profile.NewSkillTag(v)
		require.NoError(t, err)
		skills = append(skills, tag)
	}
	p.ReplaceSkills(skills, now)

	projName, err := profile.NewProjectName("devfolio")
	require.NoError(t, err)
	projDesc, err := profile.NewProjectDescription("A developer catalog service.")
	require.NoError(t, err)
	iconURL, err := profile.NewURL("https://cdn.example.com/icon.png")
	require.NoError(t, err)
	icon := profile.NewProjectIcon(iconURL)
	linkURL, err := profile.NewURL("https://github.com/linhng/devfolio")
	require.NoError(t, err)
	techGo, err := profile.NewTechTag("go")
	require.NoError(t, err)
	techGin, err := profile.NewTechTag("gin")
	require.NoError(t, err)
	p.AddProject(projName, &projDesc, &icon, profile.NewProjectLink(&linkURL), []profile.TechTag{techGo, techGin}, now)

	company, err := profile.NewCompanyName("Acme")
	require.NoError(t, err)
	expRole, err := profile.NewRoleTitle("Software Engineer")
	require.NoError(t, err)
	expDesc, err := profile.NewWorkDescription("Owned the billing pipeline.")
	require.NoError(t, err)
	end := now.AddDate(-1, 0, 0)
	period, err := profile.NewDateRange(now.AddDate(-4, 0, 0), &end)
	require.NoError(t, err)
	p.AddWorkExperience(company, &location, expRole, &expDesc, period, []profile.TechTag{techGo}, now)

	return p
}

func minimalProfileFixture(t *testing.T) *profile.DeveloperProfile {
	t.Helper()
	now := time.Date(2026, 1, 15, 8, 30, 0, 0, time.UTC)

	name, err := profile.NewPersonName("Minh", "Tran")
	require.NoError(t, err)
	email, err := profile.NewEmailAddress("minh@example.com")
	require.NoError(t, err)

	p, err := profile.NewDeveloperProfile(
		uuid.New(), name, nil, nil, nil,
		profile.NewContactInfo(email, nil, nil, nil),
		profile.SocialLinks{}, profile.NotVerified, false, now,
	)
	require.NoError(t, err)
	return p
}

func TestProfileRecordRoundTrip(t *testing.T) {
	original := fullProfileFixture(t)

	rec := newProfileRecord(original)
	restored, err := rec.toDomain()
	require.NoError(t, err)

	assert.True(t, profile.Equal(original, restored))
}

func TestProfileRecordRoundTripMinimal(t *testing.T) {
	original := minimalProfileFixture(t)

	rec := newProfileRecord(original)
	assert.Nil(t, rec.Location)
	assert.Nil(t, rec.SocialLinks)
	assert.Empty(t, rec.Projects)

	restored, err := rec.toDomain()
	require.NoError(t, err)

	assert.True(t, profile.Equal(original, restored))
	assert.Nil(t, restored.Role())
	assert.Nil(t, restored.Avatar())
	assert.Nil(t, restored.Contact().Location())
}

func TestProfileRecordFlattensOptionals(t *testing.T) {
	p := fullProfileFixture(t)
	rec := newProfileRecord(p)

	require.NotNil(t, rec.Role)
	assert.Equal(t, "Backend Engineer", *rec.Role)
	require.NotNil(t, rec.Location)
	require.NotNil(t, rec.Location.City)
	assert.Equal(t, "Hanoi", *rec.Location.City)
	require.NotNil(t, rec.SocialLinks)
	require.NotNil(t, rec.SocialLinks.GitHub)
	assert.Nil(t, rec.SocialLinks.LinkedIn)
	assert.Equal(t, []string{"go", "postgres", "kafka"}, rec.Skills)
	assert.Equal(t, 1, rec.VerificationStatus)
}

func TestProfileRecordRejectsCorruptData(t *testing.T) {
	p := minimalProfileFixture(t)
	rec := newProfileRecord(p)

	rec.Email = "not-an-email"
	_, err := rec.toDomain()
	assert.Error(t, err)

	rec = newProfileRecord(p)
	rec.ID = "not-a-uuid"
	_, err = rec.toDomain()
	assert.Error(t, err)
}
