package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	profileUC "github.com/khoavn/devfolio/internal/application/usecase/profile"
	"github.com/khoavn/devfolio/internal/domain/profile"
	"github.com/khoavn/devfolio/pkg/apperror"
	"github.com/khoavn/devfolio/pkg/logger"
)

// memProfileRepo backs the handler tests with the same observable contract
// as the persistence adapters.
type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*profile.DeveloperProfile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[uuid.UUID]*profile.DeveloperProfile)}
}

func (m *memProfileRepo) Create(_ context.Context, p *profile.DeveloperProfile) (*profile.DeveloperProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.profiles[p.ID()]; exists {
		return nil, apperror.NewConflict("profile", "id", p.ID().String())
	}
	m.profiles[p.ID()] = p
	return p, nil
}

func (m *memProfileRepo) GetByID(_ context.Context, id uuid.UUID) (*profile.DeveloperProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profiles[id], nil
}

func (m *memProfileRepo) GetAll(_ context.Context) ([]*profile.DeveloperProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*profile.DeveloperProfile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (m *memProfileRepo) Update(_ context.Context, p *profile.DeveloperProfile) (*profile.DeveloperProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.profiles[p.ID()]; !exists {
		return nil, nil
	}
	m.profiles[p.ID()] = p
	return p, nil
}

func (m *memProfileRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.profiles[id]; !exists {
		return false, nil
	}
	delete(m.profiles, id)
	return true, nil
}

func (m *memProfileRepo) SearchCatalog(_ context.Context, q profile.CatalogQuery) (*profile.CatalogResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]*profile.DeveloperProfile, 0, len(m.profiles))
	for _, p := range m.profiles {
		items = append(items, p)
	}
	return &profile.CatalogResult{
		Items:      items,
		TotalCount: int64(len(items)),
		PageNumber: q.PageNumber,
		PageSize:   q.PageSize,
	}, nil
}

type ProfileAPITestSuite struct {
	suite.Suite
	Router *gin.Engine
	repo   *memProfileRepo
}

func (s *ProfileAPITestSuite) SetupTest() {
	appLogger := logger.NewNop()
	s.repo = newMemProfileRepo()

	createUC := profileUC.NewCreateProfileUseCase(s.repo, nil, appLogger)
	getUC := profileUC.NewGetProfileUseCase(s.repo)
	listUC := profileUC.NewListProfilesUseCase(s.repo)
	updateUC := profileUC.NewUpdateProfileUseCase(s.repo, nil, appLogger)
	deleteUC := profileUC.NewDeleteProfileUseCase(s.repo, nil, appLogger)
	skillsUC := profileUC.NewManageSkillsUseCase(s.repo, nil, appLogger)
	projectsUC := profileUC.NewManageProjectsUseCase(s.repo, nil, appLogger)
	experienceUC := profileUC.NewManageExperienceUseCase(s.repo, nil, appLogger)
	searchUC := profileUC.NewSearchCatalogUseCase(s.repo, appLogger)

	profileHandler := NewProfileHandler(createUC, getUC, listUC, updateUC, deleteUC, skillsUC, appLogger)
	portfolioHandler := NewPortfolioHandler(projectsUC, experienceUC, appLogger)
	catalogHandler := NewCatalogHandler(searchUC, appLogger)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorMiddleware(appLogger))

	api := router.Group("/api")
	profiles := api.Group("/profiles")
	{
		profiles.GET("", catalogHandler.SearchCatalog)
		profiles.POST("", profileHandler.CreateProfile)
		profiles.GET("/:id", profileHandler.GetProfile)
		profiles.PUT("/:id", profileHandler.UpdateProfile)
		profiles.DELETE("/:id", profileHandler.DeleteProfile)
		profiles.PUT("/:id/skills", profileHandler.ReplaceSkills)
		profiles.POST("/:id/skills", profileHandler.AddSkill)
		profiles.DELETE("/:id/skills/:skill", profileHandler.RemoveSkill)
		profiles.POST("/:id/projects", portfolioHandler.AddProject)
		profiles.PUT("/:id/projects/:projectId", portfolioHandler.UpdateProject)
		profiles.DELETE("/:id/projects/:projectId", portfolioHandler.RemoveProject)
	}

	s.Router = router
}

func (s *ProfileAPITestSuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	s.Router.ServeHTTP(recorder, req)
	return recorder
}

func (s *ProfileAPITestSuite) createProfile() ProfileDTO {
	body := CreateProfileRequest{
		UserID:            uuid.NewString(),
		FirstName:         "Linh",
		LastName:          "Nguyen",
		OpenToWork:        true,
		YearsOfExperience: 5,
		Verification:      1,
		Contact:           ContactRequest{Email: "linh@example.com"},
		Skills:            []string{"go", "postgres"},
	}
	recorder := s.request(http.MethodPost, "/api/profiles", body)
	s.Require().Equal(http.StatusCreated, recorder.Code, recorder.Body.String())

	var dto ProfileDTO
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &dto))
	return dto
}

func (s *ProfileAPITestSuite) TestCreateAndGetProfile() {
	created := s.createProfile()

	recorder := s.request(http.MethodGet, "/api/profiles/"+created.ID, nil)
	s.Require().Equal(http.StatusOK, recorder.Code)

	var fetched ProfileDTO
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &fetched))
	assert.Equal(s.T(), created.ID, fetched.ID)
	assert.Equal(s.T(), "Linh", fetched.FirstName)
	assert.ElementsMatch(s.T(), []string{"go", "postgres"}, fetched.Skills)
}

func (s *ProfileAPITestSuite) TestCreateRejectsMalformedBody() {
	recorder := s.request(http.MethodPost, "/api/profiles", gin.H{"first_name": "Linh"})
	assert.Equal(s.T(), http.StatusBadRequest, recorder.Code)
}

func (s *ProfileAPITestSuite) TestGetUnknownProfileIs404() {
	recorder := s.request(http.MethodGet, "/api/profiles/"+uuid.NewString(), nil)
	assert.Equal(s.T(), http.StatusNotFound, recorder.Code)
}

func (s *ProfileAPITestSuite) TestGetMalformedIDIs400() {
	recorder := s.request(http.MethodGet, "/api/profiles/not-a-uuid", nil)
	assert.Equal(s.T(), http.StatusBadRequest, recorder.Code)
}

func (s *ProfileAPITestSuite) TestUpdateProfile() {
	created := s.createProfile()

	body := UpdateProfileRequest{
		FirstName:         "Linh",
		LastName:          "Pham",
		OpenToWork:        false,
		YearsOfExperience: 6,
		Verification:      2,
		Contact:           ContactRequest{Email: "linh.pham@example.com"},
		Skills:            []string{"go"},
	}
	recorder := s.request(http.MethodPut, "/api/profiles/"+created.ID, body)
	s.Require().Equal(http.StatusOK, recorder.Code, recorder.Body.String())

	var updated ProfileDTO
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &updated))
	assert.Equal(s.T(), "Pham", updated.LastName)
	assert.False(s.T(), updated.OpenToWork)
	assert.Equal(s.T(), []string{"go"}, updated.Skills)
}

func (s *ProfileAPITestSuite) TestDeleteProfile() {
	created := s.createProfile()

	recorder := s.request(http.MethodDelete, "/api/profiles/"+created.ID, nil)
	assert.Equal(s.T(), http.StatusNoContent, recorder.Code)

	recorder = s.request(http.MethodDelete, "/api/profiles/"+created.ID, nil)
	assert.Equal(s.T(), http.StatusNotFound, recorder.Code)
}

func (s *ProfileAPITestSuite) TestSkillEndpoints() {
	created := s.createProfile()
	base := "/api/profiles/" + created.ID + "/skills"

	recorder := s.request(http.MethodPost, base, SkillRequest{Skill: "docker"})
	s.Require().Equal(http.StatusOK, recorder.Code, recorder.Body.String())

	recorder = s.request(http.MethodDelete, base+"/postgres", nil)
	s.Require().Equal(http.StatusOK, recorder.Code, recorder.Body.String())

	var dto ProfileDTO
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &dto))
	assert.ElementsMatch(s.T(), []string{"go", "docker"}, dto.Skills)
}

func (s *ProfileAPITestSuite) TestProjectEndpoints() {
	created := s.createProfile()
	base := "/api/profiles/" + created.ID + "/projects"

	recorder := s.request(http.MethodPost, base, ProjectRequest{Name: "Matcher", TechStack: []string{"go"}})
	s.Require().Equal(http.StatusCreated, recorder.Code, recorder.Body.String())

	var addResp struct {
		ProjectID string     `json:"project_id"`
		Profile   ProfileDTO `json:"profile"`
	}
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &addResp))
	s.Require().NotEmpty(addResp.ProjectID)
	s.Require().Len(addResp.Profile.Projects, 1)

	recorder = s.request(http.MethodDelete, fmt.Sprintf("%s/%s", base, addResp.ProjectID), nil)
	s.Require().Equal(http.StatusOK, recorder.Code, recorder.Body.String())

	recorder = s.request(http.MethodDelete, fmt.Sprintf("%s/%s", base, uuid.NewString()), nil)
	assert.Equal(s.T(), http.StatusNotFound, recorder.Code)
}

func (s *ProfileAPITestSuite) TestCatalogEndpoint() {
	s.createProfile()

	recorder := s.request(http.MethodGet, "/api/profiles?page=1&page_size=10", nil)
	s.Require().Equal(http.StatusOK, recorder.Code, recorder.Body.String())

	var page CatalogPageDTO
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &page))
	assert.Equal(s.T(), int64(1), page.TotalCount)
	assert.Equal(s.T(), 1, page.PageNumber)
	assert.Equal(s.T(), 10, page.PageSize)
	assert.Len(s.T(), page.Items, 1)
}

func (s *ProfileAPITestSuite) TestCatalogRejectsUnknownSort() {
	recorder := s.request(http.MethodGet, "/api/profiles?sort_by=bogus", nil)
	assert.Equal(s.T(), http.StatusBadRequest, recorder.Code)
}

func TestProfileAPITestSuite(t *testing.T) {
	suite.Run(t, new(ProfileAPITestSuite))
}
