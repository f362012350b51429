package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	profileUC "github.com/khoavn/devfolio/internal/application/usecase/profile"
	"github.com/khoavn/devfolio/pkg/apperror"
	"github.com/khoavn/devfolio/pkg/logger"
)

// PortfolioHandler serves the nested project and work-experience collections
// of a profile.
type PortfolioHandler struct {
	projectsUseCase   *profileUC.ManageProjectsUseCase
	experienceUseCase *profileUC.ManageExperienceUseCase
	logger            logger.Logger
}

func NewPortfolioHandler(
	projectsUC *profileUC.ManageProjectsUseCase,
	experienceUC *profileUC.ManageExperienceUseCase,
	log logger.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{
		projectsUseCase:   projectsUC,
		experienceUseCase: experienceUC,
		logger:            log,
	}
}

func (h *PortfolioHandler) AddProject(c *gin.Context) {
	profileID, ok := parseProfileID(c)
	if !ok {
		return
	}

	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for project", err))
		return
	}

	output, err := h.projectsUseCase.AddProject(c.Request.Context(), profileUC.AddProjectInput{
		ProfileID: profileID,
		Project:   req.toInput(),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"project_id": output.ProjectID.String(),
		"profile":    ToProfileDTO(output.Profile),
	})
}

func (h *PortfolioHandler) UpdateProject(c *gin.Context) {
	profileID, ok := parseProfileID(c)
	if !ok {
		return
	}
	projectID, ok := parseItemID(c, "projectId", "invalid project ID")
	if !ok {
		return
	}

	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for project", err))
		return
	}

	output, err := h.projectsUseCase.UpdateProject(c.Request.Context(), profileUC.UpdateProjectInput{
		ProfileID: profileID,
		ProjectID: projectID,
		Project:   req.toInput(),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *PortfolioHandler) RemoveProject(c *gin.Context) {
	profileID, ok := parseProfileID(c)
	if !ok {
		return
	}
	projectID, ok := parseItemID(c, "projectId", "invalid project ID")
	if !ok {
		return
	}

	output, err := h.projectsUseCase.RemoveProject(c.Request.Context(), profileUC.RemoveProjectInput{
		ProfileID: profileID,
		ProjectID: projectID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *PortfolioHandler) AddWorkExperience(c *gin.Context) {
	profileID, ok := parseProfileID(c)
	if !ok {
		return
	}

	var req WorkExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for work experience", err))
		return
	}

	output, err := h.experienceUseCase.AddWorkExperience(c.Request.Context(), profileUC.AddWorkExperienceInput{
		ProfileID:  profileID,
		Experience: req.toInput(),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"experience_id": output.ExperienceID.String(),
		"profile":       ToProfileDTO(output.Profile),
	})
}

func (h *PortfolioHandler) UpdateWorkExperience(c *gin.Context) {
	profileID, ok := parseProfileID(c)
	if !ok {
		return
	}
	experienceID, ok := parseItemID(c, "experienceId", "invalid work experience ID")
	if !ok {
		return
	}

	var req WorkExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for work experience", err))
		return
	}

	output, err := h.experienceUseCase.UpdateWorkExperience(c.Request.Context(), profileUC.UpdateWorkExperienceInput{
		ProfileID:    profileID,
		ExperienceID: experienceID,
		Experience:   req.toInput(),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *PortfolioHandler) RemoveWorkExperience(c *gin.Context) {
	profileID, ok := parseProfileID(c)
	if !ok {
		return
	}
	experienceID, ok := parseItemID(c, "experienceId", "invalid work experience ID")
	if !ok {
		return
	}

	output, err := h.experienceUseCase.RemoveWorkExperience(c.Request.Context(), profileUC.RemoveWorkExperienceInput{
		ProfileID:    profileID,
		ExperienceID: experienceID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func parseItemID(c *gin.Context, param, msg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.Error(apperror.NewInvalidInput(msg, err))
		return uuid.Nil, false
	}
	return id, true
}
