package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	profileUC "github.com/khoavn/devfolio/internal/application/usecase/profile"
	"github.com/khoavn/devfolio/pkg/apperror"
	"github.com/khoavn/devfolio/pkg/logger"
)

type ProfileHandler struct {
	createUseCase *profileUC.CreateProfileUseCase
	getUseCase    *profileUC.GetProfileUseCase
	listUseCase   *profileUC.ListProfilesUseCase
	updateUseCase *profileUC.UpdateProfileUseCase
	deleteUseCase *profileUC.DeleteProfileUseCase
	skillsUseCase *profileUC.ManageSkillsUseCase
	logger        logger.Logger
}

func NewProfileHandler(
	createUC *profileUC.CreateProfileUseCase,
	getUC *profileUC.GetProfileUseCase,
	listUC *profileUC.ListProfilesUseCase,
	updateUC *profileUC.UpdateProfileUseCase,
	deleteUC *profileUC.DeleteProfileUseCase,
	skillsUC *profileUC.ManageSkillsUseCase,
	log logger.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		createUseCase: createUC,
		getUseCase:    getUC,
		listUseCase:   listUC,
		updateUseCase: updateUC,
		deleteUseCase: deleteUC,
		skillsUseCase: skillsUC,
		logger:        log,
	}
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile create", err))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid user_id", err))
		return
	}

	input := profileUC.CreateProfileInput{
		UserID:            userID,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Role:              req.Role,
		Summary:           req.Summary,
		AvatarURL:         req.AvatarURL,
		OpenToWork:        req.OpenToWork,
		YearsOfExperience: req.YearsOfExperience,
		Verification:      req.Verification,
		Contact:           req.Contact.toInput(),
		Social:            req.SocialLinks.toInput(),
		Skills:            req.Skills,
	}
	output, err := h.createUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profileID, ok := parseProfileID(c)
	if !ok {
		return
	}

	output, err := h.getUseCase.Execute(c.Request.Context(), profileUC.GetProfileInput{ProfileID: profileID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	output, err := h.listUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]ProfileDTO, len(output.Profiles))
	for i, p := range output.Profiles {
		dtos[i] = ToProfileDTO(p)
	}
	c.JSON(http.StatusOK, gin.H{"items": dtos})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	profileID, ok := parseProfileID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile update", err))
		return
	}

	input := profileUC.UpdateProfileInput{
		ProfileID:         profileID,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Role:              req.Role,
		Summary:           req.Summary,
		AvatarURL:         req.AvatarURL,
		OpenToWork:        req.OpenToWork,
		YearsOfExperience: req.YearsOfExperience,
		Verification:      req.Verification,
		Contact:           req.Contact.toInput(),
		Social:            req.SocialLinks.toInput(),
		Skills:            req.Skills,
	}
	output, err := h.updateUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	profileID, ok := parseProfileID(c)
	if !ok {
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), profileUC.DeleteProfileInput{ProfileID: profileID}); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProfileHandler) ReplaceSkills(c *gin.Context) {
	profileID, ok := parseProfileID(c)
	if !ok {
		return
	}

	var req ReplaceSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for skills update", err))
		return
	}

	output, err := h.skillsUseCase.ReplaceSkills(c.Request.Context(), profileUC.ReplaceSkillsInput{
		ProfileID: profileID,
		Skills:    req.Skills,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) AddSkill(c *gin.Context) {
	profileID, ok := parseProfileID(c)
	if !ok {
		return
	}

	var req SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for skill", err))
		return
	}

	output, err := h.skillsUseCase.AddSkill(c.Request.Context(), profileUC.AddSkillInput{
		ProfileID: profileID,
		Skill:     req.Skill,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) RemoveSkill(c *gin.Context) {
	profileID, ok := parseProfileID(c)
	if !ok {
		return
	}

	output, err := h.skillsUseCase.RemoveSkill(c.Request.Context(), profileUC.RemoveSkillInput{
		ProfileID: profileID,
		Skill:     c.Param("skill"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func parseProfileID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid profile ID", err))
		return uuid.Nil, false
	}
	return id, true
}
