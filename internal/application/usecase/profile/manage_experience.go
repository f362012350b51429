package profile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/khoavn/devfolio/adapters/event"
	"github.com/khoavn/devfolio/internal/domain/profile"
	"github.com/khoavn/devfolio/pkg/apperror"
	"github.com/khoavn/devfolio/pkg/logger"
)

type ManageExperienceUseCase struct {
	profileRepo profile.Repository
	events      EventPublisher
	logger      logger.Logger
}

func NewManageExperienceUseCase(repo profile.Repository, events EventPublisher, log logger.Logger) *ManageExperienceUseCase {
	return &ManageExperienceUseCase{profileRepo: repo, events: events, logger: log}
}

type AddWorkExperienceInput struct {
	ProfileID  uuid.UUID
	Experience WorkExperienceInput
}

type AddWorkExperienceOutput struct {
	ExperienceID uuid.UUID
	Profile      *profile.DeveloperProfile
}

func (uc *ManageExperienceUseCase) AddWorkExperience(ctx context.Context, input AddWorkExperienceInput) (*AddWorkExperienceOutput, error) {
	p, err := uc.loadProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	company, location, role, description, period, tech, err := buildWorkExperienceFields(input.Experience)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	experienceID := p.AddWorkExperience(company, location, role, description, period, tech, time.Now().UTC())

	updated, err := uc.saveProfile(ctx, p)
	if err != nil {
		return nil, err
	}
	return &AddWorkExperienceOutput{ExperienceID: experienceID, Profile: updated}, nil
}

type UpdateWorkExperienceInput struct {
	ProfileID    uuid.UUID
	ExperienceID uuid.UUID
	Experience   WorkExperienceInput
}

type UpdateWorkExperienceOutput struct {
	Profile *profile.DeveloperProfile
}

func (uc *ManageExperienceUseCase) UpdateWorkExperience(ctx context.Context, input UpdateWorkExperienceInput) (*UpdateWorkExperienceOutput, error) {
	p, err := uc.loadProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	company, location, role, description, period, tech, err := buildWorkExperienceFields(input.Experience)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	if err := p.UpdateWorkExperience(input.ExperienceID, company, location, role, description, period, tech, time.Now().UTC()); err != nil {
		return nil, mapDomainErr(err, "work experience", input.ExperienceID.String())
	}

	updated, err := uc.saveProfile(ctx, p)
	if err != nil {
		return nil, err
	}
	return &UpdateWorkExperienceOutput{Profile: updated}, nil
}

type RemoveWorkExperienceInput struct {
	ProfileID    uuid.UUID
	ExperienceID uuid.UUID
}

type RemoveWorkExperienceOutput struct {
	Profile *profile.DeveloperProfile
}

func (uc *ManageExperienceUseCase) RemoveWorkExperience(ctx context.Context, input RemoveWorkExperienceInput) (*RemoveWorkExperienceOutput, error) {
	p, err := uc.loadProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	if err := p.RemoveWorkExperience(input.ExperienceID, time.Now().UTC()); err != nil {
		return nil, mapDomainErr(err, "work experience", input.ExperienceID.String())
	}

	updated, err := uc.saveProfile(ctx, p)
	if err != nil {
		return nil, err
	}
	return &RemoveWorkExperienceOutput{Profile: updated}, nil
}

func (uc *ManageExperienceUseCase) loadProfile(ctx context.Context, id uuid.UUID) (*profile.DeveloperProfile, error) {
	p, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NewNotFound("profile", id.String())
	}
	return p, nil
}

func (uc *ManageExperienceUseCase) saveProfile(ctx context.Context, p *profile.DeveloperProfile) (*profile.DeveloperProfile, error) {
	updated, err := uc.profileRepo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NewNotFound("profile", p.ID().String())
	}
	publishProfileEvent(ctx, uc.events, uc.logger, event.ProfileUpdated, updated.ID())
	return updated, nil
}
