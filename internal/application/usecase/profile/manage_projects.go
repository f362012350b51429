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

// ManageProjectsUseCase groups the portfolio-project operations that mutate a
// single profile aggregate.
type ManageProjectsUseCase struct {
	profileRepo profile.Repository
	events      EventPublisher
	logger      logger.Logger
}

func NewManageProjectsUseCase(repo profile.Repository, events EventPublisher, log logger.Logger) *ManageProjectsUseCase {
	return &ManageProjectsUseCase{profileRepo: repo, events: events, logger: log}
}

type AddProjectInput struct {
	ProfileID uuid.UUID
	Project   ProjectInput
}

type AddProjectOutput struct {
	ProjectID uuid.UUID
	Profile   *profile.DeveloperProfile
}

func (uc *ManageProjectsUseCase) AddProject(ctx context.Context, input AddProjectInput) (*AddProjectOutput, error) {
	p, err := uc.loadProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	name, description, icon, link, tech, err := buildProjectFields(input.Project)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	projectID := p.AddProject(name, description, icon, link, tech, time.Now().UTC())

	updated, err := uc.saveProfile(ctx, p)
	if err != nil {
		return nil, err
	}
	return &AddProjectOutput{ProjectID: projectID, Profile: updated}, nil
}

type UpdateProjectInput struct {
	ProfileID uuid.UUID
	ProjectID uuid.UUID
	Project   ProjectInput
}

type UpdateProjectOutput struct {
	Profile *profile.DeveloperProfile
}

func (uc *ManageProjectsUseCase) UpdateProject(ctx context.Context, input UpdateProjectInput) (*UpdateProjectOutput, error) {
	p, err := uc.loadProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	name, description, icon, link, tech, err := buildProjectFields(input.Project)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	if err := p.UpdateProject(input.ProjectID, name, description, icon, link, tech, time.Now().UTC()); err != nil {
		return nil, mapDomainErr(err, "project", input.ProjectID.String())
	}

	updated, err := uc.saveProfile(ctx, p)
	if err != nil {
		return nil, err
	}
	return &UpdateProjectOutput{Profile: updated}, nil
}

type RemoveProjectInput struct {
	ProfileID uuid.UUID
	ProjectID uuid.UUID
}

type RemoveProjectOutput struct {
	Profile *profile.DeveloperProfile
}

func (uc *ManageProjectsUseCase) RemoveProject(ctx context.Context, input RemoveProjectInput) (*RemoveProjectOutput, error) {
	p, err := uc.loadProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	if err := p.RemoveProject(input.ProjectID, time.Now().UTC()); err != nil {
		return nil, mapDomainErr(err, "project", input.ProjectID.String())
	}

	updated, err := uc.saveProfile(ctx, p)
	if err != nil {
		return nil, err
	}
	return &RemoveProjectOutput{Profile: updated}, nil
}

func (uc *ManageProjectsUseCase) loadProfile(ctx context.Context, id uuid.UUID) (*profile.DeveloperProfile, error) {
	p, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NewNotFound("profile", id.String())
	}
	return p, nil
}

func (uc *ManageProjectsUseCase) saveProfile(ctx context.Context, p *profile.DeveloperProfile) (*profile.DeveloperProfile, error) {
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
