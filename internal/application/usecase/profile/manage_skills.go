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

type ManageSkillsUseCase struct {
	profileRepo profile.Repository
	events      EventPublisher
	logger      logger.Logger
}

func NewManageSkillsUseCase(repo profile.Repository, events EventPublisher, log logger.Logger) *ManageSkillsUseCase {
	return &ManageSkillsUseCase{profileRepo: repo, events: events, logger: log}
}

type ReplaceSkillsInput struct {
	ProfileID uuid.UUID
	Skills    []string
}

type SkillsOutput struct {
	Profile *profile.DeveloperProfile
}

func (uc *ManageSkillsUseCase) ReplaceSkills(ctx context.Context, input ReplaceSkillsInput) (*SkillsOutput, error) {
	p, err := uc.loadProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	skills, err := buildSkillTags(input.Skills)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	p.ReplaceSkills(skills, time.Now().UTC())

	return uc.saveProfile(ctx, p)
}

type AddSkillInput struct {
	ProfileID uuid.UUID
	Skill     string
}

func (uc *ManageSkillsUseCase) AddSkill(ctx context.Context, input AddSkillInput) (*SkillsOutput, error) {
	p, err := uc.loadProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	skill, err := profile.NewSkillTag(input.Skill)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	p.AddSkill(skill, time.Now().UTC())

	return uc.saveProfile(ctx, p)
}

type RemoveSkillInput struct {
	ProfileID uuid.UUID
	Skill     string
}

func (uc *ManageSkillsUseCase) RemoveSkill(ctx context.Context, input RemoveSkillInput) (*SkillsOutput, error) {
	p, err := uc.loadProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	skill, err := profile.NewSkillTag(input.Skill)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	p.RemoveSkill(skill, time.Now().UTC())

	return uc.saveProfile(ctx, p)
}

func (uc *ManageSkillsUseCase) loadProfile(ctx context.Context, id uuid.UUID) (*profile.DeveloperProfile, error) {
	p, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NewNotFound("profile", id.String())
	}
	return p, nil
}

func (uc *ManageSkillsUseCase) saveProfile(ctx context.Context, p *profile.DeveloperProfile) (*SkillsOutput, error) {
	updated, err := uc.profileRepo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NewNotFound("profile", p.ID().String())
	}
	publishProfileEvent(ctx, uc.events, uc.logger, event.ProfileUpdated, updated.ID())
	return &SkillsOutput{Profile: updated}, nil
}
