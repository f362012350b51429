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

type UpdateProfileUseCase struct {
	profileRepo profile.Repository
	events      EventPublisher
	logger      logger.Logger
}

func NewUpdateProfileUseCase(repo profile.Repository, events EventPublisher, log logger.Logger) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{profileRepo: repo, events: events, logger: log}
}

// UpdateProfileInput replaces the root-level fields of the profile. Child
// collections are managed through their own use cases.
type UpdateProfileInput struct {
	ProfileID         uuid.UUID
	FirstName         string
	LastName          string
	Role              *string
	Summary           *string
	AvatarURL         *string
	OpenToWork        bool
	YearsOfExperience int
	Verification      int
	Contact           ContactInput
	Social            SocialInput
	Skills            []string
}

type UpdateProfileOutput struct {
	Profile *profile.DeveloperProfile
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	p, err := uc.profileRepo.GetByID(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NewNotFound("profile", input.ProfileID.String())
	}

	name, err := profile.NewPersonName(input.FirstName, input.LastName)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	role, err := buildOptRole(input.Role)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	avatar, err := buildOptAvatar(input.AvatarURL)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	contact, err := buildContact(input.Contact)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	social, err := buildSocial(input.Social)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	verification, err := profile.NewVerificationLevel(input.Verification)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	years, err := profile.NewYearsOfExperience(input.YearsOfExperience)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	skills, err := buildSkillTags(input.Skills)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	now := time.Now().UTC()
	p.ChangeName(name, now)
	p.ChangeRole(role, now)
	p.ChangeSummary(input.Summary, now)
	p.ChangeAvatar(avatar, now)
	p.SetOpenToWork(input.OpenToWork, now)
	p.ChangeYearsOfExperience(years, now)
	p.ChangeContact(contact, now)
	p.ChangeSocialLinks(social, now)
	p.SetVerified(verification, now)
	p.ReplaceSkills(skills, now)

	updated, err := uc.profileRepo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NewNotFound("profile", input.ProfileID.String())
	}

	publishProfileEvent(ctx, uc.events, uc.logger, event.ProfileUpdated, updated.ID())
	return &UpdateProfileOutput{Profile: updated}, nil
}

type DeleteProfileUseCase struct {
	profileRepo profile.Repository
	events      EventPublisher
	logger      logger.Logger
}

func NewDeleteProfileUseCase(repo profile.Repository, events EventPublisher, log logger.Logger) *DeleteProfileUseCase {
	return &DeleteProfileUseCase{profileRepo: repo, events: events, logger: log}
}

type DeleteProfileInput struct {
	ProfileID uuid.UUID
}

func (uc *DeleteProfileUseCase) Execute(ctx context.Context, input DeleteProfileInput) error {
	deleted, err := uc.profileRepo.Delete(ctx, input.ProfileID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NewNotFound("profile", input.ProfileID.String())
	}
	publishProfileEvent(ctx, uc.events, uc.logger, event.ProfileDeleted, input.ProfileID)
	return nil
}
