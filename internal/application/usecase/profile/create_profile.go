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

type CreateProfileUseCase struct {
	profileRepo profile.Repository
	events      EventPublisher
	logger      logger.Logger
}

func NewCreateProfileUseCase(repo profile.Repository, events EventPublisher, log logger.Logger) *CreateProfileUseCase {
	return &CreateProfileUseCase{profileRepo: repo, events: events, logger: log}
}

type CreateProfileInput struct {
	// UserID doubles as the profile id: one profile per user.
	UserID            uuid.UUID
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

type CreateProfileOutput struct {
	Profile *profile.DeveloperProfile
}

func (uc *CreateProfileUseCase) Execute(ctx context.Context, input CreateProfileInput) (*CreateProfileOutput, error) {
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
	p, err := profile.NewDeveloperProfile(
		input.UserID, name, role, input.Summary, avatar,
		contact, social, verification, input.OpenToWork, now,
	)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	p.ChangeYearsOfExperience(years, now)
	if len(skills) > 0 {
		p.ReplaceSkills(skills, now)
	}

	created, err := uc.profileRepo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	publishProfileEvent(ctx, uc.events, uc.logger, event.ProfileCreated, created.ID())
	return &CreateProfileOutput{Profile: created}, nil
}
