package profile

import (
	"errors"
	"time"

	"github.com/khoavn/devfolio/internal/domain/profile"
	"github.com/khoavn/devfolio/pkg/apperror"
)

// ContactInput carries the raw contact fields of a request; the use case
// turns them into validated value objects before they reach the aggregate.
type ContactInput struct {
	Email   string
	Phone   *string
	Website *string
	City    *string
	Country *string
}

type SocialInput struct {
	LinkedIn *string
	GitHub   *string
	Twitter  *string
	Telegram *string
}

type ProjectInput struct {
	Name        string
	Description *string
	IconURL     *string
	LinkURL     *string
	TechStack   []string
}

type WorkExperienceInput struct {
	Company     string
	City        *string
	Country     *string
	Role        string
	Description *string
	StartDate   time.Time
	EndDate     *time.Time
	TechStack   []string
}

func buildContact(in ContactInput) (profile.ContactInfo, error) {
	email, err := profile.NewEmailAddress(in.Email)
	if err != nil {
		return profile.ContactInfo{}, err
	}
	var phone *profile.PhoneNumber
	if in.Phone != nil {
		v, err := profile.NewPhoneNumber(*in.Phone)
		if err != nil {
			return profile.ContactInfo{}, err
		}
		phone = &v
	}
	website, err := buildOptURL(in.Website)
	if err != nil {
		return profile.ContactInfo{}, err
	}
	location, err := buildOptLocation(in.City, in.Country)
	if err != nil {
		return profile.ContactInfo{}, err
	}
	return profile.NewContactInfo(email, phone, website, location), nil
}

func buildSocial(in SocialInput) (profile.SocialLinks, error) {
	linkedIn, err := buildOptURL(in.LinkedIn)
	if err != nil {
		return profile.SocialLinks{}, err
	}
	gitHub, err := buildOptURL(in.GitHub)
	if err != nil {
		return profile.SocialLinks{}, err
	}
	twitter, err := buildOptURL(in.Twitter)
	if err != nil {
		return profile.SocialLinks{}, err
	}
	telegram, err := buildOptURL(in.Telegram)
	if err != nil {
		return profile.SocialLinks{}, err
	}
	return profile.NewSocialLinks(linkedIn, gitHub, twitter, telegram), nil
}

func buildOptURL(s *string) (*profile.URL, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	u, err := profile.NewURL(*s)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// buildOptLocation returns nil when both parts are absent, which is valid
// for an optional location.
func buildOptLocation(city, country *string) (*profile.Location, error) {
	c, n := "", ""
	if city != nil {
		c = *city
	}
	if country != nil {
		n = *country
	}
	if c == "" && n == "" {
		return nil, nil
	}
	loc, err := profile.NewLocation(c, n)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func buildOptRole(s *string) (*profile.RoleTitle, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	r, err := profile.NewRoleTitle(*s)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func buildOptAvatar(s *string) (*profile.Avatar, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	u, err := profile.NewURL(*s)
	if err != nil {
		return nil, err
	}
	a := profile.NewAvatar(u)
	return &a, nil
}

func buildSkillTags(values []string) ([]profile.SkillTag, error) {
	out := make([]profile.SkillTag, 0, len(values))
	for _, v := range values {
		tag, err := profile.NewSkillTag(v)
		if err != nil {
			return nil, err
		}
		out = append(out, tag)
	}
	return out, nil
}

func buildTechTags(values []string) ([]profile.TechTag, error) {
	out := make([]profile.TechTag, 0, len(values))
	for _, v := range values {
		tag, err := profile.NewTechTag(v)
		if err != nil {
			return nil, err
		}
		out = append(out, tag)
	}
	return out, nil
}

func buildProjectFields(in ProjectInput) (profile.ProjectName, *profile.ProjectDescription, *profile.ProjectIcon, profile.ProjectLink, []profile.TechTag, error) {
	name, err := profile.NewProjectName(in.Name)
	if err != nil {
		return profile.ProjectName{}, nil, nil, profile.ProjectLink{}, nil, err
	}
	var description *profile.ProjectDescription
	if in.Description != nil && *in.Description != "" {
		d, err := profile.NewProjectDescription(*in.Description)
		if err != nil {
			return profile.ProjectName{}, nil, nil, profile.ProjectLink{}, nil, err
		}
		description = &d
	}
	var icon *profile.ProjectIcon
	if in.IconURL != nil && *in.IconURL != "" {
		u, err := profile.NewURL(*in.IconURL)
		if err != nil {
			return profile.ProjectName{}, nil, nil, profile.ProjectLink{}, nil, err
		}
		i := profile.NewProjectIcon(u)
		icon = &i
	}
	linkURL, err := buildOptURL(in.LinkURL)
	if err != nil {
		return profile.ProjectName{}, nil, nil, profile.ProjectLink{}, nil, err
	}
	techStack, err := buildTechTags(in.TechStack)
	if err != nil {
		return profile.ProjectName{}, nil, nil, profile.ProjectLink{}, nil, err
	}
	return name, description, icon, profile.NewProjectLink(linkURL), techStack, nil
}

func buildWorkExperienceFields(in WorkExperienceInput) (profile.CompanyName, *profile.Location, profile.RoleTitle, *profile.WorkDescription, profile.DateRange, []profile.TechTag, error) {
	var zero profile.DateRange
	company, err := profile.NewCompanyName(in.Company)
	if err != nil {
		return profile.CompanyName{}, nil, profile.RoleTitle{}, nil, zero, nil, err
	}
	location, err := buildOptLocation(in.City, in.Country)
	if err != nil {
		return profile.CompanyName{}, nil, profile.RoleTitle{}, nil, zero, nil, err
	}
	role, err := profile.NewRoleTitle(in.Role)
	if err != nil {
		return profile.CompanyName{}, nil, profile.RoleTitle{}, nil, zero, nil, err
	}
	var description *profile.WorkDescription
	if in.Description != nil && *in.Description != "" {
		d, err := profile.NewWorkDescription(*in.Description)
		if err != nil {
			return profile.CompanyName{}, nil, profile.RoleTitle{}, nil, zero, nil, err
		}
		description = &d
	}
	period, err := profile.NewDateRange(in.StartDate, in.EndDate)
	if err != nil {
		return profile.CompanyName{}, nil, profile.RoleTitle{}, nil, zero, nil, err
	}
	techStack, err := buildTechTags(in.TechStack)
	if err != nil {
		return profile.CompanyName{}, nil, profile.RoleTitle{}, nil, zero, nil, err
	}
	return company, location, role, description, period, techStack, nil
}

// mapDomainErr lifts domain sentinels into the application error taxonomy.
func mapDomainErr(err error, resource, identifier string) error {
	switch {
	case errors.Is(err, profile.ErrValidation):
		return apperror.NewInvalidInput(err.Error(), err)
	case errors.Is(err, profile.ErrProjectNotFound),
		errors.Is(err, profile.ErrWorkExperienceNotFound):
		return apperror.NewNotFound(resource, identifier)
	}
	return err
}
