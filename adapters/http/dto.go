package http

import (
	"time"

	profileUC "github.com/khoavn/devfolio/internal/application/usecase/profile"
	"github.com/khoavn/devfolio/internal/domain/profile"
)

// Profile DTOs

type ContactDTO struct {
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Website *string `json:"website,omitempty"`
	City    *string `json:"city,omitempty"`
	Country *string `json:"country,omitempty"`
}

type SocialLinksDTO struct {
	LinkedIn *string `json:"linkedin,omitempty"`
	GitHub   *string `json:"github,omitempty"`
	Twitter  *string `json:"twitter,omitempty"`
	Telegram *string `json:"telegram,omitempty"`
}

type ProjectDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	IconURL     *string  `json:"icon_url,omitempty"`
	LinkURL     *string  `json:"link_url,omitempty"`
	TechStack   []string `json:"tech_stack"`
}

type WorkExperienceDTO struct {
	ID          string     `json:"id"`
	Company     string     `json:"company"`
	City        *string    `json:"city,omitempty"`
	Country     *string    `json:"country,omitempty"`
	Role        string     `json:"role"`
	Description *string    `json:"description,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	TechStack   []string   `json:"tech_stack"`
}

type ProfileDTO struct {
	ID                string              `json:"id"`
	FirstName         string              `json:"first_name"`
	LastName          string              `json:"last_name"`
	Role              *string             `json:"role,omitempty"`
	Summary           *string             `json:"summary,omitempty"`
	AvatarURL         *string             `json:"avatar_url,omitempty"`
	OpenToWork        bool                `json:"open_to_work"`
	YearsOfExperience int                 `json:"years_of_experience"`
	Verification      int                 `json:"verification"`
	VerificationLabel string              `json:"verification_label"`
	Contact           ContactDTO          `json:"contact"`
	SocialLinks       SocialLinksDTO      `json:"social_links"`
	Skills            []string            `json:"skills"`
	Projects          []ProjectDTO        `json:"projects"`
	WorkExperience    []WorkExperienceDTO `json:"work_experience"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

type ProfileSummaryDTO struct {
	ID                string   `json:"id"`
	FirstName         string   `json:"first_name"`
	LastName          string   `json:"last_name"`
	Role              *string  `json:"role,omitempty"`
	AvatarURL         *string  `json:"avatar_url,omitempty"`
	OpenToWork        bool     `json:"open_to_work"`
	YearsOfExperience int      `json:"years_of_experience"`
	Verification      int      `json:"verification"`
	Skills            []string `json:"skills"`
}

type CatalogPageDTO struct {
	Items      []ProfileSummaryDTO `json:"items"`
	TotalCount int64               `json:"total_count"`
	PageNumber int                 `json:"page_number"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}

func ToProfileDTO(p *profile.DeveloperProfile) ProfileDTO {
	skills := make([]string, len(p.Skills()))
	for i, s := range p.Skills() {
		skills[i] = s.Value()
	}

	projects := make([]ProjectDTO, len(p.Projects()))
	for i, item := range p.Projects() {
		projects[i] = toProjectDTO(item)
	}

	experience := make([]WorkExperienceDTO, len(p.WorkExperience()))
	for i, item := range p.WorkExperience() {
		experience[i] = toWorkExperienceDTO(item)
	}

	contact := p.Contact()
	dto := ProfileDTO{
		ID:                p.ID().String(),
		FirstName:         p.Name().First(),
		LastName:          p.Name().Last(),
		Summary:           p.Summary(),
		OpenToWork:        p.OpenToWork(),
		YearsOfExperience: p.YearsOfExperience().Value(),
		Verification:      int(p.Verification()),
		VerificationLabel: p.Verification().String(),
		Contact: ContactDTO{
			Email: contact.Email().Value(),
		},
		SocialLinks:    toSocialLinksDTO(p.Social()),
		Skills:         skills,
		Projects:       projects,
		WorkExperience: experience,
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}

	if role := p.Role(); role != nil {
		v := role.Value()
		dto.Role = &v
	}
	if avatar := p.Avatar(); avatar != nil {
		v := avatar.ImageURL().Value()
		dto.AvatarURL = &v
	}
	if phone := contact.Phone(); phone != nil {
		v := phone.Value()
		dto.Contact.Phone = &v
	}
	if website := contact.Website(); website != nil {
		v := website.Value()
		dto.Contact.Website = &v
	}
	if loc := contact.Location(); loc != nil {
		if city := loc.City(); city != "" {
			dto.Contact.City = &city
		}
		if country := loc.Country(); country != "" {
			dto.Contact.Country = &country
		}
	}

	return dto
}

func ToProfileSummaryDTO(p *profile.DeveloperProfile) ProfileSummaryDTO {
	skills := make([]string, len(p.Skills()))
	for i, s := range p.Skills() {
		skills[i] = s.Value()
	}

	dto := ProfileSummaryDTO{
		ID:                p.ID().String(),
		FirstName:         p.Name().First(),
		LastName:          p.Name().Last(),
		OpenToWork:        p.OpenToWork(),
		YearsOfExperience: p.YearsOfExperience().Value(),
		Verification:      int(p.Verification()),
		Skills:            skills,
	}
	if role := p.Role(); role != nil {
		v := role.Value()
		dto.Role = &v
	}
	if avatar := p.Avatar(); avatar != nil {
		v := avatar.ImageURL().Value()
		dto.AvatarURL = &v
	}
	return dto
}

func toProjectDTO(item profile.ProjectItem) ProjectDTO {
	tech := make([]string, len(item.TechStack()))
	for i, t := range item.TechStack() {
		tech[i] = t.Value()
	}

	dto := ProjectDTO{
		ID:        item.ID().String(),
		Name:      item.Name().Value(),
		TechStack: tech,
	}
	if desc := item.Description(); desc != nil {
		v := desc.Value()
		dto.Description = &v
	}
	if icon := item.Icon(); icon != nil {
		v := icon.ImageURL().Value()
		dto.IconURL = &v
	}
	if link := item.Link().URL(); link != nil {
		v := link.Value()
		dto.LinkURL = &v
	}
	return dto
}

func toWorkExperienceDTO(item profile.WorkExperienceItem) WorkExperienceDTO {
	tech := make([]string, len(item.TechStack()))
	for i, t := range item.TechStack() {
		tech[i] = t.Value()
	}

	dto := WorkExperienceDTO{
		ID:        item.ID().String(),
		Company:   item.Company().Value(),
		Role:      item.Role().Value(),
		StartDate: item.Period().Start(),
		EndDate:   item.Period().End(),
		TechStack: tech,
	}
	if loc := item.Location(); loc != nil {
		if city := loc.City(); city != "" {
			dto.City = &city
		}
		if country := loc.Country(); country != "" {
			dto.Country = &country
		}
	}
	if desc := item.Description(); desc != nil {
		v := desc.Value()
		dto.Description = &v
	}
	return dto
}

func toSocialLinksDTO(s profile.SocialLinks) SocialLinksDTO {
	var dto SocialLinksDTO
	if u := s.LinkedIn(); u != nil {
		v := u.Value()
		dto.LinkedIn = &v
	}
	if u := s.GitHub(); u != nil {
		v := u.Value()
		dto.GitHub = &v
	}
	if u := s.Twitter(); u != nil {
		v := u.Value()
		dto.Twitter = &v
	}
	if u := s.Telegram(); u != nil {
		v := u.Value()
		dto.Telegram = &v
	}
	return dto
}

// Request bodies

type ContactRequest struct {
	Email   string  `json:"email" binding:"required"`
	Phone   *string `json:"phone"`
	Website *string `json:"website"`
	City    *string `json:"city"`
	Country *string `json:"country"`
}

type SocialLinksRequest struct {
	LinkedIn *string `json:"linkedin"`
	GitHub   *string `json:"github"`
	Twitter  *string `json:"twitter"`
	Telegram *string `json:"telegram"`
}

type CreateProfileRequest struct {
	UserID            string             `json:"user_id" binding:"required,uuid"`
	FirstName         string             `json:"first_name" binding:"required"`
	LastName          string             `json:"last_name" binding:"required"`
	Role              *string            `json:"role"`
	Summary           *string            `json:"summary"`
	AvatarURL         *string            `json:"avatar_url"`
	OpenToWork        bool               `json:"open_to_work"`
	YearsOfExperience int                `json:"years_of_experience"`
	Verification      int                `json:"verification"`
	Contact           ContactRequest     `json:"contact" binding:"required"`
	SocialLinks       SocialLinksRequest `json:"social_links"`
	Skills            []string           `json:"skills"`
}

type UpdateProfileRequest struct {
	FirstName         string             `json:"first_name" binding:"required"`
	LastName          string             `json:"last_name" binding:"required"`
	Role              *string            `json:"role"`
	Summary           *string            `json:"summary"`
	AvatarURL         *string            `json:"avatar_url"`
	OpenToWork        bool               `json:"open_to_work"`
	YearsOfExperience int                `json:"years_of_experience"`
	Verification      int                `json:"verification"`
	Contact           ContactRequest     `json:"contact" binding:"required"`
	SocialLinks       SocialLinksRequest `json:"social_links"`
	Skills            []string           `json:"skills"`
}

type ProjectRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description *string  `json:"description"`
	IconURL     *string  `json:"icon_url"`
	LinkURL     *string  `json:"link_url"`
	TechStack   []string `json:"tech_stack"`
}

type WorkExperienceRequest struct {
	Company     string     `json:"company" binding:"required"`
	City        *string    `json:"city"`
	Country     *string    `json:"country"`
	Role        string     `json:"role" binding:"required"`
	Description *string    `json:"description"`
	StartDate   time.Time  `json:"start_date" binding:"required"`
	EndDate     *time.Time `json:"end_date"`
	TechStack   []string   `json:"tech_stack"`
}

type ReplaceSkillsRequest struct {
	Skills []string `json:"skills"`
}

type SkillRequest struct {
	Skill string `json:"skill" binding:"required"`
}

func (r ContactRequest) toInput() profileUC.ContactInput {
	return profileUC.ContactInput{
		Email:   r.Email,
		Phone:   r.Phone,
		Website: r.Website,
		City:    r.City,
		Country: r.Country,
	}
}

func (r SocialLinksRequest) toInput() profileUC.SocialInput {
	return profileUC.SocialInput{
		LinkedIn: r.LinkedIn,
		GitHub:   r.GitHub,
		Twitter:  r.Twitter,
		Telegram: r.Telegram,
	}
}

func (r ProjectRequest) toInput() profileUC.ProjectInput {
	return profileUC.ProjectInput{
		Name:        r.Name,
		Description: r.Description,
		IconURL:     r.IconURL,
		LinkURL:     r.LinkURL,
		TechStack:   r.TechStack,
	}
}

func (r WorkExperienceRequest) toInput() profileUC.WorkExperienceInput {
	return profileUC.WorkExperienceInput{
		Company:     r.Company,
		City:        r.City,
		Country:     r.Country,
		Role:        r.Role,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		TechStack:   r.TechStack,
	}
}
