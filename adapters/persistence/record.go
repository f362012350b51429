package persistence

import (
	"time"

	"github.com/google/uuid"

	"github.com/khoavn/devfolio/internal/domain/profile"
)

// profileRecord is the denormalized storage shape of an aggregate: every
// value object flattened to primitives, children carried inline with their
// own identities. The Mongo adapter persists it as the document itself; the
// Redis cache stores its JSON form. The Postgres adapter flattens to columns
// instead but reuses toDomain for rehydration.
type profileRecord struct {
	ID                 string                 `bson:"_id" json:"id"`
	FirstName          string                 `bson:"firstName" json:"firstName"`
	LastName           string                 `bson:"lastName" json:"lastName"`
	Role               *string                `bson:"role,omitempty" json:"role,omitempty"`
	Summary            *string                `bson:"summary,omitempty" json:"summary,omitempty"`
	AvatarURL          *string                `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	Phone              *string                `bson:"phone,omitempty" json:"phone,omitempty"`
	OpenToWork         bool                   `bson:"openToWork" json:"openToWork"`
	YearsOfExperience  int                    `bson:"yearsOfExperience" json:"yearsOfExperience"`
	VerificationStatus int                    `bson:"verificationStatus" json:"verificationStatus"`
	Email              string                 `bson:"email" json:"email"`
	Website            *string                `bson:"website,omitempty" json:"website,omitempty"`
	Location           *locationRecord        `bson:"location,omitempty" json:"location,omitempty"`
	SocialLinks        *socialLinksRecord     `bson:"socialLinks,omitempty" json:"socialLinks,omitempty"`
	Skills             []string               `bson:"skills" json:"skills"`
	Projects           []projectRecord        `bson:"projects" json:"projects"`
	WorkExperience     []workExperienceRecord `bson:"workExperience" json:"workExperience"`
	CreatedAt          time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time              `bson:"updatedAt" json:"updatedAt"`
}

type locationRecord struct {
	City    *string `bson:"city,omitempty" json:"city,omitempty"`
	Country *string `bson:"country,omitempty" json:"country,omitempty"`
}

type socialLinksRecord struct {
	LinkedIn *string `bson:"linkedIn,omitempty" json:"linkedIn,omitempty"`
	GitHub   *string `bson:"gitHub,omitempty" json:"gitHub,omitempty"`
	Twitter  *string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Telegram *string `bson:"telegram,omitempty" json:"telegram,omitempty"`
}

type projectRecord struct {
	ID          string   `bson:"id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	Description *string  `bson:"description,omitempty" json:"description,omitempty"`
	IconURL     *string  `bson:"iconUrl,omitempty" json:"iconUrl,omitempty"`
	LinkURL     *string  `bson:"linkUrl,omitempty" json:"linkUrl,omitempty"`
	TechStack   []string `bson:"techStack" json:"techStack"`
}

type workExperienceRecord struct {
	ID          string          `bson:"id" json:"id"`
	Company     string          `bson:"company" json:"company"`
	Location    *locationRecord `bson:"location,omitempty" json:"location,omitempty"`
	Role        string          `bson:"role" json:"role"`
	Description *string         `bson:"description,omitempty" json:"description,omitempty"`
	StartDate   time.Time       `bson:"startDate" json:"startDate"`
	EndDate     *time.Time      `bson:"endDate,omitempty" json:"endDate,omitempty"`
	TechStack   []string        `bson:"techStack" json:"techStack"`
}

func newProfileRecord(p *profile.DeveloperProfile) *profileRecord {
	contact := p.Contact()
	rec := &profileRecord{
		ID:                 p.ID().String(),
		FirstName:          p.Name().First(),
		LastName:           p.Name().Last(),
		Summary:            p.Summary(),
		OpenToWork:         p.OpenToWork(),
		YearsOfExperience:  p.YearsOfExperience().Value(),
		VerificationStatus: int(p.Verification()),
		Email:              contact.Email().Value(),
		Skills:             skillValues(p.Skills()),
		Projects:           make([]projectRecord, 0, len(p.Projects())),
		WorkExperience:     make([]workExperienceRecord, 0, len(p.WorkExperience())),
		CreatedAt:          p.CreatedAt(),
		UpdatedAt:          p.UpdatedAt(),
	}
	if role := p.Role(); role != nil {
		v := role.Value()
		rec.Role = &v
	}
	if avatar := p.Avatar(); avatar != nil {
		v := avatar.ImageURL().Value()
		rec.AvatarURL = &v
	}
	if phone := contact.Phone(); phone != nil {
		v := phone.Value()
		rec.Phone = &v
	}
	if website := contact.Website(); website != nil {
		v := website.Value()
		rec.Website = &v
	}
	rec.Location = newLocationRecord(contact.Location())
	rec.SocialLinks = newSocialLinksRecord(p.Social())
	for _, item := range p.Projects() {
		rec.Projects = append(rec.Projects, newProjectRecord(item))
	}
	for _, item := range p.WorkExperience() {
		rec.WorkExperience = append(rec.WorkExperience, newWorkExperienceRecord(item))
	}
	return rec
}

func newLocationRecord(loc *profile.Location) *locationRecord {
	if loc == nil {
		return nil
	}
	rec := &locationRecord{}
	if loc.City() != "" {
		v := loc.City()
		rec.City = &v
	}
	if loc.Country() != "" {
		v := loc.Country()
		rec.Country = &v
	}
	return rec
}

func newSocialLinksRecord(social profile.SocialLinks) *socialLinksRecord {
	rec := &socialLinksRecord{
		LinkedIn: optURLValue(social.LinkedIn()),
		GitHub:   optURLValue(social.GitHub()),
		Twitter:  optURLValue(social.Twitter()),
		Telegram: optURLValue(social.Telegram()),
	}
	if rec.LinkedIn == nil && rec.GitHub == nil && rec.Twitter == nil && rec.Telegram == nil {
		return nil
	}
	return rec
}

func newProjectRecord(item profile.ProjectItem) projectRecord {
	rec := projectRecord{
		ID:        item.ID().String(),
		Name:      item.Name().Value(),
		LinkURL:   optURLValue(item.Link().URL()),
		TechStack: techTagValues(item.TechStack()),
	}
	if desc := item.Description(); desc != nil {
		v := desc.Value()
		rec.Description = &v
	}
	if icon := item.Icon(); icon != nil {
		v := icon.ImageURL().Value()
		rec.IconURL = &v
	}
	return rec
}

func newWorkExperienceRecord(item profile.WorkExperienceItem) workExperienceRecord {
	rec := workExperienceRecord{
		ID:        item.ID().String(),
		Company:   item.Company().Value(),
		Location:  newLocationRecord(item.Location()),
		Role:      item.Role().Value(),
		StartDate: item.Period().Start(),
		EndDate:   item.Period().End(),
		TechStack: techTagValues(item.TechStack()),
	}
	if desc := item.Description(); desc != nil {
		v := desc.Value()
		rec.Description = &v
	}
	return rec
}

// toDomain rebuilds the aggregate through the value-object constructors and
// the rehydration factory. Stored data is expected to be valid; a failing
// constructor here means the stored representation is corrupt.
func (r *profileRecord) toDomain() (*profile.DeveloperProfile, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	name, err := profile.NewPersonName(r.FirstName, r.LastName)
	if err != nil {
		return nil, err
	}
	var role *profile.RoleTitle
	if r.Role != nil {
		v, err := profile.NewRoleTitle(*r.Role)
		if err != nil {
			return nil, err
		}
		role = &v
	}
	var avatar *profile.Avatar
	if r.AvatarURL != nil {
		u, err := profile.NewURL(*r.AvatarURL)
		if err != nil {
			return nil, err
		}
		a := profile.NewAvatar(u)
		avatar = &a
	}
	email, err := profile.NewEmailAddress(r.Email)
	if err != nil {
		return nil, err
	}
	var phone *profile.PhoneNumber
	if r.Phone != nil {
		v, err := profile.NewPhoneNumber(*r.Phone)
		if err != nil {
			return nil, err
		}
		phone = &v
	}
	website, err := optURL(r.Website)
	if err != nil {
		return nil, err
	}
	location, err := r.Location.toDomain()
	if err != nil {
		return nil, err
	}
	social, err := r.SocialLinks.toDomain()
	if err != nil {
		return nil, err
	}
	years, err := profile.NewYearsOfExperience(r.YearsOfExperience)
	if err != nil {
		return nil, err
	}
	verification, err := profile.NewVerificationLevel(r.VerificationStatus)
	if err != nil {
		return nil, err
	}
	skills, err := parseSkillTags(r.Skills)
	if err != nil {
		return nil, err
	}
	projects := make([]profile.ProjectItem, 0, len(r.Projects))
	for _, rec := range r.Projects {
		item, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		projects = append(projects, item)
	}
	experience := make([]profile.WorkExperienceItem, 0, len(r.WorkExperience))
	for _, rec := range r.WorkExperience {
		item, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		experience = append(experience, item)
	}
	return profile.FromPersistence(
		id, name, role, r.Summary, avatar,
		profile.NewContactInfo(email, phone, website, location),
		social, verification, r.OpenToWork, years,
		skills, projects, experience,
		r.CreatedAt, r.UpdatedAt,
	), nil
}

func (r *locationRecord) toDomain() (*profile.Location, error) {
	if r == nil {
		return nil, nil
	}
	city, country := "", ""
	if r.City != nil {
		city = *r.City
	}
	if r.Country != nil {
		country = *r.Country
	}
	loc, err := profile.NewLocation(city, country)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *socialLinksRecord) toDomain() (profile.SocialLinks, error) {
	if r == nil {
		return profile.NewSocialLinks(nil, nil, nil, nil), nil
	}
	linkedIn, err := optURL(r.LinkedIn)
	if err != nil {
		return profile.SocialLinks{}, err
	}
	gitHub, err := optURL(r.GitHub)
	if err != nil {
		return profile.SocialLinks{}, err
	}
	twitter, err := optURL(r.Twitter)
	if err != nil {
		return profile.SocialLinks{}, err
	}
	telegram, err := optURL(r.Telegram)
	if err != nil {
		return profile.SocialLinks{}, err
	}
	return profile.NewSocialLinks(linkedIn, gitHub, twitter, telegram), nil
}

func (r projectRecord) toDomain() (profile.ProjectItem, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return profile.ProjectItem{}, err
	}
	name, err := profile.NewProjectName(r.Name)
	if err != nil {
		return profile.ProjectItem{}, err
	}
	var description *profile.ProjectDescription
	if r.Description != nil {
		v, err := profile.NewProjectDescription(*r.Description)
		if err != nil {
			return profile.ProjectItem{}, err
		}
		description = &v
	}
	var icon *profile.ProjectIcon
	if r.IconURL != nil {
		u, err := profile.NewURL(*r.IconURL)
		if err != nil {
			return profile.ProjectItem{}, err
		}
		i := profile.NewProjectIcon(u)
		icon = &i
	}
	linkURL, err := optURL(r.LinkURL)
	if err != nil {
		return profile.ProjectItem{}, err
	}
	techStack, err := parseTechTags(r.TechStack)
	if err != nil {
		return profile.ProjectItem{}, err
	}
	return profile.ProjectItemFromPersistence(id, name, description, icon, profile.NewProjectLink(linkURL), techStack), nil
}

func (r workExperienceRecord) toDomain() (profile.WorkExperienceItem, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return profile.WorkExperienceItem{}, err
	}
	company, err := profile.NewCompanyName(r.Company)
	if err != nil {
		return profile.WorkExperienceItem{}, err
	}
	location, err := r.Location.toDomain()
	if err != nil {
		return profile.WorkExperienceItem{}, err
	}
	role, err := profile.NewRoleTitle(r.Role)
	if err != nil {
		return profile.WorkExperienceItem{}, err
	}
	var description *profile.WorkDescription
	if r.Description != nil {
		v, err := profile.NewWorkDescription(*r.Description)
		if err != nil {
			return profile.WorkExperienceItem{}, err
		}
		description = &v
	}
	period, err := profile.NewDateRange(r.StartDate, r.EndDate)
	if err != nil {
		return profile.WorkExperienceItem{}, err
	}
	techStack, err := parseTechTags(r.TechStack)
	if err != nil {
		return profile.WorkExperienceItem{}, err
	}
	return profile.WorkExperienceItemFromPersistence(id, company, location, role, description, period, techStack), nil
}

func optURLValue(u *profile.URL) *string {
	if u == nil {
		return nil
	}
	v := u.Value()
	return &v
}

func optURL(s *string) (*profile.URL, error) {
	if s == nil {
		return nil, nil
	}
	u, err := profile.NewURL(*s)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func skillValues(tags []profile.SkillTag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Value())
	}
	return out
}

func techTagValues(tags []profile.TechTag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Value())
	}
	return out
}

func parseSkillTags(values []string) ([]profile.SkillTag, error) {
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

func parseTechTags(values []string) ([]profile.TechTag, error) {
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
