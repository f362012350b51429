package profile

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProjectNotFound        = errors.New("project not found")
	ErrWorkExperienceNotFound = errors.New("work experience not found")
)

// DeveloperProfile is the aggregate root. Its identity is the owning user's
// id (one-to-one, not a separately generated key). All mutation goes through
// its methods; every mutator takes the current timestamp explicitly so the
// aggregate never reads a clock of its own.
type DeveloperProfile struct {
	id                uuid.UUID
	name              PersonName
	role              *RoleTitle
	summary           *string
	avatar            *Avatar
	openToWork        bool
	yearsOfExperience YearsOfExperience
	contact           ContactInfo
	social            SocialLinks
	verification      VerificationLevel
	skills            []SkillTag
	projects          []ProjectItem
	experience        []WorkExperienceItem
	createdAt         time.Time
	updatedAt         time.Time
}

// NewDeveloperProfile creates a fresh aggregate; created-at equals updated-at
// equals now.
func NewDeveloperProfile(
	id uuid.UUID,
	name PersonName,
	role *RoleTitle,
	summary *string,
	avatar *Avatar,
	contact ContactInfo,
	social SocialLinks,
	verification VerificationLevel,
	openToWork bool,
	now time.Time,
) (*DeveloperProfile, error) {
	if id == uuid.Nil {
		return nil, invalidf("profile id must not be empty")
	}
	ts := normalizeTime(now)
	return &DeveloperProfile{
		id:           id,
		name:         name,
		role:         role,
		summary:      trimOptional(summary),
		avatar:       avatar,
		openToWork:   openToWork,
		contact:      contact,
		social:       social,
		verification: verification,
		skills:       []SkillTag{},
		projects:     []ProjectItem{},
		experience:   []WorkExperienceItem{},
		createdAt:    ts,
		updatedAt:    ts,
	}, nil
}

// FromPersistence rehydrates a stored aggregate. No re-validation beyond
// value-object construction, which the adapter already performed.
func FromPersistence(
	id uuid.UUID,
	name PersonName,
	role *RoleTitle,
	summary *string,
	avatar *Avatar,
	contact ContactInfo,
	social SocialLinks,
	verification VerificationLevel,
	openToWork bool,
	years YearsOfExperience,
	skills []SkillTag,
	projects []ProjectItem,
	experience []WorkExperienceItem,
	createdAt, updatedAt time.Time,
) *DeveloperProfile {
	if skills == nil {
		skills = []SkillTag{}
	}
	if projects == nil {
		projects = []ProjectItem{}
	}
	if experience == nil {
		experience = []WorkExperienceItem{}
	}
	return &DeveloperProfile{
		id:                id,
		name:              name,
		role:              role,
		summary:           summary,
		avatar:            avatar,
		openToWork:        openToWork,
		yearsOfExperience: years,
		contact:           contact,
		social:            social,
		verification:      verification,
		skills:            skills,
		projects:          projects,
		experience:        experience,
		createdAt:         normalizeTime(createdAt),
		updatedAt:         normalizeTime(updatedAt),
	}
}

func (p *DeveloperProfile) ID() uuid.UUID                        { return p.id }
func (p *DeveloperProfile) Name() PersonName                     { return p.name }
func (p *DeveloperProfile) Role() *RoleTitle                     { return p.role }
func (p *DeveloperProfile) Summary() *string                     { return p.summary }
func (p *DeveloperProfile) Avatar() *Avatar                      { return p.avatar }
func (p *DeveloperProfile) OpenToWork() bool                     { return p.openToWork }
func (p *DeveloperProfile) YearsOfExperience() YearsOfExperience { return p.yearsOfExperience }
func (p *DeveloperProfile) Contact() ContactInfo                 { return p.contact }
func (p *DeveloperProfile) Social() SocialLinks                  { return p.social }
func (p *DeveloperProfile) Verification() VerificationLevel      { return p.verification }
func (p *DeveloperProfile) CreatedAt() time.Time                 { return p.createdAt }
func (p *DeveloperProfile) UpdatedAt() time.Time                 { return p.updatedAt }

func (p *DeveloperProfile) Skills() []SkillTag {
	out := make([]SkillTag, len(p.skills))
	copy(out, p.skills)
	return out
}

func (p *DeveloperProfile) Projects() []ProjectItem {
	out := make([]ProjectItem, len(p.projects))
	copy(out, p.projects)
	return out
}

func (p *DeveloperProfile) WorkExperience() []WorkExperienceItem {
	out := make([]WorkExperienceItem, len(p.experience))
	copy(out, p.experience)
	return out
}

// ---- field mutators ----

func (p *DeveloperProfile) ChangeName(name PersonName, now time.Time) {
	p.name = name
	p.touch(now)
}

func (p *DeveloperProfile) ChangeRole(role *RoleTitle, now time.Time) {
	p.role = role
	p.touch(now)
}

func (p *DeveloperProfile) ChangeSummary(summary *string, now time.Time) {
	p.summary = trimOptional(summary)
	p.touch(now)
}

func (p *DeveloperProfile) ChangeAvatar(avatar *Avatar, now time.Time) {
	p.avatar = avatar
	p.touch(now)
}

func (p *DeveloperProfile) SetOpenToWork(openToWork bool, now time.Time) {
	p.openToWork = openToWork
	p.touch(now)
}

func (p *DeveloperProfile) ChangeYearsOfExperience(years YearsOfExperience, now time.Time) {
	p.yearsOfExperience = years
	p.touch(now)
}

func (p *DeveloperProfile) ChangeContact(contact ContactInfo, now time.Time) {
	p.contact = contact
	p.touch(now)
}

func (p *DeveloperProfile) ChangeSocialLinks(social SocialLinks, now time.Time) {
	p.social = social
	p.touch(now)
}

func (p *DeveloperProfile) SetVerified(level VerificationLevel, now time.Time) {
	p.verification = level
	p.touch(now)
}

// ---- skill operations ----

// AddSkill is idempotent: adding a tag that is already present neither
// duplicates it nor touches the timestamp.
func (p *DeveloperProfile) AddSkill(tag SkillTag, now time.Time) {
	for _, s := range p.skills {
		if s.Value() == tag.Value() {
			return
		}
	}
	p.skills = append(p.skills, tag)
	p.touch(now)
}

// RemoveSkill drops the tag if present. Removing an absent tag is a no-op
// and leaves the timestamp alone.
func (p *DeveloperProfile) RemoveSkill(tag SkillTag, now time.Time) {
	for i, s := range p.skills {
		if s.Value() == tag.Value() {
			p.skills = append(p.skills[:i], p.skills[i+1:]...)
			p.touch(now)
			return
		}
	}
}

// ReplaceSkills swaps the whole set, deduplicated, and touches the timestamp
// unconditionally.
func (p *DeveloperProfile) ReplaceSkills(tags []SkillTag, now time.Time) {
	seen := make(map[string]struct{}, len(tags))
	out := make([]SkillTag, 0, len(tags))
	for _, t := range tags {
		if t.Value() == "" {
			continue
		}
		if _, ok := seen[t.Value()]; ok {
			continue
		}
		seen[t.Value()] = struct{}{}
		out = append(out, t)
	}
	p.skills = out
	p.touch(now)
}

// ---- project operations ----

// AddProject appends a new project with a fresh identity and returns it.
func (p *DeveloperProfile) AddProject(name ProjectName, description *ProjectDescription, icon *ProjectIcon, link ProjectLink, techStack []TechTag, now time.Time) uuid.UUID {
	item := newProjectItem(uuid.New(), name, description, icon, link, techStack)
	p.projects = append(p.projects, item)
	p.touch(now)
	return item.ID()
}

// UpdateProject replaces every field of the project with the given identity,
// including its tech stack.
func (p *DeveloperProfile) UpdateProject(id uuid.UUID, name ProjectName, description *ProjectDescription, icon *ProjectIcon, link ProjectLink, techStack []TechTag, now time.Time) error {
	for i := range p.projects {
		if p.projects[i].ID() == id {
			p.projects[i].update(name, description, icon, link, techStack)
			p.touch(now)
			return nil
		}
	}
	return ErrProjectNotFound
}

// RemoveProject removes by identity. An unknown identity is an error and
// does not touch the timestamp.
func (p *DeveloperProfile) RemoveProject(id uuid.UUID, now time.Time) error {
	for i := range p.projects {
		if p.projects[i].ID() == id {
			p.projects = append(p.projects[:i], p.projects[i+1:]...)
			p.touch(now)
			return nil
		}
	}
	return ErrProjectNotFound
}

// ---- work experience operations ----

func (p *DeveloperProfile) AddWorkExperience(company CompanyName, location *Location, role RoleTitle, description *WorkDescription, period DateRange, techStack []TechTag, now time.Time) uuid.UUID {
	item := newWorkExperienceItem(uuid.New(), company, location, role, description, period, techStack)
	p.experience = append(p.experience, item)
	p.touch(now)
	return item.ID()
}

func (p *DeveloperProfile) UpdateWorkExperience(id uuid.UUID, company CompanyName, location *Location, role RoleTitle, description *WorkDescription, period DateRange, techStack []TechTag, now time.Time) error {
	for i := range p.experience {
		if p.experience[i].ID() == id {
			p.experience[i].update(company, location, role, description, period, techStack)
			p.touch(now)
			return nil
		}
	}
	return ErrWorkExperienceNotFound
}

func (p *DeveloperProfile) RemoveWorkExperience(id uuid.UUID, now time.Time) error {
	for i := range p.experience {
		if p.experience[i].ID() == id {
			p.experience = append(p.experience[:i], p.experience[i+1:]...)
			p.touch(now)
			return nil
		}
	}
	return ErrWorkExperienceNotFound
}

func (p *DeveloperProfile) touch(now time.Time) {
	p.updatedAt = normalizeTime(now)
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
