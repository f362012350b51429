package profile

import (
	"github.com/google/uuid"
)

// WorkExperienceItem is an identity-bearing child of the profile aggregate,
// owned exclusively by it. Same lifecycle shape as ProjectItem.
type WorkExperienceItem struct {
	id          uuid.UUID
	company     CompanyName
	location    *Location
	role        RoleTitle
	description *WorkDescription
	period      DateRange
	techStack   []TechTag
}

func newWorkExperienceItem(id uuid.UUID, company CompanyName, location *Location, role RoleTitle, description *WorkDescription, period DateRange, techStack []TechTag) WorkExperienceItem {
	return WorkExperienceItem{
		id:          id,
		company:     company,
		location:    location,
		role:        role,
		description: description,
		period:      period,
		techStack:   dedupTechTags(techStack),
	}
}

// WorkExperienceItemFromPersistence rehydrates a stored work entry. Used by
// the persistence adapters only.
func WorkExperienceItemFromPersistence(id uuid.UUID, company CompanyName, location *Location, role RoleTitle, description *WorkDescription, period DateRange, techStack []TechTag) WorkExperienceItem {
	return newWorkExperienceItem(id, company, location, role, description, period, techStack)
}

func (w WorkExperienceItem) ID() uuid.UUID                 { return w.id }
func (w WorkExperienceItem) Company() CompanyName          { return w.company }
func (w WorkExperienceItem) Location() *Location           { return w.location }
func (w WorkExperienceItem) Role() RoleTitle               { return w.role }
func (w WorkExperienceItem) Description() *WorkDescription { return w.description }
func (w WorkExperienceItem) Period() DateRange             { return w.period }

func (w WorkExperienceItem) TechStack() []TechTag {
	out := make([]TechTag, len(w.techStack))
	copy(out, w.techStack)
	return out
}

func (w *WorkExperienceItem) update(company CompanyName, location *Location, role RoleTitle, description *WorkDescription, period DateRange, techStack []TechTag) {
	w.company = company
	w.location = location
	w.role = role
	w.description = description
	w.period = period
	w.techStack = dedupTechTags(techStack)
}
