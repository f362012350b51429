package profile

import "github.com/google/uuid"

// Equal reports whether two aggregates carry the same domain state. It is
// the single comparison both adapter test suites (and any future adapter)
// rely on, so cross-backend parity is checked in one place.
//
// Child collections are matched by identity, order-insensitively: the
// relational schema has no position column, so only the set of children and
// their fields is observable across backends. Skill and tech-tag sets are
// likewise compared as sets.
func Equal(a, b *DeveloperProfile) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.id != b.id {
		return false
	}
	if a.name != b.name {
		return false
	}
	if !equalOptRole(a.role, b.role) || !equalOptString(a.summary, b.summary) || !equalOptAvatar(a.avatar, b.avatar) {
		return false
	}
	if a.openToWork != b.openToWork || a.yearsOfExperience != b.yearsOfExperience || a.verification != b.verification {
		return false
	}
	if !equalContact(a.contact, b.contact) || !equalSocial(a.social, b.social) {
		return false
	}
	if !a.createdAt.Equal(b.createdAt) || !a.updatedAt.Equal(b.updatedAt) {
		return false
	}
	if !equalSkillSets(a.skills, b.skills) {
		return false
	}
	if !equalProjectSets(a.projects, b.projects) {
		return false
	}
	return equalExperienceSets(a.experience, b.experience)
}

func equalContact(a, b ContactInfo) bool {
	if a.email != b.email {
		return false
	}
	if !equalOptPhone(a.phone, b.phone) || !equalOptURL(a.website, b.website) {
		return false
	}
	return equalOptLocation(a.location, b.location)
}

func equalSocial(a, b SocialLinks) bool {
	return equalOptURL(a.linkedIn, b.linkedIn) &&
		equalOptURL(a.gitHub, b.gitHub) &&
		equalOptURL(a.twitter, b.twitter) &&
		equalOptURL(a.telegram, b.telegram)
}

func equalSkillSets(a, b []SkillTag) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t.Value()] = struct{}{}
	}
	for _, t := range b {
		if _, ok := set[t.Value()]; !ok {
			return false
		}
	}
	return true
}

func equalTechTagSets(a, b []TechTag) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t.Value()] = struct{}{}
	}
	for _, t := range b {
		if _, ok := set[t.Value()]; !ok {
			return false
		}
	}
	return true
}

func equalProjectSets(a, b []ProjectItem) bool {
	if len(a) != len(b) {
		return false
	}
	byID := make(map[uuid.UUID]ProjectItem, len(a))
	for _, item := range a {
		byID[item.id] = item
	}
	for _, item := range b {
		other, ok := byID[item.id]
		if !ok {
			return false
		}
		if !equalProject(item, other) {
			return false
		}
	}
	return true
}

func equalProject(a, b ProjectItem) bool {
	if a.name != b.name {
		return false
	}
	if !equalOptProjectDescription(a.description, b.description) {
		return false
	}
	if !equalOptIcon(a.icon, b.icon) {
		return false
	}
	if !equalOptURL(a.link.url, b.link.url) {
		return false
	}
	return equalTechTagSets(a.techStack, b.techStack)
}

func equalExperienceSets(a, b []WorkExperienceItem) bool {
	if len(a) != len(b) {
		return false
	}
	byID := make(map[uuid.UUID]WorkExperienceItem, len(a))
	for _, item := range a {
		byID[item.id] = item
	}
	for _, item := range b {
		other, ok := byID[item.id]
		if !ok {
			return false
		}
		if !equalExperience(item, other) {
			return false
		}
	}
	return true
}

func equalExperience(a, b WorkExperienceItem) bool {
	if a.company != b.company || a.role != b.role {
		return false
	}
	if !equalOptLocation(a.location, b.location) {
		return false
	}
	if !equalOptWorkDescription(a.description, b.description) {
		return false
	}
	if !a.period.start.Equal(b.period.start) {
		return false
	}
	if (a.period.end == nil) != (b.period.end == nil) {
		return false
	}
	if a.period.end != nil && !a.period.end.Equal(*b.period.end) {
		return false
	}
	return equalTechTagSets(a.techStack, b.techStack)
}

func equalOptString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalOptURL(a, b *URL) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalOptPhone(a, b *PhoneNumber) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalOptRole(a, b *RoleTitle) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalOptAvatar(a, b *Avatar) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalOptIcon(a, b *ProjectIcon) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalOptLocation(a, b *Location) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalOptProjectDescription(a, b *ProjectDescription) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalOptWorkDescription(a, b *WorkDescription) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
