package profile

import (
	"github.com/google/uuid"
)

// ProjectItem is an identity-bearing child of the profile aggregate. It is
// created, updated and removed only through the aggregate's own methods.
type ProjectItem struct {
	id          uuid.UUID
	name        ProjectName
	description *ProjectDescription
	icon        *ProjectIcon
	link        ProjectLink
	techStack   []TechTag
}

func newProjectItem(id uuid.UUID, name ProjectName, description *ProjectDescription, icon *ProjectIcon, link ProjectLink, techStack []TechTag) ProjectItem {
	return ProjectItem{
		id:          id,
		name:        name,
		description: description,
		icon:        icon,
		link:        link,
		techStack:   dedupTechTags(techStack),
	}
}

// ProjectItemFromPersistence rehydrates a stored project. Used by the
// persistence adapters only; value objects are already validated.
func ProjectItemFromPersistence(id uuid.UUID, name ProjectName, description *ProjectDescription, icon *ProjectIcon, link ProjectLink, techStack []TechTag) ProjectItem {
	return newProjectItem(id, name, description, icon, link, techStack)
}

func (p ProjectItem) ID() uuid.UUID                    { return p.id }
func (p ProjectItem) Name() ProjectName                { return p.name }
func (p ProjectItem) Description() *ProjectDescription { return p.description }
func (p ProjectItem) Icon() *ProjectIcon               { return p.icon }
func (p ProjectItem) Link() ProjectLink                { return p.link }

func (p ProjectItem) TechStack() []TechTag {
	out := make([]TechTag, len(p.techStack))
	copy(out, p.techStack)
	return out
}

// update replaces every field. The identity never changes.
func (p *ProjectItem) update(name ProjectName, description *ProjectDescription, icon *ProjectIcon, link ProjectLink, techStack []TechTag) {
	p.name = name
	p.description = description
	p.icon = icon
	p.link = link
	p.techStack = dedupTechTags(techStack)
}

func dedupTechTags(tags []TechTag) []TechTag {
	seen := make(map[string]struct{}, len(tags))
	out := make([]TechTag, 0, len(tags))
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
	return out
}
