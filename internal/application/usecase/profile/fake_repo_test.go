package profile

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/khoavn/devfolio/adapters/event"
	"github.com/khoavn/devfolio/internal/domain/profile"
	"github.com/khoavn/devfolio/pkg/apperror"
)

// fakeProfileRepo is an in-memory Repository with the same observable
// contract as the real adapters: nil-nil for absent lookups, conflict on
// duplicate create, nil result for updates against a missing root.
type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*profile.DeveloperProfile

	failWith error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*profile.DeveloperProfile)}
}

func (f *fakeProfileRepo) Create(_ context.Context, p *profile.DeveloperProfile) (*profile.DeveloperProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	if _, exists := f.profiles[p.ID()]; exists {
		return nil, apperror.NewConflict("profile", "id", p.ID().String())
	}
	f.profiles[p.ID()] = p
	return p, nil
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id uuid.UUID) (*profile.DeveloperProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.profiles[id], nil
}

func (f *fakeProfileRepo) GetAll(_ context.Context) ([]*profile.DeveloperProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]*profile.DeveloperProfile, 0, len(f.profiles))
	for _, p := range f.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProfileRepo) Update(_ context.Context, p *profile.DeveloperProfile) (*profile.DeveloperProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	if _, exists := f.profiles[p.ID()]; !exists {
		return nil, nil
	}
	f.profiles[p.ID()] = p
	return p, nil
}

func (f *fakeProfileRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return false, f.failWith
	}
	if _, exists := f.profiles[id]; !exists {
		return false, nil
	}
	delete(f.profiles, id)
	return true, nil
}

func (f *fakeProfileRepo) SearchCatalog(_ context.Context, q profile.CatalogQuery) (*profile.CatalogResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	if err := q.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("invalid catalog query", err)
	}
	items := make([]*profile.DeveloperProfile, 0, len(f.profiles))
	for _, p := range f.profiles {
		items = append(items, p)
	}
	return &profile.CatalogResult{
		Items:      items,
		TotalCount: int64(len(items)),
		PageNumber: q.PageNumber,
		PageSize:   q.PageSize,
	}, nil
}

// capturingPublisher records every event it receives.
type capturingPublisher struct {
	mu     sync.Mutex
	events []event.ProfileEvent
	err    error
}

func (c *capturingPublisher) PublishProfileEvent(_ context.Context, evt event.ProfileEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.events = append(c.events, evt)
	return nil
}

func (c *capturingPublisher) published() []event.ProfileEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]event.ProfileEvent, len(c.events))
	copy(out, c.events)
	return out
}
