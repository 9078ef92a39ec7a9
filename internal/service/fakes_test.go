package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/and161185/medtrack/internal/errs"
	"github.com/and161185/medtrack/internal/model"
	"github.com/and161185/medtrack/internal/repository"
	"github.com/gofrs/uuid/v5"
)

type fakeUsers struct {
	byEmail map[string]*model.User

	createErr error
	getErr    error
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.byEmail == nil {
		f.byEmail = map[string]*model.User{}
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return errs.ErrAlreadyExists
	}
	u.CreatedAt = time.Now()
	cpy := *u
	f.byEmail[u.Email] = &cpy
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

// fakeStore keeps profiles and medications in memory.
type fakeStore struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]model.Profile
	meds     map[uuid.UUID]model.Medication

	ownerErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{profiles: map[uuid.UUID]model.Profile{}, meds: map[uuid.UUID]model.Medication{}}
}

type fakeProfiles struct{ *fakeStore }
type fakeMeds struct{ *fakeStore }

var (
	_ repository.ProfileRepository    = fakeProfiles{}
	_ repository.MedicationRepository = fakeMeds{}
)

func (f fakeProfiles) Create(_ context.Context, p *model.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.CreatedAt = time.Now()
	f.profiles[p.ID] = *p
	return nil
}

func (f fakeProfiles) Get(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &p, nil
}

func (f fakeProfiles) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Profile{}
	for _, p := range f.profiles {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f fakeProfiles) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.profiles, id)
	for mid, m := range f.meds {
		if m.ProfileID == id {
			delete(f.meds, mid)
		}
	}
	return nil
}

func (f fakeProfiles) OwnerOf(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ownerErr != nil {
		return uuid.Nil, f.ownerErr
	}
	p, ok := f.profiles[id]
	if !ok {
		return uuid.Nil, errs.ErrNotFound
	}
	return p.UserID, nil
}

func (f fakeMeds) Create(_ context.Context, m *model.Medication) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[m.ProfileID]; !ok {
		return errs.ErrNotFound
	}
	m.CreatedAt, m.UpdatedAt = time.Now(), time.Now()
	f.meds[m.ID] = *m
	return nil
}

func (f fakeMeds) Get(_ context.Context, id uuid.UUID) (*model.Medication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.meds[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &m, nil
}

func (f fakeMeds) ListByProfile(_ context.Context, profileID uuid.UUID) ([]model.Medication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Medication{}
	for _, m := range f.meds {
		if m.ProfileID == profileID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f fakeMeds) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.meds[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.meds, id)
	return nil
}

func (f fakeMeds) OwnerOf(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ownerErr != nil {
		return uuid.Nil, f.ownerErr
	}
	m, ok := f.meds[id]
	if !ok {
		return uuid.Nil, errs.ErrNotFound
	}
	p, ok := f.profiles[m.ProfileID]
	if !ok {
		return uuid.Nil, errs.ErrNotFound
	}
	return p.UserID, nil
}

func (f fakeMeds) DecrementStock(_ context.Context, id uuid.UUID) (*model.Medication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.meds[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	if m.CurrentStock <= 0 {
		return nil, errs.ErrOutOfStock
	}
	m.CurrentStock--
	f.meds[id] = m
	return &m, nil
}

type fakeTokens struct{ err error }

func (f fakeTokens) Issue(userID uuid.UUID) (string, time.Time, error) {
	if f.err != nil {
		return "", time.Time{}, f.err
	}
	return "tok-" + userID.String(), time.Now().Add(24 * time.Hour), nil
}

// services wires the resource layer over one fake store.
func services(st *fakeStore) (*ProfileServiceImpl, *MedicationServiceImpl) {
	owners := NewOwnershipResolver(fakeProfiles{st}, fakeMeds{st})
	return NewProfileService(fakeProfiles{st}, owners),
		NewMedicationService(fakeMeds{st}, owners, NewInventoryService(fakeMeds{st}))
}
