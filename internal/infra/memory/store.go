// Package memory is an in-process implementation of the booking and feed
// repositories. Transactions are serialized and roll back on error, which
// makes it usable for use case and handler tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/petcrm/internal/domain"
	"github.com/BruksfildServices01/petcrm/internal/domain/booking"
	"github.com/BruksfildServices01/petcrm/internal/domain/feed"
	"github.com/BruksfildServices01/petcrm/internal/domain/pet"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

var (
	_ booking.Repository = (*Store)(nil)
	_ feed.Repository    = (*Store)(nil)
	_ pet.Repository     = (*Store)(nil)
)

type state struct {
	nextID      uint
	businesses  map[uint]models.Business
	users       map[uint]models.User
	tutors      map[uint]models.Tutor
	pets        map[uint]models.Pet
	petTutors   map[uint]map[uint]bool
	checkIns    map[uint]models.CheckIn
	training    map[uint]models.TrainingEntry
	services    map[uint]models.Service
	slots       map[uint]models.ServiceSlot
	bookings    map[uint]models.ServiceBooking
	woofs       map[uint]models.Woof
	globalWoofs map[uint]models.GlobalWoof
}

func newState() *state {
	return &state{
		businesses:  map[uint]models.Business{},
		users:       map[uint]models.User{},
		tutors:      map[uint]models.Tutor{},
		pets:        map[uint]models.Pet{},
		petTutors:   map[uint]map[uint]bool{},
		checkIns:    map[uint]models.CheckIn{},
		training:    map[uint]models.TrainingEntry{},
		services:    map[uint]models.Service{},
		slots:       map[uint]models.ServiceSlot{},
		bookings:    map[uint]models.ServiceBooking{},
		woofs:       map[uint]models.Woof{},
		globalWoofs: map[uint]models.GlobalWoof{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *state) clone() *state {
	pt := make(map[uint]map[uint]bool, len(s.petTutors))
	for k, v := range s.petTutors {
		pt[k] = cloneMap(v)
	}
	return &state{
		nextID:      s.nextID,
		businesses:  cloneMap(s.businesses),
		users:       cloneMap(s.users),
		tutors:      cloneMap(s.tutors),
		pets:        cloneMap(s.pets),
		petTutors:   pt,
		checkIns:    cloneMap(s.checkIns),
		training:    cloneMap(s.training),
		services:    cloneMap(s.services),
		slots:       cloneMap(s.slots),
		bookings:    cloneMap(s.bookings),
		woofs:       cloneMap(s.woofs),
		globalWoofs: cloneMap(s.globalWoofs),
	}
}

func (s *state) id() uint {
	s.nextID++
	return s.nextID
}

// Store guards a state with one lock. Every call, and every transaction as
// a whole, holds it.
type Store struct {
	mu sync.Mutex
	st *state
}

func New() *Store {
	return &Store{st: newState()}
}

func (s *Store) with(fn func(r *txRepo) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&txRepo{st: s.st})
}

// Transaction runs fn against a snapshot-backed view and restores the
// snapshot when fn fails.
func (s *Store) Transaction(ctx context.Context, fn func(tx booking.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(&txRepo{st: s.st}); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// ======================================================
// Seeding
// ======================================================

func (s *Store) AddBusiness(b models.Business) models.Business {
	_ = s.with(func(r *txRepo) error {
		b.ID = r.st.id()
		r.st.businesses[b.ID] = b
		return nil
	})
	return b
}

func (s *Store) AddUser(u models.User) models.User {
	_ = s.with(func(r *txRepo) error {
		u.ID = r.st.id()
		r.st.users[u.ID] = u
		return nil
	})
	return u
}

func (s *Store) AddTutor(t models.Tutor) models.Tutor {
	_ = s.with(func(r *txRepo) error {
		t.ID = r.st.id()
		r.st.tutors[t.ID] = t
		return nil
	})
	return t
}

// AddPet stores the pet and links it to the given tutors.
func (s *Store) AddPet(p models.Pet, tutorIDs ...uint) models.Pet {
	_ = s.with(func(r *txRepo) error {
		p.ID = r.st.id()
		p.Tutors = nil
		r.st.pets[p.ID] = p
		links := map[uint]bool{}
		for _, id := range tutorIDs {
			links[id] = true
		}
		r.st.petTutors[p.ID] = links
		return nil
	})
	return p
}

func (s *Store) AddService(svc models.Service) models.Service {
	_ = s.with(func(r *txRepo) error {
		svc.ID = r.st.id()
		r.st.services[svc.ID] = svc
		return nil
	})
	return svc
}

func (s *Store) AddSlot(slot models.ServiceSlot) models.ServiceSlot {
	_ = s.with(func(r *txRepo) error {
		slot.ID = r.st.id()
		slot.Service = nil
		r.st.slots[slot.ID] = slot
		return nil
	})
	return slot
}

func (s *Store) AddBooking(b models.ServiceBooking) models.ServiceBooking {
	_ = s.with(func(r *txRepo) error {
		b.ID = r.st.id()
		b.Slot, b.Pet, b.Tutor = nil, nil, nil
		r.st.bookings[b.ID] = b
		return nil
	})
	return b
}

func (s *Store) AddWoof(w models.Woof) models.Woof {
	_ = s.with(func(r *txRepo) error {
		return r.CreateWoof(context.Background(), &w)
	})
	return w
}

func (s *Store) AddGlobalWoof(gw models.GlobalWoof) models.GlobalWoof {
	_ = s.with(func(r *txRepo) error {
		return r.CreateGlobalWoof(context.Background(), &gw)
	})
	return gw
}

// ======================================================
// Repository methods outside a transaction
// ======================================================

func (s *Store) GetBusiness(ctx context.Context, id uint) (out *models.Business, err error) {
	err = s.with(func(r *txRepo) error { out, err = r.GetBusiness(ctx, id); return err })
	return
}

func (s *Store) GetPet(ctx context.Context, id uint) (out *models.Pet, err error) {
	err = s.with(func(r *txRepo) error { out, err = r.GetPet(ctx, id); return err })
	return
}

func (s *Store) GetTutor(ctx context.Context, id uint) (out *models.Tutor, err error) {
	err = s.with(func(r *txRepo) error { out, err = r.GetTutor(ctx, id); return err })
	return
}

func (s *Store) PetHasTutor(ctx context.Context, petID, tutorID uint) (ok bool, err error) {
	err = s.with(func(r *txRepo) error { ok, err = r.PetHasTutor(ctx, petID, tutorID); return err })
	return
}

func (s *Store) ListServices(ctx context.Context) (out []models.Service, err error) {
	err = s.with(func(r *txRepo) error { out, err = r.ListServices(ctx); return err })
	return
}

func (s *Store) GetSlot(ctx context.Context, id uint) (out *models.ServiceSlot, err error) {
	err = s.with(func(r *txRepo) error { out, err = r.GetSlot(ctx, id); return err })
	return
}

func (s *Store) LockSlot(ctx context.Context, id uint) (*models.ServiceSlot, error) {
	return s.GetSlot(ctx, id)
}

func (s *Store) SaveSlot(ctx context.Context, slot *models.ServiceSlot) error {
	return s.with(func(r *txRepo) error { return r.SaveSlot(ctx, slot) })
}

func (s *Store) ListSlots(ctx context.Context, f booking.SlotFilter) (out []models.ServiceSlot, err error) {
	err = s.with(func(r *txRepo) error { out, err = r.ListSlots(ctx, f); return err })
	return
}

func (s *Store) EnsureSlot(ctx context.Context, slot *models.ServiceSlot) (created bool, err error) {
	err = s.with(func(r *txRepo) error { created, err = r.EnsureSlot(ctx, slot); return err })
	return
}

func (s *Store) HasActiveBooking(ctx context.Context, slotID, petID uint) (ok bool, err error) {
	err = s.with(func(r *txRepo) error { ok, err = r.HasActiveBooking(ctx, slotID, petID); return err })
	return
}

func (s *Store) CreateBooking(ctx context.Context, b *models.ServiceBooking) error {
	return s.with(func(r *txRepo) error { return r.CreateBooking(ctx, b) })
}

func (s *Store) GetBooking(ctx context.Context, id uint) (out *models.ServiceBooking, err error) {
	err = s.with(func(r *txRepo) error { out, err = r.GetBooking(ctx, id); return err })
	return
}

func (s *Store) LockBooking(ctx context.Context, id uint) (*models.ServiceBooking, error) {
	return s.GetBooking(ctx, id)
}

func (s *Store) SaveBooking(ctx context.Context, b *models.ServiceBooking) error {
	return s.with(func(r *txRepo) error { return r.SaveBooking(ctx, b) })
}

func (s *Store) ListBookings(ctx context.Context, f booking.BookingFilter) (out []models.ServiceBooking, err error) {
	err = s.with(func(r *txRepo) error { out, err = r.ListBookings(ctx, f); return err })
	return
}

func (s *Store) ListTutorPetIDs(ctx context.Context, tutorID uint) (out []uint, err error) {
	err = s.with(func(r *txRepo) error { out, err = r.ListTutorPetIDs(ctx, tutorID); return err })
	return
}

func (s *Store) ListGlobalWoofs(ctx context.Context, businessID uint) (out []models.GlobalWoof, err error) {
	err = s.with(func(r *txRepo) error { out, err = r.ListGlobalWoofs(ctx, businessID); return err })
	return
}

func (s *Store) ListPetWoofs(ctx context.Context, f feed.PetWoofFilter) (out []models.Woof, err error) {
	err = s.with(func(r *txRepo) error { out, err = r.ListPetWoofs(ctx, f); return err })
	return
}

func (s *Store) GetWoof(ctx context.Context, id uint) (out *models.Woof, err error) {
	err = s.with(func(r *txRepo) error { out, err = r.GetWoof(ctx, id); return err })
	return
}

func (s *Store) ListReplies(ctx context.Context, parentID uint) (out []models.Woof, err error) {
	err = s.with(func(r *txRepo) error { out, err = r.ListReplies(ctx, parentID); return err })
	return
}

func (s *Store) CreateWoof(ctx context.Context, w *models.Woof) error {
	return s.with(func(r *txRepo) error { return r.CreateWoof(ctx, w) })
}

func (s *Store) CreateGlobalWoof(ctx context.Context, gw *models.GlobalWoof) error {
	return s.with(func(r *txRepo) error { return r.CreateGlobalWoof(ctx, gw) })
}

func (s *Store) ListPets(ctx context.Context, f pet.Filter) (out []models.Pet, err error) {
	err = s.with(func(r *txRepo) error { out, err = r.ListPets(ctx, f); return err })
	return
}

func (s *Store) ListCheckIns(ctx context.Context, petIDs []uint) (out map[uint]models.CheckIn, err error) {
	err = s.with(func(r *txRepo) error { out, err = r.ListCheckIns(ctx, petIDs); return err })
	return
}

func (s *Store) SaveCheckIn(ctx context.Context, ci *models.CheckIn) (created bool, err error) {
	err = s.with(func(r *txRepo) error { created, err = r.SaveCheckIn(ctx, ci); return err })
	return
}

func (s *Store) SavePet(ctx context.Context, p *models.Pet) error {
	return s.with(func(r *txRepo) error { return r.SavePet(ctx, p) })
}

func (s *Store) SaveTutor(ctx context.Context, t *models.Tutor) error {
	return s.with(func(r *txRepo) error { return r.SaveTutor(ctx, t) })
}

func (s *Store) CreateTrainingEntry(ctx context.Context, e *models.TrainingEntry) error {
	return s.with(func(r *txRepo) error { return r.CreateTrainingEntry(ctx, e) })
}

func (s *Store) ListTrainingEntries(ctx context.Context, petID uint, limit int) (out []models.TrainingEntry, err error) {
	err = s.with(func(r *txRepo) error { out, err = r.ListTrainingEntries(ctx, petID, limit); return err })
	return
}

// ======================================================
// Transaction view
// ======================================================

var _ booking.Repository = (*txRepo)(nil)

// txRepo works on the state directly; the caller holds the store lock.
type txRepo struct {
	st *state
}

func (r *txRepo) Transaction(ctx context.Context, fn func(tx booking.Repository) error) error {
	return fn(r)
}

func (r *txRepo) GetBusiness(ctx context.Context, id uint) (*models.Business, error) {
	b, ok := r.st.businesses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (r *txRepo) GetPet(ctx context.Context, id uint) (*models.Pet, error) {
	p, ok := r.st.pets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Tutors = nil
	for _, tid := range sortedKeys(r.st.petTutors[id]) {
		if t, ok := r.st.tutors[tid]; ok {
			p.Tutors = append(p.Tutors, t)
		}
	}
	return &p, nil
}

func (r *txRepo) GetTutor(ctx context.Context, id uint) (*models.Tutor, error) {
	t, ok := r.st.tutors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (r *txRepo) PetHasTutor(ctx context.Context, petID, tutorID uint) (bool, error) {
	return r.st.petTutors[petID][tutorID], nil
}

func (r *txRepo) ListServices(ctx context.Context) ([]models.Service, error) {
	out := make([]models.Service, 0, len(r.st.services))
	for _, id := range sortedKeys(r.st.services) {
		out = append(out, r.st.services[id])
	}
	return out, nil
}

func (r *txRepo) withService(slot models.ServiceSlot) models.ServiceSlot {
	if svc, ok := r.st.services[slot.ServiceID]; ok {
		slot.Service = &svc
	}
	return slot
}

func (r *txRepo) GetSlot(ctx context.Context, id uint) (*models.ServiceSlot, error) {
	s, ok := r.st.slots[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	s = r.withService(s)
	return &s, nil
}

func (r *txRepo) LockSlot(ctx context.Context, id uint) (*models.ServiceSlot, error) {
	return r.GetSlot(ctx, id)
}

// SaveSlot enforces the same bounds as the table's check constraints.
func (r *txRepo) SaveSlot(ctx context.Context, slot *models.ServiceSlot) error {
	if _, ok := r.st.slots[slot.ID]; !ok {
		return domain.ErrNotFound
	}
	if slot.MaxCapacity < 1 || slot.BookedCount < 0 || slot.BookedCount > slot.MaxCapacity {
		return ErrCheckViolation
	}
	row := *slot
	row.Service = nil
	r.st.slots[slot.ID] = row
	return nil
}

func (r *txRepo) ListSlots(ctx context.Context, f booking.SlotFilter) ([]models.ServiceSlot, error) {
	var out []models.ServiceSlot
	for _, s := range r.st.slots {
		if s.BusinessID != f.BusinessID {
			continue
		}
		if s.Date.Before(f.From) || s.Date.After(f.To) {
			continue
		}
		if f.ServiceID != nil && s.ServiceID != *f.ServiceID {
			continue
		}
		if f.OnlyAvailable && (!s.IsAvailable || s.BookedCount >= s.MaxCapacity) {
			continue
		}
		out = append(out, r.withService(s))
	}
	sort.Slice(out, func(i, j int) bool {
		return slotLess(out[i], out[j])
	})
	return out, nil
}

func (r *txRepo) EnsureSlot(ctx context.Context, slot *models.ServiceSlot) (bool, error) {
	for _, s := range r.st.slots {
		if s.BusinessID == slot.BusinessID &&
			s.ServiceID == slot.ServiceID &&
			s.Date.Equal(slot.Date) &&
			s.StartTime == slot.StartTime {
			*slot = s
			return false, nil
		}
	}
	slot.ID = r.st.id()
	row := *slot
	row.Service = nil
	r.st.slots[slot.ID] = row
	return true, nil
}

func (r *txRepo) HasActiveBooking(ctx context.Context, slotID, petID uint) (bool, error) {
	for _, b := range r.st.bookings {
		if b.SlotID == slotID && b.PetID == petID && booking.Status(b.Status).Active() {
			return true, nil
		}
	}
	return false, nil
}

// CreateBooking enforces the active (slot, pet) uniqueness like the
// partial index does.
func (r *txRepo) CreateBooking(ctx context.Context, b *models.ServiceBooking) error {
	if booking.Status(b.Status).Active() {
		if dup, _ := r.HasActiveBooking(ctx, b.SlotID, b.PetID); dup {
			return booking.ErrDuplicate()
		}
	}
	b.ID = r.st.id()
	b.UpdatedAt = time.Now()
	row := *b
	row.Slot, row.Pet, row.Tutor = nil, nil, nil
	r.st.bookings[b.ID] = row
	return nil
}

func (r *txRepo) withRelations(b models.ServiceBooking) models.ServiceBooking {
	if s, ok := r.st.slots[b.SlotID]; ok {
		s = r.withService(s)
		b.Slot = &s
	}
	if p, ok := r.st.pets[b.PetID]; ok {
		b.Pet = &p
	}
	if t, ok := r.st.tutors[b.TutorID]; ok {
		b.Tutor = &t
	}
	return b
}

func (r *txRepo) GetBooking(ctx context.Context, id uint) (*models.ServiceBooking, error) {
	b, ok := r.st.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	b = r.withRelations(b)
	return &b, nil
}

func (r *txRepo) LockBooking(ctx context.Context, id uint) (*models.ServiceBooking, error) {
	b, ok := r.st.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (r *txRepo) SaveBooking(ctx context.Context, b *models.ServiceBooking) error {
	if _, ok := r.st.bookings[b.ID]; !ok {
		return domain.ErrNotFound
	}
	b.UpdatedAt = time.Now()
	row := *b
	row.Slot, row.Pet, row.Tutor = nil, nil, nil
	r.st.bookings[b.ID] = row
	return nil
}

func (r *txRepo) ListBookings(ctx context.Context, f booking.BookingFilter) ([]models.ServiceBooking, error) {
	var out []models.ServiceBooking
	for _, b := range r.st.bookings {
		if f.BusinessID != 0 && b.BusinessID != f.BusinessID {
			continue
		}
		if f.PetID != nil && b.PetID != *f.PetID {
			continue
		}
		if f.TutorID != nil && b.TutorID != *f.TutorID {
			continue
		}
		if len(f.Statuses) > 0 && !contains(f.Statuses, b.Status) {
			continue
		}
		slot := r.st.slots[b.SlotID]
		if f.From != nil && slot.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && slot.Date.After(*f.To) {
			continue
		}
		out = append(out, r.withRelations(b))
	}
	sort.Slice(out, func(i, j int) bool {
		si, sj := r.st.slots[out[i].SlotID], r.st.slots[out[j].SlotID]
		if si.ID != sj.ID {
			return slotLess(si, sj)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *txRepo) ListTutorPetIDs(ctx context.Context, tutorID uint) ([]uint, error) {
	out := []uint{}
	for _, petID := range sortedKeys(r.st.petTutors) {
		if r.st.petTutors[petID][tutorID] {
			out = append(out, petID)
		}
	}
	return out, nil
}

func (r *txRepo) ListGlobalWoofs(ctx context.Context, businessID uint) ([]models.GlobalWoof, error) {
	var out []models.GlobalWoof
	for _, gw := range r.st.globalWoofs {
		if gw.BusinessID != businessID {
			continue
		}
		if u, ok := r.st.users[gw.StaffID]; ok {
			gw.Staff = &u
		}
		out = append(out, gw)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *txRepo) withAuthors(w models.Woof) models.Woof {
	if p, ok := r.st.pets[w.PetID]; ok {
		w.Pet = &p
	}
	if w.StaffID != nil {
		if u, ok := r.st.users[*w.StaffID]; ok {
			w.Staff = &u
		}
	}
	if w.TutorID != nil {
		if t, ok := r.st.tutors[*w.TutorID]; ok {
			w.Tutor = &t
		}
	}
	return w
}

func (r *txRepo) ListPetWoofs(ctx context.Context, f feed.PetWoofFilter) ([]models.Woof, error) {
	var petSet map[uint]bool
	if f.PetIDs != nil {
		petSet = map[uint]bool{}
		for _, id := range f.PetIDs {
			petSet[id] = true
		}
	}

	var out []models.Woof
	for _, w := range r.st.woofs {
		if w.BusinessID != f.BusinessID || w.ParentID != nil {
			continue
		}
		if petSet != nil && !petSet[w.PetID] {
			continue
		}
		if f.PublicOnly && w.Visibility != models.VisibilityPublic {
			continue
		}
		out = append(out, r.withAuthors(w))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *txRepo) GetWoof(ctx context.Context, id uint) (*models.Woof, error) {
	w, ok := r.st.woofs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	w = r.withAuthors(w)
	return &w, nil
}

func (r *txRepo) ListReplies(ctx context.Context, parentID uint) ([]models.Woof, error) {
	var out []models.Woof
	for _, w := range r.st.woofs {
		if w.ParentID != nil && *w.ParentID == parentID {
			out = append(out, r.withAuthors(w))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *txRepo) CreateWoof(ctx context.Context, w *models.Woof) error {
	if w.ParentID != nil {
		if _, ok := r.st.woofs[*w.ParentID]; !ok {
			return ErrForeignKey
		}
	}
	w.ID = r.st.id()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now()
	}
	row := *w
	row.Pet, row.Parent, row.Staff, row.Tutor = nil, nil, nil, nil
	r.st.woofs[w.ID] = row
	return nil
}

func (r *txRepo) CreateGlobalWoof(ctx context.Context, gw *models.GlobalWoof) error {
	gw.ID = r.st.id()
	if gw.CreatedAt.IsZero() {
		gw.CreatedAt = time.Now()
	}
	row := *gw
	row.Staff = nil
	r.st.globalWoofs[gw.ID] = row
	return nil
}

// ======================================================
// Pets
// ======================================================

func (r *txRepo) ListPets(ctx context.Context, f pet.Filter) ([]models.Pet, error) {
	out := []models.Pet{}
	for _, id := range sortedKeys(r.st.pets) {
		p := r.st.pets[id]
		if p.BusinessID != f.BusinessID {
			continue
		}
		if f.TutorID != nil && !r.st.petTutors[id][*f.TutorID] {
			continue
		}
		out = append(out, p)
	}
	slices.SortStableFunc(out, func(a, b models.Pet) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return out, nil
}

func (r *txRepo) ListCheckIns(ctx context.Context, petIDs []uint) (map[uint]models.CheckIn, error) {
	out := map[uint]models.CheckIn{}
	for _, id := range petIDs {
		if ci, ok := r.st.checkIns[id]; ok {
			out[id] = ci
		}
	}
	return out, nil
}

func (r *txRepo) SaveCheckIn(ctx context.Context, ci *models.CheckIn) (bool, error) {
	if _, ok := r.st.pets[ci.PetID]; !ok {
		return false, ErrForeignKey
	}
	prev, exists := r.st.checkIns[ci.PetID]
	if exists {
		ci.ID = prev.ID
	} else {
		ci.ID = r.st.id()
	}
	ci.UpdatedAt = time.Now()
	r.st.checkIns[ci.PetID] = *ci
	return !exists, nil
}

func (r *txRepo) SavePet(ctx context.Context, p *models.Pet) error {
	if _, ok := r.st.pets[p.ID]; !ok {
		return domain.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	row := *p
	row.Tutors = nil
	r.st.pets[p.ID] = row
	return nil
}

func (r *txRepo) SaveTutor(ctx context.Context, t *models.Tutor) error {
	if _, ok := r.st.tutors[t.ID]; !ok {
		return domain.ErrNotFound
	}
	t.UpdatedAt = time.Now()
	r.st.tutors[t.ID] = *t
	return nil
}

// ======================================================
// Training log
// ======================================================

func (r *txRepo) CreateTrainingEntry(ctx context.Context, e *models.TrainingEntry) error {
	if _, ok := r.st.pets[e.PetID]; !ok {
		return ErrForeignKey
	}
	if e.Progress < 0 || e.Progress > 100 {
		return ErrCheckViolation
	}
	e.ID = r.st.id()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	r.st.training[e.ID] = *e
	return nil
}

func (r *txRepo) ListTrainingEntries(ctx context.Context, petID uint, limit int) ([]models.TrainingEntry, error) {
	out := []models.TrainingEntry{}
	for _, e := range r.st.training {
		if e.PetID == petID {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b models.TrainingEntry) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
