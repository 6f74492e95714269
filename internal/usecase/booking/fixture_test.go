package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	"github.com/BruksfildServices01/petcrm/internal/infra/memory"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

var (
	today    = time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	fixedNow = func() time.Time { return time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC) }
)

type fixture struct {
	store *memory.Store
	cache *fakeCache

	biz   models.Business
	other models.Business

	service models.Service
	tutor   models.Tutor
	pet     models.Pet
	slot    models.ServiceSlot

	staff      actor.Staff
	tutorActor actor.Tutor
}

func newFixture(t *testing.T, capacity int) *fixture {
	t.Helper()

	s := memory.New()
	f := &fixture{store: s, cache: newFakeCache()}

	f.biz = s.AddBusiness(models.Business{Name: "Happy Paws", Slug: "happy-paws", Timezone: "UTC"})
	f.other = s.AddBusiness(models.Business{Name: "Other", Slug: "other", Timezone: "UTC"})
	f.service = s.AddService(models.Service{Type: "daycare"})

	user := s.AddUser(models.User{Name: "Bia", Role: models.RoleTutor})
	f.tutor = s.AddTutor(models.Tutor{BusinessID: f.biz.ID, UserID: &user.ID, Name: "Bia"})
	f.pet = s.AddPet(models.Pet{BusinessID: f.biz.ID, Name: "Rex"}, f.tutor.ID)
	f.slot = s.AddSlot(models.ServiceSlot{
		BusinessID:  f.biz.ID,
		ServiceID:   f.service.ID,
		Date:        today.AddDate(0, 0, 1),
		StartTime:   "08:00",
		EndTime:     "12:00",
		MaxCapacity: capacity,
		IsAvailable: true,
	})

	staffUser := s.AddUser(models.User{Name: "Ana", Role: models.RoleStaff})
	f.staff = actor.Staff{UserID: staffUser.ID, BusinessID: f.biz.ID}
	f.tutorActor = actor.Tutor{UserID: user.ID, TutorID: f.tutor.ID, BusinessID: f.biz.ID}
	return f
}

// addPet adds another pet owned by a new tutor of the fixture business.
func (f *fixture) addPet(name string) (models.Pet, models.Tutor) {
	tutor := f.store.AddTutor(models.Tutor{BusinessID: f.biz.ID, Name: name + "'s tutor"})
	pet := f.store.AddPet(models.Pet{BusinessID: f.biz.ID, Name: name}, tutor.ID)
	return pet, tutor
}

func (f *fixture) create() *CreateBooking {
	return NewCreateBooking(f.store, nil, fixedNow)
}

func (f *fixture) confirm() *ConfirmBooking {
	return NewConfirmBooking(f.store, f.cache, nil, fixedNow)
}

func (f *fixture) cancel() *CancelBooking {
	return NewCancelBooking(f.store, f.cache, nil, fixedNow)
}

func (f *fixture) book(t *testing.T, pet models.Pet, tutor models.Tutor) *models.ServiceBooking {
	t.Helper()
	b, err := f.create().Execute(context.Background(), CreateBookingInput{
		Actor:   f.staff,
		SlotID:  f.slot.ID,
		PetID:   pet.ID,
		TutorID: tutor.ID,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return b
}

func (f *fixture) slotNow(t *testing.T) *models.ServiceSlot {
	t.Helper()
	s, err := f.store.GetSlot(context.Background(), f.slot.ID)
	if err != nil {
		t.Fatalf("get slot: %v", err)
	}
	return s
}

// ======================================================
// fake cache
// ======================================================

type fakeCache struct {
	mu            sync.Mutex
	entries       map[string][]byte
	invalidations map[uint]int
	gets          int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}, invalidations: map[uint]int{}}
}

func (c *fakeCache) Version(ctx context.Context, businessID uint) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strconv.Itoa(c.invalidations[businessID]), nil
}

func (c *fakeCache) Get(ctx context.Context, businessID uint, version, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	data, ok := c.entries[fmt.Sprintf("%d:%s:%s", businessID, version, key)]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dst)
}

func (c *fakeCache) Set(ctx context.Context, businessID uint, version, key string, v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.entries[fmt.Sprintf("%d:%s:%s", businessID, version, key)] = data
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context, businessID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations[businessID]++
	return nil
}

func (c *fakeCache) invalidated(businessID uint) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidations[businessID]
}
