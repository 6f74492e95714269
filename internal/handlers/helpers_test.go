package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	"github.com/BruksfildServices01/petcrm/internal/infra/memory"
	"github.com/BruksfildServices01/petcrm/internal/middleware"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

var (
	today   = time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	testNow = func() time.Time { return time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC) }
)

type env struct {
	store *memory.Store

	biz     models.Business
	other   models.Business
	service models.Service
	tutor   models.Tutor
	rex     models.Pet
	slot    models.ServiceSlot

	staff      actor.Staff
	tutorActor actor.Tutor
}

func newEnv(capacity int) *env {
	gin.SetMode(gin.TestMode)

	s := memory.New()
	e := &env{store: s}

	e.biz = s.AddBusiness(models.Business{Name: "Happy Paws", Slug: "happy-paws", Timezone: "UTC"})
	e.other = s.AddBusiness(models.Business{Name: "Other", Slug: "other", Timezone: "UTC"})
	e.service = s.AddService(models.Service{Type: "daycare"})

	staffUser := s.AddUser(models.User{Name: "Ana", BusinessID: &e.biz.ID, Role: models.RoleStaff})
	tutorUser := s.AddUser(models.User{Name: "Bia", BusinessID: &e.biz.ID, Role: models.RoleTutor})
	e.tutor = s.AddTutor(models.Tutor{BusinessID: e.biz.ID, UserID: &tutorUser.ID, Name: "Bia"})
	e.rex = s.AddPet(models.Pet{BusinessID: e.biz.ID, Name: "Rex"}, e.tutor.ID)
	e.slot = s.AddSlot(models.ServiceSlot{
		BusinessID:  e.biz.ID,
		ServiceID:   e.service.ID,
		Date:        today.AddDate(0, 0, 1),
		StartTime:   "08:00",
		EndTime:     "12:00",
		MaxCapacity: capacity,
		IsAvailable: true,
	})

	e.staff = actor.Staff{UserID: staffUser.ID, BusinessID: e.biz.ID}
	e.tutorActor = actor.Tutor{UserID: tutorUser.ID, TutorID: e.tutor.ID, BusinessID: e.biz.ID}
	return e
}

// withActor stands in for AuthMiddleware.
func withActor(a actor.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextActor, a)
		c.Next()
	}
}

func serve(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type errorBody struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}
