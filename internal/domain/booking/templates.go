package booking

import (
	"time"

	"github.com/BruksfildServices01/petcrm/internal/models"
)

// Window is one recurring daily slot of a service.
type Window struct {
	Start    string
	End      string
	Capacity int
}

// DefaultWindows maps a service type to the slots generated for each day.
// Service types without an entry get no generated slots.
var DefaultWindows = map[string][]Window{
	"daycare": {
		{"08:00", "12:00", 5},
		{"14:00", "18:00", 5},
	},
	"grooming": {
		{"09:00", "11:00", 1},
		{"11:00", "13:00", 1},
		{"14:00", "16:00", 1},
		{"16:00", "18:00", 1},
	},
	"training": {
		{"10:00", "11:00", 2},
		{"14:00", "15:00", 2},
		{"15:00", "16:00", 2},
	},
	"walk": {
		{"08:00", "09:00", 3},
		{"10:00", "11:00", 3},
		{"14:00", "15:00", 3},
		{"16:00", "17:00", 3},
	},
}

// PlanSlots lists the default slots of every service for days calendar
// days starting at from.
func PlanSlots(businessID uint, services []models.Service, from time.Time, days int) []models.ServiceSlot {
	var out []models.ServiceSlot
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i)
		for _, svc := range services {
			for _, w := range DefaultWindows[svc.Type] {
				out = append(out, models.ServiceSlot{
					BusinessID:  businessID,
					ServiceID:   svc.ID,
					Date:        date,
					StartTime:   w.Start,
					EndTime:     w.End,
					MaxCapacity: w.Capacity,
					IsAvailable: true,
				})
			}
		}
	}
	return out
}
