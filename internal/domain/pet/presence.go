package pet

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/petcrm/internal/models"
)

// Status is a pet with its current check-in row, if any.
type Status struct {
	models.Pet
	CheckIn   *models.CheckIn `json:"checkin"`
	IsPresent bool            `json:"is_present"`
}

func Statuses(pets []models.Pet, checkIns map[uint]models.CheckIn) []Status {
	out := make([]Status, 0, len(pets))
	for _, p := range pets {
		st := Status{Pet: p}
		if ci, ok := checkIns[p.ID]; ok {
			st.CheckIn = &ci
			st.IsPresent = ci.IsPresent
		}
		out = append(out, st)
	}
	return out
}

func InHouse(statuses []Status) int {
	n := 0
	for _, s := range statuses {
		if s.IsPresent {
			n++
		}
	}
	return n
}

// OccupancyPct is the share of pets currently checked in, 0 with no pets.
func OccupancyPct(inHouse, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(inHouse) / float64(total) * 100
}

func CheckIn(ci *models.CheckIn, now time.Time) {
	ci.IsPresent = true
	ci.CheckinTime = &now
	ci.CheckoutTime = nil
}

func CheckOut(ci *models.CheckIn, now time.Time) {
	ci.IsPresent = false
	ci.CheckoutTime = &now
}

// ArrivalMessage is posted the first time a pet is checked in.
func ArrivalMessage(name string, at time.Time) string {
	return fmt.Sprintf("%s checked in at %s! Happy tail wagging!", name, at.Format("15:04"))
}
