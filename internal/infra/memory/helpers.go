package memory

import (
	"cmp"
	"errors"
	"slices"

	"github.com/BruksfildServices01/petcrm/internal/models"
)

var (
	ErrCheckViolation = errors.New("memory: check constraint violated")
	ErrForeignKey     = errors.New("memory: foreign key violated")
)

func sortedKeys[V any](m map[uint]V) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func contains(list []string, v string) bool {
	return slices.Contains(list, v)
}

func slotLess(a, b models.ServiceSlot) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	if c := cmp.Compare(a.StartTime, b.StartTime); c != 0 {
		return c < 0
	}
	return a.ID < b.ID
}
