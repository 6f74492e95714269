package feed

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/petcrm/internal/models"
)

type Kind string

const (
	KindGlobal Kind = "global"
	KindPet    Kind = "pet"
)

const GlobalLabel = "BUSINESS"

// Item is one entry of the merged feed.
type Item struct {
	Kind       Kind      `json:"type"`
	ID         uint      `json:"id"`
	Label      string    `json:"label"`
	Author     string    `json:"author"`
	Message    string    `json:"message"`
	PetID      *uint     `json:"pet_id,omitempty"`
	Visibility string    `json:"visibility,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromGlobal(gw models.GlobalWoof) Item {
	it := Item{
		Kind:      KindGlobal,
		ID:        gw.ID,
		Label:     GlobalLabel,
		Message:   gw.Message,
		CreatedAt: gw.CreatedAt,
	}
	if gw.Staff != nil {
		it.Author = gw.Staff.Name
	}
	return it
}

func FromWoof(w models.Woof) Item {
	petID := w.PetID
	it := Item{
		Kind:       KindPet,
		ID:         w.ID,
		Label:      "PET",
		Author:     AuthorOf(w),
		Message:    w.Message,
		PetID:      &petID,
		Visibility: w.Visibility,
		CreatedAt:  w.CreatedAt,
	}
	if w.Pet != nil && w.Pet.Name != "" {
		it.Label = w.Pet.Name
	}
	return it
}

func AuthorOf(w models.Woof) string {
	switch {
	case w.Staff != nil:
		return w.Staff.Name
	case w.Tutor != nil:
		return w.Tutor.Name
	}
	return ""
}

// Less orders newest first. Equal timestamps put broadcasts before pet
// posts, then the higher id first.
func Less(a, b Item) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	if a.Kind != b.Kind {
		return a.Kind == KindGlobal
	}
	return a.ID > b.ID
}

// Merge combines both sources into one list sorted by Less.
func Merge(global []models.GlobalWoof, pets []models.Woof) []Item {
	items := make([]Item, 0, len(global)+len(pets))
	for _, gw := range global {
		items = append(items, FromGlobal(gw))
	}
	for _, w := range pets {
		items = append(items, FromWoof(w))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return Less(items[i], items[j])
	})
	return items
}

// Since returns the leading items strictly newer than since. items must be
// sorted by Less; the scan stops at the first item not newer.
func Since(items []Item, since time.Time) []Item {
	out := []Item{}
	for _, it := range items {
		if !it.CreatedAt.After(since) {
			break
		}
		out = append(out, it)
	}
	return out
}
