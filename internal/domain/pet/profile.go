package pet

import (
	"slices"
	"strings"

	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/models"
	"github.com/BruksfildServices01/petcrm/internal/timezone"
	"github.com/BruksfildServices01/petcrm/internal/validators"
)

var sexes = []string{"male", "female", "unknown"}

// Patch is a partial update of a pet's sheet. Empty strings and nil
// pointers leave the field alone.
type Patch struct {
	Name       string `json:"name"`
	Species    string `json:"species"`
	Breed      string `json:"breed"`
	Sex        string `json:"sex"`
	Neutered   *bool  `json:"neutered"`
	Birthday   string `json:"birthday"`
	Allergies  string `json:"allergies"`
	ChipNumber string `json:"chip_number"`
	Notes      string `json:"notes"`
}

func (p Patch) Apply(pet *models.Pet) error {
	if v := strings.TrimSpace(p.Name); v != "" {
		pet.Name = v
	}
	if p.Species != "" {
		pet.Species = p.Species
	}
	if p.Breed != "" {
		pet.Breed = p.Breed
	}
	if p.Sex != "" {
		sex := strings.ToLower(p.Sex)
		if !slices.Contains(sexes, sex) {
			return httperr.Reject(httperr.CodeInvalidPet, "Sex must be male, female or unknown")
		}
		pet.Sex = sex
	}
	if p.Neutered != nil {
		pet.Neutered = *p.Neutered
	}
	if p.Birthday != "" {
		d, err := timezone.ParseDate(p.Birthday)
		if err != nil {
			return httperr.Reject("invalid_date", "Birthday must use YYYY-MM-DD")
		}
		pet.Birthday = &d
	}
	if p.Allergies != "" {
		pet.Allergies = p.Allergies
	}
	if p.ChipNumber != "" {
		pet.ChipNumber = p.ChipNumber
	}
	if p.Notes != "" {
		pet.Notes = p.Notes
	}
	return nil
}

// TutorPatch updates a tutor's own contact details. Nil fields are kept;
// a non-nil empty string clears the field, except Name which cannot be
// blank.
type TutorPatch struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

func (p TutorPatch) Apply(t *models.Tutor) error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return httperr.Reject(httperr.CodeInvalidTutor, "Name cannot be empty")
		}
		t.Name = name
	}
	if p.Phone != nil {
		t.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Email != nil {
		t.Email = validators.NormalizeEmail(*p.Email)
	}
	if p.Address != nil {
		t.Address = strings.TrimSpace(*p.Address)
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	return nil
}
