package pet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

func TestClampProgress(t *testing.T) {
	assert.Equal(t, 0, ClampProgress(-5))
	assert.Equal(t, 0, ClampProgress(0))
	assert.Equal(t, 42, ClampProgress(42))
	assert.Equal(t, 100, ClampProgress(100))
	assert.Equal(t, 100, ClampProgress(140))
}

func TestValidateTitle(t *testing.T) {
	title, err := ValidateTitle("  Sit and stay ")
	require.NoError(t, err)
	assert.Equal(t, "Sit and stay", title)

	_, err = ValidateTitle("   ")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTitle))

	_, err = ValidateTitle(strings.Repeat("ã", MaxTitleLength))
	assert.NoError(t, err)

	_, err = ValidateTitle(strings.Repeat("a", MaxTitleLength+1))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTitle))
}

func TestPatchApply(t *testing.T) {
	yes := true
	pet := models.Pet{Name: "Rex", Breed: "Beagle", Sex: "unknown"}

	err := Patch{Name: " Rex II ", Sex: "FEMALE", Neutered: &yes, Birthday: "2021-03-04"}.Apply(&pet)
	require.NoError(t, err)
	assert.Equal(t, "Rex II", pet.Name)
	assert.Equal(t, "Beagle", pet.Breed)
	assert.Equal(t, "female", pet.Sex)
	assert.True(t, pet.Neutered)
	require.NotNil(t, pet.Birthday)
	assert.Equal(t, "2021-03-04", pet.Birthday.Format("2006-01-02"))

	assert.True(t, httperr.IsBusiness(Patch{Sex: "dragon"}.Apply(&pet), httperr.CodeInvalidPet))
	assert.True(t, httperr.IsBusiness(Patch{Birthday: "04/03/2021"}.Apply(&pet), "invalid_date"))
	assert.Equal(t, "female", pet.Sex)
}

func TestTutorPatchApply(t *testing.T) {
	str := func(s string) *string { return &s }
	tutor := models.Tutor{Name: "Bia", Phone: "111", Notes: "keep"}

	err := TutorPatch{Email: str(" Bia@Example.COM "), Phone: str("")}.Apply(&tutor)
	require.NoError(t, err)
	assert.Equal(t, "Bia", tutor.Name)
	assert.Equal(t, "bia@example.com", tutor.Email)
	assert.Empty(t, tutor.Phone)
	assert.Equal(t, "keep", tutor.Notes)

	err = TutorPatch{Name: str("  ")}.Apply(&tutor)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTutor))
	assert.Equal(t, "Bia", tutor.Name)
}
