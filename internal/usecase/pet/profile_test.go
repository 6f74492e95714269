package pet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	petdomain "github.com/BruksfildServices01/petcrm/internal/domain/pet"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
)

func ptr[T any](v T) *T { return &v }

func TestUpdateOwnPet(t *testing.T) {
	w := newPetWorld()
	ctx := context.Background()
	uc := NewUpdateOwnPet(w.store, nil)

	got, err := uc.Execute(ctx, w.owner, w.rex.ID, petdomain.Patch{
		Breed:     "Beagle",
		Sex:       "Male",
		Neutered:  ptr(true),
		Birthday:  "2022-02-14",
		Allergies: "chicken",
	})
	require.NoError(t, err)
	assert.Equal(t, "Rex", got.Name)
	assert.Equal(t, "male", got.Sex)
	assert.True(t, got.Neutered)

	stored, err := w.store.GetPet(ctx, w.rex.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beagle", stored.Breed)
	assert.Equal(t, "chicken", stored.Allergies)
	require.Len(t, stored.Tutors, 1)
	assert.Equal(t, w.bia.ID, stored.Tutors[0].ID)

	t.Run("rejections", func(t *testing.T) {
		_, err := uc.Execute(ctx, w.other, w.rex.ID, petdomain.Patch{Breed: "Pug"})
		assert.True(t, httperr.IsBusiness(err, httperr.CodePetNotFound))

		_, err = uc.Execute(ctx, w.staff, w.rex.ID, petdomain.Patch{Breed: "Pug"})
		assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

		_, err = uc.Execute(ctx, w.owner, w.rex.ID, petdomain.Patch{Birthday: "14/02/2022"})
		assert.True(t, httperr.IsBusiness(err, "invalid_date"))

		_, err = uc.Execute(ctx, w.owner, w.rex.ID, petdomain.Patch{Sex: "robot"})
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidPet))

		stored, err := w.store.GetPet(ctx, w.rex.ID)
		require.NoError(t, err)
		assert.Equal(t, "Beagle", stored.Breed)
	})
}

func TestUpdateTutorProfile(t *testing.T) {
	w := newPetWorld()
	ctx := context.Background()
	uc := NewUpdateTutorProfile(w.store, nil)

	got, err := uc.Execute(ctx, w.owner, petdomain.TutorPatch{
		Phone:   ptr(" 555-0101 "),
		Email:   ptr("Bia@Example.COM"),
		Address: ptr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Bia", got.Name)
	assert.Equal(t, "555-0101", got.Phone)
	assert.Equal(t, "bia@example.com", got.Email)

	stored, err := w.store.GetTutor(ctx, w.bia.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-0101", stored.Phone)

	_, err = uc.Execute(ctx, w.owner, petdomain.TutorPatch{Name: ptr("  ")})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTutor))

	_, err = uc.Execute(ctx, w.staff, petdomain.TutorPatch{Phone: ptr("1")})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))
}
