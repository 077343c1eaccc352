package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-market-backend/internal/model"
)

func TestBarterStore_CreatePrepends(t *testing.T) {
	s := NewBarterStore(Options{})
	s.Collection.Add(model.Barter{Title: "Old guitar"}, Append)
	prior := s.List()

	b, err := s.Create(model.Barter{
		Title:       "Bike",
		Description: "Trade my bike",
		Images:      []string{"file:///bike.jpg"},
		User:        model.BarterUser{Name: "Omar"},
	})
	require.NoError(t, err)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, b, list[0])
	assert.NotEmpty(t, b.ID)
	for _, p := range prior {
		assert.NotEqual(t, p.ID, b.ID)
	}
	assert.Equal(t, model.BarterGoods, b.Category)
}

func TestBarterStore_CreateValidation(t *testing.T) {
	testCases := []struct {
		name  string
		in    model.Barter
		field string
	}{
		{name: "missing title", in: model.Barter{Title: " ", Description: "d", Image: "x"}, field: "title"},
		{name: "missing description", in: model.Barter{Title: "t", Image: "x"}, field: "description"},
		{name: "missing image", in: model.Barter{Title: "t", Description: "d"}, field: "images"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewBarterStore(Options{})
			_, err := s.Create(tc.in)
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.field, fe.Field)
			assert.Equal(t, 0, s.Len())
		})
	}
}

func TestBarterStore_SingleImageFallback(t *testing.T) {
	s := NewBarterStore(Options{})
	b, err := s.Create(model.Barter{Title: "Drum kit", Description: "Lessons wanted", Image: "drums.jpg", Category: model.BarterMusic})
	require.NoError(t, err)
	assert.Equal(t, "drums.jpg", b.Cover())
}

func TestBarterStore_Queries(t *testing.T) {
	s := NewBarterStore(Options{})
	for _, b := range []model.Barter{
		{Title: "Bike", Description: "d", Image: "i", Category: model.BarterGoods, User: model.BarterUser{Name: "Omar"}},
		{Title: "Haircut", Description: "d", Image: "i", Category: model.BarterServices, User: model.BarterUser{Name: "Lina"}},
		{Title: "Oud", Description: "d", Image: "i", Category: model.BarterMusic, User: model.BarterUser{Name: "Omar"}},
	} {
		_, err := s.Create(b)
		require.NoError(t, err)
	}

	assert.Len(t, s.ByCategory("all"), 3)
	assert.Len(t, s.ByCategory(model.BarterMusic), 1)
	assert.Len(t, s.ByOwner("Omar"), 2)
	assert.Empty(t, s.ByOwner("Nobody"))
}
