package store

import (
	"strings"
	"time"

	"local-market-backend/internal/model"
	"local-market-backend/internal/query"
)

// BarterStore holds barter listings, newest first.
type BarterStore struct {
	*Collection[model.Barter, *model.Barter]
	now func() time.Time
}

func NewBarterStore(opts Options) *BarterStore {
	return &BarterStore{
		Collection: NewCollection[model.Barter](KeyBarters, opts),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create validates b and inserts it at the head of the list.
func (s *BarterStore) Create(b model.Barter) (model.Barter, error) {
	b.Title = strings.TrimSpace(b.Title)
	b.Description = strings.TrimSpace(b.Description)
	switch {
	case b.Title == "":
		return model.Barter{}, invalidField("title", "title is required")
	case b.Description == "":
		return model.Barter{}, invalidField("description", "description is required")
	case b.Cover() == "":
		return model.Barter{}, invalidField("images", "at least one image is required")
	}
	if b.Category == "" {
		b.Category = model.BarterGoods
	}
	b.CreatedAt = s.now()
	return s.Add(b, Prepend), nil
}

// ByCategory lists the barters of one category. The "all" sentinel returns everything.
func (s *BarterStore) ByCategory(category string) []model.Barter {
	return query.FilterByEquality(s.List(), func(b model.Barter) string { return b.Category }, category)
}

// ByOwner lists the barters posted by the named user.
func (s *BarterStore) ByOwner(name string) []model.Barter {
	return query.FilterByEquality(s.List(), func(b model.Barter) string { return b.User.Name }, name)
}
