package store

import (
	"fmt"
	"maps"
	"time"

	"local-market-backend/internal/model"
)

// ApplicationStore holds the onboarding applications of one kind.
type ApplicationStore struct {
	*Collection[model.Application, *model.Application]
	kind model.ApplicationKind
	now  func() time.Time
}

func NewApplicationStore(kind model.ApplicationKind, opts Options) *ApplicationStore {
	return &ApplicationStore{
		Collection: NewCollection[model.Application](applicationKey(kind), opts),
		kind:       kind,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *ApplicationStore) Kind() model.ApplicationKind {
	return s.kind
}

// Submit stores a new pending application with a copy of fields.
func (s *ApplicationStore) Submit(fields map[string]string, documents []string) model.Application {
	app := model.Application{
		Kind:        s.kind,
		Fields:      maps.Clone(fields),
		Documents:   append([]string(nil), documents...),
		Status:      model.ApplicationPending,
		SubmittedAt: s.now(),
	}
	if app.Fields == nil {
		app.Fields = map[string]string{}
	}
	return s.Add(app, Append)
}

// SetStatus overwrites the review status. Any status may follow any other.
func (s *ApplicationStore) SetStatus(id string, status model.ApplicationStatus) (model.Application, Result, error) {
	if !status.Valid() {
		return model.Application{}, Unchanged, invalidField("status", fmt.Sprintf("unknown application status %q", status))
	}
	now := s.now()
	res := s.Update(id, func(a *model.Application) {
		a.Status = status
		a.UpdatedAt = &now
	})
	a, _ := s.Get(id)
	return a, res, nil
}

// Latest returns the most recently submitted application.
func (s *ApplicationStore) Latest() (model.Application, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.items) == 0 {
		return model.Application{}, false
	}
	return s.items[len(s.items)-1], true
}
