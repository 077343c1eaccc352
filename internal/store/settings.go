package store

import (
	"fmt"
	"slices"

	"local-market-backend/internal/model"
)

var (
	languages = []string{"en", "ar", "fr"}
	themes    = []string{"light", "dark", "system"}
)

// SettingsStore is the persisted settings singleton.
type SettingsStore struct {
	*Singleton[model.Settings]
}

func NewSettingsStore(opts Options) *SettingsStore {
	return &SettingsStore{Singleton: NewSingleton[model.Settings](KeySettings, opts)}
}

func (s *SettingsStore) SetLanguage(lang string) (model.Settings, error) {
	if !slices.Contains(languages, lang) {
		return s.Get(), invalidField("language", fmt.Sprintf("unsupported language %q", lang))
	}
	return s.Update(func(st *model.Settings) error {
		st.Language = lang
		return nil
	})
}

func (s *SettingsStore) SetTheme(theme string) (model.Settings, error) {
	if !slices.Contains(themes, theme) {
		return s.Get(), invalidField("theme", fmt.Sprintf("unsupported theme %q", theme))
	}
	return s.Update(func(st *model.Settings) error {
		st.Theme = theme
		return nil
	})
}

func (s *SettingsStore) SetNotifications(on bool) model.Settings {
	st, _ := s.Update(func(st *model.Settings) error {
		st.Notifications = on
		return nil
	})
	return st
}

func (s *SettingsStore) ToggleNotifications() model.Settings {
	st, _ := s.Update(func(st *model.Settings) error {
		st.Notifications = !st.Notifications
		return nil
	})
	return st
}

// NotificationsEnabled reports the current notifications switch.
func (s *SettingsStore) NotificationsEnabled() bool {
	return s.Get().Notifications
}
