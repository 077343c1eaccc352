package model

// Settings is the process-wide user preference record.
type Settings struct {
	Language      string `json:"language"`
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
}

// DefaultSettings is used when nothing has been persisted yet.
func DefaultSettings() Settings {
	return Settings{
		Language:      "en",
		Theme:         "light",
		Notifications: true,
	}
}
