package model

import "strings"

// Address is a saved service location. At most one address in a collection is the default.
type Address struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Street    string  `json:"street"`
	City      string  `json:"city"`
	Details   string  `json:"details,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	IsDefault bool    `json:"isDefault"`
}

func (a *Address) EntityID() string   { return a.ID }
func (a *Address) AssignID(id string) { a.ID = id }

// FullText renders the address the way booking screens display it.
func (a Address) FullText() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.Street, a.Details, a.City} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
