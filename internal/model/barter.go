package model

import "time"

// Conventional barter categories. The field itself is free-form.
const (
	BarterGoods        = "goods"
	BarterServices     = "services"
	BarterMusic        = "music"
	BarterUserCategory = "user"
)

// BarterUser is the denormalised owner of a barter listing.
type BarterUser struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Barter is a peer-to-peer exchange offer.
type Barter struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Images      []string   `json:"images,omitempty"`
	Image       string     `json:"image,omitempty"`
	LookingFor  string     `json:"lookingFor,omitempty"`
	Location    string     `json:"location,omitempty"`
	User        BarterUser `json:"user"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (b *Barter) EntityID() string   { return b.ID }
func (b *Barter) AssignID(id string) { b.ID = id }

// Cover returns the image shown on list cards: the first of Images, else Image.
func (b Barter) Cover() string {
	if len(b.Images) > 0 {
		return b.Images[0]
	}
	return b.Image
}
