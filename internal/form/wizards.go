package form

import (
	"errors"
	"time"

	"local-market-backend/internal/model"
	"local-market-backend/internal/parse"
	"local-market-backend/internal/store"
)

// Booking wizard: service -> schedule -> address -> review.

type bookingDraft struct {
	FixerID       string  `form:"fixer_id" validate:"required"`
	FixerName     string  `form:"fixer_name" validate:"required"`
	Service       string  `form:"service" validate:"required,max=120"`
	Date          string  `form:"date" validate:"required,datetime=2006-01-02"`
	Time          string  `form:"time" validate:"required"`
	Address       string  `form:"address" validate:"required"`
	Price         float64 `form:"price" validate:"gte=0"`
	Notes         string  `form:"notes" validate:"max=500"`
	PaymentMethod string  `form:"payment_method" validate:"required,oneof=card cash"`
}

func (f *Factory) bookingSteps() []Step {
	return []Step{
		{Name: "service", Required: []string{"fixer_id", "service"}, Check: f.checkFixer},
		{Name: "schedule", Required: []string{"date", "time"}, Check: checkSlot},
		{Name: "address", Check: f.checkAddress},
		{Name: "review", Required: []string{"payment_method"}},
	}
}

// checkFixer asks for a fixer name when the fixer is not in the catalog.
func (f *Factory) checkFixer(fields Fields) error {
	if _, ok := f.lookupFixer(fields.Get("fixer_id")); ok {
		return nil
	}
	if !fields.Has("fixer_name") {
		return &ValidationError{Field: "fixer_name", Message: "fixer_name is required for a fixer outside the catalog"}
	}
	return nil
}

func checkSlot(fields Fields) error {
	if _, err := parse.ParseSlot(fields.Get("date"), fields.Get("time"), time.UTC); err != nil {
		return &ValidationError{Field: "time", Message: err.Error()}
	}
	return nil
}

// checkAddress accepts either a saved address id or free text.
func (f *Factory) checkAddress(fields Fields) error {
	if id := fields.Get("address_id"); id != "" {
		if _, ok := f.reg.Addresses.Get(id); !ok {
			return &ValidationError{Field: "address_id", Message: "saved address not found"}
		}
		return nil
	}
	if !fields.Has("address") {
		return &ValidationError{Field: "address", Message: "address is required"}
	}
	return nil
}

func (f *Factory) submitBooking(fields Fields) (any, error) {
	draft := bookingDraft{
		FixerID:       fields.Get("fixer_id"),
		FixerName:     fields.Get("fixer_name"),
		Service:       fields.Get("service"),
		Date:          fields.Get("date"),
		Time:          fields.Get("time"),
		Address:       fields.Get("address"),
		Notes:         fields.Get("notes"),
		PaymentMethod: fields.Get("payment_method"),
	}
	if fixer, ok := f.lookupFixer(draft.FixerID); ok {
		draft.FixerName = fixer.Name
		draft.Price = fixer.HourlyRate
	}
	if addr, ok := f.reg.Addresses.Get(fields.Get("address_id")); ok {
		draft.Address = addr.FullText()
	}
	if err := f.check(&draft); err != nil {
		return nil, err
	}

	return f.reg.Bookings.Create(model.Booking{
		FixerID:       draft.FixerID,
		FixerName:     draft.FixerName,
		Service:       draft.Service,
		Date:          draft.Date,
		Time:          draft.Time,
		Address:       draft.Address,
		Price:         draft.Price,
		Notes:         draft.Notes,
		PaymentMethod: draft.PaymentMethod,
		Status:        model.BookingPending,
	})
}

func (f *Factory) lookupFixer(id string) (model.Fixer, bool) {
	if f.fixers == nil || id == "" {
		return model.Fixer{}, false
	}
	return f.fixers.FixerByID(id)
}

// Barter wizard: details -> photos -> exchange.

type barterDraft struct {
	Title       string   `form:"title" validate:"required,max=80"`
	Description string   `form:"description" validate:"required,max=1000"`
	Category    string   `form:"category" validate:"required,oneof=goods services music user"`
	Images      []string `form:"images" validate:"required,min=1,max=6,dive,required"`
	LookingFor  string   `form:"looking_for" validate:"required"`
	Location    string   `form:"location"`
	UserName    string   `form:"user_name" validate:"required"`
}

func barterSteps() []Step {
	return []Step{
		{Name: "details", Required: []string{"title", "description", "category"}},
		{Name: "photos", Required: []string{"images"}},
		{Name: "exchange", Required: []string{"looking_for", "user_name"}},
	}
}

func (f *Factory) submitBarter(fields Fields) (any, error) {
	draft := barterDraft{
		Title:       fields.Get("title"),
		Description: fields.Get("description"),
		Category:    fields.Get("category"),
		Images:      fields.Values("images"),
		LookingFor:  fields.Get("looking_for"),
		Location:    fields.Get("location"),
		UserName:    fields.Get("user_name"),
	}
	if err := f.check(&draft); err != nil {
		return nil, err
	}

	return f.reg.Barters.Create(model.Barter{
		Title:       draft.Title,
		Description: draft.Description,
		Category:    draft.Category,
		Images:      draft.Images,
		LookingFor:  draft.LookingFor,
		Location:    draft.Location,
		User:        model.BarterUser{Name: draft.UserName, Avatar: fields.Get("user_avatar")},
	})
}

// Fixer application wizard: personal -> expertise -> documents.

type fixerApplicationDraft struct {
	FullName        string   `form:"full_name" validate:"required"`
	Phone           string   `form:"phone" validate:"required,min=6,max=20"`
	City            string   `form:"city" validate:"required"`
	Specialty       string   `form:"specialty" validate:"required"`
	ExperienceYears string   `form:"experience_years" validate:"required,numeric"`
	Documents       []string `form:"documents" validate:"required,min=1,dive,required"`
}

func fixerApplicationSteps() []Step {
	return []Step{
		{Name: "personal", Required: []string{"full_name", "phone", "city"}},
		{Name: "expertise", Required: []string{"specialty", "experience_years"}},
		{Name: "documents", Required: []string{"documents"}},
	}
}

// Seller application wizard: store -> contact -> documents.

type sellerApplicationDraft struct {
	StoreName string   `form:"store_name" validate:"required"`
	Category  string   `form:"category" validate:"required"`
	FullName  string   `form:"full_name" validate:"required"`
	Phone     string   `form:"phone" validate:"required,min=6,max=20"`
	Email     string   `form:"email" validate:"required,email"`
	Documents []string `form:"documents" validate:"required,min=1,dive,required"`
}

func sellerApplicationSteps() []Step {
	return []Step{
		{Name: "store", Required: []string{"store_name", "category"}},
		{Name: "contact", Required: []string{"full_name", "phone", "email"}},
		{Name: "documents", Required: []string{"documents"}},
	}
}

// applicationDraft is filled from the collected fields before validation.
type applicationDraft interface {
	fill(fields Fields)
}

func (d *fixerApplicationDraft) fill(fields Fields) {
	*d = fixerApplicationDraft{
		FullName:        fields.Get("full_name"),
		Phone:           fields.Get("phone"),
		City:            fields.Get("city"),
		Specialty:       fields.Get("specialty"),
		ExperienceYears: fields.Get("experience_years"),
		Documents:       fields.Values("documents"),
	}
}

func (d *sellerApplicationDraft) fill(fields Fields) {
	*d = sellerApplicationDraft{
		StoreName: fields.Get("store_name"),
		Category:  fields.Get("category"),
		FullName:  fields.Get("full_name"),
		Phone:     fields.Get("phone"),
		Email:     fields.Get("email"),
		Documents: fields.Values("documents"),
	}
}

func (f *Factory) submitApplication(apps *store.ApplicationStore, draft applicationDraft) Submitter {
	return func(fields Fields) (any, error) {
		if apps == nil {
			return nil, errors.New("form: application store is not configured")
		}
		draft.fill(fields)
		if err := f.check(draft); err != nil {
			return nil, err
		}
		free := fields.Flat()
		delete(free, "documents")
		return apps.Submit(free, fields.Values("documents")), nil
	}
}
