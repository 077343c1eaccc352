package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"local-market-backend/internal/model"
	"local-market-backend/internal/store"
)

// Kind names a wizard.
type Kind string

const (
	KindBooking           Kind = "booking"
	KindBarter            Kind = "barter"
	KindFixerApplication  Kind = "fixer_application"
	KindSellerApplication Kind = "seller_application"
)

var ErrUnknownKind = errors.New("form: unknown flow kind")

// FixerLookup resolves catalog fixers for the booking wizard.
type FixerLookup interface {
	FixerByID(id string) (model.Fixer, bool)
}

// Factory starts wizards wired to the stores they submit into.
type Factory struct {
	reg      *store.Registry
	fixers   FixerLookup
	validate *validator.Validate
	ids      func() string
}

func NewFactory(reg *store.Registry, fixers FixerLookup) *Factory {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &Factory{
		reg:      reg,
		fixers:   fixers,
		validate: v,
		ids:      uuid.NewString,
	}
}

// Start creates a new flow of the given kind positioned at its first step.
func (f *Factory) Start(kind Kind) (*Flow, error) {
	switch kind {
	case KindBooking:
		return New(f.ids(), kind, f.bookingSteps(), f.submitBooking), nil
	case KindBarter:
		return New(f.ids(), kind, barterSteps(), f.submitBarter), nil
	case KindFixerApplication:
		return New(f.ids(), kind, fixerApplicationSteps(), f.submitApplication(f.reg.FixerApps, &fixerApplicationDraft{})), nil
	case KindSellerApplication:
		return New(f.ids(), kind, sellerApplicationSteps(), f.submitApplication(f.reg.SellerApps, &sellerApplicationDraft{})), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// check runs the struct-level rules of a draft and reports the first failure.
func (f *Factory) check(draft any) error {
	err := f.validate.Struct(draft)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("%s failed the %q rule", fe.Field(), fe.Tag()),
		}
	}
	return err
}
