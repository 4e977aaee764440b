package commands

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"experience-booking/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidInput       = errs.New("invalid input")
	ErrExperienceNotFound = errs.New("experience not found")
	ErrSlotNotFound       = errs.New("slot not found")
	ErrSlotAlreadyBooked  = errs.New("Slot already booked")
	ErrReferenceExhausted = errs.New("could not allocate a unique booking reference")
	ErrStoreUnavailable   = errs.New("booking store unavailable")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// invalid keeps the cause's message so transports can echo it back.
func invalid(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		err = errs.New(describe(verrs[0]))
	}
	return errs.Mark(errs.Mark(err, ErrInvalidInput), errs.ErrValidation)
}

func unavailable(err error) error {
	return errs.Mark(errs.Mark(err, ErrStoreUnavailable), errs.ErrUnavailable)
}

func notFound(sentinel error) error {
	return errs.Mark(sentinel, errs.ErrNotFound)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
