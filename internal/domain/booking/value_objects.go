package booking

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const ReferenceLength = 8

var (
	ErrInvalidName      = errors.New("name must be at least 2 characters")
	ErrInvalidEmail     = errors.New("email is not a valid address")
	ErrInvalidReference = errors.New("reference must be 8 uppercase alphanumeric characters")
)

var (
	referenceRegex = regexp.MustCompile(`^[A-Z0-9]{8}$`)
	validate       = validator.New(validator.WithRequiredStructEnabled())
)

type customerFields struct {
	Name  string `validate:"required,min=2"`
	Email string `validate:"required,email"`
}

type Customer struct {
	name  string
	email string
}

func NewCustomer(name, email string) (Customer, error) {
	fields := customerFields{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	}
	if err := validate.Struct(fields); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Name" {
			return Customer{}, ErrInvalidName
		}
		return Customer{}, ErrInvalidEmail
	}
	return Customer{name: fields.Name, email: fields.Email}, nil
}

func (c Customer) Name() string  { return c.name }
func (c Customer) Email() string { return c.email }

// Reference is the short code shown to the customer after booking.
type Reference string

func ParseReference(s string) (Reference, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !referenceRegex.MatchString(s) {
		return "", ErrInvalidReference
	}
	return Reference(s), nil
}

func (r Reference) String() string {
	return string(r)
}

type ReferenceGenerator interface {
	NewReference() Reference
}

// UUIDReferenceGenerator takes the first 8 hex digits of a random UUID.
type UUIDReferenceGenerator struct{}

func NewUUIDReferenceGenerator() *UUIDReferenceGenerator {
	return &UUIDReferenceGenerator{}
}

func (g *UUIDReferenceGenerator) NewReference() Reference {
	id := uuid.New()
	return Reference(strings.ToUpper(id.String()[:ReferenceLength]))
}
