package collect

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/talentscout-ai/talentscout/internal/model"
)

// Experience bounds accepted by the intake form.
const (
	MinYearsExperience = 0
	MaxYearsExperience = 50
)

var (
	// Letters, spaces and common name punctuation; rejects digits and symbols.
	nameRegex = regexp.MustCompile(`^[\p{L} .'-]+$`)

	// E164-like phone: optional +, digits with optional separators, 7-15 digits.
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,18}[0-9]$`)
)

// Form carries the raw intake form values as typed by the candidate.
// YearsExperience arrives as text from the TUI and is parsed here.
type Form struct {
	FullName        string `validate:"required,min=2,max=100,valid_name"`
	Email           string `validate:"required,email"`
	Phone           string `validate:"required,valid_phone"`
	YearsExperience string `validate:"required"`
	DesiredRole     string `validate:"required,min=2,max=100"`
	Location        string `validate:"required,min=2,max=100"`
	TechStack       string `validate:"required"`
}

// fieldLabels maps struct field names to the labels shown next to form errors.
var fieldLabels = map[string]string{
	"FullName":        "Full name",
	"Email":           "Email address",
	"Phone":           "Phone number",
	"YearsExperience": "Years of experience",
	"DesiredRole":     "Desired position",
	"Location":        "Current location",
	"TechStack":       "Tech stack",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("valid_name", validName)
	_ = v.RegisterValidation("valid_phone", validPhone)
	return v
}

func validName(fl validator.FieldLevel) bool {
	return nameRegex.MatchString(fl.Field().String())
}

func validPhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

// Validate checks every form field and returns one ValidationError per
// failing field, in struct order. An empty slice means the form is valid.
func (f Form) Validate() []model.ValidationError {
	var errs []model.ValidationError

	if err := validate.Struct(f); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return []model.ValidationError{{Field: "form", Reason: err.Error()}}
		}
		for _, fe := range verrs {
			errs = append(errs, model.ValidationError{
				Field:  fieldLabels[fe.StructField()],
				Reason: reasonFor(fe),
			})
		}
	}

	// Cross-field checks that validator tags can't express on raw text.
	if f.YearsExperience != "" {
		if years, err := strconv.Atoi(strings.TrimSpace(f.YearsExperience)); err != nil {
			errs = append(errs, model.ValidationError{
				Field:  fieldLabels["YearsExperience"],
				Reason: "must be a whole number",
			})
		} else if years < MinYearsExperience || years > MaxYearsExperience {
			errs = append(errs, model.ValidationError{
				Field:  fieldLabels["YearsExperience"],
				Reason: "must be between 0 and 50",
			})
		}
	}
	if f.TechStack != "" && len(ParseTechStack(f.TechStack)) == 0 {
		errs = append(errs, model.ValidationError{
			Field:  fieldLabels["TechStack"],
			Reason: "list at least one technology, comma-separated",
		})
	}

	return errs
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "valid_name":
		return "may only contain letters and name punctuation"
	case "valid_phone":
		return "must be a valid phone number"
	case "min":
		return "is too short"
	case "max":
		return "is too long"
	default:
		return "is invalid"
	}
}

// Profile validates the form and builds the immutable candidate profile.
// The first validation failure is returned as a *model.ValidationError.
func (f Form) Profile() (model.CandidateProfile, error) {
	if errs := f.Validate(); len(errs) > 0 {
		first := errs[0]
		return model.CandidateProfile{}, &first
	}

	years, _ := strconv.Atoi(strings.TrimSpace(f.YearsExperience))
	return model.CandidateProfile{
		FullName:        strings.TrimSpace(f.FullName),
		Email:           strings.TrimSpace(f.Email),
		Phone:           strings.TrimSpace(f.Phone),
		YearsExperience: years,
		DesiredRole:     strings.TrimSpace(f.DesiredRole),
		Location:        strings.TrimSpace(f.Location),
		TechStack:       ParseTechStack(f.TechStack),
	}, nil
}

// ParseTechStack splits a comma-separated technology list, trimming
// whitespace and dropping empty entries. Order is preserved.
func ParseTechStack(raw string) []string {
	var techs []string
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			techs = append(techs, t)
		}
	}
	return techs
}
