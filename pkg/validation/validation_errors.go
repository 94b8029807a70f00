package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// fieldLabels maps struct field names to the labels shown in the form.
var fieldLabels = map[string]string{
	"Name":             "Name",
	"Bio":              "Bio",
	"Location":         "Location",
	"Email":            "Email",
	"Role":             "Role",
	"GraduationCohort": "Graduation cohort",
	"SkillTags":        "Skill tags",
	"LinkedIn":         "LinkedIn URL",
	"GitHub":           "GitHub URL",
	"Website":          "Website URL",
	"ProfileImage":     "Profile image URL",
}

// FriendlyMessage turns a validator error into a message fit for the
// profile form. Non-validation errors pass through unchanged.
func FriendlyMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		label := fieldLabels[fe.Field()]
		if label == "" {
			label = fe.Field()
		}
		msgs = append(msgs, messageFor(label, fe))
	}
	return strings.Join(msgs, "; ")
}

func messageFor(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return label + " must be a valid email address"
	case "url":
		return label + " must be a valid URL"
	case "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("%s must have at least %s entry", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "valid_name":
		return label + " contains invalid characters"
	case "no_emoji":
		return label + " must not contain emoji"
	default:
		return fmt.Sprintf("%s is invalid (%s)", label, fe.Tag())
	}
}
