package wizard

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var draftValidator = newDraftValidator()

func newDraftValidator() *validator.Validate {
	v := validator.New()
	// intmin=N: string field must parse as an integer >= N
	if err := v.RegisterValidation("intmin", validateIntMin); err != nil {
		panic(err)
	}
	return v
}

func validateIntMin(fl validator.FieldLevel) bool {
	min, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	n, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
	if err != nil {
		return false
	}
	return n >= min
}

// ValidateStep runs the step's ruleset against the full draft and returns
// field-level messages keyed by Draft field name. Validation never touches
// the network; an empty map means the step is clean.
func ValidateStep(d Draft, step Step) map[string]string {
	errs := map[string]string{}
	if len(step.Fields) == 0 {
		return errs
	}

	err := draftValidator.StructPartial(d, step.Fields...)
	if err == nil {
		return errs
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["_form"] = err.Error()
		return errs
	}
	for _, fe := range verrs {
		field := fe.StructField()
		// dive errors report element fields like "RequiredSkills[0]"
		if i := strings.Index(field, "["); i >= 0 {
			field = field[:i]
		}
		if _, seen := errs[field]; seen {
			continue
		}
		errs[field] = fieldMessage(field, fe.Tag())
	}
	return errs
}

// fieldMessage maps a field and failed rule to its display message.
func fieldMessage(field, tag string) string {
	switch field {
	case "JobTitle":
		return "Job title is required"
	case "JobType":
		return "Job type is required"
	case "WorkMode":
		return "Work mode is required"
	case "Department":
		return "Department is required"
	case "Location":
		return "Location is required"
	case "NoOfOpenings":
		if tag == "intmin" {
			return "At least 1"
		}
		return "Number of openings is required"
	case "SalaryMin":
		if tag == "intmin" {
			return "Salary min must be a number"
		}
		return "Salary min is required"
	case "SalaryMax":
		if tag == "intmin" {
			return "Salary max must be a number"
		}
		return "Salary max is required"
	case "SalaryCurrency":
		return "Currency is required"
	case "SalaryType":
		return "Salary type is required"
	case "StipendAmount":
		if tag == "intmin" {
			return "Stipend must be a number >= 0"
		}
		return "Stipend amount is required for stipend type"
	case "JobDescription":
		if tag == "min" {
			return "Please provide a longer description"
		}
		return "Job description is required"
	case "RequiredSkills":
		if tag == "required" {
			return "Skill cannot be empty"
		}
		return "At least one required skill"
	case "ExperienceLevel":
		return "Experience level is required"
	case "NoOfTechnicalRounds":
		if tag == "intmin" {
			return "Must be >= 0"
		}
		return "Number of rounds is required"
	case "InterviewProcess":
		return "Interview process is required"
	case "ApplicationDeadline":
		return "Application deadline is required"
	case "HiringManagerID":
		if tag == "uuid" {
			return "Must be a valid UUID"
		}
		return "Hiring manager is required"
	default:
		return field + " is invalid"
	}
}
