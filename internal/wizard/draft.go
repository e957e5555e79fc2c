package wizard

import (
	"strconv"
	"strings"

	"recruitdesk/internal/model"
)

// Draft is the in-progress job form. Numeric fields are strings so empty
// input stays representable while the user types; Normalize coerces them
// exactly once at the submission boundary.
type Draft struct {
	JobTitle            string   `validate:"required"`
	JobType             string   `validate:"required,oneof=full_time part_time contract internship temporary freelance"`
	WorkMode            string   `validate:"required,oneof=on_site remote hybrid"`
	Department          string   `validate:"required"`
	Location            string   `validate:"required"`
	NoOfOpenings        string   `validate:"required,intmin=1"`
	SalaryMin           string   `validate:"required,intmin=0"`
	SalaryMax           string   `validate:"required,intmin=0"`
	SalaryCurrency      string   `validate:"required"`
	SalaryType          string   `validate:"required,oneof=annual monthly hourly stipend"`
	StipendAmount       string   `validate:"required_if=SalaryType stipend,omitempty,intmin=0"`
	JobDescription      string   `validate:"required,min=20"`
	RequiredSkills      []string `validate:"min=1,dive,required"`
	PreferredSkills     []string `validate:"omitempty"`
	ExperienceLevel     string   `validate:"required"`
	NoOfTechnicalRounds string   `validate:"required,intmin=0"`
	InterviewProcess    string   `validate:"required"`
	ApplicationDeadline string   `validate:"required"`
	HiringManagerID     string   `validate:"required,uuid"`
}

// NewDraft returns the initial draft. hiringManagerID defaults from the
// signed-in user so the publishing step starts pre-filled.
func NewDraft(hiringManagerID string) Draft {
	return Draft{
		NoOfOpenings:        "0",
		SalaryMin:           "0",
		SalaryMax:           "0",
		NoOfTechnicalRounds: "0",
		RequiredSkills:      []string{},
		PreferredSkills:     []string{},
		HiringManagerID:     strings.TrimSpace(hiringManagerID),
	}
}

// Normalize produces the wire payload: skill lists trimmed with empty
// entries dropped, numeric-or-empty strings coerced (empty -> 0), and
// stipend_amount set only when salary_type is "stipend" and a value was
// entered. Normalizing already-normalized values yields identical output.
func (d Draft) Normalize() model.JobPayload {
	payload := model.JobPayload{
		JobTitle:            d.JobTitle,
		JobType:             d.JobType,
		WorkMode:            d.WorkMode,
		Department:          d.Department,
		Location:            d.Location,
		SalaryMin:           intOrZero(d.SalaryMin),
		SalaryMax:           intOrZero(d.SalaryMax),
		SalaryCurrency:      d.SalaryCurrency,
		SalaryType:          d.SalaryType,
		NoOfOpenings:        intOrZero(d.NoOfOpenings),
		JobDescription:      d.JobDescription,
		RequiredSkills:      cleanSkills(d.RequiredSkills),
		PreferredSkills:     cleanSkills(d.PreferredSkills),
		ExperienceLevel:     d.ExperienceLevel,
		NoOfTechnicalRounds: intOrZero(d.NoOfTechnicalRounds),
		InterviewProcess:    d.InterviewProcess,
		ApplicationDeadline: d.ApplicationDeadline,
		HiringManagerID:     d.HiringManagerID,
	}
	if d.SalaryType == model.SalaryTypeStipend && strings.TrimSpace(d.StipendAmount) != "" {
		amount := intOrZero(d.StipendAmount)
		payload.StipendAmount = &amount
	}
	return payload
}

func cleanSkills(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		v := strings.TrimSpace(s)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

func intOrZero(raw string) int {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
