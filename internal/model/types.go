package model

// UserProfile is the authenticated recruiter as the backend reports it.
type UserProfile struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Company       string `json:"company"`
	JobTitle      string `json:"job_title,omitempty"`
	AccountStatus string `json:"account_status"`
	EmailVerified bool   `json:"email_verified"`
}

const (
	JobTypeFullTime   = "full_time"
	JobTypePartTime   = "part_time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
	JobTypeTemporary  = "temporary"
	JobTypeFreelance  = "freelance"

	WorkModeOnSite = "on_site"
	WorkModeRemote = "remote"
	WorkModeHybrid = "hybrid"

	SalaryTypeAnnual  = "annual"
	SalaryTypeMonthly = "monthly"
	SalaryTypeHourly  = "hourly"
	SalaryTypeStipend = "stipend"

	ExperienceJunior = "junior"
	ExperienceMid    = "mid"
	ExperienceSenior = "senior"
	ExperienceLead   = "lead"
)

// Job is the backend's job record. The client holds cache copies only; the
// backend owns the data. Salary fields are flat, matching the create payload.
type Job struct {
	JobID               string   `json:"job_id"`
	JobTitle            string   `json:"job_title"`
	JobType             string   `json:"job_type"`
	WorkMode            string   `json:"work_mode"`
	Department          string   `json:"department"`
	Location            string   `json:"location"`
	SalaryMin           int      `json:"salary_min"`
	SalaryMax           int      `json:"salary_max"`
	SalaryCurrency      string   `json:"salary_currency"`
	SalaryType          string   `json:"salary_type"`
	StipendAmount       *int     `json:"stipend_amount"`
	NoOfOpenings        int      `json:"no_of_openings"`
	JobDescription      string   `json:"job_description"`
	RequiredSkills      []string `json:"required_skills"`
	PreferredSkills     []string `json:"preferred_skills"`
	ExperienceLevel     string   `json:"experience_level"`
	NoOfTechnicalRounds int      `json:"no_of_technical_rounds"`
	InterviewProcess    string   `json:"interview_process"`
	ApplicationDeadline string   `json:"application_deadline"`
	HiringManagerID     string   `json:"hiring_manager_id"`
	Status              string   `json:"status,omitempty"`
	ApplicationCount    int      `json:"application_count,omitempty"`
	CreatedAt           string   `json:"created_at,omitempty"`
	UpdatedAt           string   `json:"updated_at,omitempty"`
}

// JobPayload is the body sent on create. StipendAmount serializes to null
// unless salary_type is "stipend" and an amount was entered.
type JobPayload struct {
	JobTitle            string   `json:"job_title"`
	JobType             string   `json:"job_type"`
	WorkMode            string   `json:"work_mode"`
	Department          string   `json:"department"`
	Location            string   `json:"location"`
	SalaryMin           int      `json:"salary_min"`
	SalaryMax           int      `json:"salary_max"`
	SalaryCurrency      string   `json:"salary_currency"`
	SalaryType          string   `json:"salary_type"`
	StipendAmount       *int     `json:"stipend_amount"`
	NoOfOpenings        int      `json:"no_of_openings"`
	JobDescription      string   `json:"job_description"`
	RequiredSkills      []string `json:"required_skills"`
	PreferredSkills     []string `json:"preferred_skills"`
	ExperienceLevel     string   `json:"experience_level"`
	NoOfTechnicalRounds int      `json:"no_of_technical_rounds"`
	InterviewProcess    string   `json:"interview_process"`
	ApplicationDeadline string   `json:"application_deadline"`
	HiringManagerID     string   `json:"hiring_manager_id"`
	Status              string   `json:"status,omitempty"`
}
