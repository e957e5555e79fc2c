package wizard

// StepKey identifies a wizard step. The order below is the navigation order;
// StepSuccess is a terminal pseudo-step with no fields and no ruleset.
type StepKey string

const (
	StepJob        StepKey = "job"
	StepJobSkills  StepKey = "jobSkills"
	StepPublishing StepKey = "publishing"
	StepSuccess    StepKey = "success"
)

// Step declares a wizard step and the draft fields it validates. Fields are
// Draft struct field names so step validation can run as a partial pass over
// the full draft.
type Step struct {
	Key    StepKey
	Label  string
	Fields []string
}

func Steps() []Step {
	return []Step{
		{
			Key:   StepJob,
			Label: "Basic Job details",
			Fields: []string{
				"JobTitle", "JobType", "WorkMode", "Department", "Location", "NoOfOpenings",
			},
		},
		{
			Key:   StepJobSkills,
			Label: "Job Skills Information",
			Fields: []string{
				"SalaryMin", "SalaryMax", "SalaryCurrency", "SalaryType", "StipendAmount",
				"JobDescription", "RequiredSkills", "PreferredSkills",
				"ExperienceLevel", "NoOfTechnicalRounds", "InterviewProcess",
			},
		},
		{
			Key:   StepPublishing,
			Label: "Form and Publish Setting",
			Fields: []string{
				"ApplicationDeadline", "HiringManagerID",
			},
		},
		{
			Key:   StepSuccess,
			Label: "Finish",
		},
	}
}
