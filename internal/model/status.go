package model

import "fmt"

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusClosed    = "closed"
)

var allowedTransitions = map[string]map[string]bool{
	"": {
		StatusDraft:     true,
		StatusPublished: true,
	},
	StatusDraft: {
		StatusDraft:     true,
		StatusPublished: true,
		StatusClosed:    true,
	},
	StatusPublished: {
		StatusPublished: true,
		StatusClosed:    true,
	},
	StatusClosed: {
		StatusClosed:    true,
		StatusPublished: true, // reopened position
	},
}

func IsKnownStatus(status string) bool {
	_, ok := allowedTransitions[status]
	return ok
}

func CanTransition(from, to string) bool {
	next, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return next[to]
}

func TransitionJobStatus(job *Job, toStatus string) error {
	if !CanTransition(job.Status, toStatus) {
		return fmt.Errorf("invalid job status transition: %q -> %q (job_id=%s)", job.Status, toStatus, job.JobID)
	}
	job.Status = toStatus
	return nil
}
