package wizard

import "errors"

var (
	errNotOnPublishing = errors.New("submit is only available from the publishing step")
	errStepInvalid     = errors.New("fix the highlighted fields before submitting")
)
