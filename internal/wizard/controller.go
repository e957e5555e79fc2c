package wizard

import (
	"context"
	"sync"

	"recruitdesk/internal/api"
	"recruitdesk/internal/model"
)

// JobCreator is the slice of the job store the wizard hands submissions to.
type JobCreator interface {
	Create(ctx context.Context, payload model.JobPayload) (*api.CreateJobResult, error)
}

// Controller drives the linear multi-step form: per-step validation, gated
// forward navigation, and the draft/submit flow. It owns no rendering; the
// presentation layer reads its state and calls its operations.
//
// Submit and SaveDraft run from UI commands on separate goroutines; the
// mutex keeps navigation and error state consistent with concurrent reads.
// Draft is owned by the event loop and must not be edited while a
// submission is in flight.
type Controller struct {
	Draft Draft

	mu               sync.Mutex
	store            JobCreator
	defaultManagerID string
	steps            []Step
	current          int
	completed        map[StepKey]bool
	touched          map[string]bool
	errors           map[string]string
}

func NewController(store JobCreator, defaultManagerID string) *Controller {
	return &Controller{
		Draft:            NewDraft(defaultManagerID),
		store:            store,
		defaultManagerID: defaultManagerID,
		steps:            Steps(),
		completed:        map[StepKey]bool{},
		touched:          map[string]bool{},
		errors:           map[string]string{},
	}
}

func (c *Controller) Steps() []Step {
	return c.steps
}

func (c *Controller) Current() StepKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.steps[c.current].Key
}

func (c *Controller) CurrentStep() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.steps[c.current]
}

func (c *Controller) Completed(key StepKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completed[key]
}

// GoNext moves forward one step, clamped at the terminal step.
func (c *Controller) GoNext() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advance()
}

// GoBack moves back one step, clamped at the first step.
func (c *Controller) GoBack() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current > 0 {
		c.current--
	}
}

func (c *Controller) advance() {
	if c.current < len(c.steps)-1 {
		c.current++
	}
}

// ValidateAndAdvance marks the current step's fields touched, validates
// them against the full draft, and advances only when all are clean. On
// failure the step does not change and field errors are kept for display.
func (c *Controller) ValidateAndAdvance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	step := c.steps[c.current]
	if step.Key == StepSuccess {
		return false
	}
	for _, f := range step.Fields {
		c.touched[f] = true
	}

	c.errors = ValidateStep(c.Draft, step)
	if len(c.errors) > 0 {
		return false
	}
	c.completed[step.Key] = true
	c.advance()
	return true
}

// FieldError returns the message for a field once the field was touched.
func (c *Controller) FieldError(field string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.touched[field] {
		return ""
	}
	return c.errors[field]
}

func (c *Controller) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errors) > 0
}

// Submit validates the publishing step, normalizes the draft, and hands the
// payload to the job store. Success moves the wizard to the terminal success
// step and returns the server's notification message; failure keeps the
// current step so the user can retry. The store call runs without the lock
// held so state stays readable while the request is in flight.
func (c *Controller) Submit(ctx context.Context) (string, error) {
	c.mu.Lock()
	step := c.steps[c.current]
	if step.Key != StepPublishing {
		c.mu.Unlock()
		return "", errNotOnPublishing
	}
	for _, f := range step.Fields {
		c.touched[f] = true
	}
	c.errors = ValidateStep(c.Draft, step)
	if len(c.errors) > 0 {
		c.mu.Unlock()
		return "", errStepInvalid
	}
	payload := c.Draft.Normalize()
	c.mu.Unlock()

	res, err := c.store.Create(ctx, payload)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.completed[step.Key] = true
	c.current = len(c.steps) - 1
	c.mu.Unlock()

	if res.Message != "" {
		return res.Message, nil
	}
	return "Job created successfully!", nil
}

// SaveDraft normalizes the draft, tags it with status "draft", and persists
// it through the job store without changing the current step.
func (c *Controller) SaveDraft(ctx context.Context) (string, error) {
	c.mu.Lock()
	payload := c.Draft.Normalize()
	c.mu.Unlock()
	payload.Status = model.StatusDraft

	res, err := c.store.Create(ctx, payload)
	if err != nil {
		return "", err
	}
	if res.Message != "" {
		return res.Message, nil
	}
	return "Job saved as draft", nil
}

// Progress is the completed share of non-terminal steps; exactly 1 once the
// terminal step is reached.
func (c *Controller) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.steps[c.current].Key == StepSuccess {
		return 1
	}
	total := 0
	done := 0
	for _, s := range c.steps {
		if s.Key == StepSuccess {
			continue
		}
		total++
		if c.completed[s.Key] {
			done++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}

// Reset clears the draft back to initial values, clears the completed set,
// and returns to the first step.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Draft = NewDraft(c.defaultManagerID)
	c.completed = map[StepKey]bool{}
	c.touched = map[string]bool{}
	c.errors = map[string]string{}
	c.current = 0
}
