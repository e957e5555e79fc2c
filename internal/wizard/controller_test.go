package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"recruitdesk/internal/api"
	"recruitdesk/internal/model"
)

type fakeCreator struct {
	payloads []model.JobPayload
	result   *api.CreateJobResult
	err      error
}

func (f *fakeCreator) Create(_ context.Context, payload model.JobPayload) (*api.CreateJobResult, error) {
	f.payloads = append(f.payloads, payload)
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &api.CreateJobResult{Job: model.Job{JobID: "job-1"}}, nil
}

func TestControllerStartsOnFirstStep(t *testing.T) {
	c := NewController(&fakeCreator{}, "")
	if c.Current() != StepJob {
		t.Fatalf("current = %s", c.Current())
	}
	if c.Progress() != 0 {
		t.Fatalf("progress = %f", c.Progress())
	}
}

func TestControllerBlocksAdvanceOnInvalidStep(t *testing.T) {
	c := NewController(&fakeCreator{}, "")
	if c.ValidateAndAdvance() {
		t.Fatal("empty draft must not advance")
	}
	if c.Current() != StepJob {
		t.Fatalf("current = %s", c.Current())
	}
	if c.FieldError("JobTitle") != "Job title is required" {
		t.Fatalf("field error = %q", c.FieldError("JobTitle"))
	}
}

func TestControllerFieldErrorGatedByTouch(t *testing.T) {
	c := NewController(&fakeCreator{}, "")
	if got := c.FieldError("JobTitle"); got != "" {
		t.Fatalf("untouched field reported %q", got)
	}
}

func TestControllerAdvancesThroughCleanSteps(t *testing.T) {
	c := NewController(&fakeCreator{}, "")
	c.Draft = completeDraft()

	if !c.ValidateAndAdvance() {
		t.Fatal("job step should advance")
	}
	if c.Current() != StepJobSkills {
		t.Fatalf("current = %s", c.Current())
	}
	if !c.ValidateAndAdvance() {
		t.Fatal("skills step should advance")
	}
	if c.Current() != StepPublishing {
		t.Fatalf("current = %s", c.Current())
	}
	if got := c.Progress(); got < 0.66 || got > 0.67 {
		t.Fatalf("progress = %f", got)
	}
}

func TestControllerGoBackClampsAtFirstStep(t *testing.T) {
	c := NewController(&fakeCreator{}, "")
	c.GoBack()
	c.GoBack()
	if c.Current() != StepJob {
		t.Fatalf("current = %s", c.Current())
	}
}

func TestControllerSubmitOnlyFromPublishing(t *testing.T) {
	c := NewController(&fakeCreator{}, "")
	if _, err := c.Submit(context.Background()); err == nil {
		t.Fatal("submit from the first step must fail")
	}
}

func TestControllerSubmitSendsNormalizedPayload(t *testing.T) {
	creator := &fakeCreator{result: &api.CreateJobResult{Message: "Job created successfully!"}}
	c := NewController(creator, "")
	c.Draft = completeDraft()
	c.Draft.NoOfOpenings = "2"
	c.Draft.RequiredSkills = []string{"React", "", " Go "}
	c.ValidateAndAdvance()
	c.ValidateAndAdvance()

	msg, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if msg != "Job created successfully!" {
		t.Fatalf("message = %q", msg)
	}
	if c.Current() != StepSuccess {
		t.Fatalf("current = %s", c.Current())
	}
	if c.Progress() != 1 {
		t.Fatalf("progress = %f", c.Progress())
	}

	if len(creator.payloads) != 1 {
		t.Fatalf("payloads = %d", len(creator.payloads))
	}
	sent := creator.payloads[0]
	if sent.NoOfOpenings != 2 {
		t.Fatalf("openings = %d", sent.NoOfOpenings)
	}
	if strings.Join(sent.RequiredSkills, ",") != "React,Go" {
		t.Fatalf("skills = %v", sent.RequiredSkills)
	}

	body, err := json.Marshal(sent)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), `"stipend_amount":null`) {
		t.Fatalf("body = %s", body)
	}
	if !strings.Contains(string(body), `"no_of_openings":2`) {
		t.Fatalf("body = %s", body)
	}
}

func TestControllerSubmitFailureKeepsStep(t *testing.T) {
	creator := &fakeCreator{err: errors.New("backend down")}
	c := NewController(creator, "")
	c.Draft = completeDraft()
	c.ValidateAndAdvance()
	c.ValidateAndAdvance()

	if _, err := c.Submit(context.Background()); err == nil {
		t.Fatal("expected submit error")
	}
	if c.Current() != StepPublishing {
		t.Fatalf("current = %s", c.Current())
	}
}

func TestControllerSubmitValidatesPublishingStep(t *testing.T) {
	creator := &fakeCreator{}
	c := NewController(creator, "")
	c.Draft = completeDraft()
	c.ValidateAndAdvance()
	c.ValidateAndAdvance()
	c.Draft.HiringManagerID = "nope"

	if _, err := c.Submit(context.Background()); err == nil {
		t.Fatal("expected validation error")
	}
	if len(creator.payloads) != 0 {
		t.Fatal("invalid draft must not reach the store")
	}
	if c.FieldError("HiringManagerID") != "Must be a valid UUID" {
		t.Fatalf("field error = %q", c.FieldError("HiringManagerID"))
	}
}

func TestControllerSaveDraftTagsStatusAndKeepsStep(t *testing.T) {
	creator := &fakeCreator{}
	c := NewController(creator, "")
	c.Draft = completeDraft()
	c.ValidateAndAdvance()

	msg, err := c.SaveDraft(context.Background())
	if err != nil {
		t.Fatalf("save draft: %v", err)
	}
	if msg != "Job saved as draft" {
		t.Fatalf("message = %q", msg)
	}
	if c.Current() != StepJobSkills {
		t.Fatalf("current = %s", c.Current())
	}
	if len(creator.payloads) != 1 || creator.payloads[0].Status != model.StatusDraft {
		t.Fatalf("payloads = %+v", creator.payloads)
	}
}

func TestControllerResetRestoresDefaults(t *testing.T) {
	manager := "a7c2e9f0-1111-4222-8333-944455566677"
	c := NewController(&fakeCreator{}, manager)
	c.Draft = completeDraft()
	c.ValidateAndAdvance()
	c.Reset()

	if c.Current() != StepJob {
		t.Fatalf("current = %s", c.Current())
	}
	if c.Draft.JobTitle != "" {
		t.Fatalf("job title = %q", c.Draft.JobTitle)
	}
	if c.Draft.HiringManagerID != manager {
		t.Fatalf("manager = %q", c.Draft.HiringManagerID)
	}
	if c.Progress() != 0 {
		t.Fatalf("progress = %f", c.Progress())
	}
}

func TestControllerGoNextStopsAtTerminalStep(t *testing.T) {
	c := NewController(&fakeCreator{}, "")
	c.Draft = completeDraft()
	c.ValidateAndAdvance()
	c.ValidateAndAdvance()
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	if c.Current() != StepSuccess {
		t.Fatalf("current = %s", c.Current())
	}

	c.GoNext()
	c.GoNext()
	if c.Current() != StepSuccess {
		t.Fatalf("current = %s", c.Current())
	}
}

// blockingCreator holds the submission open until released so reads can be
// interleaved with an in-flight request.
type blockingCreator struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingCreator) Create(_ context.Context, _ model.JobPayload) (*api.CreateJobResult, error) {
	close(b.started)
	<-b.release
	return &api.CreateJobResult{Job: model.Job{JobID: "job-1"}}, nil
}

func TestControllerStateReadableWhileSubmitInFlight(t *testing.T) {
	creator := &blockingCreator{started: make(chan struct{}), release: make(chan struct{})}
	c := NewController(creator, "")
	c.Draft = completeDraft()
	c.ValidateAndAdvance()
	c.ValidateAndAdvance()

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()

	<-creator.started
	for i := 0; i < 200; i++ {
		_ = c.Current()
		_ = c.FieldError("HiringManagerID")
		_ = c.Completed(StepJob)
		_ = c.Progress()
	}
	close(creator.release)

	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if c.Current() != StepSuccess {
		t.Fatalf("current = %s", c.Current())
	}
	if c.Progress() != 1 {
		t.Fatalf("progress = %f", c.Progress())
	}
}
