package cli

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"recruitdesk/internal/api"
	"recruitdesk/internal/jobs"
	"recruitdesk/internal/model"
	"recruitdesk/internal/wizard"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type fakeJobsAPI struct {
	payloads  []model.JobPayload
	createErr error
	list      api.JobList
	listErr   error
	deleted   []string
	deleteErr error
	updated   model.Job
	updateErr error
}

func (f *fakeJobsAPI) ListJobs(_ context.Context, _, _ int) (api.JobList, error) {
	if f.listErr != nil {
		return api.JobList{}, f.listErr
	}
	return f.list, nil
}

func (f *fakeJobsAPI) GetJob(_ context.Context, id string) (model.Job, error) {
	for _, j := range f.list.Jobs {
		if j.JobID == id {
			return j, nil
		}
	}
	return model.Job{}, &api.NotFoundError{Resource: "job", ID: id}
}

func (f *fakeJobsAPI) CreateJob(_ context.Context, payload model.JobPayload) (api.CreateJobResult, error) {
	if f.createErr != nil {
		return api.CreateJobResult{}, f.createErr
	}
	f.payloads = append(f.payloads, payload)
	return api.CreateJobResult{Job: model.Job{JobID: "job-1"}, Message: "Job created successfully!"}, nil
}

func (f *fakeJobsAPI) UpdateJob(_ context.Context, _ string, _ map[string]any) (model.Job, error) {
	if f.updateErr != nil {
		return model.Job{}, f.updateErr
	}
	return f.updated, nil
}

func (f *fakeJobsAPI) DeleteJob(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

const testManagerID = "a7c2e9f0-1111-4222-8333-944455566677"

func newTestPostModel(backend *fakeJobsAPI) postModel {
	store := jobs.NewStore(backend)
	ctl := wizard.NewController(store, testManagerID)
	m := postModel{
		ctl:     ctl,
		timeout: 5 * time.Second,
		fields:  postStepFields(ctl.Current()),
	}
	m.input = textinput.New()
	m.input.Prompt = "> "
	m.input.Width = 60
	m.loadFieldIntoInput()
	m.input.Focus()
	return m
}

func fillCompleteDraft(m *postModel) {
	d := &m.ctl.Draft
	d.JobTitle = "Backend Engineer"
	d.JobType = model.JobTypeFullTime
	d.WorkMode = model.WorkModeRemote
	d.Department = "Engineering"
	d.Location = "Berlin"
	d.NoOfOpenings = "2"
	d.SalaryMin = "60000"
	d.SalaryMax = "90000"
	d.SalaryCurrency = "EUR"
	d.SalaryType = model.SalaryTypeAnnual
	d.JobDescription = "Build and operate the hiring platform backend services."
	d.RequiredSkills = []string{"Go", "PostgreSQL"}
	d.ExperienceLevel = model.ExperienceSenior
	d.NoOfTechnicalRounds = "3"
	d.InterviewProcess = "Screen, technical, final"
	d.ApplicationDeadline = "2026-10-01"
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPostSelectFieldCyclesOptions(t *testing.T) {
	m := newTestPostModel(&fakeJobsAPI{})
	// move to JobType, the first select field
	model1, _ := m.updateForm(key("tab"))
	m1 := model1.(postModel)
	if m1.currentField().Key != "JobType" {
		t.Fatalf("field = %s", m1.currentField().Key)
	}

	model2, _ := m1.updateForm(key("right"))
	m2 := model2.(postModel)
	if got := m2.ctl.Draft.JobType; got != model.JobTypeFullTime {
		t.Fatalf("job type = %q", got)
	}

	model3, _ := m2.updateForm(key("right"))
	m3 := model3.(postModel)
	if got := m3.ctl.Draft.JobType; got != model.JobTypePartTime {
		t.Fatalf("job type = %q", got)
	}

	model4, _ := m3.updateForm(key("left"))
	m4 := model4.(postModel)
	if got := m4.ctl.Draft.JobType; got != model.JobTypeFullTime {
		t.Fatalf("job type = %q", got)
	}
}

func TestPostTypingFillsCurrentField(t *testing.T) {
	m := newTestPostModel(&fakeJobsAPI{})
	model1, _ := m.updateForm(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("QA Lead")})
	m1 := model1.(postModel)
	if got := m1.ctl.Draft.JobTitle; got != "QA Lead" {
		t.Fatalf("job title = %q", got)
	}
}

func TestPostEnterOnLastFieldValidatesStep(t *testing.T) {
	m := newTestPostModel(&fakeJobsAPI{})
	m.index = len(m.fields) - 1
	m.loadFieldIntoInput()

	model1, _ := m.updateForm(key("enter"))
	m1 := model1.(postModel)
	if m1.ctl.Current() != wizard.StepJob {
		t.Fatalf("empty step advanced to %s", m1.ctl.Current())
	}
	if !m1.isError {
		t.Fatal("expected an error status")
	}
	if m1.ctl.FieldError("JobTitle") == "" {
		t.Fatal("expected a field error after touch")
	}
	if m1.index != 0 {
		t.Fatalf("cursor should jump to the first invalid field, got %d", m1.index)
	}
}

func TestPostEscGoesBackOneStep(t *testing.T) {
	m := newTestPostModel(&fakeJobsAPI{})
	fillCompleteDraft(&m)
	m.index = len(m.fields) - 1
	m.loadFieldIntoInput()
	model1, _ := m.updateForm(key("enter"))
	m1 := model1.(postModel)
	if m1.ctl.Current() != wizard.StepJobSkills {
		t.Fatalf("current = %s", m1.ctl.Current())
	}

	model2, _ := m1.updateForm(key("esc"))
	m2 := model2.(postModel)
	if m2.ctl.Current() != wizard.StepJob {
		t.Fatalf("current = %s", m2.ctl.Current())
	}
}

func TestPostSkillsInputSplitsOnCommas(t *testing.T) {
	if got := splitSkills("React,, Go "); len(got) != 2 {
		t.Fatalf("skills = %q", got)
	}
	m := newTestPostModel(&fakeJobsAPI{})
	m.setDraftValue(postField{Key: "RequiredSkills", Kind: postFieldSkills}, "React,, Go ")
	p := m.ctl.Draft.Normalize()
	if strings.Join(p.RequiredSkills, ",") != "React,Go" {
		t.Fatalf("normalized skills = %v", p.RequiredSkills)
	}
}

func TestPostFullFlowSubmitsNormalizedPayload(t *testing.T) {
	backend := &fakeJobsAPI{}
	m := newTestPostModel(backend)
	fillCompleteDraft(&m)

	// step 1 -> 2 -> 3
	m.index = len(m.fields) - 1
	m.loadFieldIntoInput()
	model1, _ := m.updateForm(key("enter"))
	m1 := model1.(postModel)
	m1.index = len(m1.fields) - 1
	m1.loadFieldIntoInput()
	model2, _ := m1.updateForm(key("enter"))
	m2 := model2.(postModel)
	if m2.ctl.Current() != wizard.StepPublishing {
		t.Fatalf("current = %s", m2.ctl.Current())
	}

	// enter on the last publishing field submits
	m2.index = len(m2.fields) - 1
	m2.loadFieldIntoInput()
	model3, cmd := m2.updateForm(key("enter"))
	m3 := model3.(postModel)
	if !m3.busy {
		t.Fatal("expected busy while submitting")
	}
	if cmd == nil {
		t.Fatal("expected a submit command")
	}

	msg := cmd()
	submitted, ok := msg.(jobSubmittedMsg)
	if !ok {
		t.Fatalf("msg = %T", msg)
	}
	if submitted.err != nil {
		t.Fatal(submitted.err)
	}

	model4, _ := m3.Update(submitted)
	m4 := model4.(postModel)
	if m4.ctl.Current() != wizard.StepSuccess {
		t.Fatalf("current = %s", m4.ctl.Current())
	}
	if m4.message != "Job created successfully!" {
		t.Fatalf("message = %q", m4.message)
	}

	if len(backend.payloads) != 1 {
		t.Fatalf("payloads = %d", len(backend.payloads))
	}
	body, err := json.Marshal(backend.payloads[0])
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"no_of_openings":2`, `"stipend_amount":null`, `"hiring_manager_id":"` + testManagerID + `"`} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("payload missing %s:\n%s", want, body)
		}
	}
}

func TestPostSuccessScreenResetsForAnotherJob(t *testing.T) {
	backend := &fakeJobsAPI{}
	m := newTestPostModel(backend)
	fillCompleteDraft(&m)
	m.ctl.ValidateAndAdvance()
	m.ctl.ValidateAndAdvance()
	if _, err := m.ctl.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	m.fields = postStepFields(m.ctl.Current())

	model1, _ := m.updateSuccess(key("n"))
	m1 := model1.(postModel)
	if m1.ctl.Current() != wizard.StepJob {
		t.Fatalf("current = %s", m1.ctl.Current())
	}
	if m1.ctl.Draft.JobTitle != "" {
		t.Fatalf("draft not reset: %q", m1.ctl.Draft.JobTitle)
	}
	if m1.ctl.Draft.HiringManagerID != testManagerID {
		t.Fatalf("manager = %q", m1.ctl.Draft.HiringManagerID)
	}
}

func TestPostSaveDraftKeepsStep(t *testing.T) {
	backend := &fakeJobsAPI{}
	m := newTestPostModel(backend)
	fillCompleteDraft(&m)
	m.loadFieldIntoInput()

	model1, cmd := m.updateForm(tea.KeyMsg{Type: tea.KeyCtrlS})
	m1 := model1.(postModel)
	if !m1.busy || cmd == nil {
		t.Fatal("expected a save-draft command")
	}

	msg := cmd()
	saved, ok := msg.(draftSavedMsg)
	if !ok {
		t.Fatalf("msg = %T", msg)
	}
	if saved.err != nil {
		t.Fatal(saved.err)
	}

	model2, _ := m1.Update(saved)
	m2 := model2.(postModel)
	if m2.ctl.Current() != wizard.StepJob {
		t.Fatalf("current = %s", m2.ctl.Current())
	}
	if m2.message != "Job created successfully!" && m2.message != "Job saved as draft" {
		t.Fatalf("message = %q", m2.message)
	}
	if len(backend.payloads) != 1 || backend.payloads[0].Status != model.StatusDraft {
		t.Fatalf("payloads = %+v", backend.payloads)
	}
}
