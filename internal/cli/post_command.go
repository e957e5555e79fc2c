package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"recruitdesk/internal/model"
	"recruitdesk/internal/session"
	"recruitdesk/internal/wizard"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type postFieldKind int

const (
	postFieldString postFieldKind = iota
	postFieldInt
	postFieldSelect
	postFieldDate
	postFieldSkills
	postFieldText
)

// postField describes one wizard input. Key is the draft field name; the
// controller validates by that name so errors land on the right row.
type postField struct {
	Key     string
	Label   string
	Help    string
	Kind    postFieldKind
	Options []string
}

type postModel struct {
	ctl     *wizard.Controller
	timeout time.Duration

	fields  []postField
	index   int
	input   textinput.Model
	width   int
	height  int
	busy    bool
	message string
	isError bool

	fatalErr error
}

type jobSubmittedMsg struct {
	message string
	err     error
}

type draftSavedMsg struct {
	message string
	err     error
}

var (
	postTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	postMutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	postErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	postOKStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	postPanelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	postStepDoneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	postStepHereStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
)

func runPost(args []string) error {
	fs := flag.NewFlagSet("post", flag.ContinueOnError)
	managerID := fs.String("manager-id", "", "hiring manager UUID (defaults to the signed-in user)")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	if route := a.session.Initialize(session.RouteCreateJob); route == session.RouteLogin {
		return errors.New("not signed in (run: recruitdesk login)")
	}
	if !stdinIsTTY() {
		return errors.New("post requires an interactive terminal (TTY)")
	}

	defaultManager := strings.TrimSpace(*managerID)
	if defaultManager == "" {
		if user := a.session.User(); user != nil {
			defaultManager = user.UserID
		}
	}

	ctl := wizard.NewController(a.jobs, defaultManager)
	m := postModel{
		ctl:     ctl,
		timeout: a.cfg.RequestTimeout,
		fields:  postStepFields(ctl.Current()),
	}
	m.input = textinput.New()
	m.input.Prompt = "> "
	m.input.CharLimit = 4096
	m.input.Width = 60
	m.loadFieldIntoInput()
	m.input.Focus()

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "tty") {
			return errors.New("post requires an interactive terminal (TTY)")
		}
		return err
	}
	if fm, ok := finalModel.(postModel); ok {
		return fm.fatalErr
	}
	return nil
}

// postStepFields maps a wizard step to its input rows, in form order.
func postStepFields(step wizard.StepKey) []postField {
	switch step {
	case wizard.StepJob:
		return []postField{
			{Key: "JobTitle", Label: "Job Title", Help: "e.g. Senior Backend Engineer", Kind: postFieldString},
			{Key: "JobType", Label: "Job Type", Kind: postFieldSelect, Options: []string{
				model.JobTypeFullTime, model.JobTypePartTime, model.JobTypeContract,
				model.JobTypeInternship, model.JobTypeTemporary, model.JobTypeFreelance,
			}},
			{Key: "WorkMode", Label: "Work Mode", Kind: postFieldSelect, Options: []string{
				model.WorkModeOnSite, model.WorkModeRemote, model.WorkModeHybrid,
			}},
			{Key: "Department", Label: "Department", Help: "e.g. Engineering", Kind: postFieldString},
			{Key: "Location", Label: "Location", Help: "City or 'Remote'", Kind: postFieldString},
			{Key: "NoOfOpenings", Label: "Openings", Help: "How many positions to fill", Kind: postFieldInt},
		}
	case wizard.StepJobSkills:
		return []postField{
			{Key: "SalaryMin", Label: "Salary Min", Kind: postFieldInt},
			{Key: "SalaryMax", Label: "Salary Max", Kind: postFieldInt},
			{Key: "SalaryCurrency", Label: "Currency", Help: "e.g. USD, EUR, INR", Kind: postFieldString},
			{Key: "SalaryType", Label: "Salary Type", Kind: postFieldSelect, Options: []string{
				model.SalaryTypeAnnual, model.SalaryTypeMonthly, model.SalaryTypeHourly, model.SalaryTypeStipend,
			}},
			{Key: "StipendAmount", Label: "Stipend Amount", Help: "Only for stipend salary type", Kind: postFieldInt},
			{Key: "JobDescription", Label: "Description", Help: "At least 20 characters", Kind: postFieldText},
			{Key: "RequiredSkills", Label: "Required Skills", Help: "Comma separated, e.g. Go, PostgreSQL", Kind: postFieldSkills},
			{Key: "PreferredSkills", Label: "Preferred Skills", Help: "Comma separated, optional", Kind: postFieldSkills},
			{Key: "ExperienceLevel", Label: "Experience Level", Kind: postFieldSelect, Options: []string{
				model.ExperienceJunior, model.ExperienceMid, model.ExperienceSenior, model.ExperienceLead,
			}},
			{Key: "NoOfTechnicalRounds", Label: "Technical Rounds", Kind: postFieldInt},
			{Key: "InterviewProcess", Label: "Interview Process", Help: "Short outline of the stages", Kind: postFieldText},
		}
	case wizard.StepPublishing:
		return []postField{
			{Key: "ApplicationDeadline", Label: "Application Deadline", Help: "YYYY-MM-DD", Kind: postFieldDate},
			{Key: "HiringManagerID", Label: "Hiring Manager ID", Help: "UUID; pre-filled with your account", Kind: postFieldString},
		}
	default:
		return nil
	}
}

func (m postModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m postModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = clampInt(m.width-8, 20, 120)
		return m, nil
	case jobSubmittedMsg:
		m.busy = false
		if msg.err != nil {
			m.message = "error: " + describeAPIError(msg.err)
			m.isError = true
			if m.ctl.HasErrors() {
				m.index = m.firstErrorIndex()
				m.loadFieldIntoInput()
			}
			return m, nil
		}
		// controller already advanced to the success step
		m.fields = postStepFields(m.ctl.Current())
		m.index = 0
		m.message = msg.message
		m.isError = false
		return m, nil
	case draftSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.message = "error: " + describeAPIError(msg.err)
			m.isError = true
			return m, nil
		}
		m.message = msg.message
		m.isError = false
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.busy {
		if keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}
	if m.ctl.Current() == wizard.StepSuccess {
		return m.updateSuccess(keyMsg)
	}
	return m.updateForm(keyMsg)
}

func (m postModel) updateSuccess(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc", "enter":
		return m, tea.Quit
	case "n":
		m.ctl.Reset()
		m.fields = postStepFields(m.ctl.Current())
		m.index = 0
		m.message = ""
		m.isError = false
		m.loadFieldIntoInput()
		return m, nil
	}
	return m, nil
}

func (m postModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.commitInput()
		if m.ctl.Current() == wizard.StepJob {
			return m, tea.Quit
		}
		m.ctl.GoBack()
		m.fields = postStepFields(m.ctl.Current())
		m.index = 0
		m.message = ""
		m.isError = false
		m.loadFieldIntoInput()
		return m, nil
	case "up", "shift+tab":
		m.commitInput()
		if m.index > 0 {
			m.index--
		}
		m.loadFieldIntoInput()
		return m, nil
	case "down", "tab":
		m.commitInput()
		if m.index < len(m.fields)-1 {
			m.index++
		}
		m.loadFieldIntoInput()
		return m, nil
	case "left":
		if m.currentField().Kind == postFieldSelect {
			m.cycleSelect(-1)
			return m, nil
		}
	case "right", " ", "space":
		if m.currentField().Kind == postFieldSelect {
			m.cycleSelect(1)
			return m, nil
		}
	case "ctrl+s":
		m.commitInput()
		m.busy = true
		m.message = "saving draft..."
		m.isError = false
		return m, saveDraftCmd(m.ctl, m.timeout)
	case "enter":
		m.commitInput()
		if m.index < len(m.fields)-1 {
			m.index++
			m.loadFieldIntoInput()
			return m, nil
		}
		if m.ctl.Current() == wizard.StepPublishing {
			m.busy = true
			m.message = "submitting..."
			m.isError = false
			return m, submitJobCmd(m.ctl, m.timeout)
		}
		if m.ctl.ValidateAndAdvance() {
			m.fields = postStepFields(m.ctl.Current())
			m.index = 0
			m.message = ""
			m.isError = false
		} else {
			m.message = "fix the highlighted fields to continue"
			m.isError = true
			m.index = m.firstErrorIndex()
		}
		m.loadFieldIntoInput()
		return m, nil
	}

	if m.currentField().Kind == postFieldSelect {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.setDraftValue(m.currentField(), m.input.Value())
	return m, cmd
}

func (m postModel) currentField() postField {
	if len(m.fields) == 0 {
		return postField{}
	}
	i := clampInt(m.index, 0, len(m.fields)-1)
	return m.fields[i]
}

func (m *postModel) firstErrorIndex() int {
	for i, f := range m.fields {
		if m.ctl.FieldError(f.Key) != "" {
			return i
		}
	}
	return clampInt(m.index, 0, maxInt(len(m.fields)-1, 0))
}

func (m *postModel) commitInput() {
	if len(m.fields) == 0 {
		return
	}
	m.setDraftValue(m.currentField(), m.input.Value())
}

func (m *postModel) loadFieldIntoInput() {
	if len(m.fields) == 0 {
		return
	}
	m.input.SetValue(m.draftValue(m.currentField()))
	m.input.CursorEnd()
}

func (m *postModel) cycleSelect(dir int) {
	f := m.currentField()
	if f.Kind != postFieldSelect || len(f.Options) == 0 {
		return
	}
	current := strings.TrimSpace(m.draftValue(f))
	pos := -1
	for i, opt := range f.Options {
		if strings.EqualFold(opt, current) {
			pos = i
			break
		}
	}
	if pos < 0 {
		pos = 0
	} else {
		pos = (pos + dir + len(f.Options)) % len(f.Options)
	}
	m.setDraftValue(f, f.Options[pos])
	m.loadFieldIntoInput()
}

// draftValue reads the draft field behind a form row. Skill lists round-trip
// through a comma-joined string.
func (m *postModel) draftValue(f postField) string {
	d := &m.ctl.Draft
	switch f.Key {
	case "JobTitle":
		return d.JobTitle
	case "JobType":
		return d.JobType
	case "WorkMode":
		return d.WorkMode
	case "Department":
		return d.Department
	case "Location":
		return d.Location
	case "NoOfOpenings":
		return d.NoOfOpenings
	case "SalaryMin":
		return d.SalaryMin
	case "SalaryMax":
		return d.SalaryMax
	case "SalaryCurrency":
		return d.SalaryCurrency
	case "SalaryType":
		return d.SalaryType
	case "StipendAmount":
		return d.StipendAmount
	case "JobDescription":
		return d.JobDescription
	case "RequiredSkills":
		return strings.Join(d.RequiredSkills, ", ")
	case "PreferredSkills":
		return strings.Join(d.PreferredSkills, ", ")
	case "ExperienceLevel":
		return d.ExperienceLevel
	case "NoOfTechnicalRounds":
		return d.NoOfTechnicalRounds
	case "InterviewProcess":
		return d.InterviewProcess
	case "ApplicationDeadline":
		return d.ApplicationDeadline
	case "HiringManagerID":
		return d.HiringManagerID
	}
	return ""
}

func (m *postModel) setDraftValue(f postField, raw string) {
	d := &m.ctl.Draft
	switch f.Key {
	case "JobTitle":
		d.JobTitle = raw
	case "JobType":
		d.JobType = raw
	case "WorkMode":
		d.WorkMode = raw
	case "Department":
		d.Department = raw
	case "Location":
		d.Location = raw
	case "NoOfOpenings":
		d.NoOfOpenings = strings.TrimSpace(raw)
	case "SalaryMin":
		d.SalaryMin = strings.TrimSpace(raw)
	case "SalaryMax":
		d.SalaryMax = strings.TrimSpace(raw)
	case "SalaryCurrency":
		d.SalaryCurrency = raw
	case "SalaryType":
		d.SalaryType = raw
	case "StipendAmount":
		d.StipendAmount = strings.TrimSpace(raw)
	case "JobDescription":
		d.JobDescription = raw
	case "RequiredSkills":
		d.RequiredSkills = splitSkills(raw)
	case "PreferredSkills":
		d.PreferredSkills = splitSkills(raw)
	case "ExperienceLevel":
		d.ExperienceLevel = raw
	case "NoOfTechnicalRounds":
		d.NoOfTechnicalRounds = strings.TrimSpace(raw)
	case "InterviewProcess":
		d.InterviewProcess = raw
	case "ApplicationDeadline":
		d.ApplicationDeadline = strings.TrimSpace(raw)
	case "HiringManagerID":
		d.HiringManagerID = strings.TrimSpace(raw)
	}
}

// splitSkills turns comma-separated input into draft entries. Segments that
// trim to nothing are dropped; surrounding whitespace is left for the
// normalize pass.
func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (m postModel) View() string {
	if m.fatalErr != nil {
		return postErrorStyle.Render("fatal: " + m.fatalErr.Error())
	}
	if m.width <= 0 {
		m.width = 100
	}
	if m.height <= 0 {
		m.height = 30
	}
	if m.ctl.Current() == wizard.StepSuccess {
		return m.viewSuccess()
	}
	return m.viewForm()
}

func (m postModel) viewForm() string {
	header := postTitleStyle.Render("recruitdesk post: new job") + "\n" + m.renderBreadcrumbs()
	hints := postMutedStyle.Render("tab/up/down: move | left/right/space: choose | enter: next/continue | ctrl+s: save draft | esc: back | ctrl+c: quit")

	lines := make([]string, 0, len(m.fields)+6)
	for i, f := range m.fields {
		prefix := "  "
		if i == m.index {
			prefix = "> "
		}
		display := strings.TrimSpace(m.draftValue(f))
		if display == "" {
			display = postMutedStyle.Render("(empty)")
		} else if f.Kind == postFieldSelect {
			display = "[" + humanizeEnum(display) + "]"
		} else if f.Kind == postFieldText {
			display = truncateRunes(display, 48)
		}
		line := fmt.Sprintf("%s%s: %s", prefix, f.Label, display)
		if fieldErr := m.ctl.FieldError(f.Key); fieldErr != "" {
			line += "  " + postErrorStyle.Render(fieldErr)
		}
		lines = append(lines, wrapOrTrim(line, maxInt(m.width-6, 20)))
	}

	curr := m.currentField()
	inputLabel := fmt.Sprintf("\n%s\n", curr.Label)
	inputHelp := ""
	if strings.TrimSpace(curr.Help) != "" {
		inputHelp = postMutedStyle.Render(curr.Help) + "\n"
	}
	inputView := m.input.View()
	if curr.Kind == postFieldSelect {
		inputView = postMutedStyle.Render("left/right to choose: ") + "[" + humanizeEnum(defaultIfEmpty(strings.TrimSpace(m.draftValue(curr)), "choose...")) + "]"
	}

	status := ""
	if strings.TrimSpace(m.message) != "" {
		if m.isError {
			status = "\n" + postErrorStyle.Render(m.message)
		} else {
			status = "\n" + postOKStyle.Render(m.message)
		}
	}

	panel := postPanelStyle.Width(maxInt(m.width-2, 40)).Render(strings.Join(lines, "\n") + inputLabel + inputHelp + inputView + status)
	progress := m.renderProgress()
	return lipgloss.JoinVertical(lipgloss.Left, header, hints, panel, progress)
}

func (m postModel) viewSuccess() string {
	message := defaultIfEmpty(strings.TrimSpace(m.message), "Job created successfully!")
	text := postOKStyle.Render(message) + "\n\n" +
		"The posting is live and accepting applications.\n\n" +
		"Press n to post another job, or q to exit."
	boxW := clampInt(m.width-8, 40, 80)
	boxH := clampInt(m.height-6, 9, 14)
	panel := postPanelStyle.Width(boxW).Height(boxH).Render(text)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}

func (m postModel) renderBreadcrumbs() string {
	parts := make([]string, 0, 4)
	for _, s := range m.ctl.Steps() {
		label := s.Label
		switch {
		case s.Key == m.ctl.Current():
			label = postStepHereStyle.Render(" " + label + " ")
		case m.ctl.Completed(s.Key):
			label = postStepDoneStyle.Render(label + " ✓")
		default:
			label = postMutedStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, postMutedStyle.Render(" > "))
}

func (m postModel) renderProgress() string {
	width := clampInt(m.width-12, 20, 40)
	filled := int(m.ctl.Progress() * float64(width))
	bar := strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
	return postMutedStyle.Render(fmt.Sprintf("[%s] %d%%", bar, int(m.ctl.Progress()*100)))
}

func submitJobCmd(ctl *wizard.Controller, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		message, err := ctl.Submit(ctx)
		if err != nil {
			return jobSubmittedMsg{err: err}
		}
		return jobSubmittedMsg{message: message}
	}
}

func saveDraftCmd(ctl *wizard.Controller, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		message, err := ctl.SaveDraft(ctx)
		if err != nil {
			return draftSavedMsg{err: err}
		}
		return draftSavedMsg{message: message}
	}
}
