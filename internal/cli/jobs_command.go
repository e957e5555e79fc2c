package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"recruitdesk/internal/api"
	"recruitdesk/internal/jobs"
	"recruitdesk/internal/model"
	"recruitdesk/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type jobsMode int

const (
	jobsModeBrowse jobsMode = iota
	jobsModeDeleteConfirm
)

type jobsModel struct {
	store   *jobs.Store
	timeout time.Duration

	list       []model.Job
	pagination api.Pagination
	hasMore    bool
	cursor     int
	width      int
	height     int
	mode       jobsMode
	loading    bool

	confirmDeleteID    string
	confirmDeleteTitle string
	statusMessage      string
	fatalErr           error
}

type jobsLoadedMsg struct {
	jobs       []model.Job
	pagination api.Pagination
	hasMore    bool
	appended   bool
	err        error
}

type jobDeletedMsg struct {
	title string
	err   error
}

type jobDetailMsg struct {
	job *model.Job
	err error
}

type jobStatusMsg struct {
	title  string
	status string
	err    error
}

var (
	jobsTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	jobsMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	jobsErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	jobsOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	jobsPanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	jobsSelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Bold(true)
	jobsDraftStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func runJobs(args []string) error {
	fs := flag.NewFlagSet("jobs", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "print the job list as JSON and exit")
	page := fs.Int("page", 1, "page to fetch (JSON mode)")
	deleteID := fs.String("delete", "", "delete the job with this id and exit")
	yes := fs.Bool("yes", false, "skip the delete confirmation")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	if route := a.session.Initialize(session.RouteDashboardJobs); route == session.RouteLogin {
		return errors.New("not signed in (run: recruitdesk login)")
	}

	if id := strings.TrimSpace(*deleteID); id != "" {
		if !*yes {
			ok, err := promptConfirm(fmt.Sprintf("Delete job %s? [y/N] ", id))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("delete cancelled")
				return nil
			}
		}
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.RequestTimeout)
		defer cancel()
		if err := a.jobs.Remove(ctx, id); err != nil {
			return err
		}
		fmt.Println("deleted:", id)
		return nil
	}

	if *jsonOut || !stdinIsTTY() {
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.RequestTimeout)
		defer cancel()
		if err := a.jobs.List(ctx, *page, false); err != nil {
			return err
		}
		if *jsonOut {
			return printJSON(map[string]any{
				"jobs":       a.jobs.Jobs(),
				"pagination": a.jobs.Pagination(),
			})
		}
		for _, j := range a.jobs.Jobs() {
			fmt.Printf("%s\t%s\t%s\t%s\n", j.JobID, j.JobTitle, defaultIfEmpty(j.Status, model.StatusPublished), j.Location)
		}
		return nil
	}

	m := jobsModel{
		store:   a.jobs,
		timeout: a.cfg.RequestTimeout,
		loading: true,
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "tty") {
			return errors.New("jobs requires an interactive terminal (TTY)")
		}
		return err
	}
	if fm, ok := finalModel.(jobsModel); ok {
		return fm.fatalErr
	}
	return nil
}

func (m jobsModel) Init() tea.Cmd {
	return loadJobsCmd(m.store, m.timeout, 1, false)
}

func (m jobsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case jobsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.statusMessage = "error: " + describeAPIError(msg.err)
			return m, nil
		}
		m.list = msg.jobs
		m.pagination = msg.pagination
		m.hasMore = msg.hasMore
		total := m.totalRows()
		if total <= 0 {
			m.cursor = 0
		} else if m.cursor > total-1 {
			m.cursor = total - 1
		}
		if msg.appended {
			m.statusMessage = fmt.Sprintf("loaded page %d of %d", msg.pagination.CurrentPage, msg.pagination.TotalPages)
		}
		return m, nil
	case jobDeletedMsg:
		m.loading = false
		m.mode = jobsModeBrowse
		m.confirmDeleteID = ""
		m.confirmDeleteTitle = ""
		if msg.err != nil {
			m.statusMessage = "error: " + describeAPIError(msg.err)
			return m, nil
		}
		m.statusMessage = "deleted: " + msg.title
		m.list = m.store.Jobs()
		total := m.totalRows()
		if total > 0 && m.cursor > total-1 {
			m.cursor = total - 1
		}
		return m, nil
	case jobDetailMsg:
		m.loading = false
		if msg.err != nil {
			m.statusMessage = "error: " + describeAPIError(msg.err)
			return m, nil
		}
		for i := range m.list {
			if m.list[i].JobID == msg.job.JobID {
				m.list[i] = *msg.job
				break
			}
		}
		m.statusMessage = "details refreshed"
		return m, nil
	case jobStatusMsg:
		m.loading = false
		if msg.err != nil {
			m.statusMessage = "error: " + describeAPIError(msg.err)
			return m, nil
		}
		m.statusMessage = fmt.Sprintf("updated: %s is now %s", msg.title, msg.status)
		m.list = m.store.Jobs()
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch m.mode {
	case jobsModeDeleteConfirm:
		return m.updateDeleteConfirm(keyMsg)
	default:
		return m.updateBrowse(keyMsg)
	}
}

// totalRows counts list rows plus the trailing Load More action row.
func (m jobsModel) totalRows() int {
	total := len(m.list)
	if m.hasMore {
		total++
	}
	return total
}

func (m jobsModel) isLoadMoreCursor() bool {
	return m.hasMore && m.cursor == len(m.list)
}

func (m jobsModel) selectedJob() (model.Job, bool) {
	if m.cursor < 0 || m.cursor >= len(m.list) {
		return model.Job{}, false
	}
	return m.list[m.cursor], true
}

func (m jobsModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		if s := msg.String(); s == "ctrl+c" || s == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < m.totalRows()-1 {
			m.cursor++
		}
		return m, nil
	case "r":
		m.loading = true
		m.statusMessage = "refreshing..."
		return m, loadJobsCmd(m.store, m.timeout, 1, false)
	case "enter", " ", "space":
		if m.isLoadMoreCursor() {
			m.loading = true
			m.statusMessage = "loading more..."
			return m, loadJobsCmd(m.store, m.timeout, m.pagination.CurrentPage+1, true)
		}
		job, ok := m.selectedJob()
		if !ok {
			return m, nil
		}
		m.loading = true
		m.statusMessage = "refreshing details..."
		return m, jobDetailCmd(m.store, m.timeout, job.JobID)
	case "p":
		job, ok := m.selectedJob()
		if !ok {
			return m, nil
		}
		if job.Status != model.StatusDraft && job.Status != model.StatusClosed {
			m.statusMessage = "only drafts can be published"
			return m, nil
		}
		m.loading = true
		return m, updateJobStatusCmd(m.store, m.timeout, job, model.StatusPublished)
	case "c":
		job, ok := m.selectedJob()
		if !ok {
			return m, nil
		}
		if job.Status == model.StatusClosed {
			m.statusMessage = "job is already closed"
			return m, nil
		}
		m.loading = true
		return m, updateJobStatusCmd(m.store, m.timeout, job, model.StatusClosed)
	case "d":
		job, ok := m.selectedJob()
		if !ok {
			m.statusMessage = "select a job to delete"
			return m, nil
		}
		m.mode = jobsModeDeleteConfirm
		m.confirmDeleteID = job.JobID
		m.confirmDeleteTitle = job.JobTitle
		return m, nil
	}
	return m, nil
}

func (m jobsModel) updateDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "n":
		m.mode = jobsModeBrowse
		m.confirmDeleteID = ""
		m.confirmDeleteTitle = ""
		m.statusMessage = "delete cancelled"
		return m, nil
	case "y", "enter":
		if strings.TrimSpace(m.confirmDeleteID) == "" {
			m.mode = jobsModeBrowse
			m.statusMessage = "delete cancelled"
			return m, nil
		}
		m.loading = true
		return m, deleteJobCmd(m.store, m.timeout, m.confirmDeleteID, m.confirmDeleteTitle)
	}
	return m, nil
}

func (m jobsModel) View() string {
	if m.fatalErr != nil {
		return jobsErrorStyle.Render("fatal: " + m.fatalErr.Error())
	}
	if m.width <= 0 {
		m.width = 100
	}
	if m.height <= 0 {
		m.height = 30
	}
	if m.mode == jobsModeDeleteConfirm {
		return m.viewDeleteConfirm()
	}
	return m.viewBrowse()
}

func (m jobsModel) viewBrowse() string {
	header := jobsTitleStyle.Render("recruitdesk jobs") + "\n" +
		jobsMutedStyle.Render("up/down: move | enter: load more | p: publish draft | c: close | d: delete | r: refresh | q: quit")

	if m.width < 90 {
		list := m.renderListPanel(m.width)
		details := m.renderDetailsPanel(m.width)
		body := lipgloss.JoinVertical(lipgloss.Left, list, details)
		status := m.renderStatusLine(m.width)
		return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
	}

	leftW := clampInt(m.width/2, 38, 60)
	rightW := m.width - leftW - 1
	list := m.renderListPanel(leftW)
	details := m.renderDetailsPanel(rightW)
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, details)
	status := m.renderStatusLine(m.width)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (m jobsModel) renderListPanel(width int) string {
	total := m.totalRows()
	maxRows := clampInt(m.height-10, 4, 22)
	listCursor := m.cursor
	if total > 0 && listCursor >= total {
		listCursor = total - 1
	}
	start, end := listWindow(total, listCursor, maxRows)

	lines := make([]string, 0, maxRows+3)
	if m.loading && len(m.list) == 0 {
		lines = append(lines, jobsMutedStyle.Render("Loading jobs..."))
	} else if len(m.list) == 0 {
		lines = append(lines, jobsMutedStyle.Render("No job postings yet."))
		lines = append(lines, jobsMutedStyle.Render("Run 'recruitdesk post' to create one."))
	}
	if start > 0 {
		lines = append(lines, jobsMutedStyle.Render("..."))
	}
	for i := start; i < end; i++ {
		line := ""
		draft := false
		if i == len(m.list) {
			line = fmt.Sprintf("[+] Load More (page %d/%d)", m.pagination.CurrentPage, m.pagination.TotalPages)
		} else {
			j := m.list[i]
			mark := " "
			switch j.Status {
			case model.StatusDraft:
				mark = "d"
				draft = true
			case model.StatusClosed:
				mark = "x"
			}
			line = fmt.Sprintf("[%s] %s  %s", mark, j.JobTitle, j.Location)
		}
		line = truncateRunes(line, maxInt(width-6, 10))
		if i == m.cursor {
			line = jobsSelStyle.Width(maxInt(width-4, 6)).Render(line)
		} else if draft {
			line = jobsDraftStyle.Render(line)
		}
		lines = append(lines, line)
	}
	if end < total {
		lines = append(lines, jobsMutedStyle.Render("..."))
	}
	if m.pagination.TotalCount > 0 {
		lines = append(lines, "")
		lines = append(lines, jobsMutedStyle.Render(fmt.Sprintf("%d of %d jobs loaded", len(m.list), m.pagination.TotalCount)))
	}

	return jobsPanelStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func (m jobsModel) renderDetailsPanel(width int) string {
	lines := []string{}
	if m.isLoadMoreCursor() {
		lines = append(lines, "Load More")
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("Page %d of %d loaded.", m.pagination.CurrentPage, m.pagination.TotalPages))
		lines = append(lines, "Press Enter to append the next page.")
	} else if job, ok := m.selectedJob(); ok {
		lines = append(lines, "Job Details")
		lines = append(lines, "")
		lines = append(lines, kv("title", job.JobTitle))
		lines = append(lines, kv("status", defaultIfEmpty(job.Status, model.StatusPublished)))
		lines = append(lines, kv("type", humanizeEnum(job.JobType)))
		lines = append(lines, kv("work_mode", humanizeEnum(job.WorkMode)))
		lines = append(lines, kv("department", job.Department))
		lines = append(lines, kv("location", job.Location))
		lines = append(lines, kv("salary", formatSalary(job)))
		lines = append(lines, kv("openings", strconv.Itoa(job.NoOfOpenings)))
		lines = append(lines, kv("experience", humanizeEnum(job.ExperienceLevel)))
		lines = append(lines, kv("required_skills", strings.Join(job.RequiredSkills, ", ")))
		if len(job.PreferredSkills) > 0 {
			lines = append(lines, kv("preferred_skills", strings.Join(job.PreferredSkills, ", ")))
		}
		lines = append(lines, kv("tech_rounds", strconv.Itoa(job.NoOfTechnicalRounds)))
		lines = append(lines, kv("deadline", job.ApplicationDeadline))
		lines = append(lines, kv("applications", strconv.Itoa(job.ApplicationCount)))
		if strings.TrimSpace(job.JobDescription) != "" {
			lines = append(lines, "")
			lines = append(lines, jobsMutedStyle.Render(job.JobDescription))
		}
	} else {
		lines = append(lines, "No job selected")
		lines = append(lines, "")
		lines = append(lines, "Post a job with 'recruitdesk post'.")
	}

	for i := range lines {
		lines[i] = wrapOrTrim(lines[i], maxInt(width-6, 12))
	}
	return jobsPanelStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func (m jobsModel) renderStatusLine(width int) string {
	msg := strings.TrimSpace(m.statusMessage)
	if m.loading {
		msg = "working..."
	}
	if msg == "" {
		msg = "Tip: drafts show as [d]; press p on a draft to publish it."
	}
	style := jobsMutedStyle
	lower := strings.ToLower(msg)
	if strings.HasPrefix(lower, "error:") {
		style = jobsErrorStyle
	} else if strings.HasPrefix(lower, "deleted") || strings.HasPrefix(lower, "updated") {
		style = jobsOKStyle
	}
	return style.Width(width).Render(truncateRunes(msg, maxInt(width-2, 10)))
}

func (m jobsModel) viewDeleteConfirm() string {
	text := fmt.Sprintf(
		"Delete job posting '%s'?\n\nApplicants will no longer see it.\nThis cannot be undone.\n\nPress y or Enter to confirm, n or Esc to cancel.",
		m.confirmDeleteTitle,
	)
	boxW := clampInt(m.width-8, 36, 80)
	boxH := clampInt(m.height-6, 9, 14)
	panel := jobsPanelStyle.Width(boxW).Height(boxH).Render(text)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}

func loadJobsCmd(store *jobs.Store, timeout time.Duration, page int, loadMore bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := store.List(ctx, page, loadMore); err != nil {
			return jobsLoadedMsg{err: err}
		}
		return jobsLoadedMsg{
			jobs:       store.Jobs(),
			pagination: store.Pagination(),
			hasMore:    store.HasMore(),
			appended:   loadMore,
		}
	}
}

func jobDetailCmd(store *jobs.Store, timeout time.Duration, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		job := store.GetByID(ctx, id)
		if job == nil {
			err := store.LastError()
			if err == nil {
				err = &api.NotFoundError{Resource: "job", ID: id}
			}
			return jobDetailMsg{err: err}
		}
		return jobDetailMsg{job: job}
	}
}

func deleteJobCmd(store *jobs.Store, timeout time.Duration, id, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := store.Remove(ctx, id); err != nil {
			return jobDeletedMsg{err: err}
		}
		return jobDeletedMsg{title: title}
	}
}

func updateJobStatusCmd(store *jobs.Store, timeout time.Duration, job model.Job, status string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := store.Update(ctx, job.JobID, map[string]any{"status": status}); err != nil {
			return jobStatusMsg{err: err}
		}
		return jobStatusMsg{title: job.JobTitle, status: status}
	}
}

// describeAPIError flattens the client error taxonomy into one status line.
func describeAPIError(err error) string {
	var authErr *api.AuthError
	if errors.As(err, &authErr) {
		return "session expired, sign in again"
	}
	var verr *api.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	var nf *api.NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return netErr.Error()
	}
	return err.Error()
}
