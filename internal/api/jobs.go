package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"recruitdesk/internal/model"
)

type Pagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalCount  int `json:"total_count,omitempty"`
}

type JobList struct {
	Jobs       []model.Job `json:"jobs"`
	Pagination Pagination  `json:"pagination"`
}

// CreateJobResult is the created record plus the server's success message,
// surfaced to the user as a notification.
type CreateJobResult struct {
	Job     model.Job
	Message string
}

type jobEnvelope struct {
	Data model.Job `json:"data"`
}

type createJobResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    model.Job `json:"data"`
}

func jobPath(id string) string {
	return "/jobs/" + url.PathEscape(id) + "/"
}

func (c *Client) ListJobs(ctx context.Context, page, limit int) (JobList, error) {
	if limit <= 0 {
		limit = 100
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	}

	var out JobList
	if err := c.do(ctx, http.MethodGet, "/jobs/", query, nil, &out); err != nil {
		return JobList{}, err
	}
	if out.Jobs == nil {
		out.Jobs = []model.Job{}
	}
	if out.Pagination.CurrentPage == 0 {
		out.Pagination.CurrentPage = page
	}
	return out, nil
}

func (c *Client) GetJob(ctx context.Context, id string) (model.Job, error) {
	var out jobEnvelope
	err := c.do(ctx, http.MethodGet, jobPath(id), nil, nil, &out)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return model.Job{}, &NotFoundError{Resource: "job", ID: id}
		}
		return model.Job{}, err
	}
	return out.Data, nil
}

func (c *Client) CreateJob(ctx context.Context, payload model.JobPayload) (CreateJobResult, error) {
	var out createJobResponse
	if err := c.do(ctx, http.MethodPost, "/jobs/", nil, payload, &out); err != nil {
		return CreateJobResult{}, err
	}
	if !out.Success && out.Message != "" {
		return CreateJobResult{}, &NetworkError{Op: "POST /jobs/", Err: fmt.Errorf("%s", out.Message)}
	}
	return CreateJobResult{Job: out.Data, Message: out.Message}, nil
}

func (c *Client) UpdateJob(ctx context.Context, id string, partial map[string]any) (model.Job, error) {
	var out jobEnvelope
	if err := c.do(ctx, http.MethodPatch, jobPath(id), nil, partial, &out); err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return model.Job{}, &NotFoundError{Resource: "job", ID: id}
		}
		return model.Job{}, err
	}
	return out.Data, nil
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	err := c.do(ctx, http.MethodDelete, jobPath(id), nil, nil, nil)
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return &NotFoundError{Resource: "job", ID: id}
	}
	return err
}
