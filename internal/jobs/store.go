package jobs

import (
	"context"
	"errors"
	"sync"

	"recruitdesk/internal/api"
	"recruitdesk/internal/model"
)

const DefaultPageSize = 10

// API is the backend surface the store needs; *api.Client satisfies it.
type API interface {
	ListJobs(ctx context.Context, page, limit int) (api.JobList, error)
	GetJob(ctx context.Context, id string) (model.Job, error)
	CreateJob(ctx context.Context, payload model.JobPayload) (api.CreateJobResult, error)
	UpdateJob(ctx context.Context, id string, partial map[string]any) (model.Job, error)
	DeleteJob(ctx context.Context, id string) error
}

// Store caches job records fetched from the backend and keeps the cache
// consistent with successful mutations. Failed mutations leave it untouched.
// Operations run from UI commands on separate goroutines; the mutex keeps
// cache patches atomic, but racing calls are still last-write-wins.
type Store struct {
	mu         sync.Mutex
	api        API
	jobs       []model.Job
	pagination api.Pagination
	loading    bool
	lastErr    error
}

func NewStore(backend API) *Store {
	return &Store{api: backend, jobs: []model.Job{}}
}

// List fetches a page of jobs. loadMore appends to the cache; otherwise the
// cache is replaced. Pagination metadata follows the response.
func (s *Store) List(ctx context.Context, page int, loadMore bool) error {
	if page < 1 {
		page = 1
	}
	s.setLoading(true)
	defer s.setLoading(false)

	list, err := s.api.ListJobs(ctx, page, DefaultPageSize)
	if err != nil {
		s.recordErr(err)
		return err
	}

	s.mu.Lock()
	if loadMore {
		s.jobs = append(s.jobs, list.Jobs...)
	} else {
		s.jobs = append([]model.Job{}, list.Jobs...)
	}
	s.pagination = list.Pagination
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// GetByID fetches a single job without requiring it to be cached. Not-found
// and request failures are recorded locally and reported as nil.
func (s *Store) GetByID(ctx context.Context, id string) *model.Job {
	s.setLoading(true)
	defer s.setLoading(false)

	job, err := s.api.GetJob(ctx, id)
	if err != nil {
		s.recordErr(err)
		return nil
	}
	return &job
}

// Create posts a new job. On success the record is appended to the cache;
// on failure the cache is untouched and the result is nil.
func (s *Store) Create(ctx context.Context, payload model.JobPayload) (*api.CreateJobResult, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	res, err := s.api.CreateJob(ctx, payload)
	if err != nil {
		s.recordErr(err)
		return nil, err
	}

	s.mu.Lock()
	s.jobs = append(s.jobs, res.Job)
	s.lastErr = nil
	s.mu.Unlock()
	return &res, nil
}

// Update patches a job; on success the cached entry matching id is replaced.
// A status change is checked against the allowed transitions before it goes
// on the wire.
func (s *Store) Update(ctx context.Context, id string, partial map[string]any) (*model.Job, error) {
	if next, ok := partial["status"].(string); ok {
		if !model.IsKnownStatus(next) {
			err := errors.New("job " + id + ": unknown status " + next)
			s.recordErr(err)
			return nil, err
		}
		if current, found := s.cached(id); found {
			if err := model.TransitionJobStatus(&current, next); err != nil {
				s.recordErr(err)
				return nil, err
			}
		}
	}

	s.setLoading(true)
	defer s.setLoading(false)

	updated, err := s.api.UpdateJob(ctx, id, partial)
	if err != nil {
		s.recordErr(err)
		return nil, err
	}

	s.mu.Lock()
	for i := range s.jobs {
		if s.jobs[i].JobID == id {
			s.jobs[i] = updated
			break
		}
	}
	s.lastErr = nil
	s.mu.Unlock()
	return &updated, nil
}

// Remove deletes a job; on success it is dropped from the cache.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.api.DeleteJob(ctx, id); err != nil {
		s.recordErr(err)
		return err
	}

	s.mu.Lock()
	for i := range s.jobs {
		if s.jobs[i].JobID == id {
			s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
			break
		}
	}
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// Jobs returns a copy of the cached records.
func (s *Store) Jobs() []model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Job{}, s.jobs...)
}

func (s *Store) Pagination() api.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

// HasMore reports whether a later page exists to load.
func (s *Store) HasMore() bool {
	p := s.Pagination()
	return p.TotalPages > 0 && p.CurrentPage < p.TotalPages
}

// Loading is the shared busy flag the presentation layer observes. It is set
// before each request and cleared on every exit path.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError reports the most recent read failure for local display.
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) cached(id string) (model.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		if j.JobID == id {
			return j, true
		}
	}
	return model.Job{}, false
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Store) recordErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}
