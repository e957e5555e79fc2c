package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"recruitdesk/internal/model"
)

type mapCreds map[string]string

func (m mapCreds) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func newTestClient(t *testing.T, handler http.HandlerFunc, creds KeyValueSource) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, creds), srv
}

func TestClientSendsAuthHeaders(t *testing.T) {
	var got http.Header
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_ = json.NewEncoder(w).Encode(JobList{})
	}, mapCreds{"access": "token123", "organization_id": "org-9"})

	if _, err := client.ListJobs(context.Background(), 1, 0); err != nil {
		t.Fatal(err)
	}
	if got.Get("Authorization") != "Bearer token123" {
		t.Fatalf("authorization = %q", got.Get("Authorization"))
	}
	if got.Get("X-Organization-ID") != "org-9" {
		t.Fatalf("organization = %q", got.Get("X-Organization-ID"))
	}
	if got.Get("Accept") != "application/json" {
		t.Fatalf("accept = %q", got.Get("Accept"))
	}
	if got.Get("X-Request-ID") == "" {
		t.Fatal("missing request id")
	}
}

func TestClientOmitsHeadersWithoutCredentials(t *testing.T) {
	var got http.Header
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_ = json.NewEncoder(w).Encode(JobList{})
	}, mapCreds{})

	if _, err := client.ListJobs(context.Background(), 1, 0); err != nil {
		t.Fatal(err)
	}
	if got.Get("Authorization") != "" {
		t.Fatalf("authorization = %q", got.Get("Authorization"))
	}
	if got.Get("X-Organization-ID") != "" {
		t.Fatalf("organization = %q", got.Get("X-Organization-ID"))
	}
}

func TestClientUnauthorizedMapsToAuthError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Token expired"}`))
	}, mapCreds{})

	_, err := client.ListJobs(context.Background(), 1, 0)
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("err = %v", err)
	}
	if authErr.Message != "Token expired" {
		t.Fatalf("message = %q", authErr.Message)
	}
}

func TestClientNotFoundCarriesJobID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, mapCreds{})

	_, err := client.GetJob(context.Background(), "job-42")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v", err)
	}
	if nf.Resource != "job" || nf.ID != "job-42" {
		t.Fatalf("not found = %+v", nf)
	}
}

func TestClientBadRequestMapsToFieldErrors(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"email":["user with this email already exists."]}`))
	}, mapCreds{})

	_, err := client.CreateJob(context.Background(), model.JobPayload{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v", err)
	}
	if got := verr.FieldMessage("email"); got != "user with this email already exists." {
		t.Fatalf("field message = %q", got)
	}
}

func TestClientServerErrorMapsToNetworkError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	}, mapCreds{})

	_, err := client.ListJobs(context.Background(), 1, 0)
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(netErr.Error(), "500") {
		t.Fatalf("error = %q", netErr.Error())
	}
}

func TestClientLoginRejectionIsAuthError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	}, mapCreds{})

	_, err := client.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "x"})
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("err = %v", err)
	}
	if authErr.Message != "Invalid credentials" {
		t.Fatalf("message = %q", authErr.Message)
	}
}

func TestClientRegisterValidatesBeforeSending(t *testing.T) {
	called := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, mapCreds{})

	_, err := client.Register(context.Background(), RegisterRequest{Email: "not-an-email"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v", err)
	}
	if verr.FieldMessage("email") != "must be a valid email address" {
		t.Fatalf("email message = %q", verr.FieldMessage("email"))
	}
	if verr.FieldMessage("first_name") != "is required" {
		t.Fatalf("first_name message = %q", verr.FieldMessage("first_name"))
	}
	if called {
		t.Fatal("invalid request must not reach the server")
	}
}

func TestClientListJobsQueryAndDefaults(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jobs/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "100" {
			t.Errorf("limit = %q", got)
		}
		if got := r.URL.Query().Get("page"); got != "3" {
			t.Errorf("page = %q", got)
		}
		_, _ = w.Write([]byte(`{}`))
	}, mapCreds{})

	out, err := client.ListJobs(context.Background(), 3, 0)
	if err != nil {
		t.Fatal(err)
	}
	if out.Jobs == nil {
		t.Fatal("jobs must default to an empty slice")
	}
	if out.Pagination.CurrentPage != 3 {
		t.Fatalf("current page = %d", out.Pagination.CurrentPage)
	}
}

func TestClientListJobsFirstPageHasNoPageParam(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("page") {
			t.Errorf("unexpected page param %q", r.URL.Query().Get("page"))
		}
		_, _ = w.Write([]byte(`{}`))
	}, mapCreds{})

	if _, err := client.ListJobs(context.Background(), 1, 0); err != nil {
		t.Fatal(err)
	}
}

func TestClientCreateJobSerializesStipendNull(t *testing.T) {
	var body map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Error(err)
		}
		_ = json.NewEncoder(w).Encode(createJobResponse{
			Success: true,
			Message: "Job created successfully!",
			Data:    model.Job{JobID: "job-1"},
		})
	}, mapCreds{})

	payload := model.JobPayload{JobTitle: "Backend Engineer", NoOfOpenings: 2}
	res, err := client.CreateJob(context.Background(), payload)
	if err != nil {
		t.Fatal(err)
	}
	if res.Job.JobID != "job-1" || res.Message != "Job created successfully!" {
		t.Fatalf("result = %+v", res)
	}

	raw, present := body["stipend_amount"]
	if !present || raw != nil {
		t.Fatalf("stipend_amount = %v (present=%t)", raw, present)
	}
	if got := body["no_of_openings"]; got != float64(2) {
		t.Fatalf("no_of_openings = %v", got)
	}
}

func TestClientDeleteJobHitsJobPath(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}, mapCreds{})

	if err := client.DeleteJob(context.Background(), "job-7"); err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/jobs/job-7/" {
		t.Fatalf("%s %s", gotMethod, gotPath)
	}
}

func TestClientUpdateJobSendsPartialPatch(t *testing.T) {
	var gotMethod string
	var body map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(jobEnvelope{Data: model.Job{JobID: "job-7", Status: model.StatusClosed}})
	}, mapCreds{})

	job, err := client.UpdateJob(context.Background(), "job-7", map[string]any{"status": model.StatusClosed})
	if err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodPatch {
		t.Fatalf("method = %s", gotMethod)
	}
	if len(body) != 1 || body["status"] != model.StatusClosed {
		t.Fatalf("body = %v", body)
	}
	if job.Status != model.StatusClosed {
		t.Fatalf("job = %+v", job)
	}
}

func TestClientRequestIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if seen[id] {
			t.Errorf("request id %q reused", id)
		}
		seen[id] = true
		_, _ = w.Write([]byte(`{}`))
	}, mapCreds{})

	for i := 0; i < 3; i++ {
		if _, err := client.ListJobs(context.Background(), i+1, 0); err != nil {
			t.Fatal(strconv.Itoa(i) + ": " + err.Error())
		}
	}
	if len(seen) != 3 {
		t.Fatalf("saw %d ids", len(seen))
	}
}
