package session

import (
	"context"
	"encoding/json"
	"strings"

	"recruitdesk/internal/api"
	"recruitdesk/internal/model"
)

// Route mirrors the navigation surface: auth routes redirect authenticated
// users to the dashboard, protected routes redirect anonymous users to login.
type Route string

const (
	RouteRoot          Route = "/"
	RouteLogin         Route = "/login"
	RouteRegister      Route = "/register"
	RouteDashboard     Route = "/dashboard"
	RouteDashboardJobs Route = "/dashboard/jobs"
	RouteCreateJob     Route = "/dashboard/create-job"
)

func isAuthRoute(r Route) bool {
	switch r {
	case RouteRoot, RouteLogin, RouteRegister:
		return true
	}
	return false
}

func isProtectedRoute(r Route) bool {
	return strings.HasPrefix(string(r), string(RouteDashboard))
}

// AuthAPI is the backend surface the store needs; *api.Client satisfies it.
type AuthAPI interface {
	Login(ctx context.Context, req api.LoginRequest) (api.LoginResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (api.RegisterResponse, error)
}

// Store owns the authenticated user's identity and bearer token for the
// process lifetime. State lives in memory and is mirrored into Storage so
// the next process can hydrate from it.
type Store struct {
	storage     Storage
	auth        AuthAPI
	user        *model.UserProfile
	accessToken string
	initialized bool
}

func New(storage Storage, auth AuthAPI) *Store {
	return &Store{storage: storage, auth: auth}
}

// Initialize hydrates the session from durable storage and returns the route
// the caller should land on. It runs once per process; later calls only
// recompute the redirect from in-memory state. A malformed stored user or an
// access token that is verifiably expired clears the session.
func (s *Store) Initialize(current Route) Route {
	if !s.initialized {
		s.initialized = true
		s.hydrate()
	}

	if s.Authenticated() {
		if isAuthRoute(current) {
			return RouteDashboard
		}
		return current
	}
	if isProtectedRoute(current) {
		return RouteLogin
	}
	return current
}

func (s *Store) hydrate() {
	token, okToken := s.storage.Get(KeyAccess)
	userRaw, okUser := s.storage.Get(KeyUser)
	if !okToken || !okUser || strings.TrimSpace(token) == "" || strings.TrimSpace(userRaw) == "" {
		return
	}

	var user model.UserProfile
	if err := json.Unmarshal([]byte(userRaw), &user); err != nil {
		s.clearStoredSession()
		return
	}
	if expired, known := tokenExpired(token); known && expired {
		s.clearStoredSession()
		return
	}

	s.accessToken = token
	s.user = &user
}

func (s *Store) Login(ctx context.Context, req api.LoginRequest) error {
	res, err := s.auth.Login(ctx, req)
	if err != nil {
		return err
	}
	return s.establish(res.Access, res.Refresh, res.User)
}

// Register creates an account and signs the new user in. The returned
// message is the server's success notification. Field-level rejections come
// back as an *api.ValidationError.
func (s *Store) Register(ctx context.Context, req api.RegisterRequest) (string, error) {
	res, err := s.auth.Register(ctx, req)
	if err != nil {
		return "", err
	}

	user := res.Data.UserProfile
	if user.JobTitle == "" {
		user.JobTitle = req.JobTitle
	}
	if err := s.establish(res.Data.Tokens.Access, res.Data.Tokens.Refresh, user); err != nil {
		return "", err
	}
	return res.Message, nil
}

func (s *Store) establish(access, refresh string, user model.UserProfile) error {
	userData, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.storage.Set(KeyAccess, access); err != nil {
		return err
	}
	// a half-written session would break the token-and-user invariant on
	// the next hydrate; roll the stored keys back together
	if err := s.storage.Set(KeyRefresh, refresh); err != nil {
		s.clearStoredSession()
		return err
	}
	if err := s.storage.Set(KeyUser, string(userData)); err != nil {
		s.clearStoredSession()
		return err
	}
	s.accessToken = access
	s.user = &user
	return nil
}

// Logout clears in-memory state and all durable session keys. Idempotent.
func (s *Store) Logout() {
	s.accessToken = ""
	s.user = nil
	s.clearStoredSession()
}

func (s *Store) clearStoredSession() {
	_ = s.storage.Delete(KeyAccess)
	_ = s.storage.Delete(KeyRefresh)
	_ = s.storage.Delete(KeyUser)
}

func (s *Store) Authenticated() bool {
	// token and user are both present or both absent
	return s.accessToken != "" && s.user != nil
}

func (s *Store) Initialized() bool {
	return s.initialized
}

// User returns a copy of the current profile, or nil when anonymous.
func (s *Store) User() *model.UserProfile {
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) AccessToken() string {
	return s.accessToken
}

// SetOrganizationID persists the organization scope attached to job requests.
func (s *Store) SetOrganizationID(id string) error {
	return s.storage.Set(KeyOrganization, strings.TrimSpace(id))
}

func (s *Store) OrganizationID() string {
	v, _ := s.storage.Get(KeyOrganization)
	return v
}
