package cli

import (
	"recruitdesk/internal/api"
	"recruitdesk/internal/config"
	"recruitdesk/internal/jobs"
	"recruitdesk/internal/session"
)

// app bundles the wired stores a command needs. Construction order matters:
// the API client reads credentials straight from durable storage, the same
// place the session store writes them.
type app struct {
	cfg     config.Config
	storage session.Storage
	session *session.Store
	client  *api.Client
	jobs    *jobs.Store
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	storage := session.NewFileStorage(cfg.SessionDir)
	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, storage)
	sess := session.New(storage, client)

	// seed the organization scope from config when storage has none yet
	if _, ok := storage.Get(session.KeyOrganization); !ok && cfg.OrganizationID != "" {
		if err := storage.Set(session.KeyOrganization, cfg.OrganizationID); err != nil {
			return nil, err
		}
	}

	return &app{
		cfg:     cfg,
		storage: storage,
		session: sess,
		client:  client,
		jobs:    jobs.NewStore(client),
	}, nil
}
