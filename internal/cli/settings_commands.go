package cli

import (
	"flag"
	"fmt"
	"strings"

	"recruitdesk/internal/session"

	"github.com/google/uuid"
)

func runSettings(args []string) error {
	if len(args) == 0 {
		printSettingsUsage()
		return nil
	}
	switch args[0] {
	case "show":
		return runSettingsShow(args[1:])
	case "set":
		return runSettingsSet(args[1:])
	case "help", "-h", "--help":
		printSettingsUsage()
		return nil
	default:
		printSettingsUsage()
		return fmt.Errorf("unknown settings subcommand %q", args[0])
	}
}

func runSettingsShow(args []string) error {
	fs := flag.NewFlagSet("settings show", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	a.session.Initialize(session.RouteRoot)

	if *jsonOut {
		return printJSON(map[string]any{
			"api_base_url":            a.cfg.APIBaseURL,
			"session_dir":             a.cfg.SessionDir,
			"request_timeout_seconds": int(a.cfg.RequestTimeout.Seconds()),
			"organization_id":         a.session.OrganizationID(),
			"authenticated":           a.session.Authenticated(),
		})
	}

	fmt.Println(kv("api_base_url", a.cfg.APIBaseURL))
	fmt.Println(kv("session_dir", a.cfg.SessionDir))
	fmt.Println(kv("request_timeout", a.cfg.RequestTimeout.String()))
	fmt.Println(kv("organization_id", defaultIfEmpty(a.session.OrganizationID(), "(none)")))
	fmt.Println(kv("authenticated", fmt.Sprintf("%t", a.session.Authenticated())))
	return nil
}

func runSettingsSet(args []string) error {
	fs := flag.NewFlagSet("settings set", flag.ContinueOnError)
	orgID := fs.String("org-id", "", "organization UUID sent as X-Organization-ID (empty clears it)")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	id := strings.TrimSpace(*orgID)
	if id != "" {
		if _, err := uuid.Parse(id); err != nil {
			return fmt.Errorf("org-id must be a UUID: %w", err)
		}
	}
	if err := a.session.SetOrganizationID(id); err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(map[string]any{"organization_id": id})
	}
	fmt.Println(kv("organization_id", defaultIfEmpty(id, "(cleared)")))
	return nil
}

func printSettingsUsage() {
	fmt.Println("recruitdesk settings: inspect and update client settings")
	fmt.Println()
	fmt.Println("Subcommands:")
	fmt.Println("  show  print the resolved config and organization scope")
	fmt.Println("  set   update the stored organization scope (--org-id)")
}
