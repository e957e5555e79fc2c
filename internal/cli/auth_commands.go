package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"recruitdesk/internal/api"
	"recruitdesk/internal/session"
	"recruitdesk/internal/version"
)

func runLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when omitted)")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	if route := a.session.Initialize(session.RouteLogin); route == session.RouteDashboard {
		user := a.session.User()
		fmt.Printf("already signed in as %s %s <%s>\n", user.FirstName, user.LastName, user.Email)
		return nil
	}

	req := api.LoginRequest{Email: strings.TrimSpace(*email), Password: *password}
	if req.Email == "" {
		req.Email, err = promptRequired("Email")
		if err != nil {
			return err
		}
	}
	if req.Password == "" {
		req.Password, err = promptRequired("Password")
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.RequestTimeout)
	defer cancel()
	if err := a.session.Login(ctx, req); err != nil {
		var authErr *api.AuthError
		if errors.As(err, &authErr) {
			return fmt.Errorf("login rejected: %s", authErr.Message)
		}
		return err
	}

	user := a.session.User()
	fmt.Printf("signed in as %s %s <%s>\n", user.FirstName, user.LastName, user.Email)
	return nil
}

func runRegister(args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	gender := fs.String("gender", "", "gender")
	jobTitle := fs.String("job-title", "", "your job title")
	company := fs.String("company", "", "company name")
	website := fs.String("company-website", "", "company website (optional)")
	hiring := fs.String("hiring-description", "", "what you are hiring for")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	req := api.RegisterRequest{
		Email:             strings.TrimSpace(*email),
		Password:          *password,
		FirstName:         strings.TrimSpace(*firstName),
		LastName:          strings.TrimSpace(*lastName),
		Gender:            strings.TrimSpace(*gender),
		JobTitle:          strings.TrimSpace(*jobTitle),
		Company:           strings.TrimSpace(*company),
		CompanyWebsite:    strings.TrimSpace(*website),
		HiringDescription: strings.TrimSpace(*hiring),
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.RequestTimeout)
	defer cancel()
	message, err := a.session.Register(ctx, req)
	if err != nil {
		var verr *api.ValidationError
		if errors.As(err, &verr) {
			fmt.Println("registration rejected:")
			for field, msgs := range verr.Fields {
				for _, msg := range msgs {
					fmt.Printf("  %s: %s\n", field, msg)
				}
			}
			return errors.New("registration failed")
		}
		return err
	}

	if message != "" {
		fmt.Println(message)
	}
	user := a.session.User()
	fmt.Printf("signed in as %s %s <%s>\n", user.FirstName, user.LastName, user.Email)
	return nil
}

func runLogout(args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	a.session.Initialize(session.RouteRoot)
	a.session.Logout()
	fmt.Println("signed out")
	return nil
}

func runWhoami(args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	if route := a.session.Initialize(session.RouteDashboard); route == session.RouteLogin {
		return errors.New("not signed in (run: recruitdesk login)")
	}

	user := a.session.User()
	expiry, hasExpiry := a.session.TokenExpiry()

	if *jsonOut {
		out := map[string]any{
			"user":            user,
			"organization_id": a.session.OrganizationID(),
		}
		if hasExpiry {
			out["token_expires_at"] = expiry.UTC().Format(time.RFC3339)
		}
		return printJSON(out)
	}

	fmt.Println(kv("user", fmt.Sprintf("%s %s <%s>", user.FirstName, user.LastName, user.Email)))
	fmt.Println(kv("company", user.Company))
	fmt.Println(kv("account_status", user.AccountStatus))
	fmt.Println(kv("email_verified", fmt.Sprintf("%t", user.EmailVerified)))
	if org := a.session.OrganizationID(); org != "" {
		fmt.Println(kv("organization_id", org))
	}
	if hasExpiry {
		fmt.Println(kv("token_expires", expiry.Local().Format(time.RFC1123)))
	}
	return nil
}

func runVersion(args []string) error {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(map[string]string{"version": version.Value})
	}
	fmt.Println(version.Value)
	return nil
}
