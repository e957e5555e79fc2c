package cli

import "fmt"

func Run(args []string) error {
	if len(args) == 0 {
		printRootUsage()
		return nil
	}

	var err error
	switch args[0] {
	case "login":
		err = runLogin(args[1:])
	case "register":
		err = runRegister(args[1:])
	case "logout":
		err = runLogout(args[1:])
	case "whoami":
		err = runWhoami(args[1:])
	case "jobs":
		err = runJobs(args[1:])
	case "post":
		err = runPost(args[1:])
	case "settings":
		err = runSettings(args[1:])
	case "version":
		err = runVersion(args[1:])
	case "help", "-h", "--help":
		printRootUsage()
		return nil
	default:
		printRootUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}

	return err
}

func printRootUsage() {
	fmt.Println("recruitdesk: terminal dashboard for job postings and recruitment")
	fmt.Println()
	fmt.Println("Quick Start:")
	fmt.Println("  recruitdesk login --email you@company.com")
	fmt.Println("  recruitdesk jobs")
	fmt.Println("  recruitdesk post")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  login     sign in and store the session locally")
	fmt.Println("  register  create an account and sign in")
	fmt.Println("  logout    clear the stored session")
	fmt.Println("  whoami    show the signed-in user and token expiry")
	fmt.Println("  jobs      interactive job board (list, details, delete, load more)")
	fmt.Println("  post      interactive job posting wizard")
	fmt.Println("  settings  show/update client settings (organization scope)")
	fmt.Println("  version   print the client version")
	fmt.Println()
	fmt.Println("Notes:")
	fmt.Println("  - Use --json on commands for machine-readable output")
	fmt.Println("  - RECRUITDESK_API_BASE_URL overrides the backend endpoint")
}
