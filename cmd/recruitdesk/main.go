package main

import (
	"fmt"
	"os"

	"recruitdesk/internal/cli"

	"github.com/joho/godotenv"
)

func main() {
	// optional .env for local development; absence is not an error
	_ = godotenv.Load()

	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
