// student-cli is the interactive terminal client for the student API:
// it lists students in a table and drives add/edit/delete through a
// prompt-based form that mirrors the server's validation rules.
//
// USAGE:
//
//	student-cli --api-url=http://localhost:8080
//
// or with the environment variable the deployment injects:
//
//	STUDENT_API_URL=http://student-api:8080 student-cli
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/student-mgmt/internal/client"
	"github.com/aanand-mishra/student-mgmt/internal/ui"
)

func main() {
	var (
		apiURL  string
		timeout time.Duration
	)

	rootCmd := &cobra.Command{
		Use:          "student-cli",
		Short:        "Interactive client for the student management API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			api := client.New(apiURL, timeout)

			// Fail fast with a clear message when the API is down,
			// rather than greeting the user with an empty broken list.
			ctx := cmd.Context()
			if err := api.Health(ctx); err != nil {
				return fmt.Errorf("student API at %s is not reachable: %w", apiURL, err)
			}

			return ui.Run(ctx, api, os.Stdout)
		},
	}

	rootCmd.Flags().StringVar(&apiURL, "api-url",
		envOr("STUDENT_API_URL", "http://localhost:8080"),
		"base URL of the student API")
	rootCmd.Flags().DurationVar(&timeout, "timeout",
		10*time.Second, "per-request HTTP timeout")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
