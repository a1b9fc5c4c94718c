// Command feedbackctl is the terminal admin dashboard for the feedback API.
package main

import (
	"fmt"
	"os"

	"feedback-backend/internal/client"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	serverURL  string
	tokenDir   string
	jsonOutput bool

	api *client.Client
)

func defaultServer() string {
	if s := os.Getenv("FEEDBACK_API_URL"); s != "" {
		return s
	}
	return "http://localhost:5000"
}

var rootCmd = &cobra.Command{
	Use:           "feedbackctl",
	Short:         "Admin CLI for the feedback service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir := tokenDir
		if dir == "" {
			var err error
			dir, err = client.DefaultTokenDir()
			if err != nil {
				return err
			}
		}
		api = client.New(serverURL, client.NewFileTokenStore(dir))
		return nil
	},
}

func init() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer(), "feedback API base URL")
	rootCmd.PersistentFlags().StringVar(&tokenDir, "token-dir", "", "directory holding the stored admin token (default: user config dir)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
