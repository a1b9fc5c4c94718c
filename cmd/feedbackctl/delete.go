package main

import (
	"context"
	"fmt"

	"feedback-backend/internal/dashboard"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more feedback entries",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := dashboard.New(api)
		if !api.IsAuthenticated() {
			return fmt.Errorf("not logged in; run 'feedbackctl login'")
		}
		for _, id := range args {
			route, err := d.Delete(context.Background(), id)
			if err != nil {
				if route == dashboard.RouteLogin {
					return fmt.Errorf("%w (session rejected, logged out)", err)
				}
				return fmt.Errorf("delete %s: %w", id, err)
			}
			fmt.Printf("Deleted %s\n", id)
		}
		return nil
	},
}
