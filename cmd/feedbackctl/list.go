package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"feedback-backend/internal/dashboard"
	"feedback-backend/internal/models"

	"github.com/spf13/cobra"
)

var listHide []string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all feedback",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := dashboard.New(api)
		route, err := d.Mount(context.Background())
		if err != nil {
			return err
		}
		if route == dashboard.RouteLogin {
			return fmt.Errorf("not logged in (or the session was rejected); run 'feedbackctl login'")
		}

		for _, id := range listHide {
			d.ToggleHidden(id)
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(d.Visible())
		}

		printFeedback(d.Visible())
		fmt.Printf("\n%d shown, %d hidden, %d total\n", len(d.Visible()), d.HiddenCount(), d.Total())
		return nil
	},
}

func init() {
	listCmd.Flags().StringSliceVar(&listHide, "hide", nil, "feedback ids to hide from the output")
}

func printFeedback(items []models.Feedback) {
	if len(items) == 0 {
		fmt.Println("No feedback yet.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tRATING\tNAME\tPRODUCT\tCOMMENT")
	for _, f := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			f.ID,
			f.CreatedAt.Local().Format("2006-01-02 15:04"),
			models.Stars(f.Rating),
			f.Name,
			f.ProductName,
			truncate(f.Comment, 60),
		)
	}
	w.Flush()
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
