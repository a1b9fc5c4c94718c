package main

import (
	"context"
	"fmt"

	"feedback-backend/internal/models"

	"github.com/spf13/cobra"
)

var submitReq models.CreateFeedbackRequest
var submitRating int

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Post a feedback entry the way the public form does",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := submitReq
		if cmd.Flags().Changed("rating") {
			req.Rating = &submitRating
		}
		created, _, err := api.SubmitFeedback(context.Background(), req)
		if err != nil {
			return err
		}
		fmt.Printf("Created %s\n", created.ID)
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the API is up",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := api.Health(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%s (HTTP %d)\n", string(res.Data), res.Status)
		return nil
	},
}

func init() {
	submitCmd.Flags().StringVar(&submitReq.Name, "name", "", "your name")
	submitCmd.Flags().StringVar(&submitReq.Email, "email", "", "your e-mail")
	submitCmd.Flags().StringVar(&submitReq.ProductName, "product", "", "product name")
	submitCmd.Flags().StringVar(&submitReq.Comment, "comment", "", "comment text")
	submitCmd.Flags().IntVar(&submitRating, "rating", 0, "rating from 0 to 5")
}
