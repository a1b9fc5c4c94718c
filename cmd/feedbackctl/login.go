package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"feedback-backend/internal/client"
	"feedback-backend/internal/dashboard"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginUsername string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in as the admin and store the token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		view := dashboard.NewLoginView(api)
		if view.Mount() == dashboard.RouteDashboard {
			fmt.Println("Already logged in. Run 'feedbackctl logout' to switch accounts.")
			return nil
		}

		username := loginUsername
		if username == "" {
			var err error
			if username, err = prompt("Username: "); err != nil {
				return err
			}
		}
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		if _, err := view.Submit(context.Background(), username, password); err != nil {
			if errors.Is(err, client.ErrInvalidCredentials) {
				return fmt.Errorf("login failed: invalid username or password")
			}
			return err
		}
		fmt.Println("Logged in.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored admin token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := dashboard.New(api).Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "admin username")
}

func prompt(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads without echo on a terminal, or a plain line from a pipe.
func readPassword(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return prompt(label)
	}
	fmt.Fprint(os.Stderr, label)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}
