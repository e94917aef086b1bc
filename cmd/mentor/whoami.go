package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-mentor/internal/auth"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current login session",
	RunE:  runWhoami,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored login session",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	store, err := sessionStore(cfg)
	if err != nil {
		return err
	}

	session, err := store.Require()
	if errors.Is(err, auth.ErrNotAuthenticated) {
		fmt.Fprintln(os.Stdout, "Not logged in.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%s (%s)\n", session.User.Fullname, session.User.Email)
	if expires, ok := session.ExpiresAt(); ok {
		fmt.Fprintf(os.Stdout, "Session valid until %s\n", expires.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	store, err := sessionStore(cfg)
	if err != nil {
		return err
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	fmt.Fprintln(os.Stdout, "Logged out.")
	return nil
}
