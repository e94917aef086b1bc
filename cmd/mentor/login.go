package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-mentor/internal/auth"
	"github.com/jonathan/career-mentor/internal/types"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the career mentor backend",
	Long:  "Exchange your email and password for a session token. The session is stored locally and used by the other commands.",
	RunE:  runLogin,
}

var (
	loginEmail    string
	loginPassword string
)

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email (required)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password (required)")

	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	store, err := sessionStore(cfg)
	if err != nil {
		return err
	}

	client := auth.NewClient(newGateway(cfg, ""))
	token, err := client.Login(cmd.Context(), types.LoginRequest{
		Email:    loginEmail,
		Password: loginPassword,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	session := &auth.Session{Token: token.AccessToken, User: token.User}
	if err := store.Save(session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Logged in as %s (%s)\n", token.User.Fullname, token.User.Email)
	if expires, ok := session.ExpiresAt(); ok {
		fmt.Fprintf(os.Stdout, "Session valid until %s\n", expires.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
