package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-mentor/internal/auth"
	"github.com/jonathan/career-mentor/internal/types"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new career mentor account",
	Long:  "Register a new account and log in with it in one step.",
	RunE:  runSignup,
}

var (
	signupFullname string
	signupEmail    string
	signupPassword string
	signupPhone    string
	signupCategory string
)

func init() {
	signupCmd.Flags().StringVarP(&signupFullname, "name", "n", "", "Full name (required)")
	signupCmd.Flags().StringVarP(&signupEmail, "email", "e", "", "Account email (required)")
	signupCmd.Flags().StringVarP(&signupPassword, "password", "p", "", "Account password, 8 characters minimum (required)")
	signupCmd.Flags().StringVar(&signupPhone, "phone", "", "Phone number")
	signupCmd.Flags().StringVar(&signupCategory, "skill-category", "", "Primary skill category (e.g. data, web, ml)")

	signupCmd.MarkFlagRequired("name")
	signupCmd.MarkFlagRequired("email")
	signupCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(signupCmd)
}

func runSignup(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	store, err := sessionStore(cfg)
	if err != nil {
		return err
	}

	client := auth.NewClient(newGateway(cfg, ""))
	token, err := client.Signup(cmd.Context(), types.SignupRequest{
		Fullname:      signupFullname,
		Email:         signupEmail,
		Password:      signupPassword,
		Phone:         signupPhone,
		SkillCategory: signupCategory,
	})
	if err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	if err := store.Save(&auth.Session{Token: token.AccessToken, User: token.User}); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Account created. Logged in as %s (%s)\n", token.User.Fullname, token.User.Email)
	return nil
}
