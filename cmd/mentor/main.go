// Package main provides the entry point for the AI Career Mentor CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mentor",
	Short: "AI Career Mentor CLI",
	Long:  "AI Career Mentor analyzes your resume against open roles, explains match scores, generates career reports, and answers questions about your job matches and skills.",
}

var (
	configPath string
	apiURL     string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend address (overrides config file and CAREER_MENTOR_API_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
