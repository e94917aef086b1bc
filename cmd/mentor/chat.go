package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-mentor/internal/analysis"
	"github.com/jonathan/career-mentor/internal/chat"
	"github.com/jonathan/career-mentor/internal/observability"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the AI career mentor",
	Long:  "Start an interactive conversation with the mentor. Pass --resume or --resume-url to upload a resume first so the mentor can refer to your matches and skills.",
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Resume file to upload before chatting")
	chatCmd.Flags().StringVarP(&resumeURL, "resume-url", "u", "", "Hosted resume URL to ingest and upload before chatting")
	chatCmd.Flags().BoolVar(&useBrowser, "use-browser", false, "Render SPA resume pages with a headless browser when needed")

	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if resumeFile != "" && resumeURL != "" {
		return fmt.Errorf("--resume and --resume-url are mutually exclusive; provide only one")
	}

	cfg, _, gateway, err := requireGateway()
	if err != nil {
		return err
	}
	printer := observability.NewPrinter(os.Stdout)

	store := analysis.NewStore()
	if resumeFile != "" || resumeURL != "" {
		result, err := uploadResume(cmd, cfg.UseBrowser || useBrowser, cfg.Verbose, gateway)
		if err != nil {
			return err
		}
		store.Set(result)
		printer.PrintAnalysis(result)
	}

	session := chat.NewSession(cmd.Context(), gateway, store)

	updates := make(chan struct{}, 8)
	session.Subscribe(func() {
		select {
		case updates <- struct{}{}:
		default:
		}
	})

	// Print the greeting.
	printer.PrintChatMessage(session.Messages()[0])
	fmt.Fprintln(os.Stdout, `Type a question, or "exit" to leave.`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(os.Stdout, "you> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "exit" || input == "quit" {
			break
		}

		if err := session.Send(input); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		// Wait for the mentor's reply.
		for session.IsWaiting() {
			select {
			case <-updates:
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			}
		}

		messages := session.Messages()
		printer.PrintChatMessage(messages[len(messages)-1])
	}

	return scanner.Err()
}
