package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-mentor/internal/analysis"
	"github.com/jonathan/career-mentor/internal/drift"
	"github.com/jonathan/career-mentor/internal/explain"
	"github.com/jonathan/career-mentor/internal/ingestion"
	"github.com/jonathan/career-mentor/internal/observability"
	"github.com/jonathan/career-mentor/internal/report"
	"github.com/jonathan/career-mentor/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Upload a resume and show job matches",
	Long:  "Upload a resume from a file or a hosted URL, show extracted skills and ranked job matches, and optionally explain matches, generate a career report, or run a drift check against the uploaded skills.",
	RunE:  runAnalyze,
}

var (
	resumeFile     string
	resumeURL      string
	explainRole    string
	explainAll     bool
	withReport     bool
	reportHTMLPath string
	withDrift      bool
	useBrowser     bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Path to the resume file to upload")
	analyzeCmd.Flags().StringVarP(&resumeURL, "resume-url", "u", "", "URL of a hosted resume page to ingest and upload")
	analyzeCmd.Flags().StringVar(&explainRole, "explain", "", "Explain the match score for one job role")
	analyzeCmd.Flags().BoolVar(&explainAll, "explain-all", false, "Explain the match score for every matched role")
	analyzeCmd.Flags().BoolVar(&withReport, "report", false, "Generate a personalized career report")
	analyzeCmd.Flags().StringVar(&reportHTMLPath, "report-html", "", "Write the career report as a standalone HTML file (implies --report)")
	analyzeCmd.Flags().BoolVar(&withDrift, "drift", false, "Run a drift check against the uploaded resume's skills")
	analyzeCmd.Flags().BoolVar(&useBrowser, "use-browser", false, "Render SPA resume pages with a headless browser when needed")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if resumeFile == "" && resumeURL == "" {
		return fmt.Errorf("either --resume or --resume-url must be provided")
	}
	if resumeFile != "" && resumeURL != "" {
		return fmt.Errorf("--resume and --resume-url are mutually exclusive; provide only one")
	}
	if reportHTMLPath != "" {
		withReport = true
	}

	cfg, _, gateway, err := requireGateway()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	printer := observability.NewPrinter(os.Stdout)

	// Coordinators subscribe to the store before the upload so the analysis
	// version fans out to them the moment it lands.
	store := analysis.NewStore()

	var reportCoord *report.Coordinator
	var reportDone chan report.State
	if withReport {
		reportCoord = report.NewCoordinator(ctx, gateway)
		store.Subscribe(reportCoord.OnAnalysisReady)
		reportDone = make(chan report.State, 1)
		reportCoord.Subscribe(func(state report.State) {
			if state.Terminal() {
				select {
				case reportDone <- state:
				default:
				}
			}
		})
	}

	explainCoord := explain.NewCoordinator(ctx, gateway, store)
	store.Subscribe(explainCoord.OnAnalysisReady)

	// Upload the resume and publish the result.
	result, err := uploadResume(cmd, cfg.UseBrowser || useBrowser, cfg.Verbose, gateway)
	if err != nil {
		return err
	}
	store.Set(result)

	printer.PrintAnalysis(result)
	printer.PrintMatches(result)

	// Explanations.
	roles := explainRoles(result)
	if len(roles) > 0 {
		if err := fetchExplanations(cmd, explainCoord, roles); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		for _, role := range roles {
			if explanation, ok := explainCoord.Result(role); ok {
				printer.PrintExplanation(explanation)
			}
		}
	}

	// Career report.
	if withReport {
		select {
		case state := <-reportDone:
			if state == report.StateFailed {
				return fmt.Errorf("career report generation failed")
			}
		case <-ctx.Done():
			return ctx.Err()
		}

		markdown, _ := reportCoord.Report()
		printer.PrintReport(markdown)

		if reportHTMLPath != "" {
			html, err := report.ExportHTML(markdown)
			if err != nil {
				return fmt.Errorf("failed to render report HTML: %w", err)
			}
			if err := os.WriteFile(reportHTMLPath, html, 0o644); err != nil {
				return fmt.Errorf("failed to write report HTML: %w", err)
			}
			fmt.Fprintf(os.Stdout, "Report written to %s\n", reportHTMLPath)
		}
	}

	// Drift check against the uploaded skills.
	if withDrift {
		driftResult, err := runDriftCheck(cmd, gateway, store, drift.ModeFromCurrentAnalysis)
		if err != nil {
			return err
		}
		printer.PrintDriftResult(driftResult)
	}

	return nil
}

// uploadResume sends the resume to the backend and decodes the analysis.
func uploadResume(cmd *cobra.Command, browser, verbose bool, gateway uploader) (*types.AnalysisResult, error) {
	var filename string
	var content []byte

	if resumeFile != "" {
		data, err := os.ReadFile(resumeFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read resume file: %w", err)
		}
		filename = filepath.Base(resumeFile)
		content = data
	} else {
		text, _, err := ingestion.IngestFromURL(cmd.Context(), resumeURL, browser, verbose)
		if err != nil {
			return nil, fmt.Errorf("failed to ingest resume from URL: %w", err)
		}
		filename = "resume.txt"
		content = []byte(text)
	}

	raw, err := gateway.Upload(cmd.Context(), "/upload_resume", filename, bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("resume upload failed: %w", err)
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}
	return &result, nil
}

// explainRoles resolves which roles to explain from the flags.
func explainRoles(result *types.AnalysisResult) []string {
	if explainAll {
		roles := make([]string, 0, len(result.Matches))
		for _, match := range result.Matches {
			roles = append(roles, match.JobRole)
		}
		return roles
	}
	if explainRole != "" {
		return []string{explainRole}
	}
	return nil
}

// fetchExplanations requests all roles concurrently and waits for each to
// settle. Roles that did produce a result are printed even when another
// role's fetch failed.
func fetchExplanations(cmd *cobra.Command, coord *explain.Coordinator, roles []string) error {
	waiters := make(map[string]chan explain.RoleState, len(roles))
	for _, role := range roles {
		waiters[role] = make(chan explain.RoleState, 1)
	}
	coord.Subscribe(func(event explain.Event) {
		ch, ok := waiters[event.JobRole]
		if !ok || (event.State != explain.StateReady && event.State != explain.StateFailed) {
			return
		}
		select {
		case ch <- event.State:
		default:
		}
	})

	group, ctx := errgroup.WithContext(cmd.Context())
	for _, role := range roles {
		role := role
		group.Go(func() error {
			coord.Request(role)
			select {
			case state := <-waiters[role]:
				if state == explain.StateFailed {
					return fmt.Errorf("explanation failed for %q", role)
				}
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}
	return group.Wait()
}

// uploader is the slice of the gateway the upload path needs.
type uploader interface {
	Upload(ctx context.Context, endpoint, filename string, file io.Reader) (json.RawMessage, error)
}
