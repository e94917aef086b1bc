// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/jonathan/career-mentor/internal/explain"
	"github.com/jonathan/career-mentor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// topFeatureCount is how many explanation features to display
	topFeatureCount = 10
)

// Printer handles formatted output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnalysis outputs a human-readable summary of the analysis result.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	// Extracted skills
	if len(result.ExtractedSkills) > 0 {
		sb.WriteString("Extracted Skills:\n")
		count := min(len(result.ExtractedSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.ExtractedSkills[i]))
		}
		if len(result.ExtractedSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.ExtractedSkills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	// Top match
	if top := result.TopMatch(); top != nil {
		sb.WriteString("Top Match:\n")
		sb.WriteString(fmt.Sprintf("  %s at %s\n", top.JobRole, top.Company))
		sb.WriteString(fmt.Sprintf("  Score: %.0f%%\n", top.MatchScore))
		if len(top.MissingSkills) > 0 {
			skills := strings.Join(top.MissingSkills, ", ")
			if len(skills) > 40 {
				skills = skills[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("  Missing: %s\n", skills))
		}
	}

	p.printBox("RESUME ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches outputs the ranked job matches with colored scores.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintMatches(result *types.AnalysisResult) {
	if result == nil || len(result.Matches) == 0 {
		return
	}

	fmt.Fprintf(p.out, "\nJob Matches (%d):\n", len(result.Matches))
	for i, match := range result.Matches {
		score := fmt.Sprintf("%3.0f%%", match.MatchScore)
		switch {
		case match.MatchScore >= 70:
			score = color.New(color.FgGreen, color.Bold).Sprint(score)
		case match.MatchScore >= 40:
			score = color.New(color.FgYellow).Sprint(score)
		default:
			score = color.New(color.FgRed).Sprint(score)
		}

		fmt.Fprintf(p.out, "  #%d  %s  %s at %s (%s)\n",
			i+1, score, match.JobRole, match.Company, match.Domain)
		if len(match.MissingSkills) > 0 {
			count := min(len(match.MissingSkills), maxItemsToShow)
			skills := strings.Join(match.MissingSkills[:count], ", ")
			if len(match.MissingSkills) > maxItemsToShow {
				skills += fmt.Sprintf(" +%d more", len(match.MissingSkills)-maxItemsToShow)
			}
			fmt.Fprintf(p.out, "       missing: %s\n", skills)
		}
	}
}

// PrintExplanation outputs the top weighted features for a role's match score.
func (p *Printer) PrintExplanation(result *types.ExplanationResult) {
	if result == nil || len(result.Explanation) == 0 {
		return
	}

	var sb strings.Builder
	top := explain.TopFeatures(result.Explanation, topFeatureCount)
	for _, feature := range top {
		sb.WriteString(fmt.Sprintf("%-30s %+.4f\n", feature.Feature, feature.Value))
	}
	if len(result.Explanation) > topFeatureCount {
		sb.WriteString(fmt.Sprintf("... and %d more features", len(result.Explanation)-topFeatureCount))
	}

	p.printBox(fmt.Sprintf("WHY %s", strings.ToUpper(result.JobRole)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDriftResult outputs the drift verdict with a colored banner.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintDriftResult(result *types.DriftCheckResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Avg p-value:      %.5f\n", result.PValueAvg))
	if result.DriftedFeatureCount > 0 || result.Threshold > 0 {
		sb.WriteString(fmt.Sprintf("Drifted features: %d (threshold %g)\n", result.DriftedFeatureCount, result.Threshold))
	}
	if result.Timestamp != "" {
		sb.WriteString(fmt.Sprintf("Checked at:       %s\n", result.Timestamp))
	}
	if result.Message != "" {
		sb.WriteString(result.Message)
	}

	p.printBox("DRIFT CHECK", strings.TrimSuffix(sb.String(), "\n"))

	if result.IsDrift {
		color.New(color.FgRed, color.Bold).Fprintln(p.out, "⚠ DRIFT DETECTED")
	} else {
		color.New(color.FgGreen).Fprintln(p.out, "✔ No drift detected")
	}
}

// PrintChatMessage outputs one conversation turn with a role prefix.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintChatMessage(message types.ChatMessage) {
	if message.Role == types.RoleUser {
		color.New(color.FgCyan, color.Bold).Fprint(p.out, "you> ")
	} else {
		color.New(color.FgMagenta, color.Bold).Fprint(p.out, "mentor> ")
	}
	fmt.Fprintln(p.out, message.Text)
}

// PrintReport outputs the career report markdown as-is.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReport(markdown string) {
	if strings.TrimSpace(markdown) == "" {
		return
	}
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "CAREER REPORT")
	fmt.Fprintf(p.out, "└%s┘\n", border)
	fmt.Fprintln(p.out, markdown)
}
