// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/skill-twin-engine/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
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

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fit(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// fit truncates s to width runes, marking the cut with "..."
func fit(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// bar renders a 0-99 score as a 20-cell bar.
func bar(score int) string {
	filled := max(0, min(score, 99)) * 20 / 99
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}

// PrintTrendReport outputs the top skill trends and the trending title.
func (p *Printer) PrintTrendReport(report *types.TrendReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Postings: %d received, %d resolved, %d duplicates\n",
		report.PostingsReceived, report.PostingsResolved, report.DuplicatesDropped))
	sb.WriteString(fmt.Sprintf("Trending title: %s\n", report.TrendingTitle))
	if report.TaxonomyVersion != "" {
		sb.WriteString(fmt.Sprintf("Taxonomy: %s\n", report.TaxonomyVersion))
	}

	if len(report.Trends) == 0 {
		sb.WriteString("\nNo skill signal in this batch.")
	} else {
		sb.WriteString("\n")
		for i, trend := range report.Trends {
			sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, trend.Skill))
			sb.WriteString(fmt.Sprintf("    %s %d%%  (%d postings, %d sources)",
				bar(trend.CredibilityScore), trend.CredibilityScore, trend.Frequency, trend.SourceDiversity))
			if i < len(report.Trends)-1 {
				sb.WriteString("\n")
			}
		}
	}

	p.printBox("SKILL TRENDS", sb.String())
}

// PrintGapReport outputs matched and missing skills with the match score.
func (p *Printer) PrintGapReport(report *types.GapReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	if report.Role != "" {
		sb.WriteString(fmt.Sprintf("Role:        %s\n", report.Role))
	}
	sb.WriteString(fmt.Sprintf("Match score: %d%%\n", report.MatchScore))

	writeList(&sb, "Matched", report.MatchedSkills, "✓")
	writeList(&sb, "Missing", report.MissingSkills, "✗")
	if len(report.EmergingMatched) > 0 || len(report.EmergingMissing) > 0 {
		writeList(&sb, "Emerging (have)", report.EmergingMatched, "+")
		writeList(&sb, "Emerging (to explore)", report.EmergingMissing, "·")
	}

	p.printBox("SKILL GAP", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, label string, items []string, marker string) {
	sb.WriteString(fmt.Sprintf("\n%s (%d):\n", label, len(items)))
	if len(items) == 0 {
		sb.WriteString("  (none)\n")
		return
	}
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  %s %s\n", marker, items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintRoadmap outputs every roadmap step in order, ending with the terminal step.
func (p *Printer) PrintRoadmap(roadmap *types.Roadmap) {
	if roadmap == nil || len(roadmap.Steps) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Horizon: %d weeks, plan spans %d\n", roadmap.HorizonWeeks, roadmap.TotalWeeks))

	for _, step := range roadmap.Steps {
		sb.WriteString("\n")
		if step.IsTerminal() {
			sb.WriteString(fmt.Sprintf("%s  %s\n", step.PeriodLabel, step.SuggestedAction))
			continue
		}
		sb.WriteString(fmt.Sprintf("%d. [%s] %s\n", step.SequenceIndex, step.PeriodLabel, step.SuggestedAction))
		if step.ProjectPrompt != "" {
			sb.WriteString(fmt.Sprintf("   Project: %s\n", step.ProjectPrompt))
		}
		if len(step.Prerequisites) > 0 {
			sb.WriteString(fmt.Sprintf("   Needs: %s\n", strings.Join(step.Prerequisites, ", ")))
		}
		count := min(len(step.Resources), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("   • %s\n", step.Resources[i]))
		}
	}

	p.printBox("LEARNING ROADMAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRoleProfile outputs a role's requirements and market data.
func (p *Printer) PrintRoleProfile(role *types.RoleProfile) {
	if role == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Salary: %s\n", orDash(role.SalaryBand)))
	sb.WriteString(fmt.Sprintf("Demand: %s\n", orDash(role.DemandLevel)))
	sb.WriteString(fmt.Sprintf("Growth: %s\n", orDash(role.GrowthRate)))
	sb.WriteString(fmt.Sprintf("Required: %s\n", strings.Join(role.RequiredSkills, ", ")))
	if len(role.EmergingSkills) > 0 {
		sb.WriteString(fmt.Sprintf("Emerging: %s\n", strings.Join(role.EmergingSkills, ", ")))
	}

	p.printBox(strings.ToUpper(role.Name), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillClassification outputs validated and uncertain skills.
func (p *Printer) PrintSkillClassification(validated, uncertain []string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Validated (%d): %s\n", len(validated), orDash(strings.Join(validated, ", "))))
	sb.WriteString(fmt.Sprintf("Uncertain (%d): %s", len(uncertain), orDash(strings.Join(uncertain, ", "))))
	p.printBox("EXTRACTED SKILLS", sb.String())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
