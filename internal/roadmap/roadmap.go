// Package roadmap turns a gap report into a week-by-week learning plan.
package roadmap

import (
	"fmt"

	"github.com/jonathan/skill-twin-engine/internal/types"
)

// Generator builds roadmaps, attaching resources from its catalog.
type Generator struct {
	catalog *Catalog
}

// New returns a Generator. A nil catalog selects DefaultCatalog.
func New(catalog *Catalog) *Generator {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Generator{catalog: catalog}
}

// Generate emits one step per missing skill in report order, then a terminal step.
// When there are more missing skills than horizonWeeks, skills are assigned to
// weeks round-robin starting at week 1 so none is dropped. horizonWeeks <= 0
// gives every skill its own week.
func (g *Generator) Generate(report types.GapReport, horizonWeeks int) types.Roadmap {
	rm := types.Roadmap{
		HorizonWeeks: horizonWeeks,
		Steps:        make([]types.RoadmapStep, 0, len(report.MissingSkills)+1),
	}

	for i, skill := range report.MissingSkills {
		week := i + 1
		if horizonWeeks > 0 {
			week = i%horizonWeeks + 1
		}
		if week > rm.TotalWeeks {
			rm.TotalWeeks = week
		}

		rm.Steps = append(rm.Steps, types.RoadmapStep{
			SequenceIndex:   i + 1,
			Kind:            types.StepKindSkill,
			TargetSkill:     skill,
			SuggestedAction: "Master " + skill,
			ProjectPrompt:   "Build a project using " + skill,
			Week:            week,
			PeriodLabel:     fmt.Sprintf("Week %d", week),
			Resources:       g.catalog.Resources(skill),
			Prerequisites:   g.catalog.Prerequisites(skill),
		})
	}

	rm.Steps = append(rm.Steps, terminalStep(report, len(rm.Steps)+1, rm.TotalWeeks))
	return rm
}

func terminalStep(report types.GapReport, index, lastWeek int) types.RoadmapStep {
	target := "target"
	if report.Role != "" {
		target = report.Role
	}

	step := types.RoadmapStep{
		SequenceIndex: index,
		Kind:          types.StepKindTerminal,
	}
	if lastWeek == 0 {
		step.PeriodLabel = "Now"
		step.SuggestedAction = fmt.Sprintf("Ready now: apply for %s roles", target)
		return step
	}
	step.PeriodLabel = fmt.Sprintf("After Week %d", lastWeek)
	step.SuggestedAction = fmt.Sprintf("Ready: apply for %s roles", target)
	return step
}
