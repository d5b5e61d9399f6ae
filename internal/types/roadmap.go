// Package types provides type definitions for structured data used throughout the skill-twin engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// StepKind tags a roadmap step so consumers never branch on shape.
type StepKind string

const (
	// StepKindSkill is a remediation step for one missing skill
	StepKindSkill StepKind = "skill"
	// StepKindTerminal is the final readiness step; it carries no target skill
	StepKindTerminal StepKind = "terminal"
)

// RoadmapStep is one entry in a learning roadmap.
type RoadmapStep struct {
	SequenceIndex   int      `json:"sequence_index"`
	Kind            StepKind `json:"kind"`
	TargetSkill     string   `json:"target_skill,omitempty"`
	SuggestedAction string   `json:"suggested_action"`
	ProjectPrompt   string   `json:"project_prompt,omitempty"`
	Week            int      `json:"week,omitempty"`
	PeriodLabel     string   `json:"period_label"`
	Resources       []string `json:"resources,omitempty"`
	Prerequisites   []string `json:"prerequisites,omitempty"`
}

// IsTerminal reports whether the step is the synthetic readiness step.
func (s RoadmapStep) IsTerminal() bool {
	return s.Kind == StepKindTerminal
}

// Roadmap is an ordered sequence of steps ending with exactly one terminal step.
type Roadmap struct {
	HorizonWeeks int           `json:"horizon_weeks"`
	TotalWeeks   int           `json:"total_weeks"`
	Steps        []RoadmapStep `json:"steps"`
}

// SkillSteps returns the non-terminal steps.
func (r *Roadmap) SkillSteps() []RoadmapStep {
	out := make([]RoadmapStep, 0, len(r.Steps))
	for _, s := range r.Steps {
		if !s.IsTerminal() {
			out = append(out, s)
		}
	}
	return out
}
