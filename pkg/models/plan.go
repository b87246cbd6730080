package models

// Task is one entry in the day's schedule. Order within a plan matters.
type Task struct {
	Task string `json:"task"`
	Time string `json:"time"`
}

// Targets holds optional clinical target values for the plan.
type Targets struct {
	GlucoseMin    *float64 `json:"glucose_min,omitempty"`
	GlucoseMax    *float64 `json:"glucose_max,omitempty"`
	BPSystolicMax *float64 `json:"bp_systolic_max,omitempty"`
	WeightTarget  *float64 `json:"weight_target,omitempty"`
}

// Plan is the structured daily plan. Plans are recomputed on every request
// and never persisted.
type Plan struct {
	Message   string    `json:"message"`
	Tasks     []Task    `json:"tasks"`
	Targets   Targets   `json:"targets"`
	Citations []Article `json:"citations,omitempty"`
}

// Stats holds aggregate trend statistics. TIR and BPControl are percentages
// in [0,100]; Streak is in days.
type Stats struct {
	TIR       int `json:"tir"`
	BPControl int `json:"bp_control"`
	Streak    int `json:"streak"`
}

// Trends is the insight narrative plus aggregate stats, recomputed alongside
// the plan.
type Trends struct {
	Insight string `json:"insight"`
	Stats   Stats  `json:"stats"`
}

// PlanResult bundles a plan and its trends. Every plan computation returns
// one, from either the generative path or the deterministic fallback.
type PlanResult struct {
	Plan   Plan   `json:"plan"`
	Trends Trends `json:"trends"`
}
