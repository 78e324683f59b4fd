package goal

import "math"

// Contribution weights for combining task completion and KPI attainment into
// a single progress percentage.
const (
	TaskWeight = 0.7
	KPIWeight  = 0.3
)

// Snapshot is the result of a progress computation
type Snapshot struct {
	Progress int
	Status   GoalStatus
}

// ComputeProgress derives a goal's progress percentage and status from its
// tasks and KPIs. It is a pure function: the same inputs always yield the
// same snapshot, and callers apply the result through Goal.ApplySnapshot,
// which enforces the sticky-status guard.
//
// Task completion contributes TaskWeight of the total when at least one task
// exists; average KPI attainment (capped at 100 per KPI, KPIs without a
// positive target excluded) contributes KPIWeight when at least one targeted
// KPI exists. With neither signal present the function returns nil and the
// caller must leave the goal untouched.
func ComputeProgress(tasks []Task, kpis []KPI) *Snapshot {
	var weighted float64
	hasSignal := false

	if len(tasks) > 0 {
		completed := 0
		for i := range tasks {
			if tasks[i].IsCompleted() {
				completed++
			}
		}
		taskPct := float64(completed) / float64(len(tasks)) * 100
		weighted += taskPct * TaskWeight
		hasSignal = true
	}

	targeted := 0
	attainmentSum := 0.0
	for i := range kpis {
		att, ok := kpis[i].Attainment()
		if !ok {
			continue
		}
		attainmentSum += att.InexactFloat64()
		targeted++
	}
	if targeted > 0 {
		weighted += attainmentSum / float64(targeted) * KPIWeight
		hasSignal = true
	}

	if !hasSignal {
		return nil
	}

	progress := int(math.Round(weighted))
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	return &Snapshot{
		Progress: progress,
		Status:   statusForProgress(progress),
	}
}

// statusForProgress maps a progress percentage to a status. On Hold is never
// assigned automatically.
func statusForProgress(progress int) GoalStatus {
	switch {
	case progress >= 100:
		return GoalStatusCompleted
	case progress > 0:
		return GoalStatusInProgress
	default:
		return GoalStatusNotStarted
	}
}
