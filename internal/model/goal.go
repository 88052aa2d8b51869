package model

import (
	"math"
	"time"
)

type GoalType string

const (
	GoalTypeSteps  GoalType = "steps"
	GoalTypeWater  GoalType = "water"
	GoalTypeSleep  GoalType = "sleep"
	GoalTypeCustom GoalType = "custom"
)

type Goal struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"-"`
	Position  int       `db:"position" json:"-"`
	Type      GoalType  `db:"type" json:"type"`
	Target    *float64  `db:"target" json:"target,omitempty"`
	Unit      *string   `db:"unit" json:"unit,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"-"`

	// Logs are in append order, which is not necessarily date order.
	Logs []*GoalLog `db:"-" json:"logs"`
}

type GoalLog struct {
	ID     string    `db:"id" json:"id"`
	GoalID string    `db:"goal_id" json:"-"`
	Seq    int       `db:"seq" json:"-"`
	Value  float64   `db:"value" json:"value"`
	Date   time.Time `db:"logged_at" json:"date"`
}

// LatestLog returns the most recently appended entry, or nil.
func (g *Goal) LatestLog() *GoalLog {
	if len(g.Logs) == 0 {
		return nil
	}
	return g.Logs[len(g.Logs)-1]
}

// ProgressPercent is the latest value as a whole percentage of the target,
// clamped to [0, 100]. Goals without both a positive target and a unit have
// no meaningful progress and report 0.
func (g *Goal) ProgressPercent() int {
	latest := g.LatestLog()
	if latest == nil || g.Target == nil || g.Unit == nil || *g.Target <= 0 {
		return 0
	}
	raw := math.Round(latest.Value / *g.Target * 100)
	return int(math.Max(0, math.Min(100, raw)))
}

// NewDefaultGoals returns the goals every patient starts with.
func NewDefaultGoals() []*Goal {
	return []*Goal{
		newTargetGoal(GoalTypeSteps, 8000, "steps"),
		newTargetGoal(GoalTypeWater, 8, "glasses"),
		newTargetGoal(GoalTypeSleep, 8, "hours"),
	}
}

func newTargetGoal(t GoalType, target float64, unit string) *Goal {
	return &Goal{Type: t, Target: &target, Unit: &unit, Logs: []*GoalLog{}}
}
