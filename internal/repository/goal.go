package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/wellpath/portal/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Goals(ctx context.Context, userID string) ([]*model.Goal, error)
	ByID(ctx context.Context, userID, goalID string) (*model.Goal, error)
	AppendLog(ctx context.Context, log *model.GoalLog) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func insertGoal(ctx context.Context, db sqlx.ExecerContext, goal *model.Goal) error {
	query := `INSERT INTO goals (id, user_id, position, type, target, unit, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := db.ExecContext(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Position,
		string(goal.Type),
		goal.Target,
		goal.Unit,
		goal.CreatedAt,
	)
	return err
}

// Goals returns the user's goals in creation order, each with its logs in
// append order.
func (r *goalRepository) Goals(ctx context.Context, userID string) ([]*model.Goal, error) {
	var goals []*model.Goal
	err := r.db.SelectContext(ctx, &goals, `SELECT * FROM goals WHERE user_id = $1 ORDER BY position ASC`, userID)
	if err != nil {
		return nil, err
	}

	var logs []*model.GoalLog
	query := `SELECT gl.* FROM goal_logs gl
	          JOIN goals g ON g.id = gl.goal_id
	          WHERE g.user_id = $1
	          ORDER BY gl.goal_id, gl.seq ASC, gl.logged_at ASC`
	err = r.db.SelectContext(ctx, &logs, query, userID)
	if err != nil {
		return nil, err
	}

	byGoal := make(map[string][]*model.GoalLog, len(goals))
	for _, l := range logs {
		byGoal[l.GoalID] = append(byGoal[l.GoalID], l)
	}
	for _, g := range goals {
		g.Logs = byGoal[g.ID]
		if g.Logs == nil {
			g.Logs = []*model.GoalLog{}
		}
	}

	return goals, nil
}

func (r *goalRepository) ByID(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, goal, query, goalID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// AppendLog stores the entry at the end of the goal's sequence. Two
// concurrent appends to the same goal can compute the same seq; both rows
// are kept and ordering between them falls back to the goal_id/seq scan.
func (r *goalRepository) AppendLog(ctx context.Context, log *model.GoalLog) error {
	query := `INSERT INTO goal_logs (id, goal_id, seq, value, logged_at)
	          VALUES ($1, $2, (SELECT COALESCE(MAX(seq), 0) + 1 FROM goal_logs WHERE goal_id = $3), $4, $5)`

	_, err := r.db.ExecContext(ctx, query, log.ID, log.GoalID, log.GoalID, log.Value, log.Date)
	return err
}
