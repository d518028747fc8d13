package postgres

import (
	"context"
	"time"

	"academyhub-backend/internal/domain"
)

type goalRepository struct {
	q dbtx
}

func (r *goalRepository) CreateSeasonal(ctx context.Context, g *domain.SeasonalGoal) error {
	query := `INSERT INTO seasonal_goals (code, academy_id, title, start_date, end_date, target_metric, target_value, target_unit, created_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	g.CreatedAt = time.Now()
	err := r.q.QueryRowContext(ctx, query, g.Code, g.AcademyID, g.Title, g.StartDate, g.EndDate, g.Target.Metric, g.Target.Target, g.Target.Unit, g.CreatedBy, g.CreatedAt).Scan(&g.ID)
	return mapError(err)
}

func (r *goalRepository) CreateMonthly(ctx context.Context, g *domain.MonthlyGoal) error {
	query := `INSERT INTO monthly_goals (code, seasonal_goal_id, title, start_date, end_date, target_metric, target_value, target_unit, created_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	g.CreatedAt = time.Now()
	err := r.q.QueryRowContext(ctx, query, g.Code, g.SeasonalGoalID, g.Title, g.StartDate, g.EndDate, g.Target.Metric, g.Target.Target, g.Target.Unit, g.CreatedBy, g.CreatedAt).Scan(&g.ID)
	return mapError(err)
}

func (r *goalRepository) CreateWeekly(ctx context.Context, g *domain.WeeklyGoal) error {
	query := `INSERT INTO weekly_goals (code, monthly_goal_id, title, start_date, end_date, target_metric, target_value, target_unit, created_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	g.CreatedAt = time.Now()
	err := r.q.QueryRowContext(ctx, query, g.Code, g.MonthlyGoalID, g.Title, g.StartDate, g.EndDate, g.Target.Metric, g.Target.Target, g.Target.Unit, g.CreatedBy, g.CreatedAt).Scan(&g.ID)
	return mapError(err)
}

func (r *goalRepository) CreateStudentWeekly(ctx context.Context, g *domain.StudentWeeklyGoal) error {
	query := `INSERT INTO student_weekly_goals (code, weekly_goal_id, student_id, title, start_date, end_date, target_metric, target_value, target_unit, progress, created_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	g.CreatedAt = time.Now()
	err := r.q.QueryRowContext(ctx, query, g.Code, g.WeeklyGoalID, g.StudentID, g.Title, g.StartDate, g.EndDate, g.Target.Metric, g.Target.Target, g.Target.Unit, g.Progress, g.CreatedBy, g.CreatedAt).Scan(&g.ID)
	return mapError(err)
}

func (r *goalRepository) GetSeasonalByID(ctx context.Context, id int32) (*domain.SeasonalGoal, error) {
	g := &domain.SeasonalGoal{}
	query := `SELECT id, code, academy_id, title, start_date, end_date, target_metric, target_value, COALESCE(target_unit, ''), created_by, created_at
	          FROM seasonal_goals WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Code, &g.AcademyID, &g.Title, &g.StartDate, &g.EndDate, &g.Target.Metric, &g.Target.Target, &g.Target.Unit, &g.CreatedBy, &g.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return g, nil
}

func (r *goalRepository) GetMonthlyByID(ctx context.Context, id int32) (*domain.MonthlyGoal, error) {
	g := &domain.MonthlyGoal{}
	query := `SELECT id, code, seasonal_goal_id, title, start_date, end_date, target_metric, target_value, COALESCE(target_unit, ''), created_by, created_at
	          FROM monthly_goals WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Code, &g.SeasonalGoalID, &g.Title, &g.StartDate, &g.EndDate, &g.Target.Metric, &g.Target.Target, &g.Target.Unit, &g.CreatedBy, &g.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return g, nil
}

func (r *goalRepository) GetWeeklyByID(ctx context.Context, id int32) (*domain.WeeklyGoal, error) {
	g := &domain.WeeklyGoal{}
	query := `SELECT id, code, monthly_goal_id, title, start_date, end_date, target_metric, target_value, COALESCE(target_unit, ''), created_by, created_at
	          FROM weekly_goals WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Code, &g.MonthlyGoalID, &g.Title, &g.StartDate, &g.EndDate, &g.Target.Metric, &g.Target.Target, &g.Target.Unit, &g.CreatedBy, &g.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return g, nil
}

func (r *goalRepository) ListSeasonalByAcademy(ctx context.Context, academyID int32) ([]domain.SeasonalGoal, error) {
	query := `SELECT id, code, academy_id, title, start_date, end_date, target_metric, target_value, COALESCE(target_unit, ''), created_by, created_at
	          FROM seasonal_goals WHERE academy_id = $1 ORDER BY start_date`
	rows, err := r.q.QueryContext(ctx, query, academyID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var goals []domain.SeasonalGoal
	for rows.Next() {
		var g domain.SeasonalGoal
		if err := rows.Scan(&g.ID, &g.Code, &g.AcademyID, &g.Title, &g.StartDate, &g.EndDate, &g.Target.Metric, &g.Target.Target, &g.Target.Unit, &g.CreatedBy, &g.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *goalRepository) ListMonthlyBySeasonal(ctx context.Context, seasonalGoalID int32) ([]domain.MonthlyGoal, error) {
	query := `SELECT id, code, seasonal_goal_id, title, start_date, end_date, target_metric, target_value, COALESCE(target_unit, ''), created_by, created_at
	          FROM monthly_goals WHERE seasonal_goal_id = $1 ORDER BY start_date`
	rows, err := r.q.QueryContext(ctx, query, seasonalGoalID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var goals []domain.MonthlyGoal
	for rows.Next() {
		var g domain.MonthlyGoal
		if err := rows.Scan(&g.ID, &g.Code, &g.SeasonalGoalID, &g.Title, &g.StartDate, &g.EndDate, &g.Target.Metric, &g.Target.Target, &g.Target.Unit, &g.CreatedBy, &g.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *goalRepository) ListWeeklyByMonthly(ctx context.Context, monthlyGoalID int32) ([]domain.WeeklyGoal, error) {
	query := `SELECT id, code, monthly_goal_id, title, start_date, end_date, target_metric, target_value, COALESCE(target_unit, ''), created_by, created_at
	          FROM weekly_goals WHERE monthly_goal_id = $1 ORDER BY start_date`
	rows, err := r.q.QueryContext(ctx, query, monthlyGoalID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var goals []domain.WeeklyGoal
	for rows.Next() {
		var g domain.WeeklyGoal
		if err := rows.Scan(&g.ID, &g.Code, &g.MonthlyGoalID, &g.Title, &g.StartDate, &g.EndDate, &g.Target.Metric, &g.Target.Target, &g.Target.Unit, &g.CreatedBy, &g.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *goalRepository) ListStudentWeeklyByStudent(ctx context.Context, studentID int32) ([]domain.StudentWeeklyGoal, error) {
	query := `SELECT id, code, weekly_goal_id, student_id, title, start_date, end_date, target_metric, target_value, COALESCE(target_unit, ''), progress, created_by, created_at
	          FROM student_weekly_goals WHERE student_id = $1 ORDER BY start_date`
	rows, err := r.q.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var goals []domain.StudentWeeklyGoal
	for rows.Next() {
		var g domain.StudentWeeklyGoal
		if err := rows.Scan(&g.ID, &g.Code, &g.WeeklyGoalID, &g.StudentID, &g.Title, &g.StartDate, &g.EndDate, &g.Target.Metric, &g.Target.Target, &g.Target.Unit, &g.Progress, &g.CreatedBy, &g.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}
