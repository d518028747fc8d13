package domain

import "time"

// ProgressTarget is the measurable target attached to every goal level.
type ProgressTarget struct {
	Metric string `json:"metric"`
	Target int32  `json:"target"`
	Unit   string `json:"unit,omitempty"`
}

type SeasonalGoal struct {
	ID        int32          `json:"id"`
	Code      string         `json:"code"`
	AcademyID int32          `json:"academy_id"`
	Title     string         `json:"title"`
	StartDate time.Time      `json:"start_date"`
	EndDate   time.Time      `json:"end_date"`
	Target    ProgressTarget `json:"target"`
	CreatedBy int32          `json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
}

type MonthlyGoal struct {
	ID             int32          `json:"id"`
	Code           string         `json:"code"`
	SeasonalGoalID int32          `json:"seasonal_goal_id"`
	Title          string         `json:"title"`
	StartDate      time.Time      `json:"start_date"`
	EndDate        time.Time      `json:"end_date"`
	Target         ProgressTarget `json:"target"`
	CreatedBy      int32          `json:"created_by"`
	CreatedAt      time.Time      `json:"created_at"`
}

type WeeklyGoal struct {
	ID            int32          `json:"id"`
	Code          string         `json:"code"`
	MonthlyGoalID int32          `json:"monthly_goal_id"`
	Title         string         `json:"title"`
	StartDate     time.Time      `json:"start_date"`
	EndDate       time.Time      `json:"end_date"`
	Target        ProgressTarget `json:"target"`
	CreatedBy     int32          `json:"created_by"`
	CreatedAt     time.Time      `json:"created_at"`
}

type StudentWeeklyGoal struct {
	ID           int32          `json:"id"`
	Code         string         `json:"code"`
	WeeklyGoalID int32          `json:"weekly_goal_id"`
	StudentID    int32          `json:"student_id"`
	Title        string         `json:"title"`
	StartDate    time.Time      `json:"start_date"`
	EndDate      time.Time      `json:"end_date"`
	Target       ProgressTarget `json:"target"`
	Progress     int32          `json:"progress"`
	CreatedBy    int32          `json:"created_by"`
	CreatedAt    time.Time      `json:"created_at"`
}
