package domain

import "fmt"

// Code prefixes for sequentially numbered entities.
const (
	CodePrefixAdmin             = "ADM"
	CodePrefixCoach             = "CCH"
	CodePrefixStudent           = "STU"
	CodePrefixBatch             = "BAT"
	CodePrefixSeasonalGoal      = "SG"
	CodePrefixMonthlyGoal       = "MG"
	CodePrefixWeeklyGoal        = "WG"
	CodePrefixStudentWeeklyGoal = "SWG"
)

// Counter names in entity_sequences, one per code prefix.
const (
	SeqAdmin             = "admin"
	SeqCoach             = "coach"
	SeqStudent           = "student"
	SeqBatch             = "batch"
	SeqSeasonalGoal      = "seasonal_goal"
	SeqMonthlyGoal       = "monthly_goal"
	SeqWeeklyGoal        = "weekly_goal"
	SeqStudentWeeklyGoal = "student_weekly_goal"
)

// SequentialCode renders a human-readable identifier from a prefix and a
// counter value, e.g. SequentialCode("STU", 7) == "STU0007".
func SequentialCode(prefix string, n int32) string {
	return fmt.Sprintf("%s%04d", prefix, n)
}
