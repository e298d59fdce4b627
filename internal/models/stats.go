package model

// DashboardStats carries the four dashboard counters. The counts share the
// same day and week boundaries as the task views.
type DashboardStats struct {
	TodayCount     int64 `json:"todayCount"`
	WeekCount      int64 `json:"weekCount"`
	BacklogCount   int64 `json:"backlogCount"`
	CompletedToday int64 `json:"completedToday"`
}
