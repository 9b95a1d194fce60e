package constants

import "time"

type (
	APIStatus        string
	CachePrefix      string
	NotificationKind string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixNotifyRule CachePrefix = "NOTIFY_"
	CachePrefixAnalytics  CachePrefix = "ANALYTICS_"
	CachePrefixPersonnel  CachePrefix = "PERSONNEL_"

	NotifyInfo    NotificationKind = "info"
	NotifyWarning NotificationKind = "warning"
	NotifyError   NotificationKind = "error"
	NotifySuccess NotificationKind = "success"
)

// Workflow and rule thresholds shared by the registry, the notification
// evaluator and the assignment planner.
const (
	// DailyCapacityHours is a technician's committed-hours budget per day.
	DailyCapacityHours = 8.0

	// OverdueAfterDays marks an unrepaired part overdue once exceeded.
	OverdueAfterDays = 7

	// StuckAfterDays flags any non-shipped part sitting in one status.
	StuckAfterDays = 3

	// ScrapRateWarnPercent is the technician scrap-rate alert threshold.
	ScrapRateWarnPercent = 10.0

	// Backlog thresholds, as a percentage of all tracked parts.
	BacklogWarnPercent  = 30.0
	BacklogErrorPercent = 50.0

	// Capacity utilization thresholds, percent of DailyCapacityHours.
	CapacityWarnPercent  = 80.0
	CapacityErrorPercent = 100.0

	// Performance milestones.
	MilestoneWeeklyRepairs  = 10
	MilestoneMonthlyRepairs = 30
	MilestoneEfficiency     = 95.0
)

// DefaultNotifyCooldown suppresses re-firing of the same (rule, subject)
// advisory; matches the original 30 minute sweep cadence.
const DefaultNotifyCooldown = 30 * time.Minute
