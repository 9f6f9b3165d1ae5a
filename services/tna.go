package services

import "time"

// Time and Action (TNA) milestone math. Plan dates are derived from the
// order and shipment dates; actual dates come from the factory floor.

// TaskStatus values for a TNA task.
const (
	TaskPending = "pending"
	TaskOverdue = "overdue"
	TaskOnTime  = "on_time"
	TaskDelayed = "delayed"
)

// TNATaskTemplate positions a standard milestone as a percentage of the
// order-to-shipment lead time.
type TNATaskTemplate struct {
	Name      string
	PctOfLead float64
}

// DefaultTNATasks is the standard knitwear milestone ladder.
var DefaultTNATasks = []TNATaskTemplate{
	{"Fabric Booking", 5},
	{"Lab Dip Approval", 12},
	{"Yarn In-house", 20},
	{"Fit Sample Approval", 30},
	{"Knitting Complete", 45},
	{"Dyeing Complete", 60},
	{"PP Sample Approval", 65},
	{"Sewing Start", 70},
	{"Sewing Complete", 90},
	{"Ex-Factory", 100},
}

// LeadDays returns the whole days between order and shipment date.
// Never negative.
func LeadDays(orderDate, shipmentDate time.Time) int {
	days := int(shipmentDate.Sub(orderDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// PlanDate places a milestone at pctOfLead percent of the lead time
// after the order date, rounded down to whole days.
func PlanDate(orderDate time.Time, leadDays int, pctOfLead float64) time.Time {
	offset := int(float64(leadDays) * pctOfLead / 100)
	return orderDate.AddDate(0, 0, offset)
}

// TaskState classifies a task given its plan date, actual completion
// date (zero if not done) and the current date.
func TaskState(plan, actual, today time.Time) string {
	if actual.IsZero() {
		if today.After(plan) {
			return TaskOverdue
		}
		return TaskPending
	}
	if actual.After(plan) {
		return TaskDelayed
	}
	return TaskOnTime
}

// ScheduleSummary counts tasks by state.
type ScheduleSummary struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Overdue int `json:"overdue"`
	OnTime  int `json:"onTime"`
	Delayed int `json:"delayed"`
}

// SummarizeSchedule tallies a schedule's task states.
func SummarizeSchedule(states []string) ScheduleSummary {
	sum := ScheduleSummary{Total: len(states)}
	for _, s := range states {
		switch s {
		case TaskPending:
			sum.Pending++
		case TaskOverdue:
			sum.Overdue++
		case TaskOnTime:
			sum.OnTime++
		case TaskDelayed:
			sum.Delayed++
		}
	}
	return sum
}
