package services

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLeadDays(t *testing.T) {
	order := date(2026, 1, 1)
	shipment := date(2026, 4, 11)

	if got := LeadDays(order, shipment); got != 100 {
		t.Errorf("LeadDays = %d, want 100", got)
	}
	if got := LeadDays(shipment, order); got != 0 {
		t.Errorf("LeadDays reversed = %d, want 0", got)
	}
	if got := LeadDays(order, order); got != 0 {
		t.Errorf("LeadDays same day = %d, want 0", got)
	}
}

func TestPlanDate(t *testing.T) {
	order := date(2026, 1, 1)

	tests := []struct {
		name string
		pct  float64
		want time.Time
	}{
		{"fabric booking at 5%", 5, date(2026, 1, 6)},
		{"dyeing at 60%", 60, date(2026, 3, 2)},
		{"ex-factory at 100%", 100, date(2026, 4, 11)},
		{"zero pct", 0, order},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanDate(order, 100, tt.pct)
			if !got.Equal(tt.want) {
				t.Errorf("PlanDate(100, %v) = %v, want %v", tt.pct, got, tt.want)
			}
		})
	}
}

func TestDefaultTNATasks_EndAtShipment(t *testing.T) {
	if len(DefaultTNATasks) == 0 {
		t.Fatal("expected non-empty default milestone ladder")
	}

	last := DefaultTNATasks[len(DefaultTNATasks)-1]
	if last.Name != "Ex-Factory" || last.PctOfLead != 100 {
		t.Errorf("last milestone = %+v, want Ex-Factory at 100%%", last)
	}

	prev := 0.0
	for _, task := range DefaultTNATasks {
		if task.PctOfLead < prev {
			t.Errorf("milestone %q out of order: %v after %v", task.Name, task.PctOfLead, prev)
		}
		prev = task.PctOfLead
	}
}

func TestTaskState(t *testing.T) {
	plan := date(2026, 3, 1)

	tests := []struct {
		name   string
		actual time.Time
		today  time.Time
		want   string
	}{
		{"not done, before plan", time.Time{}, date(2026, 2, 20), TaskPending},
		{"not done, on plan day", time.Time{}, plan, TaskPending},
		{"not done, past plan", time.Time{}, date(2026, 3, 5), TaskOverdue},
		{"done early", date(2026, 2, 25), date(2026, 3, 5), TaskOnTime},
		{"done on plan day", plan, date(2026, 3, 5), TaskOnTime},
		{"done late", date(2026, 3, 4), date(2026, 3, 5), TaskDelayed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TaskState(plan, tt.actual, tt.today); got != tt.want {
				t.Errorf("TaskState = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummarizeSchedule(t *testing.T) {
	sum := SummarizeSchedule([]string{
		TaskOnTime, TaskOnTime, TaskDelayed, TaskOverdue, TaskPending, TaskPending,
	})

	if sum.Total != 6 {
		t.Errorf("Total = %d, want 6", sum.Total)
	}
	if sum.OnTime != 2 || sum.Delayed != 1 || sum.Overdue != 1 || sum.Pending != 2 {
		t.Errorf("unexpected tallies: %+v", sum)
	}
}
