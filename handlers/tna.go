package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchtrack/services"
)

const dateLayout = "2006-01-02"

type tnaScheduleBody struct {
	Style        string  `json:"style"`
	Buyer        string  `json:"buyer"`
	OrderNo      string  `json:"orderNo"`
	OrderDate    string  `json:"orderDate"`
	ShipmentDate string  `json:"shipmentDate"`
	OrderQty     float64 `json:"orderQty"`
}

// HandleTNAList returns a handler for GET /tna?page&limit.
func HandleTNAList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		page := queryInt(e.Request.URL.Query().Get("page"), 1)
		limit := queryInt(e.Request.URL.Query().Get("limit"), defaultPageSize)

		records, page, totalPages, err := listWindow(app, "tna_schedules", page, limit)
		if err != nil {
			log.Printf("tna_list: could not query tna_schedules: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load schedules"})
		}

		items := make([]map[string]any, 0, len(records))
		for _, record := range records {
			summary, err := scheduleSummary(app, record.Id)
			if err != nil {
				log.Printf("tna_list: could not summarize schedule %s: %v", record.Id, err)
			}
			items = append(items, map[string]any{
				"id":           record.Id,
				"style":        record.GetString("style"),
				"buyer":        record.GetString("buyer"),
				"orderNo":      record.GetString("order_no"),
				"orderDate":    record.GetString("order_date"),
				"shipmentDate": record.GetString("shipment_date"),
				"orderQty":     record.GetFloat("order_qty"),
				"summary":      summary,
			})
		}

		return e.JSON(http.StatusOK, pageEnvelope(items, page, totalPages))
	}
}

// HandleTNACreate returns a handler for POST /tna. The standard
// milestone ladder is generated from the order and shipment dates.
func HandleTNACreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var body tnaScheduleBody
		if err := e.BindBody(&body); err != nil {
			log.Printf("tna_create: could not parse payload: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}

		body.Style = strings.TrimSpace(body.Style)
		if body.Style == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "style is required"})
		}
		orderDate, err := time.Parse(dateLayout, body.OrderDate)
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "orderDate must be YYYY-MM-DD"})
		}
		shipmentDate, err := time.Parse(dateLayout, body.ShipmentDate)
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "shipmentDate must be YYYY-MM-DD"})
		}
		if shipmentDate.Before(orderDate) {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "shipmentDate must not precede orderDate"})
		}

		col, err := app.FindCollectionByNameOrId("tna_schedules")
		if err != nil {
			log.Printf("tna_create: could not find tna_schedules collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save schedule"})
		}

		record := core.NewRecord(col)
		record.Set("style", body.Style)
		record.Set("buyer", body.Buyer)
		record.Set("order_no", body.OrderNo)
		record.Set("order_date", body.OrderDate)
		record.Set("shipment_date", body.ShipmentDate)
		record.Set("order_qty", body.OrderQty)

		if err := app.Save(record); err != nil {
			log.Printf("tna_create: could not save schedule: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save schedule"})
		}

		tasksCol, err := app.FindCollectionByNameOrId("tna_tasks")
		if err != nil {
			log.Printf("tna_create: could not find tna_tasks collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save schedule"})
		}

		leadDays := services.LeadDays(orderDate, shipmentDate)
		for i, tmpl := range services.DefaultTNATasks {
			task := core.NewRecord(tasksCol)
			task.Set("schedule", record.Id)
			task.Set("sort_order", i+1)
			task.Set("name", tmpl.Name)
			task.Set("plan_date", services.PlanDate(orderDate, leadDays, tmpl.PctOfLead).Format(dateLayout))
			if err := app.Save(task); err != nil {
				log.Printf("tna_create: could not save task %q: %v", tmpl.Name, err)
			}
		}

		return e.JSON(http.StatusCreated, map[string]any{"id": record.Id, "style": body.Style})
	}
}

// HandleTNAView returns a handler for GET /tna/{id}: the schedule, its
// tasks with derived states, and the state tally.
func HandleTNAView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		record, err := app.FindRecordById("tna_schedules", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "schedule not found"})
		}

		tasks, states, err := scheduleTasks(app, id)
		if err != nil {
			log.Printf("tna_view: could not load tasks for %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load schedule"})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":           record.Id,
			"style":        record.GetString("style"),
			"buyer":        record.GetString("buyer"),
			"orderNo":      record.GetString("order_no"),
			"orderDate":    record.GetString("order_date"),
			"shipmentDate": record.GetString("shipment_date"),
			"orderQty":     record.GetFloat("order_qty"),
			"tasks":        tasks,
			"summary":      services.SummarizeSchedule(states),
		})
	}
}

// HandleTNATaskUpdate returns a handler for PATCH /tna/{id}/tasks/{taskId}
// recording an actual completion date.
func HandleTNATaskUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		taskID := e.Request.PathValue("taskId")

		task, err := app.FindRecordById("tna_tasks", taskID)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "task not found"})
		}
		if task.GetString("schedule") != e.Request.PathValue("id") {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "task not found"})
		}

		var body struct {
			ActualDate string `json:"actualDate"`
		}
		if err := e.BindBody(&body); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		if body.ActualDate != "" {
			if _, err := time.Parse(dateLayout, body.ActualDate); err != nil {
				return e.JSON(http.StatusBadRequest, map[string]string{"error": "actualDate must be YYYY-MM-DD"})
			}
		}

		task.Set("actual_date", body.ActualDate)
		if err := app.Save(task); err != nil {
			log.Printf("tna_task_update: could not save task %s: %v", taskID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save task"})
		}

		return e.JSON(http.StatusOK, taskJSON(task, time.Now()))
	}
}

// HandleTNADelete returns a handler for DELETE /tna/{id}. Tasks cascade.
func HandleTNADelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		record, err := app.FindRecordById("tna_schedules", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "schedule not found"})
		}

		if err := app.Delete(record); err != nil {
			log.Printf("tna_delete: could not delete schedule %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete schedule"})
		}

		return e.JSON(http.StatusOK, map[string]bool{"deleted": true})
	}
}

func scheduleTasks(app *pocketbase.PocketBase, scheduleID string) ([]map[string]any, []string, error) {
	records, err := app.FindRecordsByFilter(
		"tna_tasks",
		"schedule = {:scheduleId}",
		"sort_order",
		0,
		0,
		map[string]any{"scheduleId": scheduleID},
	)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	tasks := make([]map[string]any, 0, len(records))
	states := make([]string, 0, len(records))
	for _, task := range records {
		j := taskJSON(task, now)
		tasks = append(tasks, j)
		states = append(states, j["state"].(string))
	}
	return tasks, states, nil
}

func taskJSON(task *core.Record, now time.Time) map[string]any {
	plan, _ := time.Parse(dateLayout, task.GetString("plan_date"))
	var actual time.Time
	if raw := task.GetString("actual_date"); raw != "" {
		actual, _ = time.Parse(dateLayout, raw)
	}
	return map[string]any{
		"id":         task.Id,
		"name":       task.GetString("name"),
		"sortOrder":  task.GetInt("sort_order"),
		"planDate":   task.GetString("plan_date"),
		"actualDate": task.GetString("actual_date"),
		"state":      services.TaskState(plan, actual, now),
	}
}

func scheduleSummary(app *pocketbase.PocketBase, scheduleID string) (services.ScheduleSummary, error) {
	_, states, err := scheduleTasks(app, scheduleID)
	if err != nil {
		return services.ScheduleSummary{}, err
	}
	return services.SummarizeSchedule(states), nil
}
