// Package scheduler defines the asynq tasks behind the nightly sales
// report and the client/worker pair that schedules and runs them.
package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskDailySalesReport = "reports.daily_sales"

// dateLayout is the wire format for report dates in task payloads.
const dateLayout = "2006-01-02"

// DailySalesReportPayload names the calendar day a report covers.
type DailySalesReportPayload struct {
	Date string `json:"date"`
}

func NewDailySalesReportTask(payload DailySalesReportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDailySalesReport, data), nil
}

func ParseDailySalesReportPayload(task *asynq.Task) (DailySalesReportPayload, error) {
	var payload DailySalesReportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DailySalesReportPayload{}, err
	}
	if _, err := time.Parse(dateLayout, payload.Date); err != nil {
		return DailySalesReportPayload{}, err
	}
	return payload, nil
}
