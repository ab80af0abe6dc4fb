// Package jobs holds the periodic CRM tasks. Each one calls the API surface
// through a client and records the outcome in its own log sink.
package jobs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"crm/internal/client"
	"crm/internal/clock"
	"crm/internal/logger"
)

const (
	heartbeatLayout = "02/01/2006-15:04:05"
	restockLayout   = "02/01/2006-15:04:05"
	reportLayout    = "2006-01-02 15:04:05"
	reminderLayout  = "2006-01-02 15:04:05"

	defaultLookback = 7 * 24 * time.Hour
)

// API операции, которые вызывают задачи
type API interface {
	Ping(ctx context.Context) (int, error)
	UpdateLowStockProducts(ctx context.Context) (*client.RestockResult, error)
	Totals(ctx context.Context) (*client.Totals, error)
	RecentOrders(ctx context.Context, since time.Time) ([]client.RecentOrder, error)
}

// Job единица работы планировщика
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Env общее окружение задач
type Env struct {
	API   API
	Clock clock.Clock
	// Out receives a short human-readable status per run.
	Out io.Writer
	Log *logger.Logger
}

func (e Env) withDefaults() Env {
	if e.Clock == nil {
		e.Clock = clock.System{}
	}
	if e.Out == nil {
		e.Out = io.Discard
	}
	if e.Log == nil {
		e.Log = logger.NewNop()
	}
	return e
}

func (e Env) status(format string, args ...any) {
	_, _ = fmt.Fprintf(e.Out, format+"\n", args...)
}

// Heartbeat пишет строку "alive" и проверяет, что API отвечает.
type Heartbeat struct {
	env  Env
	sink Sink
}

func NewHeartbeat(env Env, sink Sink) *Heartbeat {
	return &Heartbeat{env: env.withDefaults(), sink: sink}
}

func (h *Heartbeat) Name() string { return "heartbeat" }

func (h *Heartbeat) Run(ctx context.Context) error {
	ts := h.env.Clock.Now().Format(heartbeatLayout)
	if err := h.sink.Append(ts + " CRM is alive"); err != nil {
		h.env.Log.Error("heartbeat write failed", "error", err)
		return err
	}

	// the alive line is already written; probe failures only add a line
	status, err := h.env.API.Ping(ctx)
	var line string
	switch {
	case err != nil:
		line = fmt.Sprintf("GraphQL check failed: %v", err)
	case status == http.StatusOK:
		line = "GraphQL endpoint is responsive."
	default:
		line = "GraphQL endpoint returned non-200 status."
	}
	h.env.status("%s", line)
	if werr := h.sink.Append(ts + " " + line); werr != nil {
		h.env.Log.Error("heartbeat write failed", "error", werr)
		return werr
	}
	if err != nil {
		h.env.Log.Warn("heartbeat probe failed", "error", err)
	}
	return err
}

// Restock вызывает updateLowStockProducts и журналирует результат. Повторов нет.
type Restock struct {
	env  Env
	sink Sink
}

func NewRestock(env Env, sink Sink) *Restock {
	return &Restock{env: env.withDefaults(), sink: sink}
}

func (r *Restock) Name() string { return "restock" }

func (r *Restock) Run(ctx context.Context) error {
	ts := "[" + r.env.Clock.Now().Format(restockLayout) + "]"
	res, err := r.env.API.UpdateLowStockProducts(ctx)
	if err != nil {
		r.env.status("Failed to update stock: %v", err)
		r.env.Log.Error("low stock job failed", "error", err)
		return appendAll(r.sink, err, fmt.Sprintf("%s Error: %v", ts, err))
	}
	lines := make([]string, 0, len(res.UpdatedProducts)+1)
	lines = append(lines, ts+" "+res.Message)
	for _, p := range res.UpdatedProducts {
		lines = append(lines, " - "+p)
	}
	if err := appendAll(r.sink, nil, lines...); err != nil {
		return err
	}
	r.env.status("Low stock update job completed.")
	r.env.Log.Info("low stock job done", "updated", len(res.UpdatedProducts))
	return nil
}

// Report недельный отчёт по агрегатам
type Report struct {
	env  Env
	sink Sink
}

func NewReport(env Env, sink Sink) *Report {
	return &Report{env: env.withDefaults(), sink: sink}
}

func (r *Report) Name() string { return "report" }

func (r *Report) Run(ctx context.Context) error {
	ts := r.env.Clock.Now().Format(reportLayout)
	t, err := r.env.API.Totals(ctx)
	if err != nil {
		r.env.status("Failed to generate report: %v", err)
		r.env.Log.Error("report job failed", "error", err)
		return appendAll(r.sink, err, fmt.Sprintf("%s - Error: %v", ts, err))
	}
	line := fmt.Sprintf("%s - Report: %d customers, %d orders, %.2f revenue", ts, t.Customers, t.Orders, t.Revenue)
	if err := r.sink.Append(line); err != nil {
		return err
	}
	r.env.status("CRM report generated successfully.")
	return nil
}

// Reminders пишет напоминание по каждому заказу за последние Lookback.
type Reminders struct {
	env      Env
	sink     Sink
	lookback time.Duration
}

func NewReminders(env Env, sink Sink, lookback time.Duration) *Reminders {
	if lookback <= 0 {
		lookback = defaultLookback
	}
	return &Reminders{env: env.withDefaults(), sink: sink, lookback: lookback}
}

func (r *Reminders) Name() string { return "reminders" }

func (r *Reminders) Run(ctx context.Context) error {
	now := r.env.Clock.Now()
	ts := "[" + now.Format(reminderLayout) + "]"

	orders, err := r.env.API.RecentOrders(ctx, now.Add(-r.lookback))
	if err != nil {
		r.env.status("Error occurred while processing order reminders.")
		r.env.Log.Error("reminders job failed", "error", err)
		return appendAll(r.sink, err, fmt.Sprintf("%s Error: %v", ts, err))
	}
	if len(orders) == 0 {
		if err := r.sink.Append(ts + " No recent orders found."); err != nil {
			return err
		}
		r.env.status("Order reminders processed!")
		return nil
	}
	lines := make([]string, 0, len(orders))
	for _, o := range orders {
		email := o.CustomerEmail
		if email == "" {
			email = "unknown"
		}
		lines = append(lines, fmt.Sprintf("%s Reminder: Order ID %s -> Customer %s", ts, o.ID, email))
	}
	if err := appendAll(r.sink, nil, lines...); err != nil {
		return err
	}
	r.env.status("Order reminders processed!")
	return nil
}

// appendAll writes lines in order and returns cause, or the first write error when cause is nil.
func appendAll(s Sink, cause error, lines ...string) error {
	for _, l := range lines {
		if err := s.Append(l); err != nil {
			if cause != nil {
				return fmt.Errorf("%w (log write failed: %v)", cause, err)
			}
			return err
		}
	}
	return cause
}
