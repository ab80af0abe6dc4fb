// Package app wires configuration into a running CRM process.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"crm/internal/client"
	"crm/internal/config"
	"crm/internal/events"
	"crm/internal/gql"
	httpapi "crm/internal/http"
	"crm/internal/jobs"
	"crm/internal/logger"
	"crm/internal/observability"
	"crm/internal/repository"
	"crm/internal/service"
)

// App собранный процесс: хранилище, сервисы, схема и HTTP-сервер
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	stores repository.Stores
	events events.Publisher

	Services *service.Services
	Schema   *graphql.Schema
	Server   *httpapi.Server

	shutdownTracing func(context.Context) error
}

func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	if log == nil {
		log = logger.NewNop()
	}
	a := &App{cfg: cfg, log: log, shutdownTracing: func(context.Context) error { return nil }}

	shutdown, err := observability.InitTracing(ctx, log, observability.TracingConfig{
		Exporter:    cfg.Tracing.Exporter,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		ServiceName: cfg.Tracing.ServiceName,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	a.shutdownTracing = shutdown

	if a.stores, err = openStores(cfg.Storage, log); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	if a.events, err = openPublisher(cfg.Kafka, log); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	a.Services = service.New(a.stores, service.Deps{Events: a.events, Log: log})
	if a.Schema, err = gql.NewSchema(a.Services, log); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	a.Server = httpapi.NewServer(a.Services, a.Schema, log, httpapi.Options{
		ServiceName: cfg.Tracing.ServiceName,
		CORSOrigins: cfg.Server.CORSOrigins,
	})
	return a, nil
}

func openStores(cfg config.StorageConfig, log *logger.Logger) (repository.Stores, error) {
	if cfg.Driver == "memory" {
		log.Info("using in-memory storage")
		return repository.NewMemoryStores(), nil
	}
	db, err := repository.OpenGorm(cfg.Driver, cfg.DSN, log)
	if err != nil {
		return repository.Stores{}, err
	}
	return repository.NewGormStores(db), nil
}

func openPublisher(cfg config.KafkaConfig, log *logger.Logger) (events.Publisher, error) {
	if !cfg.Enabled {
		return events.Nop{}, nil
	}
	p, err := events.NewKafkaPublisher(cfg.Brokers, cfg.Topic, log)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Serve слушает cfg.Server.Addr до отмены ctx, затем корректно останавливается.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           a.Server.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	a.log.Info("HTTP server stopped")
	return nil
}

// Close releases storage, the event producer and the tracer provider.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.events != nil {
		errs = append(errs, a.events.Close())
	}
	if a.stores.Close != nil {
		errs = append(errs, a.stores.Close())
	}
	errs = append(errs, a.shutdownTracing(ctx))
	return errors.Join(errs...)
}

// Job names accepted by BuildJob.
const (
	JobHeartbeat = "heartbeat"
	JobRestock   = "restock"
	JobReport    = "report"
	JobReminders = "reminders"
)

var JobNames = []string{JobHeartbeat, JobRestock, JobReport, JobReminders}

// NewAPIClient клиент к GraphQL из cfg.API
func NewAPIClient(cfg *config.Config, log *logger.Logger) (*client.Client, error) {
	return client.New(log, client.Config{Endpoint: cfg.API.Endpoint, Timeout: cfg.API.Timeout})
}

// BuildJob собирает задачу по имени с файловым журналом из конфигурации.
func BuildJob(name string, cfg *config.Config, api jobs.API, log *logger.Logger, out io.Writer) (jobs.Job, string, error) {
	if log == nil {
		log = logger.NewNop()
	}
	env := jobs.Env{API: api, Out: out, Log: log.With("job", name)}
	switch name {
	case JobHeartbeat:
		return jobs.NewHeartbeat(env, jobs.NewFileSink(cfg.Jobs.Heartbeat.LogFile)), cfg.Jobs.Heartbeat.Schedule, nil
	case JobRestock:
		return jobs.NewRestock(env, jobs.NewFileSink(cfg.Jobs.Restock.LogFile)), cfg.Jobs.Restock.Schedule, nil
	case JobReport:
		return jobs.NewReport(env, jobs.NewFileSink(cfg.Jobs.Report.LogFile)), cfg.Jobs.Report.Schedule, nil
	case JobReminders:
		sink := jobs.NewFileSink(cfg.Jobs.Reminders.LogFile)
		return jobs.NewReminders(env, sink, cfg.Jobs.RemindersLookback), cfg.Jobs.Reminders.Schedule, nil
	default:
		return nil, "", fmt.Errorf("unknown job %q (want one of %v)", name, JobNames)
	}
}

// NewScheduler планировщик со всеми четырьмя задачами
func NewScheduler(cfg *config.Config, api jobs.API, log *logger.Logger, out io.Writer) (*jobs.Scheduler, error) {
	entries := make([]jobs.Entry, 0, len(JobNames))
	for _, name := range JobNames {
		job, spec, err := BuildJob(name, cfg, api, log, out)
		if err != nil {
			return nil, err
		}
		entries = append(entries, jobs.Entry{Spec: spec, Job: job})
	}
	return jobs.NewScheduler(log, cfg.Jobs.RunTimeout, entries...)
}
