package cli

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"crm/internal/app"
	"crm/internal/jobs"
)

type ServeOptions struct {
	*RootOptions
	WithScheduler bool
}

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (GraphQL, REST, swagger)",
		Long: `Start the HTTP API.

With --with-scheduler the cron jobs run in the same process and share
the shutdown signal with the server.

Example:
  crm serve --config ./config/config.yaml
  crm serve --with-scheduler`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts, cmd)
		},
	}
	cmd.Flags().BoolVar(&opts.WithScheduler, "with-scheduler", false, "also run the scheduled jobs")
	return cmd
}

func runServe(ctx context.Context, opts *ServeOptions, cmd *cobra.Command) error {
	a, err := app.New(ctx, opts.Config, opts.Log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(context.Background()); cerr != nil {
			opts.Log.Error("error during close", "error", cerr)
		}
	}()

	var sched *jobs.Scheduler
	if opts.WithScheduler {
		api, err := app.NewAPIClient(opts.Config, opts.Log)
		if err != nil {
			return err
		}
		if sched, err = app.NewScheduler(opts.Config, api, opts.Log, cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Serve(gctx) })
	if sched != nil {
		g.Go(func() error { return sched.Run(gctx) })
	}
	return g.Wait()
}
