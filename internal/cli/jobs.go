package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"crm/internal/app"
)

func NewSchedulerCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Run the scheduled jobs against the configured API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := app.NewAPIClient(opts.Config, opts.Log)
			if err != nil {
				return err
			}
			sched, err := app.NewScheduler(opts.Config, api, opts.Log, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return sched.Run(cmd.Context())
		},
	}
}

// NewJobCommand runs one job once. A failed run is already in the job's log,
// so it is reported but does not change the exit code.
func NewJobCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "job <" + strings.Join(app.JobNames, "|") + ">",
		Short:     "Run a single job once",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: app.JobNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := app.NewAPIClient(opts.Config, opts.Log)
			if err != nil {
				return err
			}
			job, _, err := app.BuildJob(args[0], opts.Config, api, opts.Log, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := job.Run(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "job %s failed: %v\n", job.Name(), err)
			}
			return nil
		},
	}
}
