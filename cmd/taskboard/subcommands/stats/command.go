// Package stats is "taskboard stats".
package stats

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskboard/taskboard/cmd/taskboard/render"
	"github.com/taskboard/taskboard/cmd/taskboard/rest"
	"github.com/taskboard/taskboard/cmd/taskboard/subcommands/common"
	"github.com/taskboard/taskboard/pkg/kanban"
	"go.uber.org/zap"
)

func New(env *common.Env) *cobra.Command {
	var local bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show counts of tasks",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().BoolVar(&local, "local", false, "count tasks on the board instead of asking the server")
	cmd.RunE = env.RunE(func(ctx context.Context, _ *zap.Logger, client rest.Client, cmd *cobra.Command, _ []string) error {
		var st kanban.Stats
		if local {
			dashboard, err := rest.FetchDashboard(ctx, client)
			if err != nil {
				return err
			}
			today := env.Clock()
			tasks, _ := dashboard.Board(today)
			st = kanban.Summarize(tasks, today)
		} else {
			s, err := client.Stats(ctx)
			if err != nil {
				return err
			}
			st = kanban.Stats{Total: s.Total, Completed: s.Completed, InProgress: s.InProgress, Overdue: s.Overdue}
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), render.Stats(render.DefaultStyles(), st))
		return err
	})
	return cmd
}
