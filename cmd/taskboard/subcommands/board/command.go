// Package board is "taskboard board", drawing the kanban board.
package board

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/taskboard/taskboard/cmd/taskboard/render"
	"github.com/taskboard/taskboard/cmd/taskboard/rest"
	"github.com/taskboard/taskboard/cmd/taskboard/subcommands/common"
	"github.com/taskboard/taskboard/cmd/taskboard/tui"
	apitasks "github.com/taskboard/taskboard/pkg/api/types/tasks"
	"github.com/taskboard/taskboard/pkg/kanban"
	"github.com/taskboard/taskboard/pkg/utils"
	"go.uber.org/zap"
)

// Interactive runs the board in the terminal until quit.
type Interactive func(ctx context.Context, deps tui.Deps) error

func New(env *common.Env) *cobra.Command {
	return NewWith(env, func(ctx context.Context, deps tui.Deps) error {
		return tui.Run(ctx, deps)
	})
}

// NewWith creates the command running the interactive board with run.
func NewWith(env *common.Env, run Interactive) *cobra.Command {
	var interactive bool
	var width int
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the kanban board",
		Long: `Show the kanban board.

With --interactive, cards can be selected with arrow keys and moved to
the next column with shift+arrow keys. "/" searches by name of users or tags.`,
		Args: cobra.NoArgs,
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "run the board interactively")
	cmd.Flags().IntVar(&width, "width", render.ColumnWidth, "width of columns")
	cmd.RunE = env.RunE(func(ctx context.Context, logger *zap.Logger, client rest.Client, cmd *cobra.Command, _ []string) error {
		if width <= 0 {
			return fmt.Errorf("%w: --width should be positive", common.ErrUsage)
		}
		dashboard, err := rest.FetchDashboard(ctx, client)
		if err != nil {
			return err
		}
		today := env.Clock()
		tasks, users := dashboard.Board(today)
		logger.Debug("board fetched", zap.Int("tasks", len(tasks)), zap.Int("users", len(users)))

		if interactive {
			return run(ctx, tui.Deps{
				Board:     kanban.New(rest.BoardSource(client, env.Clock)),
				Users:     users,
				SearchTag: SearchTag(client),
				Clock:     env.Clock,
			})
		}

		styles := render.DefaultStyles()
		b := render.Board{
			Columns: kanban.Columns(tasks),
			Users:   users,
			Today:   today,
			Width:   width,
			Column:  -1,
		}
		_, err = fmt.Fprintf(
			cmd.OutOrStdout(), "%s\n%s\n",
			b.Render(styles), render.Stats(styles, kanban.Summarize(tasks, today)),
		)
		return err
	})
	return cmd
}

// SearchTag searches tasks by tags containing tag on the server, and returns their ids on the board.
func SearchTag(client rest.Client) func(ctx context.Context, tag string) ([]string, error) {
	return func(ctx context.Context, tag string) ([]string, error) {
		found, err := client.SearchTasks(ctx, tag, false)
		if err != nil {
			return nil, err
		}
		return utils.Map(found, func(t apitasks.Detail) string {
			return strconv.FormatInt(t.Id, 10)
		}), nil
	}
}
