package task

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/taskboard/taskboard/cmd/taskboard/render"
	"github.com/taskboard/taskboard/cmd/taskboard/rest"
	"github.com/taskboard/taskboard/cmd/taskboard/subcommands/common"
	"github.com/taskboard/taskboard/pkg/kanban"
	"github.com/taskboard/taskboard/pkg/utils"
	"go.uber.org/zap"
)

func newMove(env *common.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move TASK_ID STATUS",
		Short: "Move a task to the column of STATUS (todo, in-progress, review or done)",
		Args:  cobra.ExactArgs(2),
	}
	cmd.RunE = env.RunE(func(ctx context.Context, logger *zap.Logger, client rest.Client, cmd *cobra.Command, args []string) error {
		n, err := common.ParseId("task", args[0])
		if err != nil {
			return err
		}
		id := strconv.FormatInt(n, 10)
		status, err := ParseStatus(args[1])
		if err != nil {
			return err
		}

		board := kanban.New(rest.BoardSource(client, env.Clock))
		moved, err := Move(ctx, board, id, status)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if !moved {
			fmt.Fprintf(w, "task #%s is already in %s\n", id, status.Title())
		} else {
			logger.Debug("task moved", zap.String("id", id), zap.String("status", string(status)))
		}

		users, err := client.ListUsers(ctx, "")
		if err != nil {
			return err
		}
		boardUsers := utils.Map(users, kanban.UserFromDetail)
		for _, c := range board.Columns() {
			if c.Status != status {
				continue
			}
			selected := slices.IndexFunc(c.Tasks, func(t kanban.Task) bool { return t.Id == id })
			_, err = fmt.Fprintln(w, render.Column(render.DefaultStyles(), c, boardUsers, env.Clock(), selected, false, render.ColumnWidth))
		}
		return err
	})
	return cmd
}

// Move drops the task id onto the column of status, as dragging it on the board.
//
// moved is false when the task is there already.
func Move(ctx context.Context, board *kanban.Board, id string, status kanban.Status) (moved bool, err error) {
	if err := board.Refresh(ctx); err != nil {
		return false, err
	}
	if !slices.ContainsFunc(board.Snapshot(), func(t kanban.Task) bool { return t.Id == id }) {
		return false, fmt.Errorf("task #%s is not found", id)
	}
	return board.Drop(ctx, id, status.DroppableId())
}
