// Package task is "taskboard task" and its subcommands.
package task

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/taskboard/taskboard/cmd/taskboard/render"
	"github.com/taskboard/taskboard/cmd/taskboard/rest"
	"github.com/taskboard/taskboard/cmd/taskboard/subcommands/common"
	apitasks "github.com/taskboard/taskboard/pkg/api/types/tasks"
	"github.com/taskboard/taskboard/pkg/domain"
	"github.com/taskboard/taskboard/pkg/kanban"
	"go.uber.org/zap"
)

func New(env *common.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manipulate tasks",
	}
	cmd.AddCommand(
		newList(env),
		newShow(env),
		newCreate(env),
		newUpdate(env),
		newDelete(env),
		newSearch(env),
		newMove(env),
	)
	return cmd
}

// ParseStatus reads a column of the board, like "in-progress".
// Statuses of the API, like "IN_PROGRESS", are also accepted.
func ParseStatus(s string) (kanban.Status, error) {
	if st := kanban.Status(strings.ToLower(strings.TrimSpace(s))); st.Valid() {
		return st, nil
	}
	if domain.AsTaskStatus(s).Valid() {
		return kanban.StatusFromBackend(s), nil
	}
	return "", fmt.Errorf(
		"%w: unknown status %q. It should be one of: todo, in-progress, review or done",
		common.ErrUsage, s,
	)
}

// ParsePriority reads a priority, like "high".
func ParsePriority(s string) (kanban.Priority, error) {
	p := kanban.Priority(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range kanban.Priorities {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown priority %q. It should be one of: low, medium or high", common.ErrUsage, s)
}

func printTasks(w io.Writer, tasks []apitasks.Detail) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "no tasks found")
		return err
	}
	_, err := fmt.Fprintln(w, render.TaskTable(tasks))
	return err
}

func newList(env *common.Env) *cobra.Command {
	var userId string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&userId, "user", "", "only tasks assigned to the user with this id")
	cmd.RunE = env.RunE(func(ctx context.Context, _ *zap.Logger, client rest.Client, cmd *cobra.Command, _ []string) error {
		var tasks []apitasks.Detail
		var err error
		if cmd.Flags().Changed("user") {
			id, perr := common.ParseId("user", userId)
			if perr != nil {
				return perr
			}
			tasks, err = client.TasksOfUser(ctx, id)
		} else {
			tasks, err = client.ListTasks(ctx)
		}
		if err != nil {
			return err
		}
		return printTasks(cmd.OutOrStdout(), tasks)
	})
	return cmd
}

func newShow(env *common.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show TASK_ID",
		Short: "Show a task in detail",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = env.RunE(func(ctx context.Context, _ *zap.Logger, client rest.Client, cmd *cobra.Command, args []string) error {
		id, err := common.ParseId("task", args[0])
		if err != nil {
			return err
		}
		task, err := client.GetTask(ctx, id)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), render.TaskDetail(task))
		return err
	})
	return cmd
}

func newDelete(env *common.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete TASK_ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = env.RunE(func(ctx context.Context, logger *zap.Logger, client rest.Client, cmd *cobra.Command, args []string) error {
		id, err := common.ParseId("task", args[0])
		if err != nil {
			return err
		}
		if err := client.DeleteTask(ctx, id); err != nil {
			return err
		}
		logger.Debug("task deleted", zap.Int64("id", id))
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted task #%d\n", id)
		return err
	})
	return cmd
}

func newSearch(env *common.Env) *cobra.Command {
	var exact bool
	var byUser bool
	cmd := &cobra.Command{
		Use:   "search TERM",
		Short: "Search tasks by tag, or by name of users with --user",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().BoolVar(&exact, "exact", false, "tags should equal to TERM (case sensitive)")
	cmd.Flags().BoolVar(&byUser, "user", false, "search tasks whose assignee or creator has a name containing TERM")
	cmd.MarkFlagsMutuallyExclusive("exact", "user")
	cmd.RunE = env.RunE(func(ctx context.Context, _ *zap.Logger, client rest.Client, cmd *cobra.Command, args []string) error {
		term := args[0]
		if strings.TrimSpace(term) == "" {
			return fmt.Errorf("%w: search term is empty", common.ErrUsage)
		}
		if !byUser {
			tasks, err := client.SearchTasks(ctx, term, exact)
			if err != nil {
				return err
			}
			return printTasks(cmd.OutOrStdout(), tasks)
		}

		found, err := SearchByUser(ctx, client, term)
		if err != nil {
			return err
		}
		return printTasks(cmd.OutOrStdout(), found)
	})
	return cmd
}

// SearchByUser finds tasks whose assignee or creator has a name containing term.
func SearchByUser(ctx context.Context, client rest.Client, term string) ([]apitasks.Detail, error) {
	dashboard, err := rest.FetchDashboard(ctx, client)
	if err != nil {
		return nil, err
	}
	// timestamps are not used.
	tasks, users := dashboard.Board(time.Time{})
	hit := map[string]bool{}
	for _, t := range kanban.SearchByUser(tasks, users, term) {
		hit[t.Id] = true
	}

	found := []apitasks.Detail{}
	for i, d := range dashboard.Tasks {
		if hit[tasks[i].Id] {
			found = append(found, d)
		}
	}
	return found, nil
}
