package task

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskboard/taskboard/cmd/taskboard/rest"
	"github.com/taskboard/taskboard/cmd/taskboard/subcommands/common"
	"github.com/taskboard/taskboard/pkg/kanban"
	"go.uber.org/zap"
)

type taskFlags struct {
	title       string
	description string
	endDate     string
	creator     string
	assignee    string
	tags        []string
	priority    string
	status      string
}

func (f *taskFlags) bind(cmd *cobra.Command, creating bool) {
	fs := cmd.Flags()
	fs.StringVar(&f.title, "title", "", "title")
	fs.StringVar(&f.description, "description", "", "description")
	fs.StringVar(&f.endDate, "end-date", "", "end date, as YYYY-MM-DD, YYYYMMDD or MM/DD/YYYY")
	fs.StringVar(&f.assignee, "assignee", "", "id of the user assigned to")
	fs.StringSliceVar(&f.tags, "tag", nil, "tag. Repeat to give more")
	if creating {
		fs.StringVar(&f.creator, "creator", "", "id of the user creating")
		fs.StringVar(&f.priority, "priority", string(kanban.Medium), "low, medium or high")
		fs.StringVar(&f.status, "status", string(kanban.Todo), "todo, in-progress, review or done")
	} else {
		fs.StringVar(&f.priority, "priority", "", "low, medium or high")
		fs.StringVar(&f.status, "status", "", "todo, in-progress, review or done")
	}
}

func newCreate(env *common.Env) *cobra.Command {
	flags := &taskFlags{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		Args:  cobra.NoArgs,
	}
	flags.bind(cmd, true)
	cmd.RunE = env.RunE(func(ctx context.Context, logger *zap.Logger, client rest.Client, cmd *cobra.Command, _ []string) error {
		status, err := ParseStatus(flags.status)
		if err != nil {
			return err
		}
		priority, err := ParsePriority(flags.priority)
		if err != nil {
			return err
		}
		spec, err := kanban.SpecOf(kanban.Task{
			Title:       flags.title,
			Description: flags.description,
			Status:      status,
			Priority:    priority,
			Creator:     flags.creator,
			Assignee:    flags.assignee,
			Tags:        flags.tags,
			EndDate:     flags.endDate,
		})
		if err != nil {
			return fmt.Errorf("%w: %w", common.ErrUsage, err)
		}

		created, err := client.CreateTask(ctx, spec)
		if err != nil {
			return err
		}
		logger.Debug("task created", zap.Int64("id", created.Id))
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "created task #%d %s\n", created.Id, created.Title)
		return err
	})
	return cmd
}

func newUpdate(env *common.Env) *cobra.Command {
	flags := &taskFlags{}
	cmd := &cobra.Command{
		Use:   "update TASK_ID",
		Short: "Update a task. Fields not given are kept",
		Args:  cobra.ExactArgs(1),
	}
	flags.bind(cmd, false)
	cmd.RunE = env.RunE(func(ctx context.Context, _ *zap.Logger, client rest.Client, cmd *cobra.Command, args []string) error {
		id, err := common.ParseId("task", args[0])
		if err != nil {
			return err
		}

		edit, err := flags.edit(cmd)
		if err != nil {
			return err
		}
		change, err := kanban.ChangeOf(edit)
		if err != nil {
			return fmt.Errorf("%w: %w", common.ErrUsage, err)
		}

		updated, err := client.UpdateTask(ctx, id, change)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "updated task #%d %s\n", updated.Id, updated.Title)
		return err
	})
	return cmd
}

// edit picks flags changed.
func (f *taskFlags) edit(cmd *cobra.Command) (kanban.Edit, error) {
	fs := cmd.Flags()
	var e kanban.Edit
	if fs.Changed("title") {
		e.Title = &f.title
	}
	if fs.Changed("description") {
		e.Description = &f.description
	}
	if fs.Changed("end-date") {
		e.EndDate = &f.endDate
	}
	if fs.Changed("assignee") {
		e.Assignee = &f.assignee
	}
	if fs.Changed("tag") {
		e.Tags = f.tags
	}
	if fs.Changed("priority") {
		p, err := ParsePriority(f.priority)
		if err != nil {
			return kanban.Edit{}, err
		}
		e.Priority = &p
	}
	if fs.Changed("status") {
		s, err := ParseStatus(f.status)
		if err != nil {
			return kanban.Edit{}, err
		}
		e.Status = &s
	}
	return e, nil
}
