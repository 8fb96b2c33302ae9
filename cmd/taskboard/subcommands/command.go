// Package subcommands assembles the "taskboard" command.
package subcommands

import (
	"github.com/spf13/cobra"
	"github.com/taskboard/taskboard/cmd/taskboard/subcommands/board"
	"github.com/taskboard/taskboard/cmd/taskboard/subcommands/common"
	"github.com/taskboard/taskboard/cmd/taskboard/subcommands/stats"
	"github.com/taskboard/taskboard/cmd/taskboard/subcommands/task"
	"github.com/taskboard/taskboard/cmd/taskboard/subcommands/user"
)

func New(env *common.Env) *cobra.Command {
	root := common.NewRoot(env, "taskboard", "Kanban board of tasks and users")
	root.AddCommand(
		user.New(env),
		task.New(env),
		board.New(env),
		stats.New(env),
	)
	return root
}
