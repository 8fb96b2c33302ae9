// Package testenv runs subcommands in tests.
package testenv

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/cobra"
	kprof "github.com/taskboard/taskboard/cmd/taskboard/config/profiles"
	"github.com/taskboard/taskboard/cmd/taskboard/rest"
	"github.com/taskboard/taskboard/cmd/taskboard/subcommands/common"
	"go.uber.org/zap"
)

// Today of tests, 2025-06-25.
func Today() time.Time {
	return time.Date(2025, time.June, 25, 15, 30, 0, 0, time.UTC)
}

// New creates an env with client, a logger discarding logs and the clock at Today.
func New(t *testing.T, client rest.Client) *common.Env {
	t.Helper()
	env := common.NewEnv()
	env.Flags = common.Flags{}
	env.NewLogger = func(bool) (*zap.Logger, error) { return zap.NewNop(), nil }
	env.NewClient = func(*kprof.Profile) (rest.Client, error) { return client, nil }
	env.Clock = Today
	return env
}

// Run runs sub as a subcommand of the root with args, and returns what it prints.
func Run(env *common.Env, sub *cobra.Command, args ...string) (string, error) {
	root := common.NewRoot(env, "taskboard", "test")
	root.AddCommand(sub)

	stdout := new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}
