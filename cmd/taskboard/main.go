package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	cuierr "github.com/taskboard/taskboard/cmd/taskboard/errors"
	"github.com/taskboard/taskboard/cmd/taskboard/subcommands"
	"github.com/taskboard/taskboard/cmd/taskboard/subcommands/common"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	env := common.NewEnv()
	root := subcommands.New(env)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, message(err, env.Flags.Verbose))
		if errors.Is(err, common.ErrUsage) {
			fmt.Fprintln(os.Stderr, "See --help for usage.")
		}
		os.Exit(1)
	}
}

func message(err error, verbose bool) string {
	var cerr cuierr.CUIError
	if verbose && errors.As(err, &cerr) {
		return cerr.Verbose()
	}
	return err.Error()
}
