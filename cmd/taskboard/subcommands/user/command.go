// Package user is "taskboard user" and its subcommands.
package user

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/taskboard/taskboard/cmd/taskboard/render"
	"github.com/taskboard/taskboard/cmd/taskboard/rest"
	"github.com/taskboard/taskboard/cmd/taskboard/subcommands/common"
	apiusers "github.com/taskboard/taskboard/pkg/api/types/users"
	"go.uber.org/zap"
)

func New(env *common.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manipulate users",
	}
	cmd.AddCommand(
		newList(env),
		newCreate(env),
		newUpdate(env),
		newDelete(env),
	)
	return cmd
}

func newList(env *common.Env) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&name, "name", "", "only users whose first or last name contains this")
	cmd.RunE = env.RunE(func(ctx context.Context, _ *zap.Logger, client rest.Client, cmd *cobra.Command, _ []string) error {
		return RunList(ctx, client, cmd.OutOrStdout(), name)
	})
	return cmd
}

// RunList prints users in a table.
func RunList(ctx context.Context, client rest.Client, w io.Writer, name string) error {
	users, err := client.ListUsers(ctx, name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, render.UserTable(users))
	return err
}

type userFlags struct {
	firstName string
	lastName  string
	birthDate string
}

func (f *userFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.firstName, "first-name", "", "first name")
	fs.StringVar(&f.lastName, "last-name", "", "last name")
	fs.StringVar(&f.birthDate, "birth-date", "", "birth date, as YYYY-MM-DD or MM/DD/YYYY")
}

// spec builds a user spec from flags. Flags not changed are taken from base.
func (f *userFlags) spec(cmd *cobra.Command, base apiusers.Spec, today time.Time) (apiusers.Spec, error) {
	fs := cmd.Flags()
	spec := base
	if fs.Changed("first-name") {
		spec.FirstName = f.firstName
	}
	if fs.Changed("last-name") {
		spec.LastName = f.lastName
	}
	if fs.Changed("birth-date") {
		d, err := common.ParseBirthDate(f.birthDate, today)
		if err != nil {
			return apiusers.Spec{}, err
		}
		spec.BirthDate = &d
	}
	return spec, nil
}

func newCreate(env *common.Env) *cobra.Command {
	flags := &userFlags{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user. Users should be 18 years old or older",
		Args:  cobra.NoArgs,
	}
	flags.bind(cmd)
	cmd.RunE = env.RunE(func(ctx context.Context, logger *zap.Logger, client rest.Client, cmd *cobra.Command, _ []string) error {
		spec, err := flags.spec(cmd, apiusers.Spec{}, env.Clock())
		if err != nil {
			return err
		}
		created, err := client.CreateUser(ctx, spec)
		if err != nil {
			return err
		}
		logger.Debug("user created", zap.Int64("id", created.Id))
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "created user #%d %s\n", created.Id, created.FullName())
		return err
	})
	return cmd
}

func newUpdate(env *common.Env) *cobra.Command {
	flags := &userFlags{}
	cmd := &cobra.Command{
		Use:   "update USER_ID",
		Short: "Update a user. Fields not given are kept",
		Args:  cobra.ExactArgs(1),
	}
	flags.bind(cmd)
	cmd.RunE = env.RunE(func(ctx context.Context, _ *zap.Logger, client rest.Client, cmd *cobra.Command, args []string) error {
		id, err := common.ParseId("user", args[0])
		if err != nil {
			return err
		}
		current, err := client.GetUser(ctx, id)
		if err != nil {
			return err
		}
		birth := current.BirthDate
		base := apiusers.Spec{FirstName: current.FirstName, LastName: current.LastName, BirthDate: &birth}

		spec, err := flags.spec(cmd, base, env.Clock())
		if err != nil {
			return err
		}
		updated, err := client.UpdateUser(ctx, id, spec)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "updated user #%d %s\n", updated.Id, updated.FullName())
		return err
	})
	return cmd
}

func newDelete(env *common.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete USER_ID",
		Short: "Delete a user. Users with tasks cannot be deleted",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = env.RunE(func(ctx context.Context, logger *zap.Logger, client rest.Client, cmd *cobra.Command, args []string) error {
		id, err := common.ParseId("user", args[0])
		if err != nil {
			return err
		}
		if err := client.DeleteUser(ctx, id); err != nil {
			return err
		}
		logger.Debug("user deleted", zap.Int64("id", id))
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted user #%d\n", id)
		return err
	})
	return cmd
}
