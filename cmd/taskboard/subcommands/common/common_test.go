package common_test

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	kprof "github.com/taskboard/taskboard/cmd/taskboard/config/profiles"
	"github.com/taskboard/taskboard/cmd/taskboard/rest"
	"github.com/taskboard/taskboard/cmd/taskboard/rest/mock"
	"github.com/taskboard/taskboard/cmd/taskboard/subcommands/common"
	"go.uber.org/zap"
)

func TestParseBirthDate(t *testing.T) {
	today := time.Date(2025, time.June, 25, 0, 0, 0, 0, time.UTC)

	for input, want := range map[string]string{
		"1985-05-15": "1985-05-15",
		"05/15/1985": "1985-05-15",
		"05151985":   "1985-05-15",
	} {
		got, err := common.ParseBirthDate(input, today)
		require.NoError(t, err, input)
		assert.Equal(t, want, got.String(), input)
	}

	for _, input := range []string{"02/30/1990", "01/01/2020", "1985-13-01", "tomorrow"} {
		_, err := common.ParseBirthDate(input, today)
		assert.ErrorIs(t, err, common.ErrUsage, input)
	}
}

func TestParseId(t *testing.T) {
	id, err := common.ParseId("task", " 12 ")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, bad := range []string{"", "0", "-3", "abc"} {
		_, err := common.ParseId("task", bad)
		assert.ErrorIs(t, err, common.ErrUsage, bad)
	}
}

func TestNewRoot(t *testing.T) {
	t.Run("it sets the env up with flags", func(t *testing.T) {
		env := common.NewEnv()
		env.Flags.Profile = ""
		env.NewLogger = func(bool) (*zap.Logger, error) { return zap.NewNop(), nil }
		var given *kprof.Profile
		client := mock.New(t)
		env.NewClient = func(p *kprof.Profile) (rest.Client, error) {
			given = p
			return client, nil
		}

		var got rest.Client
		root := common.NewRoot(env, "taskboard", "test")
		root.AddCommand(&cobra.Command{
			Use: "probe",
			RunE: env.RunE(func(_ context.Context, _ *zap.Logger, c rest.Client, _ *cobra.Command, _ []string) error {
				got = c
				return nil
			}),
		})
		root.SetArgs([]string{"probe", "--mock"})
		require.NoError(t, root.Execute())

		assert.Same(t, client, got)
		assert.True(t, given.UseMockData)
		assert.Equal(t, kprof.DefaultApiRoot, given.ApiRoot)
	})

	t.Run("broken profile fails", func(t *testing.T) {
		env := common.NewEnv()
		env.NewLogger = func(bool) (*zap.Logger, error) { return zap.NewNop(), nil }

		root := common.NewRoot(env, "taskboard", "test")
		root.AddCommand(&cobra.Command{Use: "probe", RunE: func(*cobra.Command, []string) error { return nil }})
		root.SetArgs([]string{"probe", "--profile", t.TempDir() + "/missing.yaml"})
		assert.ErrorIs(t, root.Execute(), kprof.ErrProfileNotFound)
	})
}
