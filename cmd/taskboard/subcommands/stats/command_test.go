package stats_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard/cmd/taskboard/rest/mock"
	"github.com/taskboard/taskboard/cmd/taskboard/rest/mockapi"
	"github.com/taskboard/taskboard/cmd/taskboard/subcommands/internal/testenv"
	"github.com/taskboard/taskboard/cmd/taskboard/subcommands/stats"
	apitasks "github.com/taskboard/taskboard/pkg/api/types/tasks"
)

func TestStats(t *testing.T) {
	t.Run("it shows statistics of the server", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.Stats = func(context.Context) (apitasks.Stats, error) {
			return apitasks.Stats{Total: 10, Completed: 4, InProgress: 3, Overdue: 2}, nil
		}
		env := testenv.New(t, client)
		out, err := testenv.Run(env, stats.New(env), "stats")
		require.NoError(t, err)

		assert.Equal(t, 1, client.Calls.Stats)
		for _, s := range []string{"Total: 10", "Concluídas: 4", "Em Progresso: 3", "Atrasadas: 2"} {
			assert.Contains(t, out, s)
		}
	})

	t.Run("it counts tasks on the board with --local", func(t *testing.T) {
		client, err := mockapi.NewClient(0, mockapi.WithClock(testenv.Today))
		require.NoError(t, err)
		env := testenv.New(t, client)
		out, err := testenv.Run(env, stats.New(env), "stats", "--local")
		require.NoError(t, err)

		for _, s := range []string{"Total: 6", "Concluídas: 1", "Em Progresso: 1", "Atrasadas: 0"} {
			assert.Contains(t, out, s)
		}
	})
}
