// Package common is the environment shared by subcommands.
package common

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	kprof "github.com/taskboard/taskboard/cmd/taskboard/config/profiles"
	"github.com/taskboard/taskboard/cmd/taskboard/rest"
	"github.com/taskboard/taskboard/cmd/taskboard/rest/mockapi"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvProfile is the default of --profile.
const EnvProfile = "TASKBOARD_PROFILE"

// ErrUsage is for commands invoked with bad flags or arguments.
var ErrUsage = errors.New("usage error")

type Flags struct {
	Profile string
	Mock    bool
	Verbose bool
}

// Env is what subcommands run with. It is ready after Setup.
type Env struct {
	Flags Flags

	// NewClient creates a client for the profile.
	NewClient func(*kprof.Profile) (rest.Client, error)

	// NewLogger creates a logger, at debug level when verbose.
	NewLogger func(verbose bool) (*zap.Logger, error)

	Clock func() time.Time

	logger *zap.Logger
	client rest.Client
}

func NewEnv() *Env {
	return &Env{
		Flags:     Flags{Profile: os.Getenv(EnvProfile)},
		NewClient: DefaultClient,
		NewLogger: ProductionLogger,
		Clock:     time.Now,
	}
}

// DefaultClient creates the mock API for profiles using mock data.
// Otherwise, it creates a client of the server.
func DefaultClient(prof *kprof.Profile) (rest.Client, error) {
	if prof.UseMockData {
		return mockapi.NewClient(prof.ApiDelay)
	}
	return rest.NewClient(prof)
}

// ProductionLogger is zap's production logger, on stderr.
func ProductionLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// Bind adds flags of env to cmd, for cmd and its subcommands.
func (e *Env) Bind(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.StringVar(&e.Flags.Profile, "profile", e.Flags.Profile, "path to a profile (yaml). $"+EnvProfile+" is the default")
	fs.BoolVar(&e.Flags.Mock, "mock", e.Flags.Mock, "use the in-process mock API, with demo data")
	fs.BoolVarP(&e.Flags.Verbose, "verbose", "v", e.Flags.Verbose, "log in detail")
}

// Setup builds the logger and the client from flags.
func (e *Env) Setup() error {
	logger, err := e.NewLogger(e.Flags.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	e.logger = logger

	prof, err := kprof.Load(e.Flags.Profile)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if e.Flags.Mock {
		prof.UseMockData = true
	}
	logger.Debug(
		"profile loaded",
		zap.String("path", e.Flags.Profile),
		zap.String("apiRoot", prof.ApiRoot),
		zap.Bool("useMockData", prof.UseMockData),
	)

	client, err := e.NewClient(prof)
	if err != nil {
		return fmt.Errorf("failed to create a client. Your profile (%s) can be broken: %w", e.Flags.Profile, err)
	}
	e.client = client
	return nil
}

// Close flushes logs.
func (e *Env) Close() {
	if e.logger != nil {
		_ = e.logger.Sync()
	}
}

// Task is a body of subcommands.
type Task func(ctx context.Context, logger *zap.Logger, client rest.Client, cmd *cobra.Command, args []string) error

// RunE adapts task into a cobra command body, with the env set up.
func (e *Env) RunE(task Task) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if e.client == nil {
			return errors.New("programming error: environment is not set up")
		}
		logger := e.logger.With(zap.String("command", cmd.CommandPath()))
		return task(cmd.Context(), logger, e.client, cmd, args)
	}
}

// ParseId reads an id in arguments.
func ParseId(what string, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s id should be a positive integer: %q", ErrUsage, what, s)
	}
	return id, nil
}

// NewRoot creates a command setting env up before running its subcommands.
func NewRoot(env *Env, use string, short string) *cobra.Command {
	root := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.Setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			env.Close()
		},
	}
	env.Bind(root)
	return root
}
