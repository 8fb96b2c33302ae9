package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"

	kconf "github.com/taskboard/taskboard/pkg/configs/server"
	"github.com/taskboard/taskboard/pkg/utils/echoutil"
	"github.com/taskboard/taskboard/pkg/utils/filewatch"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config-path", os.Getenv("TASKBOARD_CONFIG"), "server config path")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	flag.Parse()

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(echoutil.ZapLevel(*loglevel))
	logger, err := zc.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	os.Exit(run(logger, *configPath, *loglevel, *pcert, *pkey))
}

func run(logger *zap.Logger, configPath, loglevel, cert, key string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancel()

	var conf *kconf.Config
	if configPath == "" {
		c, err := kconf.Unmarshal(nil)
		if err != nil {
			logger.Error("can not read configuration", zap.Error(err))
			return 1
		}
		conf = c
	} else {
		c, err := kconf.Load(configPath)
		if err != nil {
			logger.Error("can not read configuration", zap.Error(err))
			return 1
		}
		conf = c

		wctx, wcancel, err := filewatch.UntilModifyContext(ctx, configPath)
		if err != nil {
			logger.Error("can not watch configuration", zap.Error(err))
			return 1
		}
		defer wcancel()
		ctx = wctx
	}

	db, err := OpenDatabase(ctx, conf, logger)
	if err != nil {
		logger.Error("can not open database", zap.String("driver", string(conf.DB.Driver)), zap.Error(err))
		return 1
	}
	defer db.Close()

	if conf.DB.SchemaRepository != "" {
		sctx, scancel := db.Schema().Context(ctx)
		defer scancel()
		ctx = sctx
	}

	e, err := BuildServer(db, logger, loglevel)
	if err != nil {
		logger.Error("can not build server", zap.Error(err))
		return 1
	}

	addr := net.JoinHostPort("", conf.Server.Port)
	logger.Info(
		"taskboard api is starting",
		zap.String("addr", addr), zap.String("driver", string(conf.DB.Driver)),
	)
	if err := Serve(ctx, e, addr, cert, key); err != nil {
		logger.Error("server stops with error", zap.Error(err))
		return 1
	}

	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
		// config change or outdated schema. exit to be restarted.
		logger.Warn("server is stopped", zap.NamedError("cause", cause))
		return 1
	}
	logger.Info("server is stopped")
	return 0
}
