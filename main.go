package main

import (
	"context"
	"fmt"
	"os"

	"github.com/example/todo-list/config"
	"github.com/example/todo-list/logging"
	"github.com/example/todo-list/modules/activity"
	"github.com/example/todo-list/modules/api"
	"github.com/example/todo-list/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	// Framework logs stay quiet unless the service itself logs at info or below.
	monoLogLevel := mono.LogLevelInfo
	if !logger.IsLevelEnabled(logrus.InfoLevel) {
		monoLogLevel = mono.LogLevelError
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(monoLogLevel),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create application")
	}

	// Independent modules first, then modules with dependencies.
	modules := []mono.Module{
		activity.NewModule(cfg.ActivityLogSize, logger), // consumes task events
		task.NewModule(logger),                          // core domain, emits events
		api.NewModule(cfg, logger),                      // driving adapter, depends on task and activity
	}
	for _, m := range modules {
		if err := app.Register(m); err != nil {
			logger.WithError(err).WithField("module", m.Name()).Fatal("Failed to register module")
		}
	}

	if err := app.Start(context.Background()); err != nil {
		logger.WithError(err).Fatal("Failed to start application")
	}

	logger.WithFields(logrus.Fields{
		"addr":      cfg.Address(),
		"endpoints": "GET /, GET /health, GET|POST /tasks, GET|PUT|DELETE /tasks/:id, GET /activity",
	}).Info("To-Do List started, press Ctrl+C to shut down")

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				logger.Info("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	logger.WithField("exit_code", exitCode).Info("Application exited")
	os.Exit(exitCode)
}
