package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/autoqa/autoqa/config"
	"github.com/autoqa/autoqa/pkg/api"
	"github.com/autoqa/autoqa/pkg/constants"
	"github.com/autoqa/autoqa/pkg/core"
	"github.com/autoqa/autoqa/pkg/db"
	errs "github.com/autoqa/autoqa/pkg/errors"
	"github.com/autoqa/autoqa/pkg/gemini"
	"github.com/autoqa/autoqa/pkg/generation"
	"github.com/autoqa/autoqa/pkg/lumber"
	"github.com/autoqa/autoqa/pkg/opentelemetry"
	"github.com/autoqa/autoqa/pkg/server"
	"github.com/autoqa/autoqa/pkg/session"
	"github.com/autoqa/autoqa/pkg/store/authoring"
	"github.com/autoqa/autoqa/pkg/store/notifications"
	"github.com/autoqa/autoqa/pkg/store/projects"
	"github.com/autoqa/autoqa/pkg/store/testcases"
	"github.com/autoqa/autoqa/pkg/store/teststeps"
	"github.com/spf13/cobra"
)

// RootCommand will setup and return the root command
func RootCommand() *cobra.Command {
	rootCmd := cobra.Command{
		Use:     "autoqa",
		Long:    `autoqa generates test cases from user stories and manages them across projects.`,
		Version: constants.BinaryVersion,
		RunE:    run,
	}

	// define flags used for this command
	AttachCLIFlags(&rootCmd)

	return &rootCmd
}

// AttachCLIFlags attaches the command line flags to the command
func AttachCLIFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "the config file to use")
	cmd.Flags().StringP("port", "p", "", "the port to run the http server on")
	cmd.Flags().Bool("verbose", true, "enable verbose logging")
}

func run(cmd *cobra.Command, args []string) error {
	// a WaitGroup for the goroutines to tell us they've stopped
	wg := sync.WaitGroup{}

	cfg, err := config.Load(cmd)
	if err != nil {
		fmt.Printf("Failed to load config: %v", err)
		return err
	}

	// patch logconfig file location with root level log file location
	if cfg.LogFile != "" {
		cfg.LogConfig.FileLocation = filepath.Join(cfg.LogFile, "aq.log")
	}

	logger, err := lumber.NewLogger(&cfg.LogConfig, cfg.Verbose, lumber.InstanceZapLogger)
	if err != nil {
		log.Printf("could not instantiate logger %s", err.Error())
		return err
	}
	database, err := db.Connect(cfg, logger)
	if err != nil {
		logger.Errorf("failed to create database connection %v", err)
		return err
	}
	// create a context that we can cancel
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize tracer
	if cfg.Tracing.OtelEndpoint != "" {
		tracerCleanup := opentelemetry.InitTracer(ctx, cfg, logger)
		defer func() {
			if tracerErr := tracerCleanup(context.Background()); tracerErr != nil {
				logger.Errorf("Failed to cleanup the tracer %v", tracerErr)
			}
		}()
	}

	completionService, err := gemini.New(ctx, cfg, logger)
	if err != nil {
		logger.Errorf("could not instantiate completion service %v", err)
		return err
	}
	generationService := generation.New(completionService, logger)
	userSession := session.New(logger)

	dbStores := &core.DBStores{
		TestCaseStore:     testcases.New(database, logger),
		TestStepStore:     teststeps.New(database, logger),
		NotificationStore: notifications.New(database, logger),
	}
	dbStores.ProjectStore = projects.New(database, dbStores.TestCaseStore, logger)
	dbStores.AuthoringStore = authoring.New(database,
		dbStores.TestCaseStore,
		dbStores.TestStepStore,
		logger)

	// create child context so as to fail health API on SIGTERM/SIGINT
	// before the server stops accepting connections.
	childCtx, childCancel := context.WithCancel(ctx)
	defer childCancel()
	routers := api.New(
		childCtx,
		cfg,
		userSession,
		generationService,
		dbStores,
		logger)
	wg.Add(1)
	// setup http server
	go func() {
		defer wg.Done()
		if err := server.ListenAndServe(ctx, &routers, cfg, logger); err != nil {
			logger.Errorf("error while running http server %v", err)
		}
	}()

	// listen for C-c
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	// create channel to mark status of waitgroup
	// this is required to brutally kill application in case of
	// timeout
	done := make(chan struct{})

	// asynchronously wait for all the go routines
	go func() {
		// and wait for all go routines
		wg.Wait()
		logger.Debugf("main: all goroutines have finished.")
		close(done)
	}()
	// wait for signal channel
	<-c
	logger.Debugf("main: received close signal - attempting graceful shutdown ....")
	childCancel()
	// add some delay so as to allow in-flight requests to drain
	time.Sleep(cfg.ShutDownDelay)
	// tell the goroutines to stop
	logger.Debugf("main: telling all goroutines to stop")
	cancel()
	select {
	case <-done:
		logger.Debugf("Go routines exited within timeout")
	case <-time.After(cfg.GracefulTimeout):
		logger.Errorf("Graceful timeout exceeded. Brutally killing the application")
		return errs.ErrTimeoutExceeded
	}

	if err := database.Close(); err != nil {
		logger.Errorf("error while closing database connection %v", err)
	}
	return nil
}
