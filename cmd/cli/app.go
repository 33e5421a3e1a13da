package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/limaJavier/schedulease/pkg/config"
	"github.com/limaJavier/schedulease/pkg/model"
	"github.com/limaJavier/schedulease/pkg/registration"
)

// app bundles what every command needs once flags are parsed.
type app struct {
	config  config.Config
	term    string
	fetcher registration.Fetcher
	client  *registration.Client // nil when reading fixtures
}

func newApp() (*app, error) {
	cfg, err := config.Resolve(flagConfig)
	if err != nil {
		return nil, err
	}

	application := &app{config: cfg, term: cfg.Term}
	if flagTerm != "" {
		application.term = flagTerm
	}

	if flagFixtures != "" {
		if _, err := os.Stat(flagFixtures); err != nil {
			return nil, fmt.Errorf("fixtures directory: %w", err)
		}
		application.fetcher = registration.NewFileFetcher(flagFixtures)
	} else {
		application.client = registration.NewClient(cfg.ClientConfig())
		application.fetcher = application.client
	}
	return application, nil
}

func (application *app) enumerator() model.Enumerator {
	return model.NewEnumerator(application.fetcher, application.config.EnumeratorConfig())
}

func (application *app) requireClient(command string) (*registration.Client, error) {
	if application.client == nil {
		return nil, fmt.Errorf("%v needs the registration server and cannot run with --fixtures", command)
	}
	return application.client, nil
}

// interruptible returns a context cancelled on SIGINT or SIGTERM.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
