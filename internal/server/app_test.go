package server

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/brainly/internal/logging"
)

func TestRunServer_FailureCancelsApp(t *testing.T) {
	app := &App{logger: logging.Nop()}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app.runServer(ctx, cancel, "http", func(context.Context) error { return errors.New("bind: address in use") })

	if ctx.Err() == nil {
		t.Fatal("a failing server must stop the whole app")
	}
}

func TestRunServer_CleanExitKeepsAppRunning(t *testing.T) {
	app := &App{logger: logging.Nop()}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app.runServer(ctx, cancel, "grpc", func(context.Context) error { return nil })

	if ctx.Err() != nil {
		t.Fatal("context cancelled after a clean server exit")
	}
}
