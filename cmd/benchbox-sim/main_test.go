package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"benchbox/core"
	"benchbox/sim"
)

// scripted returns an instrument that answers without prompt or echo.
func scripted() *sim.Instrument {
	return sim.New(&sim.Config{NoPrompt: true, NoEcho: true, Machine: "simbench"})
}

func TestServeStdioSession(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("version\n")

	if err := serveStdio(context.Background(), scripted(), in, &out); err != nil {
		t.Fatalf("serveStdio: %v", err)
	}
	want := "BEGIN:\r\nS:version:" + core.Version + "\r\nS:machine:simbench\r\nEND:OK\r\n"
	if out.String() != want {
		t.Errorf("session output %q, want %q", out.String(), want)
	}
}

func TestServeStdioUnblocksOnShutdown(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	var out bytes.Buffer

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serveStdio(ctx, scripted(), pr, &out)
	}()

	// Let the session park in its read, then pull the plug.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Error("expected a canceled session error, got nil")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("session still blocked after shutdown")
	}
}
