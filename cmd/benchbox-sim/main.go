package main

import (
	"context"
	"flag"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"

	"benchbox/sim"
)

var (
	configPath = flag.String("config", "", "JSON configuration file")
	listen     = flag.String("listen", "", "TCP address to serve sessions on (default stdio)")
	debug      = flag.Bool("debug", false, "enable debug lines on the wire")
)

// stdio bundles the stdio-mode read and write sides into one session
// stream.
type stdio struct {
	io.Reader
	io.Writer
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		glog.Exitf("config: %v", err)
	}

	inst := sim.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Listen == "" {
		if err := serveStdio(ctx, inst, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
			glog.Exitf("session: %v", err)
		}
		return
	}

	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		glog.Exitf("listen: %v", err)
	}
	glog.Infof("serving on %s", ln.Addr())

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	// One session at a time; instrument state survives between sessions
	// the way hardware does between serial connections.
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			glog.Errorf("accept: %v", err)
			continue
		}
		glog.Infof("session from %s", conn.RemoteAddr())
		serveConn(ctx, inst, conn)
		glog.Infof("session from %s closed", conn.RemoteAddr())
	}
}

// serveStdio runs one session over the process streams. A read on stdin
// has no cancel path of its own, so a pump goroutine relays it through a
// pipe whose read side the shutdown watcher closes; the pump stays
// blocked on stdin until the process exits.
func serveStdio(ctx context.Context, inst *sim.Instrument, in io.Reader, out io.Writer) error {
	pr, pw := io.Pipe()
	go func() {
		_, err := io.Copy(pw, in)
		pw.CloseWithError(err)
	}()
	go func() {
		<-ctx.Done()
		pr.Close()
	}()
	return inst.Serve(ctx, stdio{pr, out})
}

func serveConn(ctx context.Context, inst *sim.Instrument, conn net.Conn) {
	defer conn.Close()

	sctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		// Unblocks the session read on shutdown.
		<-sctx.Done()
		conn.Close()
	}()

	if err := inst.Serve(sctx, conn); err != nil && sctx.Err() == nil {
		glog.Warningf("session: %v", err)
	}
}

func loadConfig() (*sim.Config, error) {
	cfg := sim.DefaultConfig()
	if *configPath != "" {
		c, err := sim.LoadConfigFile(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *debug {
		cfg.Debug = true
	}
	return cfg, nil
}
