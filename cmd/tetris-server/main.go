package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/qnkhuat/tetristerm/pkg/config"
	tetrisssh "github.com/qnkhuat/tetristerm/pkg/ssh"
)

var (
	dbPath   string
	logDebug bool
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("failed to load config: %s", err)
	}

	flag.StringVar(&cfg.SSHAddr, "listen-ssh", cfg.SSHAddr, "host SSH server on specified address")
	flag.StringVar(&cfg.Binary, "tetris", cfg.Binary, "path to tetris client binary")
	flag.StringVar(&cfg.HostKey, "host-key", cfg.HostKey, "path to SSH host key, defaults to ~/.ssh/id_rsa")
	flag.DurationVar(&cfg.IdleTimeout, "idle-timeout", cfg.IdleTimeout, "disconnect idle sessions after this long")
	flag.StringVar(&dbPath, "db", "", "high score database passed to every client")
	flag.BoolVar(&logDebug, "debug", false, "pass --debug to every client")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %s", err)
	}
	if cfg.Binary == "" {
		log.Fatal("failed to start server: -tetris is required")
	}

	var clientArgs []string
	if dbPath != "" {
		clientArgs = append(clientArgs, "--db", dbPath)
	}
	if logDebug {
		clientArgs = append(clientArgs, "--debug")
	}

	server := &tetrisssh.Server{
		ListenAddress: cfg.SSHAddr,
		TetrisBinary:  cfg.Binary,
		HostKeyFile:   cfg.HostKey,
		ClientArgs:    clientArgs,
		IdleTimeout:   cfg.IdleTimeout,
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Printf("failed to shut down: %s", err)
		}
	}()

	color.Green("Listening for SSH connections on %s", cfg.SSHAddr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("failed to serve: %s", err)
	}
}
