//go:build windows
// +build windows

package ssh

import (
	"context"
	"errors"
	"time"
)

// SSH server is unsupported on Windows

type Server struct {
	ListenAddress string
	TetrisBinary  string
	HostKeyFile   string
	ClientArgs    []string
	IdleTimeout   time.Duration
}

func (s *Server) ListenAndServe() error {
	return errors.New("ssh server is not supported on windows")
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}
