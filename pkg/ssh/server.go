//go:build !windows
// +build !windows

package ssh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"
)

type Server struct {
	ListenAddress string
	TetrisBinary  string
	HostKeyFile   string

	// ClientArgs are passed to every client after the nickname
	ClientArgs []string

	IdleTimeout time.Duration

	server *ssh.Server
	sync.Mutex
}

func (s *Server) handle(sshSession ssh.Session) {
	ptyReq, winCh, isPty := sshSession.Pty()
	if !isPty {
		io.WriteString(sshSession, "failed to start tetris: non-interactive terminals are not supported\n")

		sshSession.Exit(1)
		return
	}

	cmdCtx, cancelCmd := context.WithCancel(sshSession.Context())
	defer cancelCmd()

	cmd := s.Command(cmdCtx, sshSession.User(), ptyReq.Term)

	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(ptyReq.Window.Height), Cols: uint16(ptyReq.Window.Width)})
	if err != nil {
		log.Printf("failed to start client for %s: %s", sshSession.User(), err)
		io.WriteString(sshSession, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))

		sshSession.Exit(1)
		return
	}
	defer f.Close()

	log.Printf("%s connected from %s", sshSession.User(), sshSession.RemoteAddr())

	go func() {
		for win := range winCh {
			pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)})
		}
	}()

	go func() {
		io.Copy(f, sshSession)
	}()
	io.Copy(sshSession, f)

	cancelCmd()
	cmd.Wait()

	log.Printf("%s disconnected", sshSession.User())
}

func (s *Server) hostKeyFile() (string, error) {
	if s.HostKeyFile != "" {
		return s.HostKeyFile, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate host key: %w", err)
	}

	return path.Join(homeDir, ".ssh", "id_rsa"), nil
}

func (s *Server) newServer() (*ssh.Server, error) {
	if s.ListenAddress == "" {
		s.ListenAddress = DefaultListenAddress
	}
	if s.TetrisBinary == "" {
		return nil, errors.New("tetris binary must be specified")
	}
	if s.IdleTimeout == 0 {
		s.IdleTimeout = ServerIdleTimeout
	}

	server := &ssh.Server{
		Addr:        s.ListenAddress,
		IdleTimeout: s.IdleTimeout,
		Handler:     s.handle,
		PtyCallback: func(ctx ssh.Context, pty ssh.Pty) bool {
			return true
		},
		// Anyone may play; the SSH user only names the player
		PublicKeyHandler: func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return true
		},
		KeyboardInteractiveHandler: func(ctx ssh.Context, challenger gossh.KeyboardInteractiveChallenge) bool {
			return true
		},
	}

	keyFile, err := s.hostKeyFile()
	if err != nil {
		return nil, err
	}

	err = server.SetOption(ssh.HostKeyFile(keyFile))
	if err != nil {
		return nil, fmt.Errorf("failed to load host key %s: %w", keyFile, err)
	}

	return server, nil
}

// ListenAndServe blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	server, err := s.newServer()
	if err != nil {
		return err
	}

	s.Lock()
	s.server = server
	s.Unlock()

	err = server.ListenAndServe()
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}

	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.Lock()
	server := s.server
	s.Unlock()

	if server == nil {
		return nil
	}

	return server.Shutdown(ctx)
}
