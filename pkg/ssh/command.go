// Package ssh hosts games over SSH. Each session runs its own copy of the
// tetris client under a pseudo-terminal.
package ssh

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/qnkhuat/tetristerm/pkg/game"
)

const (
	DefaultListenAddress = ":2222"
	ServerIdleTimeout    = 5 * time.Minute
)

// Command builds the client process for an SSH user. The process is killed
// when ctx is done.
func (s *Server) Command(ctx context.Context, user string, term string) *exec.Cmd {
	args := append([]string{"--nick", game.Nickname(user)}, s.ClientArgs...)

	cmd := exec.CommandContext(ctx, s.TetrisBinary, args...)
	cmd.Env = append(cmd.Env, fmt.Sprintf("TERM=%s", term))

	return cmd
}
