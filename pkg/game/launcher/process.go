package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-hclog"

	"limeal.fr/launchygo-resolver/pkg/logging"
)

var ErrGameExited = errors.New("game exited with an error")

// Run spawns the game in the run directory and blocks until it exits. The
// combined output is relayed to logger, one entry per line, by a single
// goroutine.
func (l *Launch) Run(ctx context.Context, logger hclog.Logger) error {
	logger = logging.OrNull(logger)
	command := l.Command()

	if l.RunDir != "" {
		if err := os.MkdirAll(l.RunDir, 0o755); err != nil {
			return fmt.Errorf("failed to create run directory: %w", err)
		}
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = l.RunDir
	setupProcessAttributes(cmd)

	r, w, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("failed to create output pipe: %w", err)
	}
	cmd.Stdout = w
	cmd.Stderr = w

	logger.Debug("starting game", "command", strings.Join(command, " "))
	if err := cmd.Start(); err != nil {
		r.Close()
		w.Close()
		return fmt.Errorf("failed to start game: %w", err)
	}
	// The child holds its own copy of the write end.
	w.Close()
	logger.Info("game started", "pid", cmd.Process.Pid)

	out := logging.NewLineWriter(logger.Named("game"), hclog.Info)
	relayed := make(chan struct{})
	go func() {
		defer close(relayed)
		defer r.Close()
		if _, err := io.Copy(out, r); err != nil {
			logger.Error("cannot relay game output", "error", err)
		}
		out.Flush()
	}()

	err = cmd.Wait()
	<-relayed

	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		logger.Error("game exited", "code", exitErr.ExitCode())
		return fmt.Errorf("%w: exit code %d", ErrGameExited, exitErr.ExitCode())
	case err != nil:
		return fmt.Errorf("failed to run game: %w", err)
	}
	logger.Info("game exited", "code", cmd.ProcessState.ExitCode())
	return nil
}
