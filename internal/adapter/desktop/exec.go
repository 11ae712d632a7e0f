package desktop

import (
	"bytes"
	"context"
	"os/exec"
	"runtime"
	"time"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/logging"
)

// waitDelay bounds how long Wait blocks on inherited pipes after the shell
// exits or is killed.
const waitDelay = 2 * time.Second

func defaultShell() []string {
	if runtime.GOOS == "windows" {
		return []string{"cmd", "/C"}
	}
	return []string{"sh", "-c"}
}

// ExecuteCommand runs command through the system shell, capturing stdout and
// stderr. The environment overlay and opts.Env are applied on top of the
// process environment.
func (a *Adapter) ExecuteCommand(ctx context.Context, command string, opts *adapter.CommandOptions) adapter.CommandResult {
	timeout := opts.EffectiveTimeout(a.timeout)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(append([]string{}, a.shell[1:]...), command)
	cmd := exec.CommandContext(ctx, a.shell[0], args...)
	cmd.WaitDelay = waitDelay

	env := a.env.All()
	if opts != nil {
		cmd.Dir = opts.Dir
		for k, v := range opts.Env {
			env[k] = v
		}
	}
	cmd.Env = environ(env)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	a.logger.Debug("executing command", "command", command, "dir", cmd.Dir, "timeout", timeout)
	start := time.Now()

	if err := cmd.Start(); err != nil {
		a.logger.Debug("command spawn failed", "command", command, "error", err)
		return adapter.Failure(adapter.CodeSpawnFailed, "start %q: %v", command, err)
	}
	err := cmd.Wait()

	res := adapter.CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	a.logger.Debug("command finished", "command", command, "duration", time.Since(start), "error", err)
	a.logger.Log(ctx, logging.LevelTrace, "command output", "command", command, "stdout", res.Stdout, "stderr", res.Stderr)

	switch {
	case err == nil:
		res.Success = true
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.ExitCode = -1
		res.Error = &adapter.CommandError{
			Code:    adapter.CodeTimeout,
			Message: "command timed out after " + timeout.String(),
		}
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			res.Error = &adapter.CommandError{Code: adapter.CodeExitStatus, Message: exitErr.Error()}
		} else {
			res.ExitCode = -1
			res.Error = &adapter.CommandError{Code: adapter.CodeSpawnFailed, Message: err.Error()}
		}
	}
	return res
}
