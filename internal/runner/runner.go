package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/codewatch/exam-service/internal/config"
)

// TimeoutMessage is returned in place of output when the child overruns the
// wall-clock bound. Timeouts are a reported outcome, not an error.
const TimeoutMessage = "Error: code execution timed out"

// Runner executes untrusted code in a child process. Isolation is a unique
// temp artifact plus a wall-clock timeout; anything stronger (cgroups,
// namespaces) has to come from the configured interpreter wrapper.
type Runner struct {
	interpreter string
	fileExt     string
	workDir     string
	timeout     time.Duration
	logger      zerolog.Logger
}

func New(cfg config.RunnerConfig, logger zerolog.Logger) *Runner {
	workDir := cfg.WorkDir
	if workDir == "" {
		workDir = os.TempDir()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Runner{
		interpreter: cfg.Interpreter,
		fileExt:     cfg.FileExt,
		workDir:     workDir,
		timeout:     timeout,
		logger:      logger,
	}
}

// Run writes code to a uniquely named artifact, executes it under the
// timeout and returns captured output: stdout if non-empty, else stderr.
// The artifact is removed on every exit path.
func (r *Runner) Run(ctx context.Context, code string) string {
	path := filepath.Join(r.workDir, "codewatch-"+uuid.NewString()+r.fileExt)

	if err := os.WriteFile(path, []byte(code), 0o600); err != nil {
		r.logger.Error().Err(err).Msg("Failed to write code artifact")
		return fmt.Sprintf("Error: %v", err)
	}
	defer os.Remove(path)

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, r.interpreter, path)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Stop waiting for stdout/stderr pipes once the process is killed.
	cmd.WaitDelay = time.Second

	err := cmd.Run()

	if runCtx.Err() == context.DeadlineExceeded {
		r.logger.Warn().Dur("timeout", r.timeout).Msg("Code execution timed out")
		return TimeoutMessage
	}

	if err != nil && stdout.Len() == 0 && stderr.Len() == 0 {
		// Spawn faults (interpreter missing etc.) come back as text too.
		r.logger.Error().Err(err).Msg("Code execution failed")
		return fmt.Sprintf("Error: %v", err)
	}

	if stdout.Len() > 0 {
		return stdout.String()
	}
	return stderr.String()
}
