package llm

import (
	"context"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Spawner is a best-effort resilience.Recovery that launches the local
// model service when it appears to be down. Platform specifics live in
// the configured command line, keeping the retry core neutral.
type Spawner struct {
	command string
	logger  *zap.Logger
}

// NewSpawner builds a spawner from a command line such as
// "ollama serve". An empty command yields a spawner that does nothing.
func NewSpawner(command string, logger *zap.Logger) *Spawner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Spawner{command: command, logger: logger}
}

// Revive implements resilience.Recovery. It starts the configured
// command without waiting for it and swallows every failure: recovery
// must never make a retry loop worse.
func (s *Spawner) Revive(ctx context.Context) {
	if s.command == "" {
		return
	}

	parts := strings.Fields(s.command)
	cmd := exec.Command(parts[0], parts[1:]...)
	if err := cmd.Start(); err != nil {
		s.logger.Warn("failed to start model service",
			zap.String("command", s.command), zap.Error(err))
		return
	}
	s.logger.Info("attempted model service start",
		zap.String("command", s.command), zap.Int("pid", cmd.Process.Pid))

	// Reap the child when it exits.
	go func() { _ = cmd.Wait() }()
}
