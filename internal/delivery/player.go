package delivery

import (
	"context"
	"os/exec"
	"strings"
	"sync"
)

// PlaybackHandle is one in-flight playback. Done is closed when playback
// finishes for any reason.
type PlaybackHandle interface {
	Stop()
	Done() <-chan struct{}
}

// Player starts audio playback of a file.
type Player interface {
	Play(ctx context.Context, path string) (PlaybackHandle, error)
}

// ExecPlayer plays files through an external player process, e.g.
// "ffplay -nodisp -autoexit". The file path is appended to Args.
type ExecPlayer struct {
	Command string
	Args    []string
}

var _ Player = (*ExecPlayer)(nil)

// NewExecPlayer parses a command line like "ffplay -nodisp -autoexit".
func NewExecPlayer(commandLine string) *ExecPlayer {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		fields = []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"}
	}
	return &ExecPlayer{Command: fields[0], Args: fields[1:]}
}

type execHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func (h *execHandle) Stop() {
	h.once.Do(h.cancel)
}

func (h *execHandle) Done() <-chan struct{} { return h.done }

func (p *ExecPlayer) Play(ctx context.Context, path string) (PlaybackHandle, error) {
	ctx, cancel := context.WithCancel(ctx)
	args := append(append([]string{}, p.Args...), path)
	cmd := exec.CommandContext(ctx, p.Command, args...)
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, err
	}

	h := &execHandle{cancel: cancel, done: make(chan struct{})}
	go func() {
		_ = cmd.Wait()
		close(h.done)
	}()
	return h, nil
}
