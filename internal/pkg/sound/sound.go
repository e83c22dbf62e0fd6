package sound

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"
)

const defaultTimeout = 2 * time.Second

var ErrEmptyCommand = errors.New("sound command is empty")

type Player interface {
	Play(ctx context.Context) error
}

// BellPlayer пишет символ BEL в терминал.
type BellPlayer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewBell(w io.Writer) *BellPlayer {
	return &BellPlayer{w: w}
}

func (p *BellPlayer) Play(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := io.WriteString(p.w, "\a"); err != nil {
		return fmt.Errorf("ring terminal bell: %w", err)
	}
	return nil
}

// CommandPlayer запускает внешнюю команду, например "paplay ding.wav".
type CommandPlayer struct {
	name    string
	args    []string
	timeout time.Duration
}

func NewCommand(command string, timeout time.Duration) (*CommandPlayer, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, ErrEmptyCommand
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &CommandPlayer{
		name:    fields[0],
		args:    fields[1:],
		timeout: timeout,
	}, nil
}

func (p *CommandPlayer) Play(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := exec.CommandContext(ctx, p.name, p.args...).Run(); err != nil {
		return fmt.Errorf("play sound with %s: %w", p.name, err)
	}
	return nil
}

// New выбирает проигрыватель: внешняя команда, если задана, иначе звонок терминала.
func New(command string, bell io.Writer) (Player, error) {
	if strings.TrimSpace(command) == "" {
		return NewBell(bell), nil
	}
	return NewCommand(command, defaultTimeout)
}
