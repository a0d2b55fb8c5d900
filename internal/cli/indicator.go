package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

var indicatorFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const indicatorInterval = 80 * time.Millisecond

// indicator animates a status line while a slow step runs, such as a
// Graphviz layout or opening a remote diagram store.
type indicator struct {
	out    io.Writer
	ctx    context.Context
	cancel context.CancelFunc

	stopped  chan struct{}
	stopOnce sync.Once

	message string

	mu     sync.Mutex
	drawn  int // widest frame written
	frames int
}

// newIndicator creates an indicator writing to out. It stops by itself
// when ctx is canceled.
func newIndicator(ctx context.Context, out io.Writer, message string) *indicator {
	pctx, cancel := context.WithCancel(ctx)
	return &indicator{
		out:     out,
		ctx:     pctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
		message: message,
	}
}

func (ind *indicator) start() {
	go func() {
		defer close(ind.stopped)
		ticker := time.NewTicker(indicatorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ind.ctx.Done():
				ind.clear()
				return
			case <-ticker.C:
				ind.draw()
			}
		}
	}()
}

func (ind *indicator) draw() {
	ind.mu.Lock()
	defer ind.mu.Unlock()
	frame := indicatorFrames[ind.frames%len(indicatorFrames)]
	line := styleIconIndicator.Render(frame) + " " + StyleDim.Render(ind.message)
	fmt.Fprintf(ind.out, "\r%s", line)
	ind.drawn = max(ind.drawn, lipgloss.Width(line))
	ind.frames++
}

func (ind *indicator) clear() {
	ind.mu.Lock()
	defer ind.mu.Unlock()
	if ind.drawn == 0 {
		return
	}
	fmt.Fprintf(ind.out, "\r%s\r", strings.Repeat(" ", ind.drawn))
	ind.drawn = 0
}

// stop ends the animation and erases the line. Safe to call repeatedly.
func (ind *indicator) stop() {
	ind.stopOnce.Do(func() {
		ind.cancel()
		<-ind.stopped
	})
}

// withIndicator runs fn with an indicator showing message on stderr. When
// stderr is not a terminal fn runs without one.
func withIndicator(ctx context.Context, message string, fn func() error) error {
	if !term.IsTerminal(os.Stderr.Fd()) {
		return fn()
	}
	return runWithIndicator(ctx, os.Stderr, message, fn)
}

func runWithIndicator(ctx context.Context, out io.Writer, message string, fn func() error) error {
	ind := newIndicator(ctx, out, message)
	ind.start()
	defer ind.stop()
	return fn()
}
