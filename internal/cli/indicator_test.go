package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"
)

func TestIndicator_DrawsAndClears(t *testing.T) {
	var buf bytes.Buffer
	p := newIndicator(context.Background(), &buf, "Laying out School with Graphviz...")
	p.start()
	time.Sleep(3 * indicatorInterval)
	p.stop()

	out := buf.String()
	if !strings.Contains(out, "Laying out School with Graphviz...") {
		t.Errorf("output %q is missing the message", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("output %q should end by erasing the line", out)
	}
}

func TestIndicator_StopIsIdempotent(t *testing.T) {
	p := newIndicator(context.Background(), &bytes.Buffer{}, "Opening diagram store...")
	p.start()
	p.stop()
	p.stop()
	p.stop()
}

func TestIndicator_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	p := newIndicator(ctx, &buf, "Testing...")
	p.start()
	cancel()

	select {
	case <-p.stopped:
	case <-time.After(time.Second):
		t.Fatal("indicator kept running after its context was canceled")
	}
	p.stop()
}

func TestIndicator_StoppedBeforeFirstFrame(t *testing.T) {
	var buf bytes.Buffer
	p := newIndicator(context.Background(), &buf, "quick")
	p.start()
	p.stop()
	if buf.Len() != 0 && !strings.HasSuffix(buf.String(), "\r") {
		t.Errorf("output %q left a partial line", buf.String())
	}
}

func TestRunWithIndicator(t *testing.T) {
	var buf bytes.Buffer
	want := stderrors.New("layout failed")
	err := runWithIndicator(context.Background(), &buf, "Rendering...", func() error {
		time.Sleep(2 * indicatorInterval)
		return want
	})
	if err != want {
		t.Errorf("runWithIndicator() error = %v, want %v", err, want)
	}
	if !strings.HasSuffix(buf.String(), "\r") {
		t.Errorf("output %q should be erased once fn returns", buf.String())
	}
}

func TestWithIndicator(t *testing.T) {
	called := false
	if err := withIndicator(context.Background(), "Rendering...", func() error {
		called = true
		return nil
	}); err != nil {
		t.Fatalf("withIndicator() error = %v", err)
	}
	if !called {
		t.Error("withIndicator() did not run fn")
	}
}
