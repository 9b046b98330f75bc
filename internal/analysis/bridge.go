// Package analysis bridges the board to an external UCI engine and
// turns its evaluation into a win probability for the display bar.
package analysis

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// DefaultBudget is the per-position analysis time limit.
const DefaultBudget = 50 * time.Millisecond

// Bridge owns a single long-lived UCI engine process. Requests are
// strictly sequential: a new one is never sent before the previous
// response is consumed or its budget expires. A single-slot cache keyed
// by the position identifier short-circuits repeated evaluations of an
// unchanged position, so at most one engine round-trip happens per
// distinct position.
//
// Every failure mode (missing executable, dead process, malformed
// output) degrades to the neutral probability 0.5; Evaluate never
// returns an error to the caller.
type Bridge struct {
	mu sync.Mutex

	cmd   *exec.Cmd
	stdin io.Writer
	lines chan string
	ready bool

	lastID  string
	lastVal float64
	hasLast bool
}

// New locates an engine executable in the given directories (plus the
// documented fallback names and PATH) and starts it. When no engine can
// be found or started, the returned bridge is disabled and every
// Evaluate call yields 0.5.
func New(searchDirs ...string) *Bridge {
	path, err := FindEngine(searchDirs...)
	if err != nil {
		log.Printf("[analysis] %v; win probability disabled", err)
		return &Bridge{}
	}
	return NewWithPath(path)
}

// NewWithPath starts the engine at the given path.
func NewWithPath(path string) *Bridge {
	cmd := exec.Command(path)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		log.Printf("[analysis] stdin pipe: %v", err)
		return &Bridge{}
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		log.Printf("[analysis] stdout pipe: %v", err)
		return &Bridge{}
	}
	if err := cmd.Start(); err != nil {
		log.Printf("[analysis] starting %s: %v", path, err)
		return &Bridge{}
	}

	b := newBridge(stdin, stdout)
	b.cmd = cmd
	if err := b.handshake(); err != nil {
		log.Printf("[analysis] handshake with %s: %v", path, err)
		b.ready = false
		_ = cmd.Process.Kill()
		return b
	}
	log.Printf("[analysis] engine ready: %s", path)
	return b
}

// newBridge wires the protocol onto raw reader/writer ends and starts
// the line pump. The caller decides whether a handshake is needed.
func newBridge(in io.Writer, out io.Reader) *Bridge {
	b := &Bridge{
		stdin: in,
		lines: make(chan string, 64),
		ready: true,
	}
	go b.pump(out)
	return b
}

// pump forwards engine output lines to the request loop until the pipe
// closes.
func (b *Bridge) pump(out io.Reader) {
	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		b.lines <- scanner.Text()
	}
	close(b.lines)
}

// handshake runs the uci/isready exchange.
func (b *Bridge) handshake() error {
	if err := b.send("uci"); err != nil {
		return err
	}
	if err := b.waitFor("uciok", 2*time.Second); err != nil {
		return err
	}
	if err := b.send("isready"); err != nil {
		return err
	}
	return b.waitFor("readyok", 2*time.Second)
}

func (b *Bridge) send(line string) error {
	_, err := io.WriteString(b.stdin, line+"\n")
	return err
}

// waitFor discards lines until the wanted token arrives.
func (b *Bridge) waitFor(token string, timeout time.Duration) error {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		select {
		case line, ok := <-b.lines:
			if !ok {
				return errors.New("engine closed the pipe")
			}
			if strings.TrimSpace(line) == token {
				return nil
			}
		case <-deadline.C:
			return fmt.Errorf("timed out waiting for %q", token)
		}
	}
}

// Available reports whether a live engine backs this bridge.
func (b *Bridge) Available() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ready
}

// Evaluate returns the win probability in [0,1] for the position
// identified by positionID, blocking up to budget for the engine. The
// single-slot cache returns the previous value unchanged when the
// identifier matches. Any failure yields the neutral 0.5, which is also
// cached so an unreachable engine is not retried for the same position.
func (b *Bridge) Evaluate(positionID string, budget time.Duration) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.hasLast && positionID == b.lastID {
		return b.lastVal
	}
	if budget <= 0 {
		budget = DefaultBudget
	}

	val := 0.5
	if b.ready {
		v, err := b.query(positionID, budget)
		if err != nil {
			log.Printf("[analysis] evaluation failed: %v", err)
		} else {
			val = v
		}
	}

	b.lastID = positionID
	b.lastVal = val
	b.hasLast = true
	return val
}

// query runs one position/go exchange and returns the normalized score
// from the last info line before bestmove.
func (b *Bridge) query(positionID string, budget time.Duration) (float64, error) {
	if err := b.send("position fen " + positionID); err != nil {
		b.ready = false
		return 0, err
	}
	if err := b.send(fmt.Sprintf("go movetime %d", budget.Milliseconds())); err != nil {
		b.ready = false
		return 0, err
	}

	var (
		val  float64
		seen bool
	)
	// Grace on top of the engine's own clock so a well-behaved engine
	// terminates the stream with bestmove before we give up on it.
	deadline := time.NewTimer(budget + 250*time.Millisecond)
	defer deadline.Stop()

	for {
		select {
		case line, ok := <-b.lines:
			if !ok {
				b.ready = false
				return 0, errors.New("engine closed the pipe")
			}
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			switch fields[0] {
			case "info":
				if v, ok := scoreFromInfo(fields); ok {
					val, seen = v, true
				}
			case "bestmove":
				if !seen {
					return 0, errors.New("no score token before bestmove")
				}
				return val, nil
			}
		case <-deadline.C:
			// Ask the engine to stop and consume the stray bestmove so
			// the next request starts from a clean stream.
			_ = b.send("stop")
			b.drainBestmove()
			if seen {
				return val, nil
			}
			return 0, errors.New("timed out waiting for evaluation")
		}
	}
}

// drainBestmove swallows output until the terminating bestmove line or
// a short grace period passes.
func (b *Bridge) drainBestmove() {
	deadline := time.NewTimer(250 * time.Millisecond)
	defer deadline.Stop()
	for {
		select {
		case line, ok := <-b.lines:
			if !ok {
				b.ready = false
				return
			}
			if strings.HasPrefix(line, "bestmove") {
				return
			}
		case <-deadline.C:
			return
		}
	}
}

// Close releases the engine: a quit directive, a bounded wait, then a
// kill. Failures are logged and never propagated, so shutdown of the
// host application is never blocked.
func (b *Bridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready && b.cmd == nil {
		return
	}
	b.ready = false

	if err := b.send("quit"); err != nil {
		log.Printf("[analysis] quit: %v", err)
	}
	if c, ok := b.stdin.(io.Closer); ok {
		_ = c.Close()
	}
	if b.cmd == nil {
		return
	}

	done := make(chan error, 1)
	go func() { done <- b.cmd.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			log.Printf("[analysis] engine exit: %v", err)
		}
	case <-time.After(2 * time.Second):
		log.Printf("[analysis] engine did not quit in time, killing")
		_ = b.cmd.Process.Kill()
		<-done
	}
}
