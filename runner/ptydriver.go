// Copyright 2025 EngFlow Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"
	xterm "golang.org/x/term"

	"github.com/execdoc/execdoc/runner/termio"
)

// ptyDriver owns one interpreter process's pseudo-terminal: it writes
// commands in, reads rendered output out, and recognizes a per-process
// sentinel string this driver itself injects to detect where one
// command's output ends.
type ptyDriver struct {
	cmd      *exec.Cmd
	pty      *os.File
	sentinel string

	chunks chan ptyChunk

	// broken is set once a Cancel fails to recover the shell to its
	// prompt; every subsequent RunCommand/Cancel is refused.
	broken  bool
	cancelN int
}

type ptyChunk struct {
	data []byte
	err  error
}

// startPtyDriver spawns argv under a pty sized rows x cols and begins
// reading its output in the background.
func startPtyDriver(argv []string, rows, cols int, sentinel string) (*ptyDriver, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("runner: empty argv")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if rows > 0 && cols > 0 {
		// LINES/COLUMNS mirror the pty's own window size (set below) so a
		// child that reads its geometry from the environment rather than
		// an ioctl (e.g. a script invoked non-interactively) still sees it.
		cmd.Env = append(os.Environ(), fmt.Sprintf("LINES=%d", rows), fmt.Sprintf("COLUMNS=%d", cols))
	}
	f, err := pty.Start(cmd)
	if err != nil {
		return nil, fmt.Errorf("runner: starting %v under pty: %w", argv, err)
	}
	if rows > 0 && cols > 0 {
		_ = pty.Setsize(f, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	}

	d := &ptyDriver{cmd: cmd, pty: f, sentinel: sentinel, chunks: make(chan ptyChunk, 16)}
	go d.readLoop()
	return d, nil
}

func (d *ptyDriver) readLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := d.pty.Read(buf)
		if n > 0 {
			cp := make([]byte, n)
			copy(cp, buf[:n])
			d.chunks <- ptyChunk{data: cp}
		}
		if err != nil {
			d.chunks <- ptyChunk{err: err}
			return
		}
	}
}

// RunCommand writes command to the interpreter followed by an echo of the
// sentinel, then accumulates output (rendering it through term as it
// arrives) until the sentinel reappears, ctx is cancelled, or silence
// (a gap between reads) exceeds stopOnSilence. stopOnSilence <= 0 disables
// the silence check.
func (d *ptyDriver) RunCommand(ctx context.Context, command string, term termio.Terminal, stopOnSilence time.Duration) (output string, timedOut bool, err error) {
	if d.broken {
		return "", false, fmt.Errorf("runner: driver is broken, cannot run further commands")
	}
	if _, err := fmt.Fprintf(d.pty, "%s\necho %s\n", command, d.sentinel); err != nil {
		return "", false, fmt.Errorf("runner: writing command: %w", err)
	}

	silence := stopOnSilence
	if silence <= 0 {
		silence = 365 * 24 * time.Hour
	}
	timer := time.NewTimer(silence)
	defer timer.Stop()

	var all bytes.Buffer
	for {
		select {
		case <-ctx.Done():
			return term.String(), true, nil
		case <-timer.C:
			return term.String(), true, nil
		case c := <-d.chunks:
			if c.err != nil {
				return term.String(), false, fmt.Errorf("runner: reading output: %w", c.err)
			}
			term.Write(c.data)
			all.Write(c.data)
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(silence)
			if bytes.Contains(all.Bytes(), []byte(d.sentinel)) {
				return term.String(), false, nil
			}
		}
	}
}

// recoveryTimeout bounds how long Cancel waits for the shell to
// acknowledge an interrupt and echo back its recovery marker before giving
// up and marking the driver broken.
const recoveryTimeout = 3 * time.Second

// Cancel interrupts whatever command RunCommand last wrote (ctrl-C) and
// drains everything still in flight, including a delayed sentinel from the
// interrupted command, until a fresh marker confirms the shell is back at
// its prompt. This is the Executing -> Cancelling -> Ready | Broken
// transition of §4.6's Runner state machine; a failed recovery marks the
// driver broken so a later RunCommand cannot read stray output belonging
// to the cancelled command.
func (d *ptyDriver) Cancel(ctx context.Context) error {
	if d.broken {
		return fmt.Errorf("runner: driver already broken")
	}
	if _, err := d.pty.Write([]byte{0x03}); err != nil {
		d.broken = true
		return fmt.Errorf("runner: sending interrupt: %w", err)
	}
	d.cancelN++
	marker := fmt.Sprintf("%s_cancel_%d", d.sentinel, d.cancelN)
	if _, err := fmt.Fprintf(d.pty, "\necho %s\n", marker); err != nil {
		d.broken = true
		return fmt.Errorf("runner: requesting recovery marker: %w", err)
	}

	cctx, cancel := context.WithTimeout(ctx, recoveryTimeout)
	defer cancel()

	var all bytes.Buffer
	for {
		select {
		case <-cctx.Done():
			d.broken = true
			return fmt.Errorf("runner: shell did not recover from cancellation within %s", recoveryTimeout)
		case c := <-d.chunks:
			if c.err != nil {
				d.broken = true
				return fmt.Errorf("runner: reading output during cancellation: %w", c.err)
			}
			all.Write(c.data)
			if bytes.Contains(all.Bytes(), []byte(marker)) {
				return nil
			}
		}
	}
}

// Interact attaches the calling process's stdin/stdout to the pty for
// manual, interactive debugging of a stuck interpreter: the local
// terminal is put into raw mode and sized to match for the duration of
// the call, returning once ctx is cancelled or copying stdin into the pty
// stops (stdin reaches EOF or a write to the pty fails).
func (d *ptyDriver) Interact(ctx context.Context) error {
	fd := int(os.Stdin.Fd())
	if w, h, err := xterm.GetSize(fd); err == nil {
		_ = pty.Setsize(d.pty, &pty.Winsize{Rows: uint16(h), Cols: uint16(w)})
	}
	state, err := xterm.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("runner: entering raw mode: %w", err)
	}
	defer xterm.Restore(fd, state)

	done := make(chan struct{})
	go func() {
		io.Copy(d.pty, os.Stdin)
		close(done)
	}()
	go io.Copy(os.Stdout, d.pty)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Close terminates the interpreter process and releases the pty.
func (d *ptyDriver) Close() error {
	closeErr := d.pty.Close()
	if d.cmd.Process != nil {
		_ = d.cmd.Process.Kill()
		_ = d.cmd.Wait()
	}
	return closeErr
}
