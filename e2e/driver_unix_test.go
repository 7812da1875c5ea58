//go:build e2e && unix

package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

// binPath is set by TestMain once the binary is built
var binPath = "timeline_e2e"

const (
	outputLimit  = 1 << 20
	pollInterval = 25 * time.Millisecond
	readyTimeout = 5 * time.Second
	seeTimeout   = 3 * time.Second
)

// Bytes written to the terminal for each key
const (
	KeyEnter = "\r"
	KeyCtrlC = "\x03"
	KeyEsc   = "\x1b"
	KeyTab   = "\t"
	KeyDown  = "j"
	KeyUp    = "k"
	KeyRight = "l"
	KeyNext  = "n"
	KeyHelp  = "?"
	KeyQuit  = "q"
)

// escapes matches the terminal control sequences the renderer emits
var escapes = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]|\x1b\][^\x07]*\x07|\x1b[()][A-Za-z]|\x1b[=>]|\r`)

func stripEscapes(s string) string {
	return escapes.ReplaceAllString(s, "")
}

// containsPlain reports whether raw output contains text once escape
// sequences are stripped
func containsPlain(raw, text string) bool {
	return strings.Contains(stripEscapes(raw), text)
}

// Driver runs the timeline binary on a pseudo terminal and records
// everything it draws
type Driver struct {
	t         *testing.T
	pty       *os.File
	cmd       *exec.Cmd
	workspace string

	mu  sync.Mutex
	out bytes.Buffer
}

func NewDriver(t *testing.T) *Driver {
	return &Driver{t: t}
}

// StartApp runs the binary with args inside the workspace, isolated from
// the user's home and config
func (d *Driver) StartApp(args ...string) error {
	d.cmd = exec.Command(binPath, args...)
	d.cmd.Dir = d.workspace
	d.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C.UTF-8",
		"HOME="+d.workspace,
		"XDG_CONFIG_HOME="+filepath.Join(d.workspace, ".config"),
		"TIMELINE_CONFIG="+d.ConfigPath(),
		"TIMELINE_E2E_TEST=1",
	)

	f, err := pty.StartWithSize(d.cmd, &pty.Winsize{Rows: 40, Cols: 120})
	if err != nil {
		return fmt.Errorf("start %s: %w", binPath, err)
	}
	d.pty = f
	go d.capture()
	return nil
}

func (d *Driver) capture() {
	chunk := make([]byte, 8192)
	for {
		n, err := d.pty.Read(chunk)
		if n > 0 {
			d.mu.Lock()
			d.out.Write(chunk[:n])
			if extra := d.out.Len() - outputLimit; extra > 0 {
				d.out.Next(extra)
			}
			d.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Output is everything drawn so far, escape sequences included
func (d *Driver) Output() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.out.String()
}

func (d *Driver) SendKeys(keys string) error {
	d.t.Helper()
	_, err := d.pty.Write([]byte(keys))
	return err
}

func (d *Driver) SendCtrlC() error { return d.SendKeys(KeyCtrlC) }
func (d *Driver) Enter() error     { return d.SendKeys(KeyEnter) }
func (d *Driver) Escape() error    { return d.SendKeys(KeyEsc) }
func (d *Driver) Tab() error       { return d.SendKeys(KeyTab) }
func (d *Driver) Down() error      { return d.SendKeys(KeyDown) }
func (d *Driver) Up() error        { return d.SendKeys(KeyUp) }
func (d *Driver) Quit() error      { return d.SendKeys(KeyQuit) }

// Ready waits for the marker the app prints on its first frame under test
func (d *Driver) Ready() bool {
	d.t.Helper()
	return d.WaitForE(func(s string) bool {
		return strings.Contains(s, "__READY__")
	}, readyTimeout, "no ready marker") == nil
}

// SeePlain waits until text shows up in the stripped output
func (d *Driver) SeePlain(text string) bool {
	d.t.Helper()
	return d.WaitForE(func(s string) bool {
		return containsPlain(s, text)
	}, seeTimeout, "not seen: "+text) == nil
}

// WaitForE polls the raw output until pred holds. On timeout the error
// carries the last few KiB of stripped output.
func (d *Driver) WaitForE(pred func(string) bool, timeout time.Duration, failMsg string) error {
	d.t.Helper()
	deadline := time.Now().Add(timeout)
	for !pred(d.Output()) {
		if time.Now().After(deadline) {
			return fmt.Errorf("%s\n--- output ---\n%s", failMsg, d.tail(4096))
		}
		time.Sleep(pollInterval)
	}
	return nil
}

func (d *Driver) tail(n int) string {
	s := stripEscapes(d.Output())
	if len(s) > n {
		s = s[len(s)-n:]
	}
	return s
}

// DumpTailOnFail writes the last n bytes of stripped output under the
// test's temp dir
func (d *Driver) DumpTailOnFail(t *testing.T, name string, n int) {
	t.Helper()
	p := filepath.Join(t.TempDir(), name+".txt")
	_ = os.WriteFile(p, []byte(d.tail(n)), 0o644)
	t.Logf("output saved to %s", p)
}

// Cleanup hangs up the terminal, reaps the process and removes the
// workspace
func (d *Driver) Cleanup() {
	if d.pty != nil {
		_ = d.pty.Close()
		d.pty = nil
	}
	if d.cmd != nil && d.cmd.Process != nil {
		_ = d.cmd.Process.Kill()
		_, _ = d.cmd.Process.Wait()
		d.cmd = nil
	}
	if d.workspace != "" {
		_ = os.RemoveAll(d.workspace)
		d.workspace = ""
	}
}
