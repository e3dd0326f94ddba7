// Package ssh lets remote users open the star map viewer over SSH.
package ssh

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// ErrNoPTY is returned for sessions that did not request a terminal.
var ErrNoPTY = errors.New("session has no pty")

// AllowedTerms is the set of TERM values a client may request. Anything else
// falls back to DefaultTerm.
var AllowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode-256color": true,
}

// DefaultTerm is used when the client's TERM is missing or not allowed.
const DefaultTerm = "xterm-256color"

// Terminal implements tcell.Tty on top of a gliderlabs SSH session, so each
// connection gets its own tcell.Screen.
type Terminal struct {
	sess  gossh.Session
	term  string
	winCh <-chan gossh.Window

	mu       sync.Mutex
	size     tcell.WindowSize
	onResize func()
	watching bool
}

// NewTerminal wraps s. It fails with ErrNoPTY if the client did not
// allocate a terminal.
func NewTerminal(s gossh.Session) (*Terminal, error) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, ErrNoPTY
	}
	term := pty.Term
	if !AllowedTerms[term] {
		term = DefaultTerm
	}
	return &Terminal{
		sess:  s,
		term:  term,
		winCh: winCh,
		size:  tcell.WindowSize{Width: pty.Window.Width, Height: pty.Window.Height},
	}, nil
}

// Term returns the terminal type the screen is built for.
func (t *Terminal) Term() string { return t.term }

// Screen builds and initializes a tcell screen on this terminal. The process
// environment is not consulted, so concurrent sessions may use different
// terminal types.
func (t *Terminal) Screen() (tcell.Screen, error) {
	ti, err := tcell.LookupTerminfo(t.term)
	if err != nil {
		return nil, fmt.Errorf("lookup terminfo %q: %w", t.term, err)
	}
	screen, err := tcell.NewTerminfoScreenFromTtyTerminfo(t, ti)
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return screen, nil
}

func (t *Terminal) Read(b []byte) (int, error)  { return t.sess.Read(b) }
func (t *Terminal) Write(b []byte) (int, error) { return t.sess.Write(b) }
func (t *Terminal) Close() error                { return t.sess.Close() }

// Start, Stop and Drain are no-ops: the channel is opened and closed by the
// SSH server, and writes are not buffered here.
func (t *Terminal) Start() error { return nil }
func (t *Terminal) Stop() error  { return nil }
func (t *Terminal) Drain() error { return nil }

// WindowSize returns the most recent size reported by the client.
func (t *Terminal) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size, nil
}

// NotifyResize registers cb for window-change requests. The first call
// starts a goroutine that drains the window channel until the session ends.
func (t *Terminal) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onResize = cb
	start := !t.watching && t.winCh != nil
	t.watching = true
	t.mu.Unlock()

	if start {
		go t.watchResize()
	}
}

func (t *Terminal) watchResize() {
	for win := range t.winCh {
		t.mu.Lock()
		t.size = tcell.WindowSize{Width: win.Width, Height: win.Height}
		cb := t.onResize
		t.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}
