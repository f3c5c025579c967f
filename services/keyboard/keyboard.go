package keyboard

import (
	"context"
	"sync"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"trajectory-logger/utils"
)

// Keyboard tracks which keys are currently held on a tcell terminal.
//
// Terminals report key presses and auto-repeats but never releases, so a key
// counts as held while its last event is younger than the hold window.
type Keyboard struct {
	screen tcell.Screen
	clock  utils.Clock
	hold   time.Duration

	mu       sync.Mutex
	lastSeen map[rune]time.Time
	quit     chan struct{}
	quitOnce sync.Once
}

// Open takes over the terminal. Call Close to restore it.
func Open(hold time.Duration) (*Keyboard, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorReset).
		Foreground(tcell.ColorReset))
	screen.Clear()

	k := newKeyboard(utils.SystemClock{}, hold)
	k.screen = screen
	return k, nil
}

func newKeyboard(clock utils.Clock, hold time.Duration) *Keyboard {
	return &Keyboard{
		clock:    clock,
		hold:     hold,
		lastSeen: make(map[rune]time.Time),
		quit:     make(chan struct{}),
	}
}

// Close restores the terminal.
func (k *Keyboard) Close() {
	if k.screen != nil {
		k.screen.Fini()
	}
}

// Listen reads terminal events until ctx is cancelled or the quit key is
// pressed. It is meant to run on its own goroutine.
func (k *Keyboard) Listen(ctx context.Context) error {
	if k.screen == nil {
		<-ctx.Done()
		return nil
	}

	// PollEvent blocks; an interrupt event wakes it on cancellation.
	go func() {
		select {
		case <-ctx.Done():
			k.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-k.quit:
		}
	}()

	for {
		ev := k.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			k.screen.Sync()
		case *tcell.EventKey:
			k.handleKey(ev.Key(), ev.Rune())
		}
		select {
		case <-k.quit:
			return nil
		default:
		}
	}
}

func (k *Keyboard) handleKey(key tcell.Key, r rune) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		k.requestQuit()
	case tcell.KeyRune:
		k.press(r)
	}
}

// press records r as seen now. Letters are case-folded so caps lock does
// not change the bindings.
func (k *Keyboard) press(r rune) {
	r = unicode.ToLower(r)
	now := k.clock.Now()
	k.mu.Lock()
	k.lastSeen[r] = now
	k.mu.Unlock()
}

func (k *Keyboard) requestQuit() {
	k.quitOnce.Do(func() { close(k.quit) })
}

// Pressed reports whether r was seen within the hold window.
func (k *Keyboard) Pressed(r rune) bool {
	r = unicode.ToLower(r)
	k.mu.Lock()
	t, ok := k.lastSeen[r]
	k.mu.Unlock()
	if !ok {
		return false
	}
	return k.clock.Now().Sub(t) <= k.hold
}

// Quit reports whether ESC or Ctrl-C has been pressed.
func (k *Keyboard) Quit() bool {
	select {
	case <-k.quit:
		return true
	default:
		return false
	}
}

// Done is closed once the quit key has been pressed.
func (k *Keyboard) Done() <-chan struct{} { return k.quit }
