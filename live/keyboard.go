// Package live holds poses while MIDI keys are held down, so that a
// performer can transpose the scales by playing a keyboard.
package live

import (
	"sort"
	"sync"
	"time"

	"github.com/bep/debounce"
	"gitlab.com/gomidi/midi/v2"
	"go.uber.org/zap"

	"github.com/vsariola/harmonia"
)

// Keyboard maps MIDI keys to poses. While a bound key is held, its pose is
// active; holding several keys sums their poses. A Keyboard is a
// harmonia.PoseSource and can be given to the resolver together with the
// clips of a project. It is safe for concurrent use: messages usually arrive
// from the MIDI driver goroutine while the resolver reads from another.
type Keyboard struct {
	mu       sync.Mutex
	bindings map[uint8]harmonia.PoseVector
	held     map[uint8]bool
	logger   *zap.Logger
	onChange func(harmonia.PoseVector)
	notify   func(func())
}

// Option configures a Keyboard.
type Option func(*Keyboard)

// WithLogger sets the logger of the keyboard.
func WithLogger(logger *zap.Logger) Option {
	return func(k *Keyboard) {
		if logger != nil {
			k.logger = logger
		}
	}
}

// OnChange sets a callback called with the new active pose whenever the held
// keys change. If delay > 0, bursts of changes within the delay are collapsed
// into one call, made from another goroutine after the burst.
func OnChange(delay time.Duration, f func(harmonia.PoseVector)) Option {
	return func(k *Keyboard) {
		k.onChange = f
		if delay > 0 {
			k.notify = debounce.New(delay)
		}
	}
}

// NewKeyboard returns a Keyboard with no bindings.
func NewKeyboard(opts ...Option) *Keyboard {
	k := &Keyboard{
		bindings: map[uint8]harmonia.PoseVector{},
		held:     map[uint8]bool{},
		logger:   zap.NewNop(),
	}
	for _, o := range opts {
		o(k)
	}
	return k
}

// Bind maps a key to a pose. Binding a held key changes the active pose
// immediately.
func (k *Keyboard) Bind(key uint8, pose harmonia.PoseVector) {
	k.mu.Lock()
	k.bindings[key] = pose.Copy()
	held := k.held[key]
	k.mu.Unlock()
	if held {
		k.changed()
	}
}

// Unbind removes the binding of a key, releasing it if held.
func (k *Keyboard) Unbind(key uint8) {
	k.mu.Lock()
	_, bound := k.bindings[key]
	delete(k.bindings, key)
	held := k.held[key]
	delete(k.held, key)
	k.mu.Unlock()
	if bound && held {
		k.changed()
	}
}

// HandleMessage consumes a MIDI message: note starts hold the key and note
// ends release it, on any channel. It reports whether the active pose
// changed. Other messages and unbound keys are ignored.
func (k *Keyboard) HandleMessage(msg midi.Message) bool {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		return k.Press(key)
	case msg.GetNoteEnd(&ch, &key):
		return k.Release(key)
	}
	return false
}

// Press holds the key down.
func (k *Keyboard) Press(key uint8) bool {
	k.mu.Lock()
	_, bound := k.bindings[key]
	if !bound || k.held[key] {
		k.mu.Unlock()
		return false
	}
	k.held[key] = true
	k.mu.Unlock()
	k.logger.Debug("key pressed", zap.Uint8("key", key))
	k.changed()
	return true
}

// Release lets the key go.
func (k *Keyboard) Release(key uint8) bool {
	k.mu.Lock()
	if !k.held[key] {
		k.mu.Unlock()
		return false
	}
	delete(k.held, key)
	_, bound := k.bindings[key]
	k.mu.Unlock()
	k.logger.Debug("key released", zap.Uint8("key", key))
	if bound {
		k.changed()
	}
	return bound
}

// Reset releases all keys.
func (k *Keyboard) Reset() {
	k.mu.Lock()
	n := len(k.held)
	k.held = map[uint8]bool{}
	k.mu.Unlock()
	if n > 0 {
		k.changed()
	}
}

// Held returns the held keys in ascending order.
func (k *Keyboard) Held() []uint8 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.heldKeys()
}

// Active returns the sum of the poses of the held keys.
func (k *Keyboard) Active() harmonia.PoseVector {
	k.mu.Lock()
	defer k.mu.Unlock()
	var ret harmonia.PoseVector
	for _, key := range k.heldKeys() {
		ret = ret.Add(k.bindings[key])
	}
	return ret
}

// ActiveVector returns the active pose; the keyboard is the same at every
// tick.
func (k *Keyboard) ActiveVector(int) harmonia.PoseVector {
	return k.Active()
}

func (k *Keyboard) heldKeys() []uint8 {
	ret := make([]uint8, 0, len(k.held))
	for key := range k.held {
		ret = append(ret, key)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

func (k *Keyboard) changed() {
	if k.onChange == nil {
		return
	}
	call := func() { k.onChange(k.Active()) }
	if k.notify != nil {
		k.notify(call)
		return
	}
	call()
}
