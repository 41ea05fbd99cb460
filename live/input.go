package live

import "errors"

// ErrNoDriver is returned when no MIDI driver is available, e.g. in builds
// without cgo.
var ErrNoDriver = errors.New("no MIDI driver available")

// InputDevices returns the names of the available MIDI input devices.
func InputDevices() ([]string, error) {
	return inputDevices()
}

// Listen opens the first MIDI input whose name starts with prefix (any
// input if prefix is empty) and feeds its messages to the keyboard until
// the returned stop function is called.
func (k *Keyboard) Listen(prefix string) (stop func(), err error) {
	return listen(k, prefix)
}
