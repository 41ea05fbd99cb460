//go:build !cgo

package live

func inputDevices() ([]string, error) {
	return nil, ErrNoDriver
}

func listen(*Keyboard, string) (func(), error) {
	return nil, ErrNoDriver
}
