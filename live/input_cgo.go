//go:build cgo

package live

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
	"go.uber.org/zap"
)

func inputDevices() ([]string, error) {
	driver, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDriver, err)
	}
	defer driver.Close()
	ins, err := driver.Ins()
	if err != nil {
		return nil, fmt.Errorf("could not list MIDI inputs: %w", err)
	}
	ret := make([]string, len(ins))
	for i, in := range ins {
		ret[i] = in.String()
	}
	return ret, nil
}

func listen(k *Keyboard, prefix string) (func(), error) {
	driver, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDriver, err)
	}
	ins, err := driver.Ins()
	if err != nil {
		driver.Close()
		return nil, fmt.Errorf("could not list MIDI inputs: %w", err)
	}
	for _, in := range ins {
		if !strings.HasPrefix(in.String(), prefix) {
			continue
		}
		if err := in.Open(); err != nil {
			driver.Close()
			return nil, fmt.Errorf("opening MIDI input failed: %w", err)
		}
		stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
			k.HandleMessage(msg)
		})
		if err != nil {
			in.Close()
			driver.Close()
			return nil, fmt.Errorf("could not listen to %v: %w", in, err)
		}
		k.logger.Info("listening to MIDI input", zap.String("input", in.String()))
		return func() {
			stop()
			in.Close()
			driver.Close()
			k.Reset()
		}, nil
	}
	driver.Close()
	return nil, fmt.Errorf("could not find a MIDI input starting with %q", prefix)
}
