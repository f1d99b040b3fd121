package bmp280

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

func (d *Dev) readReg(reg uint8, b []byte) error {
	// SPI bus interface
	if d.isSPI {
		// Register address bit 7 is 0 for write and 1 for read.
		read := make([]byte, len(b)+1)
		write := make([]byte, len(read))
		// Rest of the write buffer is ignored.
		write[0] = reg | 0x80
		if err := d.d.Tx(write, read); err != nil {
			return fmt.Errorf("sr: %w", err)
		}
		copy(b, read[1:])
		return nil
	}
	if err := d.d.Tx([]byte{reg}, b); err != nil {
		return fmt.Errorf("ir: %w", err)
	}
	return nil
}

func (d *Dev) writeCommands(b []byte) error {

	comType := "i"
	// SPI bus interface
	if d.isSPI {
		// "SPI write"; set RW(MSB) to 0.
		for i := 0; i < len(b); i += 2 {
			b[i] &^= 0x80
		}
		comType = "s"
	}
	attrs := make([]slog.Attr, 0, len(b)/2)
	for i := 0; i < len(b); i += 2 {
		attrs = append(attrs, slog.String(fmt.Sprintf("0x%02x", b[i]), fmt.Sprintf("<-0x%08b(0x%02x)", b[i+1], b[i+1])))
	}
	slog.Debug("writeCommands", comType, attrs)

	if err := d.d.Tx(b, nil); err != nil {
		return fmt.Errorf("%sw: %w", comType, err)
	}
	return nil
}

func (d *Dev) wrap(err error) error {
	return fmt.Errorf("bmp280: %w", err)
}

func waitCancel(ctx context.Context, t *time.Timer) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

const (
	statusPollAttempts = 10
	statusPollInterval = time.Millisecond
)

// waitStatusClear polls the status register until the bits selected by mask
// read zero. The NVM image copy after reset (bit 0) and a running conversion
// (bit 3) are both reported here.
//
// The poll is bounded: after statusPollAttempts reads the function gives up
// and returns false. The datasheet only guarantees eventual clearing, so an
// exhausted poll means the next reading may be momentarily stale, nothing
// worse. A transport failure aborts the poll.
func (d *Dev) waitStatusClear(ctx context.Context, mask byte) (bool, error) {

	b := [1]byte{}
	timer := time.NewTimer(statusPollInterval)

	for i := 0; i < statusPollAttempts; i++ {
		if err := d.readReg(regStatus, b[:]); err != nil {
			timer.Stop()
			return false, fmt.Errorf("waitStatusClear: failed to read STATUS(0x%x): %w", regStatus, err)
		}
		if b[0]&mask == 0 {
			timer.Stop()
			return true, nil
		}

		timer.Reset(statusPollInterval)
		if err := waitCancel(ctx, timer); err != nil {
			return false, fmt.Errorf("waitStatusClear: %w", err)
		}
	}

	slog.Warn("status bits still set after poll bound",
		"mask", fmt.Sprintf("0b%08b", mask),
		"attempts", statusPollAttempts)
	return false, nil
}
