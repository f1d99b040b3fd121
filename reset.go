package bmp280

import (
	"context"
	"fmt"
	"time"
)

// resetSettle is how long the sensor needs after the reset command before it
// starts answering again.
const resetSettle = 5 * time.Millisecond

// SoftReset sends the reset command and waits for the sensor to finish
// copying its NVM calibration image back into the register shadow.
func (d *Dev) SoftReset(ctx context.Context) error {

	if err := d.writeCommands([]byte{regReset, resetCmd}); err != nil {
		return d.wrap(fmt.Errorf("%w: reset(0x%x): %w", ErrResetWrite, regReset, err))
	}

	// wait for the device to begin reinitializing
	timer := time.NewTimer(resetSettle)
	if err := waitCancel(ctx, timer); err != nil {
		return d.wrap(fmt.Errorf("SoftReset: failed to wait reset settle: %w", err))
	}

	// im_update[0] goes low once the NVM copy is done. Garbage calibration
	// data results from reading earlier. Bounded; an exhausted poll is logged
	// by waitStatusClear and we proceed.
	if _, err := d.waitStatusClear(ctx, statusImUpdate); err != nil {
		return d.wrap(fmt.Errorf("SoftReset: %w", err))
	}

	return nil
}
