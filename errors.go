package bmp280

import "errors"

// Attach-time failures. Any of these means no usable Dev was produced.
var (
	// ErrUnexpectedChipID is returned when the chip identification register
	// does not answer 0x58, or cannot be read at all.
	ErrUnexpectedChipID = errors.New("unexpected chip id")
	// ErrResetWrite is returned when the soft reset command cannot be issued.
	ErrResetWrite = errors.New("soft reset write failed")
	// ErrConfigWrite is returned when the ctrl_meas or config register write fails.
	ErrConfigWrite = errors.New("configuration write failed")
	// ErrCalibrationRead is returned when any of the twelve calibration
	// constants cannot be read. The whole set is discarded.
	ErrCalibrationRead = errors.New("calibration read failed")
)

// Per-acquisition failures. They abort a single Sense call; the Dev and its
// calibration stay valid and the caller may retry.
var (
	ErrTemperatureRead = errors.New("temperature read failed")
	ErrPressureRead    = errors.New("pressure read failed")
)
