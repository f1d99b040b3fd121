// Package bmp280 controls a Bosch BMP280 barometric pressure and temperature
// sensor over I2C or SPI.
package bmp280

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

const chipIDBMP280 = 0x58

// Register map, per the BMP280 datasheet.
const (
	regCalib    = 0x88 // 24 calibration bytes, dig_T1 first, little-endian pairs
	regChipID   = 0xD0
	regReset    = 0xE0
	regStatus   = 0xF3
	regCtrlMeas = 0xF4
	regConfig   = 0xF5
	regPressMSB = 0xF7 // press_msb, press_lsb, press_xlsb
	regTempMSB  = 0xFA // temp_msb, temp_lsb, temp_xlsb
)

const (
	resetCmd = 0xB6

	// ctrl_meas: osrs_t[7:5]=x1, osrs_p[4:2]=x4, mode[1:0].
	ctrlMeasNormal = 0x2F // mode=11, continuous conversion
	ctrlMeasArmed  = 0x2C // mode=00, oversampling set but device asleep
	ctrlMeasForced = 0x2D // mode=01, single conversion then back to sleep
	ctrlMeasSleep  = 0x00

	// config: t_sb[7:5]=125ms, filter[4:2]=coefficient 4, spi3w_en[0]=0.
	configVal = 0x48

	statusImUpdate  = 0x01 // bit0: NVM image copy in progress
	statusMeasuring = 0x08 // bit3: conversion in progress
)

// NewI2C returns a Dev object that communicates over I2C.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	switch addr {
	case 0x76, 0x77:
	default:
		return nil, errors.New("bmp280: given address not supported by device")
	}
	d := &Dev{d: &i2c.Dev{Bus: b, Addr: addr}, isSPI: false}
	if err := d.makeDev(opts); err != nil {
		return nil, err
	}
	return d, nil
}

// NewSPI returns a Dev object that communicates over SPI.
func NewSPI(p spi.Port, opts *Opts) (*Dev, error) {
	// The chip works both in Mode0 and Mode3.
	c, err := p.Connect(10*physic.MegaHertz, spi.Mode3, 8)
	if err != nil {
		return nil, fmt.Errorf("bmp280: %w", err)
	}
	d := &Dev{d: c, isSPI: true}
	if err := d.makeDev(opts); err != nil {
		return nil, err
	}
	return d, nil
}

// MeasurementMode is a mode that measures one time and sleeps the device or measures continuously.
type MeasurementMode int

const (
	// Continuous mode keeps the device converting at the configured standby rate.
	Continuous MeasurementMode = iota
	// OneShot mode leaves the device asleep and triggers a forced conversion per Sense call.
	OneShot
)

// Opts is a struct to set the mode of the device.
type Opts struct {
	Mode MeasurementMode
}

// DefaultOpts returns the default options.
func DefaultOpts() *Opts {
	return &Opts{
		Mode: Continuous,
	}
}

// Dev is a handle to one attached BMP280.
type Dev struct {
	d     conn.Conn
	isSPI bool
	mode  MeasurementMode
	cal   calibration
}

// makeDev brings the sensor from an unknown state into the measurement
// configuration: chip identification, soft reset, NVM copy wait, mode and
// filter setup, then the calibration readout. Every step is a hard
// precondition for the next.
func (d *Dev) makeDev(opts *Opts) error {

	if opts == nil {
		opts = DefaultOpts()
	}
	d.mode = opts.Mode

	var chipID [1]byte
	if err := d.readReg(regChipID, chipID[:]); err != nil {
		return d.wrap(fmt.Errorf("%w: %w", ErrUnexpectedChipID, err))
	}
	if chipID[0] != chipIDBMP280 {
		return d.wrap(fmt.Errorf("%w: 0x%02x", ErrUnexpectedChipID, chipID[0]))
	}

	slog.Debug("ChipID",
		"Value", fmt.Sprintf("0x%02x", chipID[0]),
		"Name", "BMP280")

	if err := d.SoftReset(context.Background()); err != nil {
		return err
	}

	ctrl := byte(ctrlMeasNormal)
	if d.mode == OneShot {
		ctrl = ctrlMeasArmed
	}
	if err := d.writeCommands([]byte{regCtrlMeas, ctrl}); err != nil {
		return d.wrap(fmt.Errorf("%w: ctrl_meas(0x%x): %w", ErrConfigWrite, regCtrlMeas, err))
	}
	if err := d.writeCommands([]byte{regConfig, configVal}); err != nil {
		return d.wrap(fmt.Errorf("%w: config(0x%x): %w", ErrConfigWrite, regConfig, err))
	}

	// All twelve constants or nothing; a partially populated set must never
	// be used for compensation.
	cal, err := d.readCalibration()
	if err != nil {
		return d.wrap(fmt.Errorf("%w: %w", ErrCalibrationRead, err))
	}
	d.cal = cal

	return nil
}

// Halt puts the device into sleep mode. Call it before releasing the bus.
// It implements conn.Resource.
func (d *Dev) Halt() error {
	if err := d.writeCommands([]byte{regCtrlMeas, ctrlMeasSleep}); err != nil {
		return d.wrap(fmt.Errorf("%w: ctrl_meas(0x%x): %w", ErrConfigWrite, regCtrlMeas, err))
	}
	return nil
}

// String satisfies the fmt.Stringer interface.
func (d *Dev) String() string {
	return "BMP280"
}

var _ conn.Resource = &Dev{}
