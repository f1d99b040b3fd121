package bmp280

import (
	"context"
	"fmt"

	"periph.io/x/conn/v3/physic"
)

// Sense reads the temperature and pressure from the device.
//
// In OneShot mode it first triggers a forced conversion. Either way a new
// t_fine is computed from the fresh temperature sample before the pressure is
// compensated; nothing carries over between calls. A transport failure aborts
// the whole acquisition, e is left untouched and the Dev stays usable.
func (d *Dev) Sense(ctx context.Context, e *SensorValues) error {

	if d.mode == OneShot {
		if err := d.writeCommands([]byte{regCtrlMeas, ctrlMeasForced}); err != nil {
			return d.wrap(fmt.Errorf("sense: failed to trigger forced conversion: %w", err))
		}
	}

	// Wait for the running conversion so we do not pick up a sample mid
	// transfer. An exhausted poll is not fatal, the reading is just flagged.
	ready, err := d.waitStatusClear(ctx, statusMeasuring)
	if err != nil {
		return d.wrap(err)
	}

	datum := [3]byte{}

	// Read temperature 0xFA(temp_msb) 0xFB(temp_lsb) 0xFC(temp_xlsb)
	if err := d.readReg(regTempMSB, datum[:]); err != nil {
		return d.wrap(fmt.Errorf("%w: %w", ErrTemperatureRead, err))
	}
	adcT := int32(datum[0])<<12 | int32(datum[1])<<4 | int32(datum[2])>>4
	tCenti, tFine := d.cal.compensateTemp(adcT)

	// Read pressure 0xF7(press_msb) 0xF8(press_lsb) 0xF9(press_xlsb)
	if err := d.readReg(regPressMSB, datum[:]); err != nil {
		return d.wrap(fmt.Errorf("%w: %w", ErrPressureRead, err))
	}
	adcP := int32(datum[0])<<12 | int32(datum[1])<<4 | int32(datum[2])>>4
	pQ8 := d.cal.compensatePressure(adcP, tFine)

	// tCenti is 0.01 degC units, pQ8 is Pa with 8 fractional bits.
	// physic.Pressure is nanoPa: (10^9)/256 = 15625000/4.
	e.Temperature = physic.ZeroCelsius + physic.Temperature(tCenti)*10*physic.MilliCelsius
	e.Pressure = physic.Pressure(pQ8) * 15625 * physic.MicroPascal / 4
	e.Stale = !ready

	return nil
}
