package bmp280

import (
	"encoding/binary"
	"fmt"
)

// calibration holds the twelve factory constants from the sensor NVM.
// They are read once at attach and never change afterwards.
type calibration struct {
	t1                             uint16
	t2, t3                         int16
	p1                             uint16
	p2, p3, p4, p5, p6, p7, p8, p9 int16
}

// newCalibration decodes the 24-byte block starting at regCalib. Each
// constant is little-endian, low byte first.
func newCalibration(b []byte) calibration {
	return calibration{
		t1: binary.LittleEndian.Uint16(b[0:2]),
		t2: int16(binary.LittleEndian.Uint16(b[2:4])),
		t3: int16(binary.LittleEndian.Uint16(b[4:6])),
		p1: binary.LittleEndian.Uint16(b[6:8]),
		p2: int16(binary.LittleEndian.Uint16(b[8:10])),
		p3: int16(binary.LittleEndian.Uint16(b[10:12])),
		p4: int16(binary.LittleEndian.Uint16(b[12:14])),
		p5: int16(binary.LittleEndian.Uint16(b[14:16])),
		p6: int16(binary.LittleEndian.Uint16(b[16:18])),
		p7: int16(binary.LittleEndian.Uint16(b[18:20])),
		p8: int16(binary.LittleEndian.Uint16(b[20:22])),
		p9: int16(binary.LittleEndian.Uint16(b[22:24])),
	}
}

// readCalibration fetches all twelve constants, one register pair per
// transaction. A failure on any pair discards the whole set.
func (d *Dev) readCalibration() (calibration, error) {
	var raw [24]byte
	for i := 0; i < len(raw); i += 2 {
		reg := uint8(regCalib + i)
		if err := d.readReg(reg, raw[i:i+2]); err != nil {
			return calibration{}, fmt.Errorf("dig pair at 0x%02x: %w", reg, err)
		}
	}
	return newCalibration(raw[:]), nil
}

// compensateTemp returns the temperature in 0.01 degC units (2508 means
// 25.08 degC) together with the t_fine term the pressure formula needs.
//
// This is the Bosch reference integer formula. Do not "simplify" it; the
// output has to match the datasheet bit for bit.
func (c *calibration) compensateTemp(raw int32) (int32, int32) {
	adc := int64(raw)
	var1 := (((adc >> 3) - (int64(c.t1) << 1)) * int64(c.t2)) >> 11
	var2 := (((((adc >> 4) - int64(c.t1)) * ((adc >> 4) - int64(c.t1))) >> 12) * int64(c.t3)) >> 14
	tFine := var1 + var2
	return int32((tFine*5 + 128) >> 8), int32(tFine)
}

// compensatePressure returns the pressure in Pa as a Q24.8 fixed point value
// (divide by 256 for whole Pascals). tFine must come from compensateTemp on
// a sample of the same acquisition.
//
// When the divisor term works out to zero the pressure is undefined; the
// Bosch reference returns 0 instead of dividing, and so do we.
func (c *calibration) compensatePressure(raw, tFine int32) int64 {
	var1 := int64(tFine) - 128000
	var2 := var1 * var1 * int64(c.p6)
	var2 += (var1 * int64(c.p5)) << 17
	var2 += int64(c.p4) << 35
	var1 = ((var1 * var1 * int64(c.p3)) >> 8) + ((var1 * int64(c.p2)) << 12)
	var1 = ((int64(1)<<47 + var1) * int64(c.p1)) >> 33
	if var1 == 0 {
		return 0
	}
	p := int64(1048576 - raw)
	p = ((p << 31) - var2) * 3125 / var1
	var1 = (int64(c.p9) * (p >> 13) * (p >> 13)) >> 25
	var2 = (int64(c.p8) * p) >> 19
	return ((p + var1 + var2) >> 8) + (int64(c.p7) << 4)
}
