package bmp280

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Constants from the BMP280 datasheet worked example (section 3.12).
func datasheetCalibration() calibration {
	return calibration{
		t1: 27504,
		t2: 26435,
		t3: -1000,
		p1: 36477,
		p2: -10685,
		p3: 3024,
		p4: 2855,
		p5: 140,
		p6: -7,
		p7: 15500,
		p8: -14600,
		p9: 6000,
	}
}

func TestNewCalibration_LittleEndian(t *testing.T) {
	b := []byte{
		0x34, 0x12, // dig_T1, unsigned
		0xff, 0xff, // dig_T2, signed
		0x00, 0x80, // dig_T3, signed
		0xff, 0xff, // dig_P1, unsigned
		0x01, 0x00, // dig_P2
		0x00, 0x00, // dig_P3
		0x00, 0x00, // dig_P4
		0x00, 0x00, // dig_P5
		0x00, 0x00, // dig_P6
		0x00, 0x00, // dig_P7
		0x00, 0x00, // dig_P8
		0x34, 0x12, // dig_P9
	}

	c := newCalibration(b)

	assert.Equal(t, uint16(0x1234), c.t1)
	assert.Equal(t, int16(-1), c.t2)
	assert.Equal(t, int16(-32768), c.t3)
	assert.Equal(t, uint16(0xffff), c.p1)
	assert.Equal(t, int16(1), c.p2)
	assert.Equal(t, int16(0x1234), c.p9)
}

func TestCompensateTemp_DatasheetExample(t *testing.T) {
	c := datasheetCalibration()

	temp, tFine := c.compensateTemp(519888)

	// 2508 means 25.08 degC.
	assert.Equal(t, int32(2508), temp)
	assert.Equal(t, int32(128422), tFine)
}

func TestCompensatePressure_DatasheetExample(t *testing.T) {
	c := datasheetCalibration()

	_, tFine := c.compensateTemp(519888)
	p := c.compensatePressure(415148, tFine)

	// Q24.8: 25767233/256 = 100653.25 Pa.
	assert.Equal(t, int64(25767233), p)
}

func TestCompensatePressure_ZeroDivisorGuard(t *testing.T) {
	// dig_P1 = 0 drives the divisor term to exactly zero. The guard has to
	// kick in instead of an integer divide fault.
	c := datasheetCalibration()
	c.p1 = 0

	temp, tFine := c.compensateTemp(519888)
	p := c.compensatePressure(415148, tFine)

	assert.Equal(t, int64(0), p)
	assert.Equal(t, int32(2508), temp)
}

func TestCompensatePressure_AllZeroCalibration(t *testing.T) {
	c := calibration{}

	_, tFine := c.compensateTemp(519888)

	assert.Equal(t, int64(0), c.compensatePressure(415148, tFine))
}
