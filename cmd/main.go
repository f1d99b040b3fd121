package main

import (
	"context"
	"fmt"
	"log/slog"

	bmp280 "github.com/kanata2003/go-bmp280"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func main() {

	slog.SetLogLoggerLevel(slog.LevelDebug)

	if _, err := host.Init(); err != nil {
		panic(fmt.Sprint("i2c initialize error: ", err))
	}

	bus, err := i2creg.Open("")
	if err != nil {
		fmt.Println("i2cbus error: ", err)
		return
	}
	defer bus.Close()

	d, err := bmp280.NewI2C(bus, 0x76, &bmp280.Opts{
		//Mode: bmp280.OneShot,
		Mode: bmp280.Continuous,
	})
	if err != nil {
		fmt.Println("bmp280 err:", err)
		return
	}
	defer d.Halt()

	data := bmp280.SensorValues{}
	if err := d.Sense(context.TODO(), &data); err != nil {
		fmt.Println("sense err:", err)
		return
	}

	slog.Info("data", "", data)

}
