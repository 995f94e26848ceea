//go:build rp2040 || rp2350

package measure

import (
	"machine"

	"barrique-go/types"
)

// rp2Sensor reads the measurement channel on ADC0 and the battery rail on
// ADC1 through the board's 2:1 divider.
type rp2Sensor struct {
	meas machine.ADC
	batt machine.ADC
}

// NewPlatformSensor configures the board ADCs.
func NewPlatformSensor() types.Sensor {
	machine.InitADC()
	s := &rp2Sensor{
		meas: machine.ADC{Pin: machine.ADC0},
		batt: machine.ADC{Pin: machine.ADC1},
	}
	s.meas.Configure(machine.ADCConfig{})
	s.batt.Configure(machine.ADCConfig{})
	return s
}

func (s *rp2Sensor) ReadRaw() (uint16, error) {
	return s.meas.Get(), nil
}

func (s *rp2Sensor) BatteryMilliV() (uint16, error) {
	return battMilliV(s.batt.Get()), nil
}
