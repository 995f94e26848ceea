//go:build !rp2040 && !rp2350

package measure

// HostSensor is the sensor stand-in for host builds and tests.
type HostSensor struct {
	Raw     uint16
	Batt    uint16
	RawErr  error
	BattErr error
}

func (s *HostSensor) ReadRaw() (uint16, error) {
	return s.Raw, s.RawErr
}

func (s *HostSensor) BatteryMilliV() (uint16, error) {
	return s.Batt, s.BattErr
}
