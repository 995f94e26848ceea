package measure

import (
	"time"

	"barrique-go/types"
	"barrique-go/x/logx"
)

const serviceName = "measure"

// Service acquires exactly one sample per wake cycle. The analog conversion
// math lives in the sensor driver; this only packages the readings.
type Service struct {
	sensor types.Sensor
	rssi   func() int16 // connectivity manager's SignalStrength
	id     string
	fw     string
	nowS   func() uint64
}

func New(sensor types.Sensor, rssi func() int16, id, fw string) *Service {
	return &Service{
		sensor: sensor,
		rssi:   rssi,
		id:     id,
		fw:     fw,
		nowS:   func() uint64 { return uint64(time.Now().Unix()) },
	}
}

// SetNow swaps the timestamp source (tests).
func (s *Service) SetNow(nowS func() uint64) { s.nowS = nowS }

// Take builds one sample. Sensor read failures degrade to zero readings
// rather than aborting the cycle; the anomaly shows up in the data stream.
func (s *Service) Take() types.Sample {
	raw, err := s.sensor.ReadRaw()
	if err != nil {
		logx.Warn(serviceName, "raw read:", err)
		raw = 0
	}
	batt, err := s.sensor.BatteryMilliV()
	if err != nil {
		logx.Warn(serviceName, "battery read:", err)
		batt = 0
	}
	return types.Sample{
		DeviceID:      s.id,
		Firmware:      s.fw,
		RawValue:      raw,
		RSSI:          s.rssi(),
		BatteryMilliV: batt,
		TS:            s.nowS(),
	}
}
