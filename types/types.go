package types

// ---- Remote configuration ----

// DefaultMeasureIntervalS is the fallback reporting interval (one week).
const DefaultMeasureIntervalS uint32 = 604800

// RemoteConfig is the operating configuration fetched each cycle.
// It is produced fresh on every fetch and never merged with a prior value;
// a failed fetch yields DefaultConfig(), not the last-known value.
type RemoteConfig struct {
	MeasureIntervalS uint32 `json:"measure_interval_s"`
	Maintenance      bool   `json:"maintenance"`
	Test             bool   `json:"test_mode"`
}

// DefaultConfig is the hard-coded safe fallback: report weekly, stay in
// maintenance so an operator can always reach a freshly deployed node.
func DefaultConfig() RemoteConfig {
	return RemoteConfig{
		MeasureIntervalS: DefaultMeasureIntervalS,
		Maintenance:      true,
		Test:             false,
	}
}

// ---- Operating mode ----

type Mode uint8

const (
	ModeNormal Mode = iota
	ModeTest
	ModeMaintenance
)

func (m Mode) String() string {
	switch m {
	case ModeMaintenance:
		return "maintenance"
	case ModeTest:
		return "test"
	default:
		return "normal"
	}
}

// ---- Measurement ----

// RSSIUnknown is the sentinel reported when the link is down or the radio
// cannot measure signal strength.
const RSSIUnknown int16 = -32768

// Sample is one measurement, constructed once per cycle, submitted, then
// discarded. Field names match the ingest endpoint's wire shape.
type Sample struct {
	DeviceID      string `json:"id"`
	Firmware      string `json:"fw"`
	RawValue      uint16 `json:"value_raw"`
	RSSI          int16  `json:"rssi"`
	BatteryMilliV uint16 `json:"battery_mv"`
	TS            uint64 `json:"ts"`
}

// ---- Sleep ----

// MinSleepMs is the floor under every suspension. Anything shorter risks the
// node waking before its own radio has fully powered down.
const MinSleepMs uint64 = 5000

type SleepPlan struct {
	DurationMs uint64
}

// ---- Retained state (bus payloads) ----

type Link string

const (
	LinkUp   Link = "up"
	LinkDown Link = "down"
)

// LinkState is the retained value published under state/net.
type LinkState struct {
	Link Link  `json:"link"`
	RSSI int16 `json:"rssi"`
	TS   int64 `json:"ts_ms"`
}

// NodeState is the retained value published under state/mode.
type NodeState struct {
	Mode       string `json:"mode"`
	IntervalMs uint64 `json:"interval_ms"`
	TS         int64  `json:"ts_ms"`
}

// UpdateState is the retained value published under state/update.
type UpdateState struct {
	Outcome string `json:"outcome"`
	Version string `json:"version,omitempty"`
	Error   string `json:"error,omitempty"`
	TS      int64  `json:"ts_ms"`
}

// ReportState is the retained value published under state/report.
type ReportState struct {
	OK bool  `json:"ok"`
	TS int64 `json:"ts_ms"`
}
