package control

import "barrique-go/types"

// Active intervals per mode. Maintenance and test use fixed short intervals;
// normal mode follows the configured reporting interval.
const (
	maintenanceIntervalMs uint64 = 10_000
	testIntervalMs        uint64 = 20_000
)

// Resolve maps configuration flags to the operating mode. Maintenance and
// test are mutually exclusive: when the configuration marks both,
// maintenance wins and test is forced off.
func Resolve(cfg types.RemoteConfig) types.Mode {
	switch {
	case cfg.Maintenance:
		return types.ModeMaintenance
	case cfg.Test:
		return types.ModeTest
	default:
		return types.ModeNormal
	}
}

// IntervalMs derives the active interval for a resolved mode. The sleep
// scheduler applies the duration floor; this only picks the source.
func IntervalMs(mode types.Mode, cfg types.RemoteConfig) uint64 {
	switch mode {
	case types.ModeMaintenance:
		return maintenanceIntervalMs
	case types.ModeTest:
		return testIntervalMs
	default:
		return uint64(cfg.MeasureIntervalS) * 1000
	}
}
