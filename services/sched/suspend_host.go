//go:build !rp2040 && !rp2350

package sched

import "barrique-go/types"

// HostSuspender stands in for the platform suspension primitive on host
// builds. Unlike the hardware it returns, so the simulator and tests can
// observe the plan; OnSuspend may be set to exit instead.
type HostSuspender struct {
	Plans     []types.SleepPlan
	OnSuspend func(plan types.SleepPlan)
}

func (h *HostSuspender) Suspend(plan types.SleepPlan) {
	h.Plans = append(h.Plans, plan)
	if h.OnSuspend != nil {
		h.OnSuspend(plan)
	}
}

// HostRestarter records restart requests on host builds.
type HostRestarter struct {
	Requested int
	OnRestart func()
}

func (h *HostRestarter) Restart() {
	h.Requested++
	if h.OnRestart != nil {
		h.OnRestart()
	}
}
