//go:build rp2040 || rp2350

package sched

import (
	"device/arm"
	"time"

	"barrique-go/types"
)

// rp2Suspender approximates timer-based deep sleep: the clocks are left to
// the timed wait and a full reset afterwards restores the
// restart-from-entry-point execution model the control loop assumes.
type rp2Suspender struct{}

// NewPlatformSuspender returns the board suspension primitive.
func NewPlatformSuspender() types.Suspender { return rp2Suspender{} }

func (rp2Suspender) Suspend(plan types.SleepPlan) {
	time.Sleep(time.Duration(plan.DurationMs) * time.Millisecond)
	arm.SystemReset()
}

type rp2Restarter struct{}

// NewPlatformRestarter returns the board reset primitive.
func NewPlatformRestarter() types.Restarter { return rp2Restarter{} }

func (rp2Restarter) Restart() { arm.SystemReset() }
