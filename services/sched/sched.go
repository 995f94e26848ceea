package sched

import (
	"barrique-go/types"
	"barrique-go/x/logx"
	"barrique-go/x/mathx"
)

const serviceName = "sched"

// Plan turns a requested interval into a sleep plan, enforcing the floor.
// Whatever the configuration asked for, the node never suspends for less
// than types.MinSleepMs.
func Plan(intervalMs uint64) types.SleepPlan {
	return types.SleepPlan{DurationMs: mathx.Max(intervalMs, types.MinSleepMs)}
}

// Scheduler hands plans to the platform suspension primitive.
type Scheduler struct {
	susp types.Suspender
}

func New(susp types.Suspender) *Scheduler { return &Scheduler{susp: susp} }

// Suspend enters timer-based suspension. On hardware this does not return;
// the process restarts from its entry point on the next wake. Callers must
// have finished all per-cycle work before invoking it.
func (s *Scheduler) Suspend(plan types.SleepPlan) {
	logx.Info(serviceName, "suspending for", plan.DurationMs, "ms")
	s.susp.Suspend(plan)
}
