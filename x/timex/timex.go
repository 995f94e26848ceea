package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// Ticks returns a monotonic millisecond counter truncated to 32 bits, the
// width the platform tick source provides. It wraps roughly every 49.7 days.
func Ticks() uint32 { return uint32(time.Now().UnixMilli()) }

// Since reports the elapsed milliseconds between two tick samples. The
// subtraction is done in uint32 so the result stays correct across counter
// wraparound.
func Since(start, now uint32) uint32 { return now - start }

// SleepMs blocks for the given number of milliseconds.
func SleepMs(ms uint32) { time.Sleep(time.Duration(ms) * time.Millisecond) }
