package types

import "io"

// Platform interfaces. The control core only ever talks to the hardware
// through these; rp2 builds wire real adapters, host builds wire fakes.

// ---- Network ----

type Credentials struct {
	SSID string
	Pass string
}

// NetDevice is the radio driven by the connectivity manager. Join starts an
// association attempt and returns immediately; the manager polls Connected.
type NetDevice interface {
	Join(c Credentials) error
	Leave()
	Connected() bool
	// RSSI reports signal strength; ok is false when the radio cannot
	// measure it (callers substitute RSSIUnknown).
	RSSI() (rssi int16, ok bool)

	// StartProvisioning opens the provisioning access point under the given
	// name. PollCredentials reports credentials supplied by an operator.
	StartProvisioning(apName string) error
	PollCredentials() (Credentials, bool)
	StopProvisioning()
}

// CredentialStore persists network credentials across suspend boundaries
// (platform NVS on MCU builds).
type CredentialStore interface {
	Load() (Credentials, bool)
	Store(c Credentials) error
}

// ---- Firmware flash ----

// WriteRegion is one staged image transaction. Bytes written through it must
// not be visible as a valid image until Commit succeeds. Abort discards the
// region and leaves the running image untouched.
type WriteRegion interface {
	io.Writer
	Abort()
	// Commit finalizes and verifies the staged image.
	Commit() error
}

// Flasher opens a write-region transaction sized to the incoming image.
type Flasher interface {
	Begin(size int64) (WriteRegion, error)
}

// ---- Sensing ----

// Sensor yields the raw measurement channel and the battery rail.
type Sensor interface {
	ReadRaw() (uint16, error)
	BatteryMilliV() (uint16, error)
}

// ---- Power control ----

// Suspender enters timer-based suspension. Per this firmware's execution
// model Suspend does not return: the process restarts from its entry point
// on the next wake.
type Suspender interface {
	Suspend(plan SleepPlan)
}

// Restarter reboots into the (possibly just-installed) image. Does not
// return.
type Restarter interface {
	Restart()
}
