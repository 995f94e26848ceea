package errcode

// Code is a stable, log-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Connectivity. Having no link is an expected state, never fatal.
	NoLink Code = "no_link"

	// Config fetch. Always resolved to the default configuration.
	Transport     Code = "transport"
	MalformedBody Code = "malformed_body"

	// Update. Always resolved to a Failed outcome, running image preserved.
	MalformedDescriptor Code = "malformed_descriptor"
	NoContentLength     Code = "no_content_length"
	SizeMismatch        Code = "size_mismatch"
	VerifyFailed        Code = "verify_failed"
	FlashBusy           Code = "flash_busy"

	// Report. Logged, sample dropped, no retry this cycle.
	NonSuccessStatus Code = "non_success_status"

	Timeout Code = "timeout"
	Error   Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

// Wrap builds an *E carrying op context around a cause.
func Wrap(c Code, op string, err error) error {
	return &E{C: c, Op: op, Err: err}
}
