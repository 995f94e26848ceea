package logx

import "barrique-go/x/conv"

// Print is the line sink. MCU builds leave it on println (USB CDC / UART
// per linker config); tests may swap it to capture output.
var Print = func(s string) { println(s) }

func Info(args ...any)  { emit("Info:", args) }
func Warn(args ...any)  { emit("Warn:", args) }
func Error(args ...any) { emit("Error:", args) }

func emit(level string, args []any) {
	b := make([]byte, 0, 96)
	b = append(b, level...)
	for _, a := range args {
		b = append(b, ' ')
		b = appendAny(b, a)
	}
	Print(string(b))
}

// appendAny formats the handful of types this firmware logs. No fmt, no
// reflection; unknown types render as "<?>".
func appendAny(b []byte, v any) []byte {
	var tmp [20]byte
	switch x := v.(type) {
	case string:
		return append(b, x...)
	case bool:
		if x {
			return append(b, "true"...)
		}
		return append(b, "false"...)
	case int:
		return append(b, conv.Itoa(tmp[:], int64(x))...)
	case int16:
		return append(b, conv.Itoa(tmp[:], int64(x))...)
	case int32:
		return append(b, conv.Itoa(tmp[:], int64(x))...)
	case int64:
		return append(b, conv.Itoa(tmp[:], x)...)
	case uint16:
		return append(b, conv.Utoa(tmp[:], uint64(x))...)
	case uint32:
		return append(b, conv.Utoa(tmp[:], uint64(x))...)
	case uint64:
		return append(b, conv.Utoa(tmp[:], x)...)
	case error:
		return append(b, x.Error()...)
	default:
		return append(b, "<?>"...)
	}
}
