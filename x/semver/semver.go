package semver

import "barrique-go/x/conv"

// Version is a three-part firmware version. Ordering is lexicographic over
// (Major, Minor, Patch).
type Version struct {
	Major uint32
	Minor uint32
	Patch uint32
}

// Parse reads a dotted version string. Missing components default to 0, so
// "2", "2.1" and "2.1.0" are all valid. Non-digit characters terminate the
// component they appear in; an empty string parses as 0.0.0.
func Parse(s string) Version {
	var parts [3]uint32
	idx := 0
	var cur uint32
	for i := 0; i < len(s) && idx < 3; i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			cur = cur*10 + uint32(c-'0')
		case c == '.':
			parts[idx] = cur
			cur = 0
			idx++
		default:
			// Stop at the first foreign character ("1.2.3-rc1" -> 1.2.3).
			if idx < 3 {
				parts[idx] = cur
			}
			return Version{parts[0], parts[1], parts[2]}
		}
	}
	if idx < 3 {
		parts[idx] = cur
	}
	return Version{parts[0], parts[1], parts[2]}
}

// Compare returns -1, 0 or +1 as v orders before, equal to or after o.
func (v Version) Compare(o Version) int {
	switch {
	case v.Major != o.Major:
		return order(v.Major, o.Major)
	case v.Minor != o.Minor:
		return order(v.Minor, o.Minor)
	case v.Patch != o.Patch:
		return order(v.Patch, o.Patch)
	}
	return 0
}

func order(a, b uint32) int {
	if a < b {
		return -1
	}
	return 1
}

// Newer reports whether v is strictly greater than o.
func (v Version) Newer(o Version) bool { return v.Compare(o) > 0 }

// String renders "major.minor.patch" without fmt.
func (v Version) String() string {
	var buf [32]byte
	b := buf[:0]
	var tmp [10]byte
	b = append(b, conv.Utoa(tmp[:], uint64(v.Major))...)
	b = append(b, '.')
	b = append(b, conv.Utoa(tmp[:], uint64(v.Minor))...)
	b = append(b, '.')
	b = append(b, conv.Utoa(tmp[:], uint64(v.Patch))...)
	return string(b)
}
