package position

import "strings"

// Resolve expands a raw position string into the mover's anchor code and
// the target's anchor code.
//
// The string is trimmed and lowercased, then validated against the
// six-letter alphabet {t, b, c, m, l, r} and a maximum length of four.
// Anything that fails validation degrades silently to "c", meaning
// full-center alignment. Resolve never reports an error.
//
// Expansion by length:
//
//	""      → mover "cc", target "cc"
//	"t"     → mover "tt", target "tt"   (midpoint of the shared edge)
//	"tl"    → mover "tl", target "tl"   (one point, both rectangles)
//	"tlr"   → mover "tl", target "rr"
//	"tlbr"  → mover "tl", target "br"
func Resolve(raw string) (mover, target Code) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if !valid(s) {
		s = "c"
	}

	switch len(s) {
	case 0:
		return DefaultCode, DefaultCode
	case 1:
		c := Code(s + s)
		return c, c
	case 2:
		c := Code(s)
		return c, c
	case 3:
		return Code(s[:2]), Code(s[2:] + s[2:])
	default:
		return Code(s[:2]), Code(s[2:])
	}
}

func valid(s string) bool {
	if len(s) > 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 't', 'b', 'c', 'm', 'l', 'r':
		default:
			return false
		}
	}
	return true
}
