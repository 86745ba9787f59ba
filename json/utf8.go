package json

// validateUTF8 scans s and classifies the first malformed sequence.
// It returns the byte offset of the offending sequence and a non-zero
// Errc, or (len(s), 0) when s is valid UTF-8.
//
// Escape expansion never produces malformed output, so this runs over
// each string payload exactly once, at terminator time.
func validateUTF8(s []byte) (int, Errc) {
	i := 0
	n := len(s)
	for i < n {
		c := s[i]
		switch {
		case c < 0x80:
			i++
		case c < 0xc2:
			// 0x80..0xbf: stray continuation; 0xc0/0xc1: over-long 2-byte form.
			if c < 0xc0 {
				return i, ErrExpectedContinuationByte
			}
			return i, ErrOverLongUTF8Sequence
		case c < 0xe0:
			if i+1 >= n || !isContinuation(s[i+1]) {
				return i, ErrExpectedContinuationByte
			}
			i += 2
		case c < 0xf0:
			if i+1 >= n || !isContinuation(s[i+1]) {
				return i, ErrExpectedContinuationByte
			}
			if c == 0xe0 && s[i+1] < 0xa0 {
				return i, ErrOverLongUTF8Sequence
			}
			if c == 0xed && s[i+1] >= 0xa0 {
				// U+D800..U+DFFF encoded directly.
				if s[i+1] < 0xb0 {
					return i, ErrUnpairedHighSurrogate
				}
				return i, ErrIllegalSurrogateValue
			}
			if i+2 >= n || !isContinuation(s[i+2]) {
				return i, ErrExpectedContinuationByte
			}
			i += 3
		case c < 0xf5:
			if i+1 >= n || !isContinuation(s[i+1]) {
				return i, ErrExpectedContinuationByte
			}
			if c == 0xf0 && s[i+1] < 0x90 {
				return i, ErrOverLongUTF8Sequence
			}
			if c == 0xf4 && s[i+1] >= 0x90 {
				return i, ErrIllegalCodepoint
			}
			if i+2 >= n || !isContinuation(s[i+2]) {
				return i, ErrExpectedContinuationByte
			}
			if i+3 >= n || !isContinuation(s[i+3]) {
				return i, ErrExpectedContinuationByte
			}
			i += 4
		default:
			// 0xf5..0xff would encode past U+10FFFF.
			return i, ErrIllegalCodepoint
		}
	}
	return n, 0
}

func isContinuation(c byte) bool { return c&0xc0 == 0x80 }

// appendRune writes cp to dst as UTF-8. cp is trusted to be a valid
// scalar value by the time it gets here.
func appendRune(dst []byte, cp uint32) []byte {
	switch {
	case cp < 0x80:
		return append(dst, byte(cp))
	case cp < 0x800:
		return append(dst, 0xc0|byte(cp>>6), 0x80|byte(cp&0x3f))
	case cp < 0x10000:
		return append(dst, 0xe0|byte(cp>>12), 0x80|byte(cp>>6&0x3f), 0x80|byte(cp&0x3f))
	default:
		return append(dst, 0xf0|byte(cp>>18), 0x80|byte(cp>>12&0x3f), 0x80|byte(cp>>6&0x3f), 0x80|byte(cp&0x3f))
	}
}
