package json

// DefaultMaxNestingDepth bounds container nesting when Options leaves
// MaxNestingDepth at zero.
const DefaultMaxNestingDepth = 1024

// Options configures the parser. The zero value is strict RFC 8259.
type Options struct {
	// AllowComments permits // and /* */ comments between tokens.
	AllowComments bool

	// AllowTrailingComma permits a comma before a closing bracket.
	AllowTrailingComma bool

	// LosslessNumber reports every number with a fraction or exponent as
	// a string event tagged bigdec instead of converting to float64.
	LosslessNumber bool

	// LosslessBignum reports a fractional number only when it overflows
	// the float64 range as a string event tagged bigdec.
	LosslessBignum bool

	// MaxNestingDepth bounds container nesting; zero means
	// DefaultMaxNestingDepth.
	MaxNestingDepth int

	// NaNString, PosInfString and NegInfString, when non-empty, name the
	// string literals that map to NaN, +Inf and -Inf double events when
	// they appear as values (never as keys). The encoder writes those
	// doubles back as the same strings.
	NaNString    string
	PosInfString string
	NegInfString string
}

func (o *Options) maxNestingDepth() int {
	if o.MaxNestingDepth > 0 {
		return o.MaxNestingDepth
	}
	return DefaultMaxNestingDepth
}
