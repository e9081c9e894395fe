package cpu

// Flag is a bit of the flags register.
type Flag uint8

const (
	FLAG_NONE    = Flag(0)      // No flags.
	FLAG_ZERO    = Flag(1 << 0) // Compared values were equal.
	FLAG_GREATER = Flag(1 << 1) // First compared value was greater.
)

// Cond is a branch condition over the flags written by Compare.
type Cond int

//go:generate go tool stringer -linecomment -type=Cond
const (
	COND_EQUAL            = Cond(0) // eq
	COND_NOT_EQUAL        = Cond(1) // ne
	COND_GREATER          = Cond(2) // gt
	COND_LESS             = Cond(3) // lt
	COND_LESS_OR_EQUAL    = Cond(4) // le
	COND_GREATER_OR_EQUAL = Cond(5) // ge
)

// CondMask is the flag test for a condition. The condition holds when
// all True bits are set and all False bits are clear, inverted if Negate.
type CondMask struct {
	True   Flag
	False  Flag
	Negate bool
}

// CondMasks is the flag test for each condition.
//
// Greater-or-equal is the negation of less. Reusing the less-or-equal
// masks for it would test "not greater", which is wrong for a > b.
var CondMasks = map[Cond]CondMask{
	COND_EQUAL:            {True: FLAG_ZERO, False: FLAG_GREATER},
	COND_NOT_EQUAL:        {True: FLAG_NONE, False: FLAG_ZERO},
	COND_GREATER:          {True: FLAG_GREATER, False: FLAG_ZERO},
	COND_LESS:             {True: FLAG_NONE, False: FLAG_ZERO | FLAG_GREATER},
	COND_LESS_OR_EQUAL:    {True: FLAG_NONE, False: FLAG_GREATER},
	COND_GREATER_OR_EQUAL: {True: FLAG_NONE, False: FLAG_ZERO | FLAG_GREATER, Negate: true},
}

// Holds evaluates the mask against a flags value.
func (cm CondMask) Holds(flags Flag) bool {
	return flagTest(flags, cm.True, cm.False) != cm.Negate
}

// MicroOp returns the conditional jump micro-op for the mask.
func (cm CondMask) MicroOp() MicroOp {
	if cm.Negate {
		return MicroJumpIfNotFlag(cm.True, cm.False)
	}
	return MicroJumpIfFlag(cm.True, cm.False)
}

// flagTest is the JumpIfFlag condition.
func flagTest(flags Flag, trueMask Flag, falseMask Flag) bool {
	return (flags&trueMask) == trueMask && (flags&falseMask) == 0
}

// Compare returns the flags describing a against b.
func Compare(a, b Value) (flags Flag) {
	switch a.Cmp(b) {
	case 0:
		flags = FLAG_ZERO
	case 1:
		flags = FLAG_GREATER
	}
	return
}
