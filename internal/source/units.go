package source

import (
	"unicode/utf16"
	"unicode/utf8"
)

// UnitLen returns the length of s in UTF-16 code units.
func UnitLen(s string) int {
	n := 0
	for _, r := range s {
		n += unitsOf(r)
	}
	return n
}

func unitsOf(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	// Invalid runes decode as utf8.RuneError, one unit.
	return 1
}

// UnitOffsets converts UTF-8 byte offsets into UTF-16 code unit offsets. Syntax trees report
// byte positions while V8 reports code units.
type UnitOffsets struct {
	units []int // units[b] is the unit offset of byte b; nil for ASCII text
	size  int
}

// NewUnitOffsets builds the conversion table for text.
func NewUnitOffsets(text string) *UnitOffsets {
	uo := &UnitOffsets{size: len(text)}
	ascii := true
	for i := 0; i < len(text); i++ {
		if text[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return uo
	}

	uo.units = make([]int, len(text)+1)
	unit := 0
	for b := 0; b < len(text); {
		r, width := utf8.DecodeRuneInString(text[b:])
		for k := 0; k < width; k++ {
			uo.units[b+k] = unit
		}
		unit += unitsOf(r)
		b += width
	}
	uo.units[len(text)] = unit
	return uo
}

// ByteToUnit converts a byte offset. Offsets past the end map to the end of the text; an
// offset inside a multi-byte sequence maps to the start of its rune.
func (uo *UnitOffsets) ByteToUnit(b int) int {
	if b < 0 {
		b = 0
	}
	if b > uo.size {
		b = uo.size
	}
	if uo.units == nil {
		return b
	}
	return uo.units[b]
}
