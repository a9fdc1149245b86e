package system

import "encoding/binary"

const (
	evKey = 0x01

	// Linux input-event-codes.h
	keyF4 = 62
)

// eventLayout describes struct input_event: timeval, u16 type, u16 code, s32 value.
type eventLayout struct {
	tvSize int
	size   int
}

func newEventLayout(tvSize int) eventLayout {
	if tvSize <= 0 {
		tvSize = 16
	}
	return eventLayout{tvSize: tvSize, size: tvSize + 8}
}

// containsKeyPress reports whether buf holds a key-down record for code.
// Trailing partial records are ignored.
func (l eventLayout) containsKeyPress(buf []byte, code uint16) bool {
	for off := 0; off+l.size <= len(buf); off += l.size {
		rec := buf[off : off+l.size]
		typ := binary.LittleEndian.Uint16(rec[l.tvSize:])
		c := binary.LittleEndian.Uint16(rec[l.tvSize+2:])
		value := int32(binary.LittleEndian.Uint32(rec[l.tvSize+4:]))
		if typ == evKey && c == code && value == 1 {
			return true
		}
	}
	return false
}
