package device

import (
	"sync"

	"github.com/rickgao/led-remote/internal/protocol"
)

// UDP packet layout.
const (
	PacketMagic = 0x4A
	PacketSize  = 2
)

// udpCodes maps the UDP code byte to a label. The order differs from the
// label order; this is what the firmware uses.
var udpCodes = map[byte]protocol.Label{
	1: protocol.Red,
	2: protocol.Yellow,
	3: protocol.Green,
	4: protocol.Blue,
}

// LabelForCode returns the label toggled by a UDP code byte.
func LabelForCode(code byte) (protocol.Label, bool) {
	l, ok := udpCodes[code]
	return l, ok
}

// Strip is the lit state of the LED strip: off or one label.
type Strip struct {
	mu  sync.RWMutex
	lit protocol.Label // Empty when off
}

// NewStrip creates a strip that is off.
func NewStrip() *Strip {
	return &Strip{}
}

// Status returns the label that is lit, or protocol.StatusOff.
func (s *Strip) Status() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statusLocked()
}

// Toggle lights label, or turns the strip off when label is already lit.
// Labels outside the set leave the strip unchanged. It returns the resulting
// status.
func (s *Strip) Toggle(label protocol.Label) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if label.Valid() {
		if s.lit == label {
			s.lit = ""
		} else {
			s.lit = label
		}
	}
	return s.statusLocked()
}

func (s *Strip) statusLocked() string {
	if s.lit == "" {
		return protocol.StatusOff
	}
	return string(s.lit)
}

// ParsePacket decodes a UDP control packet.
func ParsePacket(p []byte) (protocol.Label, bool) {
	if len(p) != PacketSize || p[0] != PacketMagic {
		return "", false
	}
	return LabelForCode(p[1])
}
