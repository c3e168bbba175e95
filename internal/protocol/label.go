package protocol

import "fmt"

// Label identifies one of the four indicators.
type Label string

const (
	Red    Label = "red"
	Green  Label = "green"
	Blue   Label = "blue"
	Yellow Label = "yellow"
)

// StatusOff is reported by the device when no indicator is lit.
const StatusOff = "off"

var labels = [...]Label{Red, Green, Blue, Yellow}

// Labels returns the fixed label set in display order.
func Labels() []Label {
	out := make([]Label, len(labels))
	copy(out, labels[:])
	return out
}

// ParseLabel validates s against the label set.
func ParseLabel(s string) (Label, error) {
	for _, l := range labels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLabel, s)
}

// Valid reports whether l is one of the four labels.
func (l Label) Valid() bool {
	_, err := ParseLabel(string(l))
	return err == nil
}

func (l Label) String() string {
	return string(l)
}
