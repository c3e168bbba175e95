package protocol

import (
	"errors"
	"testing"
)

func TestLabels(t *testing.T) {
	got := Labels()
	want := []Label{Red, Green, Blue, Yellow}
	if len(got) != len(want) {
		t.Fatalf("len(Labels()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Labels()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// Returned slice is a copy
	got[0] = "purple"
	if Labels()[0] != Red {
		t.Error("Labels() exposed internal state")
	}
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		in      string
		want    Label
		wantErr bool
	}{
		{"red", Red, false},
		{"green", Green, false},
		{"blue", Blue, false},
		{"yellow", Yellow, false},
		{"off", "", true},
		{"RED", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseLabel(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownLabel) {
				t.Errorf("ParseLabel(%q) error = %v, want ErrUnknownLabel", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseLabel(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}
