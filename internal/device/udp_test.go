package device

import (
	"context"
	"net"
	"testing"
	"time"
)

func TestServer_ServeUDP(t *testing.T) {
	s := NewServer(NewStrip(), nil)

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ServeUDP(ctx, pc) }()

	conn, err := net.Dial("udp", pc.LocalAddr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	waitStatus := func(want string) {
		t.Helper()
		deadline := time.Now().Add(time.Second)
		for s.strip.Status() != want && time.Now().Before(deadline) {
			time.Sleep(5 * time.Millisecond)
		}
		if got := s.strip.Status(); got != want {
			t.Fatalf("strip = %q, want %q", got, want)
		}
	}

	// Ignored packets first; the valid one after them proves they were read.
	conn.Write([]byte{0x4A, 9})
	conn.Write([]byte{0x00, 3})
	conn.Write([]byte{0x4A, 3, 0})
	conn.Write([]byte{0x4A, 3})
	waitStatus("green")

	conn.Write([]byte{0x4A, 2})
	waitStatus("yellow")

	conn.Write([]byte{0x4A, 2})
	waitStatus("off")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ServeUDP returned %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("ServeUDP did not return after cancel")
	}
}
