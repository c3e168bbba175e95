package device

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ListenUDP opens the UDP control listener on addr and serves it until ctx
// is cancelled.
func (s *Server) ListenUDP(ctx context.Context, addr string) error {
	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return fmt.Errorf("listen udp %s: %w", addr, err)
	}
	s.logger.Info("udp listener started", "addr", conn.LocalAddr().String())
	return s.ServeUDP(ctx, conn)
}

// ServeUDP reads control packets from conn until ctx is cancelled. Packets
// that are not exactly [0x4A, code] with a known code are ignored. conn is
// closed on return.
func (s *Server) ServeUDP(ctx context.Context, conn net.PacketConn) error {
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()
	defer conn.Close()

	buf := make([]byte, 64)
	for {
		n, from, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("read udp: %w", err)
		}

		label, ok := ParsePacket(buf[:n])
		if !ok {
			s.logger.Debug("ignoring udp packet", "from", from.String(), "size", n)
			continue
		}
		s.Toggle(label)
	}
}
