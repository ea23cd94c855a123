// Package testutil provides a loopback UDP responder used by transport-
// and client-level tests to stand in for a LIFX device without touching
// a real network.
package testutil

import (
	"net"
	"testing"

	"github.com/kelcecil/lifxlan-go/internal/protocol"
	"github.com/stretchr/testify/require"
)

// NewMockUDPServer binds a UDP socket on the loopback interface and
// invokes handler for every well-formed packet it receives, handing the
// handler the decoded packet and the sender's address so it can craft a
// response with conn.WriteToUDP. Malformed packets are silently dropped,
// matching how a real device would ignore garbage on the wire.
func NewMockUDPServer(t *testing.T, handler func(*protocol.Packet, *net.UDPAddr)) (*net.UDPConn, *net.UDPAddr) {
	t.Helper()

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	go func() {
		buf := make([]byte, 256)
		for {
			n, src, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}

			packet, err := protocol.ParsePacket(buf[:n])
			if err != nil {
				continue
			}
			handler(&packet, src)
		}
	}()

	return conn, conn.LocalAddr().(*net.UDPAddr)
}
