package client

import (
	"fmt"
	"net"
	"time"

	"github.com/kelcecil/lifxlan-go/internal/logutil"
	"github.com/kelcecil/lifxlan-go/internal/protocol"
	"golang.org/x/sys/unix"
)

// recvBufferSize is large enough for every payload this package knows
// how to decode; a bigger incoming datagram would be truncated by
// ReadFromUDP, which is why 128 bytes of headroom is kept.
const recvBufferSize = 128

// Transport wraps a single UDP socket and implements the three request
// shapes the protocol needs: unicast send-and-receive, unicast
// fire-and-forget, and broadcast collect-until-timeout. It is not safe
// for concurrent use, matching the client's single-threaded design.
type Transport struct {
	conn          *net.UDPConn
	broadcastAddr *net.UDPAddr
}

// defaultBroadcastAddr is the IPv4 limited broadcast address LIFX
// discovery uses, on the protocol's well-known UDP port.
var defaultBroadcastAddr = &net.UDPAddr{IP: net.IPv4bcast, Port: 56700}

// NewTransport wraps an already-bound UDP connection.
func NewTransport(conn *net.UDPConn) *Transport {
	return &Transport{conn: conn, broadcastAddr: defaultBroadcastAddr}
}

// Close releases the underlying socket.
func (t *Transport) Close() error {
	return t.conn.Close()
}

// SetReadTimeout sets the deadline used by every subsequent receive.
// A zero duration clears the deadline (blocks indefinitely).
func (t *Transport) SetReadTimeout(d time.Duration) error {
	if d <= 0 {
		return t.conn.SetReadDeadline(time.Time{})
	}
	return t.conn.SetReadDeadline(time.Now().Add(d))
}

// SendAndReceiveOne sends packet to dest, reads exactly one response, and
// decodes it. Broadcast mode is forced off for the duration of the call
// and the socket's prior broadcast setting is restored on every exit
// path, per the protocol's shared-resource policy.
func (t *Transport) SendAndReceiveOne(dest *net.UDPAddr, packet protocol.Packet) (protocol.Packet, error) {
	restore, err := t.withBroadcast(false)
	if err != nil {
		return protocol.Packet{}, err
	}
	defer restore()

	if err := t.send(dest, packet); err != nil {
		return protocol.Packet{}, err
	}

	buf := make([]byte, recvBufferSize)
	n, _, err := t.conn.ReadFromUDP(buf)
	if err != nil {
		return protocol.Packet{}, fmt.Errorf("client: receiving response: %w", err)
	}
	return protocol.ParsePacket(buf[:n])
}

// SendNoResponse sends packet to dest and returns without reading,
// for fire-and-forget commands such as SetPower.
func (t *Transport) SendNoResponse(dest *net.UDPAddr, packet protocol.Packet) error {
	restore, err := t.withBroadcast(false)
	if err != nil {
		return err
	}
	defer restore()

	return t.send(dest, packet)
}

// BroadcastSendAndCollect sends packet to the limited broadcast address
// and decodes every response until a read times out, which signals "no
// more responders" rather than an error. The caller must have configured
// a read timeout via SetReadTimeout before calling this.
func (t *Transport) BroadcastSendAndCollect(packet protocol.Packet) ([]protocol.Packet, []*net.UDPAddr, error) {
	restore, err := t.withBroadcast(true)
	if err != nil {
		return nil, nil, err
	}
	defer restore()

	if err := t.send(t.broadcastAddr, packet); err != nil {
		return nil, nil, err
	}

	var packets []protocol.Packet
	var senders []*net.UDPAddr
	buf := make([]byte, recvBufferSize)
	for {
		n, src, err := t.conn.ReadFromUDP(buf)
		if err != nil {
			if ne, ok := err.(net.Error); !ok || !ne.Timeout() {
				return nil, nil, fmt.Errorf("client: receiving broadcast response: %w", err)
			}
			logutil.Transport().WithField("responders", len(packets)).Debug("discovery collection ended")
			return packets, senders, nil
		}
		p, err := protocol.ParsePacket(buf[:n])
		if err != nil {
			continue
		}
		packets = append(packets, p)
		senders = append(senders, src)
	}
}

func (t *Transport) send(dest *net.UDPAddr, packet protocol.Packet) error {
	buf, err := packet.MarshalBinary()
	if err != nil {
		return fmt.Errorf("client: encoding packet: %w", err)
	}
	if _, err := t.conn.WriteToUDP(buf, dest); err != nil {
		return fmt.Errorf("client: sending packet: %w", err)
	}
	return nil
}

// withBroadcast saves the socket's current SO_BROADCAST flag, sets it to
// want, and returns a closure that restores the saved value. The
// standard library net package exposes no getter/setter for this option,
// so it is read and written directly via the raw file descriptor.
func (t *Transport) withBroadcast(want bool) (restore func(), err error) {
	raw, err := t.conn.SyscallConn()
	if err != nil {
		return nil, fmt.Errorf("client: accessing raw socket: %w", err)
	}

	var prior int
	var getErr, setErr error
	if err := raw.Control(func(fd uintptr) {
		prior, getErr = getsockoptBroadcast(int(fd))
		if getErr != nil {
			return
		}
		setErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, boolToInt(want))
	}); err != nil {
		return nil, fmt.Errorf("client: controlling raw socket: %w", err)
	}
	if getErr != nil {
		return nil, fmt.Errorf("client: reading SO_BROADCAST: %w", getErr)
	}
	if setErr != nil {
		return nil, fmt.Errorf("client: setting SO_BROADCAST: %w", setErr)
	}

	return func() {
		_ = raw.Control(func(fd uintptr) {
			_ = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, prior)
		})
	}, nil
}

func getsockoptBroadcast(fd int) (int, error) {
	return unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_BROADCAST)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
