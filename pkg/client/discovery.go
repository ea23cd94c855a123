package client

import (
	"fmt"

	"github.com/kelcecil/lifxlan-go/internal/logutil"
	"github.com/kelcecil/lifxlan-go/internal/protocol"
)

// getDeviceAddresses broadcasts GetService and collects every responder
// into a DeviceAddress set, replacing each responder's ephemeral source
// port with the port its StateService payload actually advertises. The
// caller is expected to have already set the transport's read deadline
// to the discovery budget it wants (Client.Discover does this from
// Config.DiscoveryTimeout).
func getDeviceAddresses(t *Transport, source uint32, sequence uint8) ([]DeviceAddress, error) {
	req := protocol.NewBuilder(protocol.Empty{MsgType: protocol.GetService}).
		Source(source).
		ResponseRequired(true).
		Sequence(sequence).
		Build()

	responses, senders, err := t.BroadcastSendAndCollect(req)
	if err != nil {
		return nil, err
	}

	addrs := make([]DeviceAddress, 0, len(responses))
	for i, resp := range responses {
		svc, ok := protocol.Payload[protocol.StateServicePayload](resp.Message)
		if !ok {
			return nil, fmt.Errorf("%w: expected StateService, got %s", ErrUnexpectedResponse, resp.Message.Type())
		}
		endpoint, err := NewSocketEndpoint(senders[i])
		if err != nil {
			continue
		}
		var mac MacAddress
		copy(mac[:], resp.Header.Target[:6])
		addrs = append(addrs, DeviceAddress{Mac: mac, Endpoint: endpoint.WithPort(uint16(svc.Port))})
	}
	logutil.Discover().WithField("count", len(addrs)).Debug("discovery collected responders")
	return addrs, nil
}

// getLabel, getGroup and getLocation each unicast the corresponding Get*
// request to address and expect the matching State* response.

func getLabel(t *Transport, address DeviceAddress, source uint32, sequence uint8) (StateLabelResult, error) {
	req := deviceRequest(protocol.GetLabel, address, source, sequence)
	resp, err := t.SendAndReceiveOne(address.Endpoint.UDPAddr(), req)
	if err != nil {
		return StateLabelResult{}, err
	}
	p, ok := protocol.Payload[protocol.StateLabelPayload](resp.Message)
	if !ok {
		return StateLabelResult{}, fmt.Errorf("%w: expected StateLabel, got %s", ErrUnexpectedResponse, resp.Message.Type())
	}
	return StateLabelResult{Label: p.Label}, nil
}

func getGroup(t *Transport, address DeviceAddress, source uint32, sequence uint8) (StateGroupResult, error) {
	req := deviceRequest(protocol.GetGroup, address, source, sequence)
	resp, err := t.SendAndReceiveOne(address.Endpoint.UDPAddr(), req)
	if err != nil {
		return StateGroupResult{}, err
	}
	p, ok := protocol.Payload[protocol.StateGroupPayload](resp.Message)
	if !ok {
		return StateGroupResult{}, fmt.Errorf("%w: expected StateGroup, got %s", ErrUnexpectedResponse, resp.Message.Type())
	}
	return StateGroupResult{Label: p.Label}, nil
}

func getLocation(t *Transport, address DeviceAddress, source uint32, sequence uint8) (StateLocationResult, error) {
	req := deviceRequest(protocol.GetLocation, address, source, sequence)
	resp, err := t.SendAndReceiveOne(address.Endpoint.UDPAddr(), req)
	if err != nil {
		return StateLocationResult{}, err
	}
	p, ok := protocol.Payload[protocol.StateLocationPayload](resp.Message)
	if !ok {
		return StateLocationResult{}, fmt.Errorf("%w: expected StateLocation, got %s", ErrUnexpectedResponse, resp.Message.Type())
	}
	return StateLocationResult{Label: p.Label}, nil
}

// StateLabelResult, StateGroupResult and StateLocationResult wrap just
// the field the client needs from each response; the wire payloads carry
// additional bookkeeping (group/location ids, update timestamps) this
// package does not yet surface to callers.
type (
	StateLabelResult    struct{ Label string }
	StateGroupResult    struct{ Label string }
	StateLocationResult struct{ Label string }
)

func deviceRequest(t protocol.Type, address DeviceAddress, source uint32, sequence uint8) protocol.Packet {
	return protocol.NewBuilder(protocol.Empty{MsgType: t}).
		Source(source).
		Target(address.Mac).
		ResponseRequired(true).
		Sequence(sequence).
		Build()
}
