package client

import (
	"fmt"

	"github.com/kelcecil/lifxlan-go/internal/protocol"
)

// getState fetches a light's full reported state: color, power, label.
func getState(t *Transport, address DeviceAddress, source uint32, sequence uint8) (protocol.LightStatePayload, error) {
	req := deviceRequest(protocol.LightGet, address, source, sequence)
	resp, err := t.SendAndReceiveOne(address.Endpoint.UDPAddr(), req)
	if err != nil {
		return protocol.LightStatePayload{}, err
	}
	state, ok := protocol.Payload[protocol.LightStatePayload](resp.Message)
	if !ok {
		return protocol.LightStatePayload{}, fmt.Errorf("%w: expected Light.State, got %s", ErrUnexpectedResponse, resp.Message.Type())
	}
	return state, nil
}

// setPower is fire-and-forget: the protocol does not require an ack for
// a power change to take effect.
func setPower(t *Transport, address DeviceAddress, source uint32, sequence uint8, power protocol.Power, durationMs uint32) error {
	payload := protocol.LightSetPowerPayload{Power: power, Duration: durationMs}
	req := protocol.NewBuilder(protocol.NewMessage(protocol.LightSetPower, payload)).
		Source(source).
		Target(address.Mac).
		Sequence(sequence).
		Build()
	return t.SendNoResponse(address.Endpoint.UDPAddr(), req)
}

// setColor requests a color transition and waits for the device's
// acknowledging response, whose contents are discarded.
func setColor(t *Transport, address DeviceAddress, source uint32, sequence uint8, hsbk protocol.Hsbk, durationMs uint32) error {
	payload := protocol.LightSetColorPayload{Color: hsbk, Duration: durationMs}
	req := protocol.NewBuilder(protocol.NewMessage(protocol.LightSetColor, payload)).
		Source(source).
		Target(address.Mac).
		ResponseRequired(true).
		Sequence(sequence).
		Build()
	_, err := t.SendAndReceiveOne(address.Endpoint.UDPAddr(), req)
	return err
}
