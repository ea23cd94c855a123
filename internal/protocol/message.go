package protocol

// Message is a decoded LIFX payload paired with the type code it was
// built or parsed as. Every concrete payload in this package, plus the
// two generic fallbacks below, implements Message.
type Message interface {
	// Type returns the numeric message type code this payload carries.
	Type() Type
	// MarshalBinary encodes the payload body (not the header).
	MarshalBinary() ([]byte, error)
}

// Empty is a Message with no payload body, such as GetService or
// Light.Get.
type Empty struct {
	MsgType Type
}

func (m Empty) Type() Type                    { return m.MsgType }
func (m Empty) MarshalBinary() ([]byte, error) { return nil, nil }

// Bytes is a Message with a non-empty body whose type code has no typed
// payload decoder in this package (an unknown code, or a known one whose
// layout is not parsed); the raw bytes are preserved so a caller can
// still act on or log the message.
type Bytes struct {
	MsgType Type
	Raw     []byte
}

func (m Bytes) Type() Type                     { return m.MsgType }
func (m Bytes) MarshalBinary() ([]byte, error) { return m.Raw, nil }

// typedMessage wraps a payload codec (Hsbk, StateLabelPayload, ...) with
// the Type it corresponds to, so the dispatcher in DecodeMessage can
// return a single Message value per recognized type code.
type typedMessage struct {
	t       Type
	payload interface{ MarshalBinary() ([]byte, error) }
}

func (m typedMessage) Type() Type                     { return m.t }
func (m typedMessage) MarshalBinary() ([]byte, error) { return m.payload.MarshalBinary() }

// Payload unwraps the concrete payload value carried by a decoded
// message built through DecodeMessage, e.g.:
//
//	if sl, ok := protocol.Payload[protocol.StateLabelPayload](msg); ok { ... }
func Payload[T any](m Message) (T, bool) {
	var zero T
	tm, ok := m.(typedMessage)
	if !ok {
		return zero, false
	}
	v, ok := tm.payload.(T)
	return v, ok
}

// NewMessage wraps a concrete payload value as a Message carrying type t.
// Used by callers building outbound packets, e.g.
// NewMessage(GetService, nil) or NewMessage(LightSetColor, LightSetColorPayload{...}).
func NewMessage(t Type, payload interface{ MarshalBinary() ([]byte, error) }) Message {
	if payload == nil {
		return Empty{MsgType: t}
	}
	return typedMessage{t: t, payload: payload}
}

// payloadDecoder unmarshals body into a fresh value of some concrete
// payload type and hands back that value (not a pointer to it) boxed as
// a marshaler, so Payload[T] can later type-assert against T directly.
type payloadDecoder func(body []byte) (interface{ MarshalBinary() ([]byte, error) }, error)

// payloadFactories maps a recognized type code to its decoder. Each
// decoder unmarshals into a pointer (UnmarshalBinary needs one to
// mutate fields) but returns the dereferenced value, since that's what
// Payload[T] type-asserts against.
var payloadFactories = map[Type]payloadDecoder{
	StateService: func(body []byte) (interface{ MarshalBinary() ([]byte, error) }, error) {
		var p StateServicePayload
		err := p.UnmarshalBinary(body)
		return p, err
	},
	StateLabel: func(body []byte) (interface{ MarshalBinary() ([]byte, error) }, error) {
		var p StateLabelPayload
		err := p.UnmarshalBinary(body)
		return p, err
	},
	StateLocation: func(body []byte) (interface{ MarshalBinary() ([]byte, error) }, error) {
		var p StateLocationPayload
		err := p.UnmarshalBinary(body)
		return p, err
	},
	StateGroup: func(body []byte) (interface{ MarshalBinary() ([]byte, error) }, error) {
		var p StateGroupPayload
		err := p.UnmarshalBinary(body)
		return p, err
	},
	StateHostFirmware: func(body []byte) (interface{ MarshalBinary() ([]byte, error) }, error) {
		var p StateHostFirmwarePayload
		err := p.UnmarshalBinary(body)
		return p, err
	},
	StateWifiFirmware: func(body []byte) (interface{ MarshalBinary() ([]byte, error) }, error) {
		var p StateWifiFirmwarePayload
		err := p.UnmarshalBinary(body)
		return p, err
	},
	StateHostInfo: func(body []byte) (interface{ MarshalBinary() ([]byte, error) }, error) {
		var p StateHostInfoPayload
		err := p.UnmarshalBinary(body)
		return p, err
	},
	StateWifiInfo: func(body []byte) (interface{ MarshalBinary() ([]byte, error) }, error) {
		var p StateWifiInfoPayload
		err := p.UnmarshalBinary(body)
		return p, err
	},
	StateVersion: func(body []byte) (interface{ MarshalBinary() ([]byte, error) }, error) {
		var p StateVersionPayload
		err := p.UnmarshalBinary(body)
		return p, err
	},
	StateInfo: func(body []byte) (interface{ MarshalBinary() ([]byte, error) }, error) {
		var p StateInfoPayload
		err := p.UnmarshalBinary(body)
		return p, err
	},
	DeviceStatePower: func(body []byte) (interface{ MarshalBinary() ([]byte, error) }, error) {
		var p DeviceStatePowerPayload
		err := p.UnmarshalBinary(body)
		return p, err
	},
	DeviceSetPower: func(body []byte) (interface{ MarshalBinary() ([]byte, error) }, error) {
		var p DeviceSetPowerPayload
		err := p.UnmarshalBinary(body)
		return p, err
	},
	EchoRequest: func(body []byte) (interface{ MarshalBinary() ([]byte, error) }, error) {
		var p EchoPayload
		err := p.UnmarshalBinary(body)
		return p, err
	},
	LightState: func(body []byte) (interface{ MarshalBinary() ([]byte, error) }, error) {
		var p LightStatePayload
		err := p.UnmarshalBinary(body)
		return p, err
	},
	LightSetColor: func(body []byte) (interface{ MarshalBinary() ([]byte, error) }, error) {
		var p LightSetColorPayload
		err := p.UnmarshalBinary(body)
		return p, err
	},
	LightSetPower: func(body []byte) (interface{ MarshalBinary() ([]byte, error) }, error) {
		var p LightSetPowerPayload
		err := p.UnmarshalBinary(body)
		return p, err
	},
}

// DecodeMessage dispatches on t: type codes with a typed payload decoder
// parse strictly (a payload length mismatch is a decode error) into their
// typed payload. Any other code, known (e.g. GetService) or unknown,
// becomes Empty when the body is zero-length and a Bytes fallback
// otherwise, so callers can still inspect or forward it.
func DecodeMessage(t Type, body []byte) (Message, error) {
	decode, ok := payloadFactories[t]
	if !ok {
		if len(body) == 0 {
			return Empty{MsgType: t}, nil
		}
		return Bytes{MsgType: t, Raw: append([]byte(nil), body...)}, nil
	}
	payload, err := decode(body)
	if err != nil {
		return nil, err
	}
	return typedMessage{t: t, payload: payload}, nil
}
