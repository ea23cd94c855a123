package protocol

import "strconv"

// Type is a LIFX message type code, unique within the Device and Light
// message families (the families share one numeric namespace on the wire).
type Type uint16

// Device message types.
const (
	GetService        Type = 2
	StateService      Type = 3
	GetHostInfo       Type = 12
	StateHostInfo     Type = 13
	GetHostFirmware   Type = 14
	StateHostFirmware Type = 15
	GetWifiInfo       Type = 16
	StateWifiInfo     Type = 17
	GetWifiFirmware   Type = 18
	StateWifiFirmware Type = 19
	DeviceGetPower    Type = 20
	DeviceSetPower    Type = 21
	DeviceStatePower  Type = 22
	GetLabel          Type = 23
	SetLabel          Type = 24
	StateLabel        Type = 25
	GetVersion        Type = 32
	StateVersion      Type = 33
	GetInfo           Type = 34
	StateInfo         Type = 35
	Acknowledgement   Type = 45
	GetLocation       Type = 48
	SetLocation       Type = 49
	StateLocation     Type = 50
	GetGroup          Type = 51
	SetGroup          Type = 52
	StateGroup        Type = 53
	// EchoRequest is used for both the echo request and the device's echo
	// reply: the device mirrors the same type code back with the same
	// payload, there is no distinct EchoResponse code.
	EchoRequest Type = 59
)

// Light message types.
const (
	LightGet                 Type = 101
	LightSetColor            Type = 102
	LightSetWaveform         Type = 103
	LightState               Type = 107
	LightGetPower            Type = 116
	LightSetPower            Type = 117
	LightStatePower          Type = 118
	LightSetWaveformOptional Type = 119
	LightGetInfrared         Type = 120
	LightStateInfrared       Type = 121
	LightSetInfrared         Type = 122
)

var typeNames = map[Type]string{
	GetService:               "GetService",
	StateService:             "StateService",
	GetHostInfo:              "GetHostInfo",
	StateHostInfo:            "StateHostInfo",
	GetHostFirmware:          "GetHostFirmware",
	StateHostFirmware:        "StateHostFirmware",
	GetWifiInfo:              "GetWifiInfo",
	StateWifiInfo:            "StateWifiInfo",
	GetWifiFirmware:          "GetWifiFirmware",
	StateWifiFirmware:        "StateWifiFirmware",
	DeviceGetPower:           "GetPower",
	DeviceSetPower:           "SetPower",
	DeviceStatePower:         "StatePower",
	GetLabel:                 "GetLabel",
	SetLabel:                 "SetLabel",
	StateLabel:               "StateLabel",
	GetVersion:               "GetVersion",
	StateVersion:             "StateVersion",
	GetInfo:                  "GetInfo",
	StateInfo:                "StateInfo",
	Acknowledgement:          "Acknowledgement",
	GetLocation:              "GetLocation",
	SetLocation:              "SetLocation",
	StateLocation:            "StateLocation",
	GetGroup:                 "GetGroup",
	SetGroup:                 "SetGroup",
	StateGroup:               "StateGroup",
	EchoRequest:              "EchoRequest",
	LightGet:                 "Light.Get",
	LightSetColor:            "Light.SetColor",
	LightSetWaveform:         "Light.SetWaveform",
	LightState:               "Light.State",
	LightGetPower:            "Light.GetPower",
	LightSetPower:            "Light.SetPower",
	LightStatePower:          "Light.StatePower",
	LightSetWaveformOptional: "Light.SetWaveformOptional",
	LightGetInfrared:         "Light.GetInfrared",
	LightStateInfrared:       "Light.StateInfrared",
	LightSetInfrared:         "Light.SetInfrared",
}

// String returns the human-readable name of t, or "Unknown(n)" if t is not
// one of the recognized type codes.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown(" + strconv.Itoa(int(t)) + ")"
}
