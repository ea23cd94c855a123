package client

import "errors"

// ErrUnexpectedResponse is returned when a device replies with a message
// type other than the one the request required.
var ErrUnexpectedResponse = errors.New("client: unexpected response type")
