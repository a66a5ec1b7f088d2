package shelly

import "errors"

var (
	// ErrAPIError is returned when the cloud answers with isok:false.
	ErrAPIError = errors.New("shelly: api error")

	// ErrBadResponse is returned when the cloud answer cannot be used:
	// non-200 status, undecodable body, or a missing device_status.
	ErrBadResponse = errors.New("shelly: bad response")
)
