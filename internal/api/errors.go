package api

import "errors"

var (
	// ErrNetworkFailure marks transport-level failures where no usable
	// response was received. Callers pick the fallback: the badge keeps its
	// previous value, the cart panel shows an empty/error state.
	ErrNetworkFailure = errors.New("network failure")

	// ErrAPIFailure marks responses that arrived but lacked success=true or
	// did not match the documented shape.
	ErrAPIFailure = errors.New("api failure")

	// ErrSessionCreation means no checkout session was obtained; nothing was
	// recorded and no navigation happened.
	ErrSessionCreation = errors.New("checkout session creation failed")
)
