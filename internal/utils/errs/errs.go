package errs

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTokenNotFound      = errors.New("pending request not found")
	ErrMessageNotModified = errors.New("message is not modified")
	ErrNoServers          = errors.New("no aria2 server configured")
	ErrTorrentTooLarge    = errors.New("torrent file too large")
	ErrRPC                = errors.New("aria2 rpc error")
	ErrServerNotFound     = errors.New("server not found")
	ErrInvalidAction      = errors.New("invalid action")
)

// RPCError is a failure reported by the daemon itself. The message is kept
// verbatim so it can be shown to the user.
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

func (e *RPCError) Is(target error) bool {
	return target == ErrRPC
}
