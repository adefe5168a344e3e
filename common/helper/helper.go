package helper

import (
	"fmt"
	"time"

	"github.com/testgen-ai/testgen/common/ctxkey"
	"github.com/testgen-ai/testgen/common/random"
)

// RequestIdKey is the header and context key carrying the request id.
const RequestIdKey = ctxkey.RequestId

// GetTimeString returns a sortable timestamp with nanosecond suffix.
func GetTimeString() string {
	now := time.Now()
	return fmt.Sprintf("%s%d", now.Format("20060102150405"), now.UnixNano()%1e9)
}

// GenRequestID returns a new request id.
func GenRequestID() string {
	return GetTimeString() + random.GetRandomNumberString(8)
}

// MessageWithRequestId appends the request id to an error message so callers can report it.
func MessageWithRequestId(message string, id string) string {
	if id == "" {
		return message
	}
	return fmt.Sprintf("%s (request id: %s)", message, id)
}
