package mcp

import (
	"github.com/rpggio/cookbook/internal/transport"
)

// toolError converts a service error into the error a tool reports. The SDK
// turns it into a result with IsError set, so the client sees the reason.
func toolError(err error) error {
	return transport.MapError(err)
}
