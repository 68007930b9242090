package response

import (
	"errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// CallErrorCode maps an error returned by a tool call to an exit code.
// Unknown tools and rejected arguments are usage errors; anything else is
// internal.
func CallErrorCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, mcp.ErrInvalidParams) || errors.Is(err, mcp.ErrMethodNotFound) {
		return ExitUsageErr
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "-32602"), strings.Contains(msg, "-32601"):
		return ExitUsageErr
	case strings.Contains(msg, "invalid params"), strings.Contains(msg, "method not found"):
		return ExitUsageErr
	case strings.Contains(msg, "tool") && strings.Contains(msg, "not found"):
		return ExitUsageErr
	}
	return ExitInternal
}
