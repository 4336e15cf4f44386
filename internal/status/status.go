package status

import "strings"

// Codes reported by server in response header
const (
	OK              = uint32(200)
	InvalidRoute    = uint32(302)
	InvalidArgument = uint32(400)
	Unauthorized    = uint32(401)
	NotFound        = uint32(404)
	TooManyRequests = uint32(429)
	InternalError   = uint32(500)
)

const tableNotFound = "table not found"

func IsOK(code uint32) bool {
	return code == OK
}

// IsStaleRoute reports whether the contacted node does not own the requested table anymore.
// Server reports it either explicitly with InvalidRoute or as internal error about missing table.
func IsStaleRoute(code uint32, msg string) bool {
	switch code {
	case InvalidRoute:
		return true
	case InternalError:
		return strings.Contains(strings.ToLower(msg), tableNotFound)
	default:
		return false
	}
}

func Name(code uint32) string {
	switch code {
	case OK:
		return "OK"
	case InvalidRoute:
		return "InvalidRoute"
	case InvalidArgument:
		return "InvalidArgument"
	case Unauthorized:
		return "Unauthorized"
	case NotFound:
		return "NotFound"
	case TooManyRequests:
		return "TooManyRequests"
	case InternalError:
		return "InternalError"
	default:
		return "Unknown"
	}
}
