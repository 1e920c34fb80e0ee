package response

const (
	CodeSuccess      = 1000
	CodeParamInvalid = 1001
	CodeUnauthorized = 1002
	CodeForbidden    = 1003
	CodeNotFound     = 1004
	CodeRateLimited  = 1005
	CodeInternal     = 1006
)

var msg = map[int]string{
	CodeSuccess:      "success",
	CodeParamInvalid: "invalid parameter",
	CodeUnauthorized: "unauthorized",
	CodeForbidden:    "forbidden",
	CodeNotFound:     "not found",
	CodeRateLimited:  "rate limit exceeded",
	CodeInternal:     "internal error",
}

// Message returns the canonical text for an application status code.
func Message(code int) string {
	if m, ok := msg[code]; ok {
		return m
	}
	return "unknown"
}
