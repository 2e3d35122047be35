package api

import (
	"encoding/json"
	"fmt"
)

// AuthError reports rejected credentials on login. Ambient 401s on other
// calls surface as a *RequestError; the session manager reacts to those
// through the unauthorized hook, not through error inspection.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "incorrect credentials"
}

// RequestError is any backend call that failed: transport errors carry a
// zero Status and a wrapped cause, HTTP-level rejections carry the status
// code and the backend's detail message when one was provided. These are
// non-fatal and retryable by the operator.
type RequestError struct {
	Status int
	Detail string
	Err    error
}

func (e *RequestError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("request failed: %v", e.Err)
	case e.Detail != "":
		return fmt.Sprintf("request rejected (%d): %s", e.Status, e.Detail)
	default:
		return fmt.Sprintf("request rejected (%d)", e.Status)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

// Unauthorized reports whether the backend denied authorization.
func (e *RequestError) Unauthorized() bool { return e.Status == 401 }

// detailBody matches the backend's error envelope.
type detailBody struct {
	Detail string `json:"detail"`
}

// decodeDetail extracts the backend's detail message from an error body,
// returning "" when the body is not the expected envelope.
func decodeDetail(body []byte) string {
	var d detailBody
	if err := json.Unmarshal(body, &d); err != nil {
		return ""
	}
	return d.Detail
}
