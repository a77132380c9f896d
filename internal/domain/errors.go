package domain

import "errors"

// ErrorKind classifies a failed downstream interaction.
type ErrorKind string

const (
	// KindTimeout means the downstream did not answer before its deadline.
	KindTimeout ErrorKind = "timeout"
	// KindTransport covers connection, DNS and malformed-response failures.
	KindTransport ErrorKind = "transport_error"
	// KindUpstream means the downstream answered with a non-2xx status. The
	// answer is relayed, so this kind only tags logs.
	KindUpstream ErrorKind = "upstream_error"
	// KindInternal is a gateway-side failure.
	KindInternal ErrorKind = "internal_error"
)

// ErrMalformedResponse is wrapped when a downstream body is not valid JSON.
var ErrMalformedResponse = errors.New("malformed response")

// CallError is returned by every downstream interaction that failed.
type CallError struct {
	Kind    ErrorKind
	Service string
	Err     error
}

func (e *CallError) Error() string {
	if e.Kind == KindTimeout {
		return string(KindTimeout)
	}
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

func (e *CallError) Unwrap() error { return e.Err }

// KindOf extracts the ErrorKind of err, defaulting to KindInternal.
func KindOf(err error) ErrorKind {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindInternal
}
