package proxymakers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Envelope is the top-level shape of every API response body.
type Envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// Response is a decoded API response. It is shared by all typed wrappers.
//
// When the body is not a JSON envelope the response is degraded: Data
// returns the raw body text, Decoded reports false and Status, Envelope and
// the typed getters return an error wrapping ErrUndecodedPayload.
// StatusCode is always available.
type Response struct {
	httpResponse *http.Response
	body         []byte
	envelope     *Envelope
	data         any
	decodeErr    error
}

// NewResponse decodes body as an envelope. httpResponse may be nil.
func NewResponse(httpResponse *http.Response, body []byte) *Response {
	r := &Response{
		httpResponse: httpResponse,
		body:         body,
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		r.decodeErr = fmt.Errorf("%w: %w", ErrUndecodedPayload, err)
		r.data = string(body)
		return r
	}

	if len(env.Data) > 0 {
		var data any
		if err := json.Unmarshal(env.Data, &data); err != nil {
			r.decodeErr = fmt.Errorf("%w: data: %w", ErrUndecodedPayload, err)
			r.data = string(body)
			return r
		}
		r.data = data
	}
	r.envelope = &env

	return r
}

// Data returns the decoded data field, or the raw body text when degraded.
func (r *Response) Data() any {
	return r.data
}

// Decoded reports whether the body was a JSON envelope
func (r *Response) Decoded() bool {
	return r.decodeErr == nil
}

// DecodeErr returns why the body could not be decoded, or nil
func (r *Response) DecodeErr() error {
	return r.decodeErr
}

// Status returns the envelope's status field
func (r *Response) Status() (string, error) {
	if r.decodeErr != nil {
		return "", r.decodeErr
	}
	return r.envelope.Status, nil
}

// Envelope returns the full decoded envelope
func (r *Response) Envelope() (*Envelope, error) {
	if r.decodeErr != nil {
		return nil, r.decodeErr
	}
	return r.envelope, nil
}

// StatusCode returns the HTTP status code of the response
func (r *Response) StatusCode() int {
	if r.httpResponse == nil {
		return 0
	}
	return r.httpResponse.StatusCode
}

// HTTPResponse returns the underlying HTTP response. Its body has already been read.
func (r *Response) HTTPResponse() *http.Response {
	return r.httpResponse
}

// Body returns the raw response body
func (r *Response) Body() []byte {
	return r.body
}

// Field returns the named field of an object payload. It returns "" when the
// payload is not an object, the field is absent, or its value is null.
// Prefer the typed getters; Field exists for fields they do not cover.
func (r *Response) Field(name string) any {
	obj, ok := r.data.(map[string]any)
	if !ok {
		return ""
	}
	return Fields(obj).Get(name)
}

// decodeData unmarshals the raw data field into v
func (r *Response) decodeData(v any) error {
	if r.decodeErr != nil {
		return r.decodeErr
	}
	if len(r.envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.envelope.Data, v); err != nil {
		return fmt.Errorf("%w: unexpected data shape: %w", ErrUndecodedPayload, err)
	}
	return nil
}

// view binds a Response to the typed payload of one operation
type view[T any] struct {
	*Response
	payload T
	err     error
}

func newView[T any](resp *Response) view[T] {
	v := view[T]{Response: resp}
	v.err = resp.decodeData(&v.payload)
	return v
}

// Payload returns the typed data of the response
func (v view[T]) Payload() (T, error) {
	return v.payload, v.err
}
