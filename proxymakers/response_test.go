package proxymakers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func httpResponse(status int) *http.Response {
	return &http.Response{StatusCode: status, Header: http.Header{}}
}

func TestNewResponse(t *testing.T) {
	t.Run("structured envelope", func(t *testing.T) {
		resp := NewResponse(httpResponse(http.StatusOK), []byte(`{"status":"success","data":{"credit":12.5,"currency":"USD"}}`))

		assert.True(t, resp.Decoded())
		assert.NoError(t, resp.DecodeErr())
		assert.Equal(t, http.StatusOK, resp.StatusCode())

		status, err := resp.Status()
		require.NoError(t, err)
		assert.Equal(t, "success", status)

		env, err := resp.Envelope()
		require.NoError(t, err)
		assert.Equal(t, "success", env.Status)
		assert.JSONEq(t, `{"credit":12.5,"currency":"USD"}`, string(env.Data))

		assert.Equal(t, map[string]any{"credit": 12.5, "currency": "USD"}, resp.Data())
	})

	t.Run("array data", func(t *testing.T) {
		resp := NewResponse(httpResponse(http.StatusOK), []byte(`{"status":"success","data":[1,2]}`))

		assert.True(t, resp.Decoded())
		assert.Equal(t, []any{1.0, 2.0}, resp.Data())
		assert.Equal(t, "", resp.Field("anything"))
	})

	t.Run("missing data", func(t *testing.T) {
		resp := NewResponse(httpResponse(http.StatusOK), []byte(`{"status":"error"}`))

		assert.True(t, resp.Decoded())
		assert.Nil(t, resp.Data())
		status, err := resp.Status()
		require.NoError(t, err)
		assert.Equal(t, "error", status)
	})

	t.Run("not json", func(t *testing.T) {
		body := "<html><body>Server Error</body></html>"
		resp := NewResponse(httpResponse(http.StatusOK), []byte(body))

		assert.False(t, resp.Decoded())
		assert.ErrorIs(t, resp.DecodeErr(), ErrUndecodedPayload)
		assert.Equal(t, body, resp.Data())
		assert.Equal(t, http.StatusOK, resp.StatusCode())

		_, err := resp.Status()
		assert.ErrorIs(t, err, ErrUndecodedPayload)

		_, err = resp.Envelope()
		assert.ErrorIs(t, err, ErrUndecodedPayload)

		assert.Equal(t, "", resp.Field("credit"))
	})

	t.Run("json that is not an envelope", func(t *testing.T) {
		resp := NewResponse(httpResponse(http.StatusOK), []byte(`"ok"`))

		assert.False(t, resp.Decoded())
		assert.Equal(t, `"ok"`, resp.Data())
	})

	t.Run("nil http response", func(t *testing.T) {
		resp := NewResponse(nil, []byte(`{}`))
		assert.Equal(t, 0, resp.StatusCode())
		assert.Nil(t, resp.HTTPResponse())
	})
}

func TestResponseField(t *testing.T) {
	resp := NewResponse(httpResponse(http.StatusOK), []byte(`{"status":"success","data":{"credit":12.5,"currency":"USD","note":null,"rank":"gold"}}`))

	tests := []struct {
		name  string
		field string
		want  any
	}{
		{name: "present string", field: "rank", want: "gold"},
		{name: "present number", field: "credit", want: 12.5},
		{name: "null value", field: "note", want: ""},
		{name: "absent", field: "discount", want: ""},
		{name: "case sensitive", field: "Currency", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resp.Field(tt.field))
		})
	}
}

func TestIDUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    ID
		wantErr bool
	}{
		{name: "string", raw: `"abc123"`, want: "abc123"},
		{name: "integer", raw: `4711`, want: "4711"},
		{name: "null", raw: `null`, want: ""},
		{name: "object", raw: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			err := id.UnmarshalJSON([]byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}
