package httputil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func decodeBody(body string) (loginBody, error) {
	var dst loginBody
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return dst, DecodeJSON(req, &dst)
}

func TestDecodeJSON(t *testing.T) {
	got, err := decodeBody(`{"email":"ada@x.com","password":"secret1"}`)
	require.NoError(t, err)
	assert.Equal(t, loginBody{Email: "ada@x.com", Password: "secret1"}, got)

	_, err = decodeBody("{\"email\":\"ada@x.com\"}\n  \n")
	assert.NoError(t, err, "trailing whitespace is allowed")
}

func TestDecodeJSON_Rejects(t *testing.T) {
	tests := map[string]string{
		"empty":           ``,
		"malformed":       `{"email":`,
		"trailing bytes":  `{"email":"ada@x.com","password":"secret1"} garbage`,
		"second object":   `{"email":"a@x.com"}{"email":"b@x.com"}`,
		"trailing brace":  `{"email":"ada@x.com"}}`,
		"trailing number": `{"email":"ada@x.com"} 1`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := decodeBody(body)
			assert.Error(t, err)
		})
	}
}
