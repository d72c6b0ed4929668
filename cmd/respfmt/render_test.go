package main

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/Urjashee/response-formatter/api/responses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	cases := []struct {
		name    string
		status  responses.Status
		message string
		data    string
		hasData bool
		code    int
		want    string
	}{
		{"defaults", responses.StatusForbidden, "", "", false, http.StatusForbidden,
			`{"status":"FORBIDDEN","message":"You are not allowed to access this resource!"}`},
		{"sequence", responses.StatusOK, "ok", "[1,2,3]", true, http.StatusOK,
			`{"status":"OK","message":"ok","data":[1,2,3]}`},
		{"record", responses.StatusError, "bad", `{"field":"email"}`, true, http.StatusBadRequest,
			`{"status":"ERROR","message":"bad","data":{"field":"email"}}`},
		{"plain text", responses.StatusOK, "ok", "hello", true, http.StatusOK,
			`{"status":"OK","message":"ok","data":{"value":"hello"}}`},
		{"zero", responses.StatusOK, "ok", "0", true, http.StatusOK,
			`{"status":"OK","message":"ok"}`},
		{"empty", responses.StatusUnauthorized, "", "", true, http.StatusUnauthorized,
			`{"status":"UNAUTHORIZED","message":"You are not authorized to access this resource!"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			code, err := render(&buf, tc.status, tc.message, tc.data, tc.hasData)
			require.NoError(t, err)
			assert.Equal(t, tc.code, code)
			assert.JSONEq(t, tc.want, buf.String())
		})
	}
}

func TestRenderCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"render", "--status", "error", "--message", "bad", "--data", `"oops"`})

	require.NoError(t, cmd.Execute())
	assert.JSONEq(t, `{"status":"ERROR","message":"bad","data":{"value":"oops"}}`, stdout.String())
	assert.Equal(t, "400\n", stderr.String())
}

func TestRenderCommandUnknownStatus(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"render", "--status", "teapot"})

	err := cmd.Execute()
	assert.ErrorIs(t, err, responses.ErrUnknownStatus)
}
