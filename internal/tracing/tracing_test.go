package tracing_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/Urjashee/response-formatter/internal/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetupExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := tracing.Setup("respfmt-test", &buf)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "render-envelope")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "render-envelope")
	assert.Contains(t, buf.String(), "respfmt-test")
}
