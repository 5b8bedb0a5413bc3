package instrument

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithoutExporter(t *testing.T) {
	ctx := context.Background()

	ins, err := New(ctx, Options{
		ServiceName:    "lion-svc",
		ServiceVersion: "0.1.0",
	})

	require.NoError(t, err)
	assert.NotNil(t, ins.Tracer("test"))
	assert.NotNil(t, ins.Meter("test"))
	assert.NoError(t, ins.Close(ctx))
}
