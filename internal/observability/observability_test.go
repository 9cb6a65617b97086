package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "tagline-test"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracing_Stdout(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{
		ServiceName:  "tagline-test",
		Enabled:      true,
		Exporter:     "stdout",
		SamplerRatio: 1,
	})
	require.NoError(t, err)

	span, ctx := NewSpan(context.Background(), "unit", attribute.String("k", "v"))
	require.NotNil(t, ctx)
	assert.Len(t, span.TraceID(), 32)
	span.End(errors.New("boom"))

	assert.NoError(t, shutdown(context.Background()))
}

func TestRecordRelationship(t *testing.T) {
	before := testutil.ToFloat64(RelationshipEvents.WithLabelValues("like", "created"))
	RecordRelationship("like", "created")
	after := testutil.ToFloat64(RelationshipEvents.WithLabelValues("like", "created"))
	assert.InDelta(t, before+1, after, 0.0001)
}
