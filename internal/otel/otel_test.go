package otel_test

import (
	"context"
	"testing"

	mealsotel "github.com/corray333/backend-labs/meals/internal/otel"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestMustInitOtel_Disabled(t *testing.T) {
	prevTP, prevProp := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
		viper.Reset()
	})

	viper.Set("otel.enabled", false)
	viper.Set("otel.service_name", "meals-svc-test")

	controller := mealsotel.MustInitOtel()

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
	require.NoError(t, controller.Shutdown(context.Background()))
}
