package jaeger

import (
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/exporters/jaeger"
)

// MustNewJaeger creates an exporter for the collector at otel.jaeger.endpoint.
func MustNewJaeger() *jaeger.Exporter {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(
		jaeger.WithEndpoint(viper.GetString("otel.jaeger.endpoint")),
	))
	if err != nil {
		panic(err)
	}

	return exp
}
