package observability

// Config конфигурация OpenTelemetry (traces + metrics + propagator).
// Поля без env-тега заполняет сам сервис при сборке.
type Config struct {
	Enabled       bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTLPEndpoint  string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"127.0.0.1:4317"`
	SamplingRatio float64 `env:"OTEL_SAMPLING_RATIO" envDefault:"1"`

	ServiceName           string
	DeploymentEnvironment string
	ServiceVersion        string
}
