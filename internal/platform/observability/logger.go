package observability

import (
	"os"

	"github.com/nikolayk812/backoffice/internal/config"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/log/global"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const instrumentationScope = "backoffice.manual"

// NewLogger writes ISO8601 JSON to stdout and, with withOTel, also to the global OTLP logger provider.
func NewLogger(withOTel bool) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.Lock(os.Stdout),
		zap.InfoLevel,
	)

	if withOTel {
		otelCore := otelzap.NewCore(instrumentationScope,
			otelzap.WithLoggerProvider(global.GetLoggerProvider()),
		)
		core = zapcore.NewTee(otelCore, core)
	}

	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("service.name", config.ServiceName)),
	)
}
