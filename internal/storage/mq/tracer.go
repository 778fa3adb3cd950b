package mq

import (
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
)

var (
	tracer = otel.Tracer("internal/storage/mq")
	kotelT = kotel.NewKotel(kotel.WithTracer(kotel.NewTracer()))
)
