package countycourt

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("courtwatch.lib.scrapers.countycourt")
