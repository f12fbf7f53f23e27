package collection

import (
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	plog = logger.GetLogger("collection")

	mutationsTotal        = metrics.NewCounter(`dcoll_collection_mutations_total`)
	rejectedReadOnlyTotal = metrics.NewCounter(`dcoll_collection_rejected_total{reason="read_only"}`)
	rejectedKeyTotal      = metrics.NewCounter(`dcoll_collection_rejected_total{reason="invalid_key"}`)
	rejectedValueTotal    = metrics.NewCounter(`dcoll_collection_rejected_total{reason="invalid_value"}`)
)

// countRejected increments the rejection counter matching the error code
func countRejected(err error) {
	e, ok := err.(*Error)
	if !ok {
		return
	}
	switch e.Code {
	case RetCReadOnlyViolation:
		rejectedReadOnlyTotal.Inc()
	case RetCInvalidKey:
		rejectedKeyTotal.Inc()
	case RetCInvalidValue:
		rejectedValueTotal.Inc()
	}
}
