package aggregation

import (
	"math"

	"github.com/cockroachdb/apd/v3"
	"github.com/dragosrosca/usage-reporting/common"
)

// decimalCtx drives the decimal accumulation; summing float64 averages
// directly would accumulate one rounding error per datapoint
var decimalCtx = apd.BaseContext.WithPrecision(34)

// Aggregate reduces a list of per-period datapoints into one statistic set.
// An empty list yields the zero-valued result and no error; a datapoint
// missing any of its three statistics fails the whole aggregation.
func Aggregate(datapoints []common.Datapoint) (common.AggregatedMetrics, error) {
	if len(datapoints) == 0 {
		return common.AggregatedMetrics{}, nil
	}
	if uint64(len(datapoints)) > math.MaxUint32 {
		return common.AggregatedMetrics{}, errCountOverflow
	}

	total := new(apd.Decimal)
	var minimum, maximum float64
	for i, datapoint := range datapoints {
		if datapoint.Average == nil {
			return common.AggregatedMetrics{}, errMissingField("average")
		}
		if datapoint.Minimum == nil {
			return common.AggregatedMetrics{}, errMissingField("minimum")
		}
		if datapoint.Maximum == nil {
			return common.AggregatedMetrics{}, errMissingField("maximum")
		}

		average := new(apd.Decimal)
		_, err := average.SetFloat64(*datapoint.Average)
		if err != nil {
			// non-representable value (NaN/Inf), treated as a decimal zero
			average.SetInt64(0)
		}
		decimalCtx.Add(total, total, average)

		if i == 0 || *datapoint.Minimum < minimum {
			minimum = *datapoint.Minimum
		}
		if i == 0 || *datapoint.Maximum > maximum {
			maximum = *datapoint.Maximum
		}
	}

	count := apd.New(int64(len(datapoints)), 0)
	quotient := new(apd.Decimal)
	decimalCtx.Quo(quotient, total, count)

	average, err := quotient.Float64()
	if err != nil {
		return common.AggregatedMetrics{}, errPrecisionLoss
	}

	return common.AggregatedMetrics{
		Average: average,
		Maximum: maximum,
		Minimum: minimum,
	}, nil
}
