package aggregation

import (
	"testing"

	"github.com/dragosrosca/usage-reporting/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDatapoint(average float64, minimum float64, maximum float64) common.Datapoint {
	return common.Datapoint{
		Average: &average,
		Minimum: &minimum,
		Maximum: &maximum,
	}
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	t.Run("empty input yields the zero-valued result", func(t *testing.T) {
		t.Parallel()

		result, err := Aggregate(nil)

		require.NoError(t, err)
		assert.Equal(t, common.AggregatedMetrics{}, result)
	})
	t.Run("utilization datapoints", func(t *testing.T) {
		t.Parallel()

		datapoints := []common.Datapoint{
			newDatapoint(55.5, 11.0, 91.0),
			newDatapoint(28.8, 13.0, 92.0),
			newDatapoint(40.2, 12.0, 93.0),
			newDatapoint(51.3, 12.0, 93.0),
		}

		result, err := Aggregate(datapoints)

		require.NoError(t, err)
		assert.Equal(t, common.AggregatedMetrics{
			Average: 43.95,
			Maximum: 93.0,
			Minimum: 11.0,
		}, result)
	})
	t.Run("single datapoint", func(t *testing.T) {
		t.Parallel()

		result, err := Aggregate([]common.Datapoint{newDatapoint(42.5, 10.0, 80.0)})

		require.NoError(t, err)
		assert.Equal(t, common.AggregatedMetrics{
			Average: 42.5,
			Maximum: 80.0,
			Minimum: 10.0,
		}, result)
	})
	t.Run("values outside the 0-100 range", func(t *testing.T) {
		t.Parallel()

		datapoints := []common.Datapoint{
			newDatapoint(-5.5, -10.0, -1.0),
			newDatapoint(-2.5, -8.0, -0.5),
		}

		result, err := Aggregate(datapoints)

		require.NoError(t, err)
		assert.Equal(t, common.AggregatedMetrics{
			Average: -4.0,
			Maximum: -0.5,
			Minimum: -10.0,
		}, result)
	})
	t.Run("result is independent of the input order", func(t *testing.T) {
		t.Parallel()

		datapoints := []common.Datapoint{
			newDatapoint(55.5, 11.0, 91.0),
			newDatapoint(28.8, 13.0, 92.0),
			newDatapoint(40.2, 12.0, 93.0),
			newDatapoint(51.3, 12.0, 93.0),
		}
		reversed := []common.Datapoint{
			datapoints[3], datapoints[2], datapoints[1], datapoints[0],
		}

		result, err := Aggregate(datapoints)
		require.NoError(t, err)

		reversedResult, err := Aggregate(reversed)
		require.NoError(t, err)

		assert.Equal(t, result, reversedResult)
	})
	t.Run("missing average should error", func(t *testing.T) {
		t.Parallel()

		datapoint := newDatapoint(55.5, 11.0, 91.0)
		datapoint.Average = nil

		result, err := Aggregate([]common.Datapoint{datapoint})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required field: average")
		assert.Equal(t, common.AggregatedMetrics{}, result)
	})
	t.Run("missing minimum should error", func(t *testing.T) {
		t.Parallel()

		datapoint := newDatapoint(55.5, 11.0, 91.0)
		datapoint.Minimum = nil

		result, err := Aggregate([]common.Datapoint{datapoint})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required field: minimum")
		assert.Equal(t, common.AggregatedMetrics{}, result)
	})
	t.Run("missing maximum should error", func(t *testing.T) {
		t.Parallel()

		datapoint := newDatapoint(55.5, 11.0, 91.0)
		datapoint.Maximum = nil

		result, err := Aggregate([]common.Datapoint{datapoint})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required field: maximum")
		assert.Equal(t, common.AggregatedMetrics{}, result)
	})
	t.Run("no partial result when one datapoint out of many is malformed", func(t *testing.T) {
		t.Parallel()

		broken := newDatapoint(40.2, 12.0, 93.0)
		broken.Maximum = nil
		datapoints := []common.Datapoint{
			newDatapoint(55.5, 11.0, 91.0),
			broken,
		}

		result, err := Aggregate(datapoints)

		require.Error(t, err)
		assert.Equal(t, common.AggregatedMetrics{}, result)
	})
	t.Run("summation stays exact across many datapoints", func(t *testing.T) {
		t.Parallel()

		// 0.1 can not be represented exactly in binary; a float64 running sum
		// of 1000 of them drifts away from 100/1000
		datapoints := make([]common.Datapoint, 1000)
		for i := range datapoints {
			datapoints[i] = newDatapoint(0.1, 0.1, 0.1)
		}

		result, err := Aggregate(datapoints)

		require.NoError(t, err)
		assert.Equal(t, 0.1, result.Average)
	})
}
