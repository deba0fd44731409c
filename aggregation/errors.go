package aggregation

import "errors"

type errMissingField string

func (e errMissingField) Error() string {
	return "datapoint is missing required field: " + string(e)
}

var errPrecisionLoss = errors.New("decimal average is not representable as a float64")

var errCountOverflow = errors.New("datapoint count exceeds the supported range")
