package instances

import (
	"errors"
	"net/http"
)

type errStatusNotOK int

func (e errStatusNotOK) Error() string {
	return "non-2xx HTTP status code: " + http.StatusText(int(e))
}

var errMissingInstanceID = errors.New("instance record is missing the instanceId field")
