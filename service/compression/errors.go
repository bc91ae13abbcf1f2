package compression

import "errors"

var (
	// ErrTimeout is returned when the worker did not answer within Config.Timeout.
	ErrTimeout = errors.New("compression: timed out waiting for worker")
	// ErrWorkerFailure is returned for every request pending on a worker that crashed.
	ErrWorkerFailure = errors.New("compression: worker failed")
	// ErrCompression is returned when the codec rejects the input.
	ErrCompression = errors.New("compression: codec failed")
	// ErrTerminated is returned for requests pending when the service was terminated.
	ErrTerminated = errors.New("compression: service terminated")
)
