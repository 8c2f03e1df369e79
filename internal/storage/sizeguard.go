package storage

import (
	"fmt"
	"os"
)

// TooLargeError reports an artifact that exceeds the configured maximum.
type TooLargeError struct {
	Actual int64
	Max    int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("artifact is %d bytes, limit is %d bytes", e.Actual, e.Max)
}

// Overage is how far past the limit the artifact landed.
func (e *TooLargeError) Overage() int64 {
	return e.Actual - e.Max
}

// CheckSize measures the artifact on disk and rejects it when it exceeds
// max. The measured size is authoritative; pre-download size hints from
// resolvers are not trusted.
func CheckSize(path string, max int64) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat artifact: %w", err)
	}
	size := info.Size()
	if size > max {
		return size, &TooLargeError{Actual: size, Max: max}
	}
	return size, nil
}
