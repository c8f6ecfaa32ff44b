package basecodec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseInteger coerces textual input into a value accepted by Encode.
//
// Integral values written as floats ("42.0") are accepted. Non-numeric text
// returns ErrInvalidInputType, numbers that are not positive integers return
// ErrInvalidEncodeInput.
func ParseInteger(s string) (int64, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, fmt.Errorf("%q %w", s, ErrInvalidInputType)
		}
		if f != math.Trunc(f) || f < 1 || f >= math.MaxInt64 {
			return 0, fmt.Errorf("%q %w", s, ErrInvalidEncodeInput)
		}
		n = int64(f)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%q %w", s, ErrInvalidEncodeInput)
	}
	return n, nil
}
