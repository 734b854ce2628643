package measurement

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatLength renders a real-world length the way labels show it
func FormatLength(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// ParseInterval reads the value typed into the calibration prompt
func ParseInterval(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInterval, text)
	}
	if err := validateInterval(v); err != nil {
		return 0, err
	}
	return v, nil
}
