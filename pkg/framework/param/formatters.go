package param

import (
	"fmt"
	"strconv"
	"strings"
)

// PercentUnit is the display unit of percentage parameters
const PercentUnit = "%"

// PercentFormatter renders a normalized value as a percentage without the unit.
// Uses the shortest float32 representation, so 0.5 renders as "50".
func PercentFormatter(normalized float32) string {
	return strconv.FormatFloat(float64(normalized*100), 'f', -1, 32)
}

// PercentParser parses percentage strings into a normalized value
func PercentParser(str string) (float32, error) {
	str = strings.TrimSuffix(strings.TrimSpace(str), PercentUnit)
	percent, err := strconv.ParseFloat(strings.TrimSpace(str), 32)
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q: %w", str, err)
	}
	return float32(percent) / 100, nil
}
