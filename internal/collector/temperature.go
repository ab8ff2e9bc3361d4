// Internal temperature collector: the "Int. Temp:" line of the status
// dump. The PDU reports Fahrenheit; the probe reports Celsius rounded to
// one decimal, half away from zero.
package collector

import (
	"regexp"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/models"
)

// KeyInternalTemp is the measurement key for the internal temperature.
const KeyInternalTemp = "internal_temp_celsius"

var tempRe = regexp.MustCompile(`(?m)^Int\. Temp:\s+(\S+)`)

var (
	thirtyTwo = decimal.NewFromInt(32)
	five      = decimal.NewFromInt(5)
	nine      = decimal.NewFromInt(9)
)

// TemperatureCollector reports the PDU's internal temperature.
type TemperatureCollector struct {
	logger *zap.Logger
}

// NewTemperatureCollector creates a new temperature collector.
// The logger parameter is used for debug logging. Pass nil for no logging.
func NewTemperatureCollector(logger *zap.Logger) *TemperatureCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemperatureCollector{logger: logger}
}

// Name returns the collector identifier.
func (c *TemperatureCollector) Name() string { return "temperature" }

// Handles returns true for TEMP only.
func (c *TemperatureCollector) Handles(cat models.Category) bool { return cat == models.CategoryTemp }

// Collect converts the first "Int. Temp:" reading to Celsius.
// A token that is not a number is skipped.
func (c *TemperatureCollector) Collect(text string, _ models.Category) Result {
	m := tempRe.FindStringSubmatch(text)
	if m == nil {
		return Result{}
	}

	celsius, err := FahrenheitToCelsius(m[1])
	if err != nil {
		c.logger.Debug("Unparsable temperature token",
			zap.String("token", m[1]),
			zap.Error(err))
		return Result{}
	}

	return Result{
		Measurements: []models.Measurement{{Key: KeyInternalTemp, Value: celsius.StringFixed(1)}},
	}
}

// FahrenheitToCelsius converts a Fahrenheit token to Celsius using
// (F - 32) * 5 / 9, rounded to one decimal place.
func FahrenheitToCelsius(token string) (decimal.Decimal, error) {
	f, err := decimal.NewFromString(token)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return f.Sub(thirtyTwo).Mul(five).Div(nine).Round(1), nil
}
