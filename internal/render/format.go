package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05.999999"
	isoLocalLayout  = "2006-01-02T15:04:05.999999999"
)

var cellReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// formatCell renders a value for the text table. NULL is the empty string.
func formatCell(val any, dbType string) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return cellReplacer.Replace(v)
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case decimal.Decimal:
		return v.String()
	case time.Time:
		switch dbType {
		case "DATE":
			return v.Format(dateLayout)
		case "TIMESTAMP":
			return v.Format(timestampLayout)
		}
		return v.Format(timestampLayout + "Z07:00")
	default:
		return cellReplacer.Replace(fmt.Sprint(v))
	}
}

// jsonValue converts a value into something encoding/json writes the way a
// reader expects. Decimals become float64, so digits beyond float precision
// are lost; NaN and infinities are not valid JSON numbers and become strings.
func jsonValue(val any, dbType string) any {
	switch v := val.(type) {
	case decimal.Decimal:
		return v.InexactFloat64()
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
		return v
	case time.Time:
		switch dbType {
		case "DATE":
			return v.Format(dateLayout)
		case "TIMESTAMP":
			return v.Format(isoLocalLayout)
		}
		return v.Format(time.RFC3339Nano)
	default:
		return v
	}
}
