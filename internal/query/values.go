package query

import (
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/shopspring/decimal"
)

// normalizeValue maps whatever the driver produced onto nil, bool, int64,
// float64, string, time.Time or decimal.Decimal. lib/pq hands back text as
// []byte while pgx hands back pgtype values, so both end up looking the same.
func normalizeValue(val any, dbType string) any {
	if dbType == "TIME" || dbType == "TIMETZ" {
		if s, ok := timeOfDay(val, dbType); ok {
			return s
		}
	}

	switch v := val.(type) {
	case nil:
		return nil
	case bool, string, int64, float64, time.Time, decimal.Decimal:
		if s, ok := v.(string); ok && dbType == "NUMERIC" {
			return parseNumeric(s)
		}
		return v
	case int:
		return int64(v)
	case int8:
		// the single-byte "char" type
		if dbType == "CHAR" {
			return string(rune(uint8(v)))
		}
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		if v > 1<<63-1 {
			return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
		}
		return int64(v)
	case float32:
		return float64(v)
	case []byte:
		switch dbType {
		case "BYTEA":
			return `\x` + hex.EncodeToString(v)
		case "NUMERIC":
			return parseNumeric(string(v))
		}
		return string(v)
	case pgtype.Numeric:
		return numericValue(&v)
	case *pgtype.Numeric:
		return numericValue(v)
	case [16]byte:
		return uuid.UUID(v).String()
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	case driver.Valuer:
		inner, err := v.Value()
		if err != nil {
			return fmt.Sprint(v)
		}
		if _, again := inner.(driver.Valuer); again {
			return fmt.Sprint(inner)
		}
		return normalizeValue(inner, dbType)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

const (
	timeOfDayLayout   = "15:04:05.999999"
	timeOfDayTZLayout = "15:04:05.999999-07:00"
)

// timeOfDay renders TIME and TIMETZ values without a date. lib/pq parses them
// into a time.Time on 0000-01-01, pgx reports TIME as microseconds since midnight.
func timeOfDay(val any, dbType string) (string, bool) {
	switch v := val.(type) {
	case time.Time:
		if dbType == "TIMETZ" {
			return v.Format(timeOfDayTZLayout), true
		}
		return v.Format(timeOfDayLayout), true
	case int64:
		if v == int64(24*time.Hour/time.Microsecond) {
			return "24:00:00", true
		}
		return time.Time{}.Add(time.Duration(v) * time.Microsecond).Format(timeOfDayLayout), true
	}
	return "", false
}

// parseNumeric keeps NaN and the infinities as text since decimals cannot hold them.
func parseNumeric(s string) any {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return d
}

func numericValue(n *pgtype.Numeric) any {
	switch {
	case n == nil || n.Status != pgtype.Present:
		return nil
	case n.NaN:
		return "NaN"
	case n.InfinityModifier == pgtype.Infinity:
		return "Infinity"
	case n.InfinityModifier == pgtype.NegativeInfinity:
		return "-Infinity"
	case n.Int == nil:
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
