package cmc

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Params is a typed query parameter map. Values encode deterministically:
// slices join with commas (the API's list convention), times format as
// RFC 3339, and everything else uses its canonical string form.
type Params map[string]any

// Encode renders the parameters as a sorted, URL-escaped query string.
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}

	values := url.Values{}
	for key, value := range p {
		encoded := encodeValue(value)
		if encoded == "" {
			continue
		}
		values.Set(key, encoded)
	}

	// url.Values.Encode sorts by key, so the output is deterministic.
	return values.Encode()
}

func encodeValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case decimal.Decimal:
		return v.String()
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case []string:
		return strings.Join(v, ",")
	case []int64:
		parts := make([]string, len(v))
		for i, id := range v {
			parts[i] = strconv.FormatInt(id, 10)
		}
		return strings.Join(parts, ",")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
