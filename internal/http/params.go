package http

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Request bodies are decoded loosely: clients send ids and indexes either as
// JSON numbers or as strings, and absent, empty and zero values all count as
// missing.

type jsonBody map[string]any

// bindBody decodes the request body into a JSON object. An empty body is an
// empty object. On malformed input it responds 400 and returns false.
func bindBody(c *gin.Context) (jsonBody, bool) {
	raw, err := c.GetRawData()
	if err != nil {
		respondBadRequest(c, "could not read request body")
		return nil, false
	}

	body := jsonBody{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return body, true
	}
	if err := binding.JSON.BindBody(raw, &body); err != nil {
		respondBadRequest(c, "request body must be a JSON object")
		return nil, false
	}
	return body, true
}

// String returns the field as a string. Numbers are formatted; false, zero
// and non-scalar values read as "".
func (b jsonBody) String(key string) string {
	switch v := b[key].(type) {
	case string:
		return v
	case float64:
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "true"
		}
	}
	return ""
}

// Index returns a positive-or-negative integer field. ok is false when the
// field is missing, empty or zero; err is set when it is present but not an
// integer.
func (b jsonBody) Index(key string) (n int, ok bool, err error) {
	switch v := b[key].(type) {
	case nil:
		return 0, false, nil
	case string:
		if v == "" {
			return 0, false, nil
		}
		n, err = parseInteger(v)
	case float64:
		n, err = floatToInt(v)
	default:
		err = fmt.Errorf("not a number")
	}
	if err != nil {
		return 0, false, fmt.Errorf("%s must be an integer", key)
	}
	return n, n != 0, nil
}

// IndexPtr is Index returning nil for a missing value.
func (b jsonBody) IndexPtr(key string) (*int, error) {
	n, ok, err := b.Index(key)
	if err != nil || !ok {
		return nil, err
	}
	return &n, nil
}

// Minutes returns a non-required numeric field; missing or empty is 0.
func (b jsonBody) Minutes(key string) (float64, error) {
	switch v := b[key].(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%s must be a number", key)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%s must be a number", key)
}

// parseInteger accepts "12", " 12 ", "12.0" and "1e1"; it rejects fractions.
func parseInteger(raw string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	return floatToInt(f)
}

func floatToInt(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %v", f)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("out of range: %v", f)
	}
	return int(f), nil
}
