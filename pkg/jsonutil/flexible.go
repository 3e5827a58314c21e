package jsonutil

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexibleFloatValue converts a json.RawMessage to a float64, handling the
// frontend's habit of sending numeric form fields as strings ("1.5" instead
// of 1.5). Returns 0 for null/empty.
func FlexibleFloatValue(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}

	// Try number first
	var numVal float64
	if err := json.Unmarshal(raw, &numVal); err == nil {
		return numVal, nil
	}

	// Try string containing a number
	var strVal string
	if err := json.Unmarshal(raw, &strVal); err == nil {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(strVal), 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", strVal)
		}
		return parsed, nil
	}

	return 0, fmt.Errorf("value %s is not numeric", string(raw))
}
