package cairn

import "net/url"

// LogMaskVal hides sensitive values in logged output.
const LogMaskVal = "xxxxxx"

// Mask squashes all values set for key in vals down to LogMaskVal.
//
// Use before logging query parameters or form data that can carry secrets.
func Mask(vals url.Values, key string) {
	if vals.Get(key) == "" {
		return
	}

	vals.Set(key, LogMaskVal)
}
