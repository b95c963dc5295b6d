package types

import (
	"github.com/tidwall/gjson"
)

// firstString returns the first non-empty string among the given top-level
// keys of a JSON object. The backend is inconsistent about field names
// (fullName vs name, _id vs id), so DTO decoders probe each alias in order.
func firstString(data []byte, keys ...string) string {
	for _, key := range keys {
		if r := gjson.GetBytes(data, key); r.Exists() && r.String() != "" {
			return r.String()
		}
	}
	return ""
}

// fillString sets *dst from the aliases when it is still empty.
func fillString(dst *string, data []byte, keys ...string) {
	if *dst != "" {
		return
	}
	*dst = firstString(data, keys...)
}
