package apiutil

import (
	"bytes"
	"strconv"
)

// LenientInt accepts a JSON number or numeric string and falls back to 0 when
// the value cannot be parsed. Score and minute inputs arrive from form fields
// and are historically forgiving.
type LenientInt int

func (n *LenientInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	parsed, err := strconv.Atoi(string(data))
	if err != nil {
		*n = 0
		return nil
	}
	*n = LenientInt(parsed)
	return nil
}

func (n *LenientInt) Int() int {
	if n == nil {
		return 0
	}
	return int(*n)
}

// IntPtr returns the value as *int, or nil when the field was absent.
func (n *LenientInt) IntPtr() *int {
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}
