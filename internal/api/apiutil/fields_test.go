package apiutil

import (
	"encoding/json"
	"testing"
)

func TestLenientIntUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int
	}{
		{"number", `{"v":3}`, 3},
		{"string", `{"v":"3"}`, 3},
		{"empty string", `{"v":""}`, 0},
		{"null", `{"v":null}`, 0},
		{"garbage", `{"v":"abc"}`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var payload struct {
				V LenientInt `json:"v"`
			}
			if err := json.Unmarshal([]byte(tc.in), &payload); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if int(payload.V) != tc.want {
				t.Errorf("value = %d, want %d", payload.V, tc.want)
			}
		})
	}
}

func TestLenientIntPtr(t *testing.T) {
	var absent *LenientInt
	if absent.IntPtr() != nil {
		t.Error("expected nil for absent field")
	}
	if absent.Int() != 0 {
		t.Error("expected 0 for absent field")
	}

	present := LenientInt(4)
	if got := present.IntPtr(); got == nil || *got != 4 {
		t.Errorf("IntPtr = %v", got)
	}
}
