package rpc

import (
	"encoding/json"
	"testing"
)

func TestRequest_Marshal(t *testing.T) {
	data, err := json.Marshal(Request{Method: "getinfo", ID: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"method":"getinfo","params":null,"id":7}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestError_Unmarshal_NegativeCodeWraps(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want uint32
	}{
		{"minus one", `{"code":-1,"message":"nope"}`, 4294967295},
		{"method not found", `{"code":-32601,"message":"nope"}`, 4294934695},
		{"positive", `{"code":5,"message":"nope"}`, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Error
			if err := json.Unmarshal([]byte(tt.in), &e); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if e.Code != tt.want {
				t.Errorf("code = %d, want %d", e.Code, tt.want)
			}
			if e.Message != "nope" {
				t.Errorf("message = %q, want %q", e.Message, "nope")
			}
		})
	}
}

func TestError_MarshalRoundTrip(t *testing.T) {
	orig := NewError(-1, "bad")
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var back Error
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.Code != orig.Code || back.Message != orig.Message {
		t.Errorf("round trip mismatch: %+v vs %+v", back, *orig)
	}
}
