package literal

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  any
	}{
		{name: "null", input: "null", want: nil},
		{name: "bool", input: " true ", want: true},
		{name: "number_keeps_text", input: "1.50", want: json.Number("1.50")},
		{name: "string", input: `"a\tb"`, want: "a\tb"},
		{name: "empty_array", input: "[]", want: []any{}},
		{name: "empty_object", input: "{}", want: Object{}},
		{
			name:  "nested",
			input: `{"z": [1, {"y": null}], "a": false}`,
			want: Object{
				{Key: "z", Value: []any{json.Number("1"), Object{{Key: "y", Value: nil}}}},
				{Key: "a", Value: false},
			},
		},
		{
			name:  "duplicate_keys_retained",
			input: `{"a": 1, "a": 2}`,
			want:  Object{{Key: "a", Value: json.Number("1")}, {Key: "a", Value: json.Number("2")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode(tt.input)
			if err != nil {
				t.Fatalf("Decode(%q) error = %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "bare_word", input: "foo"},
		{name: "unterminated_array", input: "[1, 2"},
		{name: "trailing_value", input: "1 2"},
		{name: "trailing_garbage", input: `{"a": 1} }`},
		{name: "single_quotes", input: "'a'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Decode(tt.input); err == nil {
				t.Fatalf("Decode(%q) expected error", tt.input)
			}
		})
	}
}

func TestDecodeTrailingData(t *testing.T) {
	t.Parallel()

	_, err := Decode("true false")
	if !errors.Is(err, ErrTrailingData) {
		t.Fatalf("expected ErrTrailingData, got %v", err)
	}
}

func TestObject(t *testing.T) {
	t.Parallel()

	obj := Object{
		{Key: "b", Value: json.Number("1")},
		{Key: "a", Value: "x"},
		{Key: "b", Value: json.Number("2")},
	}

	if got, ok := obj.Get("b"); !ok || got != json.Number("2") {
		t.Errorf("Get(b) = %v, %v; want 2, true", got, ok)
	}
	if _, ok := obj.Get("missing"); ok {
		t.Error("Get(missing) reported found")
	}
	if diff := cmp.Diff([]string{"b", "a", "b"}, obj.Keys()); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}

	encoded, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if want := `{"b":1,"a":"x","b":2}`; string(encoded) != want {
		t.Errorf("Marshal = %s, want %s", encoded, want)
	}
}
