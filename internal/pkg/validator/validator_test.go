package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123E4567-E89B-12D3-A456-426614174000",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",                                     // empty
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", "2023-02-29", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "reason", Message: "invalid"},
		{Field: "day_count", Message: "required"},
	}
	got := errs.Error()
	want := "reason: invalid; day_count: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "reason", Message: "invalid"},
		{Field: "day_count", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"reason": "invalid", "day_count": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
	if !errs.Has("reason") || errs.Has("status") {
		t.Errorf("ValidationErrors.Has() mismatch")
	}
}

type structSample struct {
	Kind   string `json:"kind" validate:"required,oneof=a b"`
	Count  int    `json:"count" validate:"gte=1"`
	Note   string `json:"note,omitempty" validate:"max=5"`
	Hidden string `json:"-"`
}

func TestStruct(t *testing.T) {
	if errs := Struct(structSample{Kind: "a", Count: 1}); errs != nil {
		t.Fatalf("Struct(valid) = %v, want nil", errs)
	}

	errs := Struct(structSample{Kind: "c", Count: 0, Note: "too long"})
	got := errs.ToMap()
	if got["kind"] != "kind must be one of: a, b" {
		t.Errorf("kind message = %q", got["kind"])
	}
	if got["count"] != "count must be at least 1" {
		t.Errorf("count message = %q", got["count"])
	}
	if got["note"] != "note must not exceed 5" {
		t.Errorf("note message = %q", got["note"])
	}

	errs = Struct(structSample{Count: 2})
	if errs.ToMap()["kind"] != "kind is required" {
		t.Errorf("required message = %q", errs.ToMap()["kind"])
	}
}
