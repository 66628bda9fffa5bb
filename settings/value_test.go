package settings

import (
	"errors"
	"testing"

	"github.com/yllada/gpg-manager/common"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindBool, "bool"},
		{KindString, "string"},
		{KindStringList, "list"},
		{KindSize, "size"},
		{KindInt, "int"},
		{Kind(99), "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %v, want %v", got, tt.expected)
			}
			if tt.expected != "invalid" && ParseKind(tt.expected) != tt.kind {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.expected, ParseKind(tt.expected), tt.kind)
			}
		})
	}
}

func TestValue_MismatchedKindYieldsZero(t *testing.T) {
	v := StringValue("true")

	if v.AsBool() {
		t.Error("AsBool on a string value should be false")
	}
	if v.AsInt() != 0 {
		t.Errorf("AsInt on a string value = %v, want 0", v.AsInt())
	}
	if v.AsStringList() != nil {
		t.Errorf("AsStringList on a string value = %v, want nil", v.AsStringList())
	}
	if v.AsSize() != (Size{}) {
		t.Errorf("AsSize on a string value = %v, want zero", v.AsSize())
	}
	if BoolValue(true).AsString() != "" {
		t.Error("AsString on a bool value should be empty")
	}
}

func TestStringListValue_Copies(t *testing.T) {
	list := []string{"a", "b"}
	v := StringListValue(list)
	list[0] = "changed"

	got := v.AsStringList()
	if got[0] != "a" {
		t.Errorf("StringListValue kept a reference to the caller's slice: %v", got)
	}

	got[1] = "changed"
	if v.AsStringList()[1] != "b" {
		t.Error("AsStringList should return a copy")
	}
}

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Value
		equal bool
	}{
		{"same bool", BoolValue(true), BoolValue(true), true},
		{"different bool", BoolValue(true), BoolValue(false), false},
		{"kind mismatch", StringValue("1"), IntValue(1), false},
		{"same list", StringListValue([]string{"a"}), StringListValue([]string{"a"}), true},
		{"empty lists", StringListValue(nil), StringListValue([]string{}), true},
		{"different size", SizeValue(12, 12), SizeValue(24, 24), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.equal {
				t.Errorf("Equal() = %v, want %v", got, tt.equal)
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		text     string
		expected Value
		wantErr  bool
	}{
		{"bool", KindBool, "true", BoolValue(true), false},
		{"bool numeric", KindBool, "0", BoolValue(false), false},
		{"bad bool", KindBool, "checked", Value{}, true},
		{"string", KindString, " de ", StringValue(" de "), false},
		{"list", KindStringList, "http://a, http://b", StringListValue([]string{"http://a", "http://b"}), false},
		{"empty list", KindStringList, "", StringListValue(nil), false},
		{"size", KindSize, "32x32", SizeValue(32, 32), false},
		{"bad size", KindSize, "32", Value{}, true},
		{"int", KindInt, "3", IntValue(3), false},
		{"bad int", KindInt, "three", Value{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValue(tt.kind, tt.text)
			if tt.wantErr {
				if !errors.Is(err, common.ErrInvalidValue) {
					t.Errorf("ParseValue() error = %v, want ErrInvalidValue", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseValue() error = %v", err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("ParseValue() = %v, want %v", got, tt.expected)
			}
		})
	}
}
