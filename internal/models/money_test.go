package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyMarshalJSON(t *testing.T) {
	m := NewMoneyFromDecimal(decimal.RequireFromString("1299.5"))
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if string(b) != `"1299.50"` {
		t.Fatalf("expected \"1299.50\", got %s", b)
	}
}

func TestMoneyUnmarshalJSON(t *testing.T) {
	cases := []struct {
		raw      string
		expected string
	}{
		{`"89.90"`, "89.90"},
		{`"89.999"`, "90.00"},
		{`125`, "125.00"},
		{`125.455`, "125.46"},
	}
	for _, tc := range cases {
		var m Money
		if err := json.Unmarshal([]byte(tc.raw), &m); err != nil {
			t.Fatalf("unmarshal %s error: %v", tc.raw, err)
		}
		if m.String() != tc.expected {
			t.Fatalf("unmarshal %s: expected %s, got %s", tc.raw, tc.expected, m.String())
		}
	}

	var m Money
	if err := json.Unmarshal([]byte(`"not-a-number"`), &m); err == nil {
		t.Fatalf("expected error for invalid amount")
	}
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("10200.005")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.String() != "10200.01" {
		t.Fatalf("expected 10200.01, got %s", m.String())
	}
	if _, err := NewMoneyFromString("abc"); err == nil {
		t.Fatalf("expected parse error")
	}
}
