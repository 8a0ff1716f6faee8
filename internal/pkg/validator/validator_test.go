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

func TestIsValidUsername(t *testing.T) {
	valid := []string{"maria", "user_01", "jose-luis", "A"}
	invalid := []string{"", "user name", "maría", "user@host", strings51()}
	for _, u := range valid {
		if !IsValidUsername(u) {
			t.Errorf("IsValidUsername(%q) = false, want true", u)
		}
	}
	for _, u := range invalid {
		if IsValidUsername(u) {
			t.Errorf("IsValidUsername(%q) = true, want false", u)
		}
	}
}

func strings51() string {
	s := make([]byte, 51)
	for i := range s {
		s[i] = 'a'
	}
	return string(s)
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2025-01-01", "2000-12-31"}
	invalid := []string{"2025-13-01", "01-01-2025", "2025-1-1", "", "not-a-date"}
	for _, d := range valid {
		if _, ok := IsValidDate(d); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	if _, ok := IsValidMonth("2025-06"); !ok {
		t.Error(`IsValidMonth("2025-06") = false, want true`)
	}
	for _, m := range []string{"2025-13", "2025", "06-2025", ""} {
		if _, ok := IsValidMonth(m); ok {
			t.Errorf("IsValidMonth(%q) = true, want false", m)
		}
	}
}

func TestIsValidClockTime(t *testing.T) {
	valid := []string{"00:00", "09:05", "23:59"}
	invalid := []string{"24:00", "9:5", "12:60", "noon", ""}
	for _, v := range valid {
		if _, ok := IsValidClockTime(v); !ok {
			t.Errorf("IsValidClockTime(%q) = false, want true", v)
		}
	}
	for _, v := range invalid {
		if _, ok := IsValidClockTime(v); ok {
			t.Errorf("IsValidClockTime(%q) = true, want false", v)
		}
	}
}
