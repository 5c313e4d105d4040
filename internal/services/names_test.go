package services

import "testing"

func TestLocationName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", "Unknown"},
		{"1000 Union St, Brooklyn, NY", "1000 Union St"},
		{"Prospect Park", "Prospect Park"},
		{"  310 Harrison Ave , Boston", "310 Harrison Ave"},
		{"A Very Long Venue Name That Keeps Going Forever", "A Very Long Venue Name That..."},
	}
	for _, tc := range cases {
		if got := LocationName(tc.in); got != tc.want {
			t.Errorf("LocationName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
