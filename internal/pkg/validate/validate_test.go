package validate

import (
	"testing"

	"pinmap/internal/pkg/errs"
)

type point struct {
	Title     string  `validate:"required,max=10"`
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
}

func TestStruct(t *testing.T) {
	cases := []struct {
		name string
		in   point
		code int
	}{
		{name: "valid", in: point{Title: "ok", Latitude: 37.7, Longitude: -122.4}},
		{name: "bounds inclusive", in: point{Title: "ok", Latitude: -90, Longitude: 180}},
		{name: "missing title", in: point{Latitude: 1, Longitude: 1}, code: errs.ErrInvalidParams},
		{name: "latitude", in: point{Title: "ok", Latitude: 91}, code: errs.ErrInvalidLocation},
		{name: "longitude", in: point{Title: "ok", Longitude: -181}, code: errs.ErrInvalidLocation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Struct(tc.in)
			if tc.code == 0 {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if !errs.HasCode(err, tc.code) {
				t.Fatalf("expected code %d, got %v", tc.code, err)
			}
		})
	}
}
