package models

import (
	"testing"

	"github.com/google/uuid"
)

func route(from, to uuid.UUID) Route {
	return Route{ID: uuid.New(), FromID: from, ToID: to}
}

func TestAvailableFromLocations(t *testing.T) {
	depot := uuid.New()
	port := uuid.New()
	mine := uuid.New()
	city := uuid.New()

	tests := []struct {
		name   string
		routes []Route
		want   []uuid.UUID
	}{
		{
			name:   "no routes",
			routes: nil,
			want:   []uuid.UUID{},
		},
		{
			name:   "single route",
			routes: []Route{route(depot, city)},
			want:   []uuid.UUID{depot},
		},
		{
			name: "duplicate origins collapse",
			routes: []Route{
				route(depot, city),
				route(depot, port),
				route(mine, city),
			},
			want: []uuid.UUID{depot, mine},
		},
		{
			name: "first-seen order preserved",
			routes: []Route{
				route(port, city),
				route(depot, city),
				route(port, mine),
				route(mine, depot),
			},
			want: []uuid.UUID{port, depot, mine},
		},
		{
			name: "identical pairs tolerated",
			routes: []Route{
				route(depot, city),
				route(depot, city),
			},
			want: []uuid.UUID{depot},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AvailableFromLocations(tt.routes)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d origins, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("origin[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAvailableToLocations(t *testing.T) {
	depot := uuid.New()
	port := uuid.New()
	mine := uuid.New()
	city := uuid.New()

	routes := []Route{
		route(depot, city),
		route(depot, port),
		route(mine, city),
		route(depot, city), // duplicate pair
	}

	t.Run("no origin chosen yields empty", func(t *testing.T) {
		got := AvailableToLocations(routes, uuid.Nil)
		if len(got) != 0 {
			t.Errorf("expected empty slice, got %d entries", len(got))
		}
	})

	t.Run("filters by origin and dedupes", func(t *testing.T) {
		got := AvailableToLocations(routes, depot)
		want := []uuid.UUID{city, port}
		if len(got) != len(want) {
			t.Fatalf("got %d destinations, want %d", len(got), len(want))
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("destination[%d] = %s, want %s", i, got[i], want[i])
			}
		}
	})

	t.Run("origin with single destination", func(t *testing.T) {
		got := AvailableToLocations(routes, mine)
		if len(got) != 1 || got[0] != city {
			t.Errorf("expected [%s], got %v", city, got)
		}
	})

	t.Run("unknown origin yields empty", func(t *testing.T) {
		got := AvailableToLocations(routes, uuid.New())
		if len(got) != 0 {
			t.Errorf("expected empty slice, got %d entries", len(got))
		}
	})
}

// The derived origin set must not depend on how many routes share an origin,
// and destination sets only ever contain destinations paired with the chosen
// origin.
func TestRouteDerivationConsistency(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	routes := []Route{
		route(a, b), route(a, c), route(a, d),
		route(b, c),
	}

	origins := AvailableFromLocations(routes)
	for _, origin := range origins {
		for _, dest := range AvailableToLocations(routes, origin) {
			if !HasRoute(routes, origin, dest) {
				t.Errorf("derived pair %s->%s has no backing route", origin, dest)
			}
		}
	}

	if !HasRoute(routes, a, b) {
		t.Error("expected route a->b")
	}
	if HasRoute(routes, b, a) {
		t.Error("routes are directional, b->a should not exist")
	}
}
