package systems

import (
	"slices"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestSpatialGridQueryAfter(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	points := []r2.Vec{
		{X: 5, Y: 5},   // 0
		{X: 15, Y: 5},  // 1
		{X: 95, Y: 95}, // 2
		{X: 6, Y: 6},   // 3
		{X: 50, Y: 50}, // 4
	}
	for i, p := range points {
		g.Insert(i, p)
	}

	tests := []struct {
		name   string
		p      r2.Vec
		radius float64
		after  int
		want   []int
	}{
		{"neighbors of first", points[0], 5, 0, []int{1, 3}},
		{"only later slots", points[0], 5, 1, []int{3}},
		{"far corner alone", points[2], 3, -1, []int{2}},
		{"everything", r2.Vec{X: 50, Y: 50}, 60, -1, []int{0, 1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.QueryAfter(nil, tt.p, tt.radius, tt.after)
			if !slices.Equal(got, tt.want) {
				t.Errorf("QueryAfter = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpatialGridClampsOutside(t *testing.T) {
	g := NewSpatialGrid(50, 50, 10)
	g.Insert(0, r2.Vec{X: -30, Y: -30})
	g.Insert(1, r2.Vec{X: 500, Y: 20})

	if got := g.QueryAfter(nil, r2.Vec{X: 0, Y: 0}, 1, -1); !slices.Equal(got, []int{0}) {
		t.Errorf("corner query = %v, want [0]", got)
	}
	if got := g.QueryAfter(nil, r2.Vec{X: 55, Y: 20}, 1, -1); !slices.Equal(got, []int{1}) {
		t.Errorf("edge query = %v, want [1]", got)
	}

	g.Clear()
	if got := g.QueryAfter(nil, r2.Vec{X: 25, Y: 25}, 100, -1); len(got) != 0 {
		t.Errorf("after Clear = %v, want empty", got)
	}

	g.Resize(200, 200)
	g.Insert(7, r2.Vec{X: 190, Y: 190})
	if got := g.QueryAfter(nil, r2.Vec{X: 190, Y: 190}, 1, -1); !slices.Equal(got, []int{7}) {
		t.Errorf("after Resize = %v, want [7]", got)
	}
}
