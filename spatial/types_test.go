// Copyright 2025 The WikiGeo Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"math"
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	helsinki := Point{Lat: 60.1699, Lng: 24.9384}
	tampere := Point{Lat: 61.4978, Lng: 23.7610}

	got := helsinki.HaversineDistance(&tampere)

	// roughly 160 km between the two city centres
	if math.Abs(got-160e3) > 5e3 {
		t.Errorf("distance = %.0f m, want about 160 km", got)
	}

	if d := helsinki.HaversineDistance(&helsinki); d != 0 {
		t.Errorf("distance to itself = %v, want 0", d)
	}
}

func TestGroupByCell(t *testing.T) {
	points := []Point{
		{Lat: 60.1699, Lng: 24.9384},   // Helsinki centre
		{Lat: 60.16995, Lng: 24.93845}, // a few metres away
		{Lat: 61.4978, Lng: 23.7610},   // Tampere
	}

	groups := GroupByCell(points, 8)

	if len(groups) != 2 {
		t.Fatalf("got %d cells, want 2", len(groups))
	}

	var sizes []int
	for _, members := range groups {
		sizes = append(sizes, len(members))
	}

	if (sizes[0] == 2) == (sizes[1] == 2) {
		t.Errorf("expected one cell of 2 and one of 1, got %v", sizes)
	}
}
