// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"reflect"
	"testing"
)

func TestRecommendHybrid_ContentFirstAndDistinct(t *testing.T) {
	b := buildBundle(t, testBooks(), testRatings())

	content := ids(RecommendContent(b, 1, 0))
	got := RecommendHybrid(b, 1, 5)

	if len(got) > 5 {
		t.Fatalf("len = %d, want <= 5", len(got))
	}
	seen := make(map[int]bool)
	for _, id := range got {
		if seen[id] {
			t.Fatalf("duplicate id %d in %v", id, got)
		}
		seen[id] = true
	}

	prefix := min(len(content), 5)
	if !reflect.DeepEqual(got[:prefix], content[:prefix]) {
		t.Errorf("hybrid prefix = %v, want content %v", got[:prefix], content[:prefix])
	}
}

func TestRecommendHybrid_AppendsCollaborative(t *testing.T) {
	b := buildBundle(t, testBooks(), testRatings())

	content := ids(RecommendContent(b, 1, 0))
	collab := ids(RecommendCollaborative(b, 1, 10))
	got := RecommendHybrid(b, 1, 10)

	want := append([]int{}, content...)
	for _, id := range collab {
		if !containsID(want, id) {
			want = append(want, id)
		}
	}
	if len(want) > 10 {
		want = want[:10]
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RecommendHybrid(1, 10) = %v, want %v", got, want)
	}
}

func TestRecommendHybrid_UnratedSeedReturnsContentOnly(t *testing.T) {
	b := buildBundle(t, testBooks(), testRatings())

	content := ids(RecommendContent(b, 6, 0))
	got := RecommendHybrid(b, 6, 50)
	if !reflect.DeepEqual(got, content) {
		t.Errorf("RecommendHybrid(6) = %v, want content %v", got, content)
	}
}

func TestRecommendHybrid_UnknownSeed(t *testing.T) {
	b := buildBundle(t, testBooks(), testRatings())

	if got := RecommendHybrid(b, 999, 5); len(got) != 0 {
		t.Errorf("RecommendHybrid(999) = %v, want empty", got)
	}
}

func TestRecommendHybrid_DefaultTopN(t *testing.T) {
	b := buildBundle(t, testBooks(), testRatings())

	got := RecommendHybrid(b, 1, 0)
	if len(got) > DefaultConfig().CollaborativeDefault {
		t.Errorf("len = %d, want <= %d", len(got), DefaultConfig().CollaborativeDefault)
	}
	if len(got) == 0 {
		t.Error("expected results with default topN")
	}
}
