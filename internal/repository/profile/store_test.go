package profile

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dema-cloud/prodmatch/internal/db/memory"
)

func newTestStore() *Store {
	return New(memory.NewStore(), "prodmatch:")
}

func TestRecordSearch_NewestFirstCapped(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		if err := s.RecordSearch(ctx, "c1", fmt.Sprintf("term%02d", i)); err != nil {
			t.Fatalf("RecordSearch: %v", err)
		}
	}

	p, err := s.Get(ctx, "c1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(p.Searches) != HistoryCap {
		t.Fatalf("history length = %d, want %d", len(p.Searches), HistoryCap)
	}
	if p.Searches[0] != "term29" {
		t.Errorf("newest entry = %q, want term29", p.Searches[0])
	}
	if p.Searches[HistoryCap-1] != "term05" {
		t.Errorf("oldest kept entry = %q, want term05", p.Searches[HistoryCap-1])
	}
}

func TestRecordSearch_NormalizesAndSkipsBlank(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	if err := s.RecordSearch(ctx, "c1", "  POMP  "); err != nil {
		t.Fatalf("RecordSearch: %v", err)
	}
	if err := s.RecordSearch(ctx, "c1", "   "); err != nil {
		t.Fatalf("RecordSearch blank: %v", err)
	}

	p, _ := s.Get(ctx, "c1")
	if len(p.Searches) != 1 || p.Searches[0] != "pomp" {
		t.Errorf("history = %v, want [pomp]", p.Searches)
	}
}

func TestSetContactAndGet(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	consent := true
	if err := s.SetContact(ctx, "c1", "klant@example.nl", &consent); err != nil {
		t.Fatalf("SetContact: %v", err)
	}

	p, err := s.Get(ctx, "c1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Email != "klant@example.nl" {
		t.Errorf("Email = %q", p.Email)
	}
	if !p.Consent {
		t.Error("Consent = false, want true")
	}
}

func TestGet_UnknownClientIsEmpty(t *testing.T) {
	s := newTestStore()

	p, err := s.Get(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Email != "" || p.Consent || len(p.Searches) != 0 {
		t.Errorf("profile = %+v, want empty", p)
	}
}

func TestMarkSent(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	at := time.Unix(1700000000, 0)

	if err := s.MarkSent(ctx, "c1", at); err != nil {
		t.Fatalf("MarkSent: %v", err)
	}
	p, _ := s.Get(ctx, "c1")
	if !p.LastSent.Equal(at) {
		t.Errorf("LastSent = %v, want %v", p.LastSent, at)
	}
}

func TestRecentTerms_DistinctNewestFirst(t *testing.T) {
	p := Profile{Searches: []string{"pomp", "buis", "pomp", "fitting", "slang", "koppeling", "pomp"}}

	got := p.RecentTerms(5)
	want := []string{"pomp", "buis", "fitting", "slang", "koppeling"}
	if len(got) != len(want) {
		t.Fatalf("RecentTerms = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("RecentTerms = %v, want %v", got, want)
		}
	}
}
