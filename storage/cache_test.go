package storage

import (
	"context"
	"errors"
	"testing"

	"bikeshare-stats/models"
)

type countingSource struct {
	loads  map[string]int
	closed bool
}

func (s *countingSource) Load(_ context.Context, city string) (*models.RecordSet, error) {
	if city == "boston" {
		return nil, ErrUnknownCity
	}
	s.loads[city]++
	return &models.RecordSet{City: city}, nil
}

func (s *countingSource) Close() error {
	s.closed = true
	return nil
}

func TestCachedSourceReusesLoads(t *testing.T) {
	inner := &countingSource{loads: make(map[string]int)}
	src := NewCachedSource(inner, 2, newTestLogger())
	ctx := context.Background()

	first, err := src.Load(ctx, "chicago")
	if err != nil {
		t.Fatal(err)
	}
	second, err := src.Load(ctx, "chicago")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("expected the cached record set")
	}
	if inner.loads["chicago"] != 1 {
		t.Errorf("chicago loads: got %d, want 1", inner.loads["chicago"])
	}
}

func TestCachedSourceEvictsLeastRecent(t *testing.T) {
	inner := &countingSource{loads: make(map[string]int)}
	src := NewCachedSource(inner, 1, newTestLogger())
	ctx := context.Background()

	for _, city := range []string{"chicago", "washington", "chicago"} {
		if _, err := src.Load(ctx, city); err != nil {
			t.Fatal(err)
		}
	}
	if inner.loads["chicago"] != 2 {
		t.Errorf("chicago loads: got %d, want 2", inner.loads["chicago"])
	}
}

func TestCachedSourceDoesNotCacheErrors(t *testing.T) {
	inner := &countingSource{loads: make(map[string]int)}
	src := NewCachedSource(inner, 2, newTestLogger())

	if _, err := src.Load(context.Background(), "boston"); !errors.Is(err, ErrUnknownCity) {
		t.Errorf("expected ErrUnknownCity, got %v", err)
	}
	if err := src.Close(); err != nil || !inner.closed {
		t.Error("Close should close the wrapped source")
	}
}
