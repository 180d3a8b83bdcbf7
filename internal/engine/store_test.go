package engine

import (
	"sync"
	"testing"

	"salesdash/internal/models"
)

func TestStoreLifecycle(t *testing.T) {
	// 1. Setup
	store := NewStore()

	// 2. Before load
	if store.Ready() {
		t.Error("a fresh store must not be ready")
	}
	if store.Records() != nil {
		t.Error("a fresh store must return nil records")
	}

	// 3. After load
	ds := &models.Dataset{
		Meta: models.Meta{Source: "enhanced_tableau", TotalRecords: 1},
		Records: []models.Record{
			{Date: "2024-01-05", Category: "Technology", Segment: "Consumer", Value: 100},
		},
	}
	store.SetData(ds, "enhanced_latest.json")

	if !store.Ready() {
		t.Error("store must be ready after SetData")
	}
	meta, source, loadedAt := store.Meta()
	if meta.Source != "enhanced_tableau" || source != "enhanced_latest.json" {
		t.Errorf("unexpected meta: %+v, %s", meta, source)
	}
	if loadedAt.IsZero() {
		t.Error("loadedAt must be set")
	}
	if len(store.Records()) != 1 {
		t.Errorf("expected 1 record, got %d", len(store.Records()))
	}
}

func TestStoreConcurrentReaders(t *testing.T) {
	store := NewStore()
	ds := &models.Dataset{
		Records: []models.Record{
			{Date: "2024-01-05", Category: "Technology", Segment: "Consumer", Value: 100},
		},
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.Ready()
				store.Records()
			}
		}()
	}
	for i := 0; i < 10; i++ {
		store.SetData(ds, "latest.json")
	}
	wg.Wait()

	if !store.Ready() {
		t.Error("store must be ready after the writer finishes")
	}
}
