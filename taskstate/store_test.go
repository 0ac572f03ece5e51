package taskstate

import (
	"testing"

	"github.com/perbu/a2acore/a2a"
)

func TestMemStoreGetReturnsIndependentCopy(t *testing.T) {
	store := NewMemStore()
	store.Put(&a2a.Task{
		ID:        "t1",
		Artifacts: []*a2a.Artifact{{ArtifactID: "a1", Parts: []a2a.Part{{Text: "original"}}}},
	})

	got, ok := store.Get("t1")
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	got.Artifacts[0].Parts[0].Text = "mutated"

	again, _ := store.Get("t1")
	if again.Artifacts[0].Parts[0].Text != "original" {
		t.Errorf("stored artifact mutated via a Get() copy: got %q, want %q",
			again.Artifacts[0].Parts[0].Text, "original")
	}
}

func TestMemStoreGetMissing(t *testing.T) {
	store := NewMemStore()
	if _, ok := store.Get("missing"); ok {
		t.Error("Get(\"missing\") ok = true, want false")
	}
}
