package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestMemoryStoreGetSetDelete(t *testing.T) {
	s := NewMemoryStore()

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set("key", "value"))
	got, ok, err := s.Get("key")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "value", got)

	require.NoError(t, s.Set("key", "updated"))
	got, _, err = s.Get("key")
	require.NoError(t, err)
	require.Equal(t, "updated", got)

	require.NoError(t, s.Delete("key"))
	_, ok, err = s.Get("key")
	require.NoError(t, err)
	require.False(t, ok)

	// Deleting an absent key is a no-op.
	require.NoError(t, s.Delete("key"))
}

func TestCollectionRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	saved := []record{
		{ID: "1", Name: "first"},
		{ID: "2", Name: "second"},
		{ID: "3", Name: "third"},
	}
	require.NoError(t, SaveCollection(s, "records", saved))

	var loaded []record
	require.NoError(t, LoadCollection(s, "records", &loaded))
	require.Equal(t, saved, loaded)
}

func TestLoadCollectionAbsentIsEmpty(t *testing.T) {
	s := NewMemoryStore()

	var loaded []record
	require.NoError(t, LoadCollection(s, "records", &loaded))
	require.Empty(t, loaded)
}

func TestLoadCollectionCorruptIsEmpty(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Set("records", "{not json"))

	var loaded []record
	require.NoError(t, LoadCollection(s, "records", &loaded))
	require.Empty(t, loaded)
}

func TestSaveCollectionOverwrites(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, SaveCollection(s, "records", []record{{ID: "1"}, {ID: "2"}}))
	require.NoError(t, SaveCollection(s, "records", []record{{ID: "3"}}))

	var loaded []record
	require.NoError(t, LoadCollection(s, "records", &loaded))
	require.Len(t, loaded, 1)
	require.Equal(t, "3", loaded[0].ID)
}
