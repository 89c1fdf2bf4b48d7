package store

import "encoding/json"

// Store is the persistent key/value substrate the repositories run on.
// Values are JSON text; each Set is a single underlying write. There are no
// cross-key transactions: callers that load a collection, mutate it in memory
// and save it back are not synchronized against each other, and the last
// writer wins.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// LoadCollection unmarshals the named collection into dest. An absent key or
// a value that fails to parse both leave dest empty; neither is an error.
func LoadCollection(s Store, key string, dest interface{}) error {
	raw, ok, err := s.Get(key)
	if err != nil {
		return err
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		// Corrupt collections read as empty.
		return nil
	}
	return nil
}

// SaveCollection overwrites the named collection with v in a single write.
func SaveCollection(s Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(key, string(data))
}
