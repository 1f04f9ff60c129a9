package cart

import (
	"encoding/json"
	"fmt"
	"sync"
)

// StorageKey is the fixed namespace key the cart persists under.
const StorageKey = "cart-items"

// storageVersion tags the persisted payload so the format can evolve.
const storageVersion = 1

type Storage interface {
	Load() ([]Line, error)
	Save(lines []Line) error
}

type envelope struct {
	Version int    `json:"version"`
	Items   []Line `json:"items"`
}

func encodeLines(lines []Line) ([]byte, error) {
	return json.Marshal(envelope{Version: storageVersion, Items: lines})
}

// decodeLines reads the versioned envelope, falling back to the legacy
// bare-array layout written before the version field existed.
func decodeLines(data []byte) ([]Line, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Version > 0 {
		return env.Items, nil
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("decode cart payload: %w", err)
	}
	return lines, nil
}

// MemStore is the in-memory Storage used in tests and as a fallback when
// no durable path is configured.
type MemStore struct {
	mu   sync.Mutex
	data []byte
}

func (m *MemStore) Load() ([]Line, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decodeLines(m.data)
}

func (m *MemStore) Save(lines []Line) error {
	data, err := encodeLines(lines)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}

// Bytes returns the raw persisted payload, mainly for tests.
func (m *MemStore) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out
}

// SetBytes seeds the raw payload, simulating what a previous session left
// behind.
func (m *MemStore) SetBytes(data []byte) {
	m.mu.Lock()
	m.data = append([]byte(nil), data...)
	m.mu.Unlock()
}
