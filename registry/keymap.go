package registry

import (
	"sync"

	"github.com/kbukum/dime/token"
)

// Producer creates a value on demand. A stored producer is invoked on every Get.
type Producer func() any

// entry holds either a literal value or a producer.
type entry struct {
	value    any
	producer Producer
}

// KeyMap is an insertion-ordered map from exact token identity to a stored
// value or producer.
type KeyMap struct {
	keys   []token.Token
	values map[token.Token]entry
	mu     sync.RWMutex
}

// New creates an empty KeyMap.
func New() *KeyMap {
	return &KeyMap{
		keys:   make([]token.Token, 0),
		values: make(map[token.Token]entry),
	}
}

// Set stores a literal value for tok, appending tok to the key order if it
// is not already present.
func (m *KeyMap) Set(tok token.Token, value any) {
	m.put(tok, entry{value: value})
}

// SetProducer stores a producer for tok. Get invokes it on every read.
func (m *KeyMap) SetProducer(tok token.Token, p Producer) {
	m.put(tok, entry{producer: p})
}

func (m *KeyMap) put(tok token.Token, e entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.values[tok]; !exists {
		m.keys = append(m.keys, tok)
	}
	m.values[tok] = e
}

// Get returns the value stored for the exact token. Producers are invoked
// outside the lock, so they may read the map themselves.
func (m *KeyMap) Get(tok token.Token) (any, bool) {
	m.mu.RLock()
	e, ok := m.values[tok]
	m.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if e.producer != nil {
		return e.producer(), true
	}
	return e.value, true
}

// Has reports whether the exact token is present.
func (m *KeyMap) Has(tok token.Token) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.values[tok]
	return ok
}

// IsProducer reports whether the exact token is stored as a producer.
func (m *KeyMap) IsProducer(tok token.Token) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[tok].producer != nil
}

// Keys returns the stored tokens in insertion order.
func (m *KeyMap) Keys() []token.Token {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]token.Token, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Find returns the first key in insertion order for which match returns true.
func (m *KeyMap) Find(match func(token.Token) bool) (token.Token, bool) {
	for _, k := range m.Keys() {
		if match(k) {
			return k, true
		}
	}
	return nil, false
}

// Len returns the number of stored tokens.
func (m *KeyMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.keys)
}

// Clear removes every entry.
func (m *KeyMap) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.keys = make([]token.Token, 0)
	m.values = make(map[token.Token]entry)
}
