package config

import (
	"fmt"
	"sync"
)

// Section represents one logical group of configuration settings.
// Sections serialize themselves to and from generic maps so the store
// can persist them without knowing their concrete types.
type Section interface {
	// ID returns the unique section identifier used as the storage key
	ID() string

	// Title returns a short human-readable section name
	Title() string

	// Description returns a longer description of what the section configures
	Description() string

	// Data returns the current configuration data
	Data() map[string]interface{}

	// SetData replaces the section's settings from stored data
	SetData(data map[string]interface{}) error

	// Validate checks that the current settings are usable
	Validate() error

	// Reset restores the section to its default settings
	Reset()
}

// Manager coordinates registered configuration sections with a backing store.
type Manager struct {
	store    Store
	sections map[string]Section
	order    []string
	mu       sync.RWMutex
}

// NewManager creates a manager backed by the given store.
func NewManager(store Store) *Manager {
	return &Manager{
		store:    store,
		sections: make(map[string]Section),
	}
}

// Store returns the backing store.
func (m *Manager) Store() Store {
	return m.store
}

// RegisterSection adds a section to the manager. Section IDs must be unique.
func (m *Manager) RegisterSection(section Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := section.ID()
	if _, exists := m.sections[id]; exists {
		return fmt.Errorf("section %q is already registered", id)
	}

	m.sections[id] = section
	m.order = append(m.order, id)
	return nil
}

// GetSection retrieves a registered section by ID.
func (m *Manager) GetSection(id string) (Section, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	section, ok := m.sections[id]
	return section, ok
}

// GetSections returns all registered sections in registration order.
func (m *Manager) GetSections() []Section {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sections := make([]Section, 0, len(m.order))
	for _, id := range m.order {
		sections = append(sections, m.sections[id])
	}
	return sections
}

// LoadAll loads stored data into every registered section.
// Sections with no stored data keep their defaults.
func (m *Manager) LoadAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	for _, id := range m.order {
		data, err := m.store.GetSection(id)
		if err != nil {
			return fmt.Errorf("failed to read section %q: %w", id, err)
		}
		if len(data) == 0 {
			continue
		}
		if err := m.sections[id].SetData(data); err != nil {
			return fmt.Errorf("failed to apply section %q: %w", id, err)
		}
	}

	return nil
}

// SaveAll persists every registered section to the store.
func (m *Manager) SaveAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		if err := m.store.SetSection(id, m.sections[id].Data()); err != nil {
			return fmt.Errorf("failed to stage section %q: %w", id, err)
		}
	}

	if err := m.store.Save(); err != nil {
		return fmt.Errorf("failed to save store: %w", err)
	}
	return nil
}

// SaveSection persists a single section to the store.
func (m *Manager) SaveSection(id string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	section, ok := m.sections[id]
	if !ok {
		return fmt.Errorf("section %q is not registered", id)
	}

	if err := m.store.SetSection(id, section.Data()); err != nil {
		return fmt.Errorf("failed to stage section %q: %w", id, err)
	}
	if err := m.store.Save(); err != nil {
		return fmt.Errorf("failed to save store: %w", err)
	}
	return nil
}

// ValidateAll validates every registered section.
func (m *Manager) ValidateAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		if err := m.sections[id].Validate(); err != nil {
			return fmt.Errorf("section %q invalid: %w", id, err)
		}
	}
	return nil
}
