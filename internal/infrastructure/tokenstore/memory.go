package tokenstore

import (
	"sync"

	"github.com/mawa3id/booking-client/internal/core/domain"
	"github.com/mawa3id/booking-client/internal/core/ports"
)

// Memory keeps the credential pair in process memory. Meant for tests and
// for embeddings whose session should not outlive the process.
type Memory struct {
	mu    sync.Mutex
	creds domain.Credentials
}

var _ ports.TokenStorage = (*Memory)(nil)

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Load() (domain.Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds, nil
}

func (m *Memory) Store(creds domain.Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = creds
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = domain.Credentials{}
	return nil
}
