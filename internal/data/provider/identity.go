package provider

import (
	"sync"

	"go.uber.org/zap"
)

// IdentityProvider stores the display name of one session and notifies
// subscribers on change. Each session gets its own instance.
type IdentityProvider interface {
	DisplayName() string
	Set(displayName string)
	Subscribe(fn func(displayName string)) (cancel func())
}

type memoryIdentity struct {
	mu      sync.Mutex
	name    string
	subs    map[int]func(string)
	nextSub int
	log     *zap.Logger
}

func NewIdentityProvider(log *zap.Logger) IdentityProvider {
	return &memoryIdentity{
		subs: make(map[int]func(string)),
		log:  log.With(zap.String("provider", "identity")),
	}
}

func (m *memoryIdentity) DisplayName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.name
}

// Set stores the name and fans the change out. Subscribers run after the
// lock is released so they may call back into the provider.
func (m *memoryIdentity) Set(displayName string) {
	m.mu.Lock()
	if m.name == displayName {
		m.mu.Unlock()
		return
	}
	m.name = displayName
	m.log.Debug("Display name updated", zap.String("display_name", displayName))
	fns := make([]func(string), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(displayName)
	}
}

func (m *memoryIdentity) Subscribe(fn func(string)) (cancel func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}
