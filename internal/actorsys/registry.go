package actorsys

import (
	"fmt"

	"github.com/nilslef/selfrt/pkg/errors"
)

// New builds an empty Registry.
func New(config *Config) (*Registry, error) {
	if config == nil || config.Logger == nil {
		return nil, fmt.Errorf("invalid configuration")
	}
	return &Registry{
		mailboxes: make(map[uint32]*Mailbox),
		log:       config.Logger,
	}, nil
}

// Spawn allocates a fresh actor id and its Mailbox, returning the id.
func (r *Registry) Spawn() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.mailboxes[id] = newMailbox()
	r.log.Debugw("actor spawned", "actorID", id)
	return id
}

// Mailbox returns the Mailbox registered for actorID.
func (r *Registry) Mailbox(actorID uint32) (*Mailbox, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	mb, ok := r.mailboxes[actorID]
	if !ok {
		return nil, errors.NewLookupError(nil, errors.ErrorCodeUnknownVariant, "unknown actor id").
			WithDetail("actorID", actorID)
	}
	return mb, nil
}

// Despawn removes actorID's mailbox. Any messages still queued for it are
// dropped; the caller is responsible for draining first if that matters.
func (r *Registry) Despawn(actorID uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.mailboxes, actorID)
	r.log.Debugw("actor despawned", "actorID", actorID)
}

// Count reports how many actors are currently registered.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.mailboxes)
}
