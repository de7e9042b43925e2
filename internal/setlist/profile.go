package setlist

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hay-kot/setlist/internal/core/profile"
	"github.com/hay-kot/setlist/internal/core/storage"
	"github.com/hay-kot/setlist/internal/persist"
)

// ProfileService holds the listener profile. Drafts are persisted as they
// change; Submit validates and marks the profile valid.
type ProfileService struct {
	mu      sync.RWMutex
	current profile.Profile

	bridge *persist.Bridge[profile.Profile]
	log    zerolog.Logger
}

// OpenProfileService loads the saved profile from store, falling back to an
// empty one.
func OpenProfileService(ctx context.Context, store storage.Store, log zerolog.Logger) *ProfileService {
	p := &ProfileService{
		bridge: persist.New[profile.Profile](store, profile.StorageKey, log),
		log:    log.With().Str("component", "profile").Logger(),
	}

	saved, err := p.bridge.Load(ctx)
	if err == nil {
		p.current = saved
		p.log.Debug().Str("username", saved.Username).Bool("valid", saved.Valid).Msg("restored profile")
	} else if errors.Is(err, persist.ErrNotFound) {
		p.log.Debug().Msg("no saved profile")
	}

	return p
}

// Current returns the profile as last saved or submitted.
func (p *ProfileService) Current() profile.Profile {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Update stores next as a draft. The draft is not validated and is marked
// invalid. An empty draft is kept in memory but not persisted.
func (p *ProfileService) Update(next profile.Profile) profile.Profile {
	next.Valid = false

	p.mu.Lock()
	p.current = next
	p.mu.Unlock()

	if !next.IsZero() {
		p.bridge.Save(next)
	}
	return next
}

// Submit validates next and, if it passes, stores it marked valid. On a
// validation failure the draft is still kept and the field errors returned.
func (p *ProfileService) Submit(next profile.Profile) (profile.Profile, error) {
	if err := next.Validate(); err != nil {
		p.Update(next)
		return p.Current(), err
	}

	next.Valid = true

	p.mu.Lock()
	p.current = next
	p.mu.Unlock()

	p.bridge.Save(next)
	p.log.Info().Str("username", next.Username).Msg("profile submitted")
	return next, nil
}

// Flush waits until the latest profile has been persisted.
func (p *ProfileService) Flush(ctx context.Context) error {
	return p.bridge.Flush(ctx)
}

// Close persists any pending profile and stops background work.
func (p *ProfileService) Close(ctx context.Context) error {
	return p.bridge.Close(ctx)
}
