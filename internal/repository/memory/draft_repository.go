package memory

import (
	"time"

	"pumphouse-kiosk-be/pkg/kiosk"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// DraftRepository keeps editor drafts in process memory with a TTL, so an
// admin who walks away from a half-drawn polygon doesn't leak state.
type DraftRepository struct {
	cache *cache.Cache
}

func NewDraftRepository() *DraftRepository {
	// Default expiration 30 minutes, purge sweep every 10.
	c := cache.New(30*time.Minute, 10*time.Minute)
	return &DraftRepository{
		cache: c,
	}
}

func (r *DraftRepository) Save(draft *kiosk.EditorDraft) {
	r.cache.Set(draft.Id.String(), draft, cache.DefaultExpiration)
}

func (r *DraftRepository) Get(id uuid.UUID) (*kiosk.EditorDraft, bool) {
	if x, found := r.cache.Get(id.String()); found {
		return x.(*kiosk.EditorDraft), true
	}
	return nil, false
}

func (r *DraftRepository) Delete(id uuid.UUID) {
	r.cache.Delete(id.String())
}
