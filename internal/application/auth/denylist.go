package auth

import (
	"sync"
	"time"
)

// Denylist tokens revocados por logout, retenidos hasta su expiración.
// Vive en memoria: un reinicio del proceso olvida las revocaciones.
type Denylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewDenylist construye una lista vacía.
func NewDenylist() *Denylist {
	return &Denylist{entries: make(map[string]time.Time), now: time.Now}
}

// Revoke marca el jti como revocado hasta expiresAt.
func (d *Denylist) Revoke(tokenID string, expiresAt time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.purgeLocked()
	d.entries[tokenID] = expiresAt
}

// IsRevoked indica si el jti está revocado y aún no expiró.
func (d *Denylist) IsRevoked(tokenID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	exp, ok := d.entries[tokenID]
	if !ok {
		return false
	}
	if !d.now().Before(exp) {
		delete(d.entries, tokenID)
		return false
	}
	return true
}

// Len cantidad de revocaciones vigentes.
func (d *Denylist) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.purgeLocked()
	return len(d.entries)
}

func (d *Denylist) purgeLocked() {
	now := d.now()
	for id, exp := range d.entries {
		if !now.Before(exp) {
			delete(d.entries, id)
		}
	}
}
