package store

import (
	"strconv"

	"health_edu_backend/internal/model"
)

// DemoScope is the local scope used when a request carries no device id.
const DemoScope = "demo"

// Provider picks the store for a request from its session.
type Provider struct {
	kv    KV
	repos *Repositories
}

func NewProvider(kv KV, repos *Repositories) *Provider {
	return &Provider{kv: kv, repos: repos}
}

func (p *Provider) KV() KV {
	return p.kv
}

// For returns a local store scoped to the device for anonymous requests, and
// a remote store with a per-user local fallback for signed-in ones.
func (p *Provider) For(session *model.Session, deviceID string) ProgressStore {
	if session == nil || p.repos == nil {
		return p.Local(deviceID)
	}
	return NewFallbackStore(
		NewRemoteStore(p.repos, session.UserID),
		NewLocalStore(p.kv, ScopeFor(session, deviceID)),
	).WithSession(session)
}

// Local returns the device-scoped demo store.
func (p *Provider) Local(deviceID string) *LocalStore {
	return NewLocalStore(p.kv, ScopeFor(nil, deviceID))
}

// Remote returns the unwrapped remote store, or nil without a database.
func (p *Provider) Remote(session *model.Session) *RemoteStore {
	if session == nil || p.repos == nil {
		return nil
	}
	return NewRemoteStore(p.repos, session.UserID)
}

// ScopeFor names the local namespace of a request: the user for signed-in
// requests, otherwise the device.
func ScopeFor(session *model.Session, deviceID string) string {
	if session != nil {
		return "user-" + strconv.FormatUint(uint64(session.UserID), 10)
	}
	if deviceID == "" {
		return DemoScope
	}
	return deviceID
}
