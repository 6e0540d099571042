package dbsession

import (
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	providersMu sync.RWMutex
	providers   = map[string]Provider{}
)

// Register makes a provider available by name.  It is intended to be called
// from the init function of a provider package.
//
// Register panics if the provider is nil or a provider with the same name
// is already registered.
func Register(p Provider) {
	providersMu.Lock()
	defer providersMu.Unlock()

	if p == nil {
		panic("dbsession: Register provider is nil")
	}
	if _, dup := providers[p.Name()]; dup {
		panic("dbsession: Register called twice for provider " + p.Name())
	}
	providers[p.Name()] = p
}

// Providers returns a sorted list of the names of registered providers.
func Providers() []string {
	providersMu.RLock()
	defer providersMu.RUnlock()

	names := maps.Keys(providers)
	slices.Sort(names)
	return names
}

func lookupProvider(name string) (Provider, bool) {
	providersMu.RLock()
	defer providersMu.RUnlock()

	p, ok := providers[name]
	return p, ok
}
