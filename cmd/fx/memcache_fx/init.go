package memcache_fx

import (
	"go.uber.org/fx"

	mem "tourdesk/pkg/memcache"
)

var Module = fx.Provide(provideSubmitKeyStore)

func provideSubmitKeyStore() mem.SubmitKeyStore {
	return mem.NewSubmitKeys()
}
