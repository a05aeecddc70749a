package ecs

import (
	"reflect"
	"sort"
)

// RegistryStats is a snapshot of registry bookkeeping, used by tooling and reports.
type RegistryStats struct {
	LiveEntities   int
	ActiveEntities int
	PendingAdd     int
	PendingKill    int
	FreeIDs        int
	HighestID      int
	Reconciles     uint64
	Tags           int
	Groups         int
	Pools          []PoolStats
	Systems        []SystemInfo
}

// PoolStats describes one component pool.
type PoolStats struct {
	ID       ComponentID
	Type     string
	Slots    int
	Carriers int
}

// SystemInfo describes one registered system.
type SystemInfo struct {
	Name      string
	Signature string
	Entities  int
}

// CollectStats walks the registry and returns a snapshot of its state.
func (r *Registry) CollectStats() RegistryStats {
	stats := RegistryStats{
		PendingAdd:  r.toAdd.len(),
		PendingKill: r.toKill.len(),
		FreeIDs:     r.free.len(),
		HighestID:   r.nextEntity - 1,
		Reconciles:  r.reconciles,
		Tags:        len(r.tags.entityByTag),
		Groups:      len(r.groups.entitiesByGroup),
	}

	carriers := make([]int, len(r.pools))
	for id, st := range r.states {
		if st == stateDestroyed {
			continue
		}
		stats.LiveEntities++
		if st == stateActive {
			stats.ActiveEntities++
		}
		for _, cid := range r.signatures[id].IDs() {
			if int(cid) < len(carriers) {
				carriers[cid]++
			}
		}
	}

	for id, p := range r.pools {
		if p == nil {
			continue
		}
		stats.Pools = append(stats.Pools, PoolStats{
			ID:       ComponentID(id),
			Type:     p.Type().String(),
			Slots:    p.Len(),
			Carriers: carriers[id],
		})
	}
	sort.Slice(stats.Pools, func(i, j int) bool { return stats.Pools[i].ID < stats.Pools[j].ID })

	for _, s := range r.systems {
		stats.Systems = append(stats.Systems, SystemInfo{
			Name:      systemName(s),
			Signature: s.Signature().String(),
			Entities:  len(s.Entities()),
		})
	}

	return stats
}

func systemName(s System) string {
	t := reflect.TypeOf(s)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
