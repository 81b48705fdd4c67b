package store

import (
	"sort"

	"stockroom/domain"
)

// nameIndex maps a normalized product name to the set of IDs carrying it.
// Empty buckets are dropped so the index never holds stale keys.
type nameIndex map[string]map[string]struct{}

func (ix nameIndex) add(name, id string) {
	key := domain.NameKey(name)
	ids, ok := ix[key]
	if !ok {
		ids = make(map[string]struct{})
		ix[key] = ids
	}
	ids[id] = struct{}{}
}

func (ix nameIndex) remove(name, id string) {
	key := domain.NameKey(name)
	ids, ok := ix[key]
	if !ok {
		return
	}
	delete(ids, id)
	if len(ids) == 0 {
		delete(ix, key)
	}
}

// lookup returns the IDs indexed under name, sorted.
func (ix nameIndex) lookup(name string) []string {
	ids := ix[domain.NameKey(name)]
	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
