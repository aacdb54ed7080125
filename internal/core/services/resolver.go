package services

import "sort"

// Resolver reconciles the requested dataset IDs against the datasets the
// scan actually produced. When no IDs were requested the reconciliation
// is a no-op: nothing can be missing.
type Resolver struct {
	missing map[string]bool
}

// NewResolver seeds the not-found working set from the request list.
func NewResolver(ids []string) *Resolver {
	missing := make(map[string]bool, len(ids))
	for _, id := range ids {
		missing[id] = true
	}
	return &Resolver{missing: missing}
}

// MarkSeen records that a requested dataset was matched by the scan.
func (r *Resolver) MarkSeen(id string) {
	delete(r.missing, id)
}

// Missing returns the requested IDs that were never matched, sorted.
// Each ID appears at most once regardless of how often it was requested.
func (r *Resolver) Missing() []string {
	if len(r.missing) == 0 {
		return nil
	}
	ids := make([]string, 0, len(r.missing))
	for id := range r.missing {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
