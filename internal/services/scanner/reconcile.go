package scanner

import "bwa/internal/domain"

// Reconcile diffs what a page shows now against the preceding scan's
// recorded statuses. preceding is nil for a website's first scan. Every
// registry company is considered so removals are visible; companies never
// detected before or now are left out.
func Reconcile(preceding domain.Changes, detected domain.CompanySet, registry []domain.CompanyID) domain.Changes {
	out := make(domain.Changes)
	for _, id := range registry {
		was := preceding.Detected(id)
		is := detected.Has(id)
		switch {
		case was && is:
			out[id] = domain.StatusStillPresent
		case is:
			out[id] = domain.StatusNew
		case was:
			out[id] = domain.StatusRemoved
		}
	}
	return out
}
