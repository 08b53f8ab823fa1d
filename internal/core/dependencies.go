package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"svmm/internal/domain"
	"svmm/internal/logging"

	"go.uber.org/zap"
)

// RegistryLookup resolves mod IDs against the remote mod registry.
type RegistryLookup interface {
	Lookup(ctx context.Context, ids []string) ([]domain.RegistryMod, error)
}

// Describer fetches a short description for a mod hosted on Nexus Mods.
type Describer interface {
	Describe(ctx context.Context, nexusID int) (string, error)
}

// DependencyResolver finds dependencies the active mods declare but nobody
// provides, and looks them up in the mod registry.
type DependencyResolver struct {
	lookup    RegistryLookup
	describer Describer
	log       *zap.SugaredLogger
}

// NewDependencyResolver creates a new dependency resolver. lookup may be nil,
// in which case Resolve returns every gap unresolved.
func NewDependencyResolver(lookup RegistryLookup, log *zap.SugaredLogger) *DependencyResolver {
	return &DependencyResolver{lookup: lookup, log: logging.OrNop(log)}
}

// SetDescriber enables Nexus Mods summaries on resolved dependencies.
func (r *DependencyResolver) SetDescriber(d Describer) {
	r.describer = d
}

// FindMissing returns one entry per dependency ID that no mod in mods
// provides, in first-seen order. IDs are compared after trimming and blank
// IDs are skipped.
func (r *DependencyResolver) FindMissing(mods []domain.InstalledMod) []domain.MissingDependency {
	provided := make(map[string]bool, len(mods))
	for _, m := range mods {
		provided[m.ID()] = true
	}

	var missing []domain.MissingDependency
	index := make(map[string]int)
	for _, m := range mods {
		for _, dep := range m.Dependencies {
			id := strings.TrimSpace(dep.UniqueID)
			if id == "" || provided[id] {
				continue
			}

			i, seen := index[id]
			if !seen {
				i = len(missing)
				index[id] = i
				missing = append(missing, domain.MissingDependency{UniqueID: id})
			}
			gap := &missing[i]
			gap.Required = gap.Required || dep.IsRequired
			if !slices.Contains(gap.ForMods, m.ID()) {
				gap.ForMods = append(gap.ForMods, m.ID())
			}
		}
	}
	return missing
}

// Resolve finds the gaps in mods and joins them with registry metadata in a
// single lookup. Gaps the registry does not know stay unresolved. Results
// are ordered required first, then by ID. When the lookup fails the
// unresolved list is still returned along with an ErrRemoteUnavailable error.
func (r *DependencyResolver) Resolve(ctx context.Context, mods []domain.InstalledMod) ([]domain.ResolvedDependency, error) {
	missing := r.FindMissing(mods)
	if len(missing) == 0 {
		return nil, nil
	}

	results := make([]domain.ResolvedDependency, len(missing))
	ids := make([]string, len(missing))
	for i, m := range missing {
		results[i] = domain.ResolvedDependency{MissingDependency: m}
		ids[i] = m.UniqueID
	}

	var lookupErr error
	if r.lookup != nil {
		var found []domain.RegistryMod
		found, lookupErr = r.lookup.Lookup(ctx, ids)
		joinRegistry(results, found)
	}

	r.describe(ctx, results)
	sortResolved(results)

	if lookupErr != nil {
		if !errors.Is(lookupErr, domain.ErrRemoteUnavailable) {
			lookupErr = fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, lookupErr)
		}
		return results, lookupErr
	}
	return results, nil
}

// joinRegistry fills in registry data by exact ID, falling back to a
// case-insensitive match.
func joinRegistry(results []domain.ResolvedDependency, found []domain.RegistryMod) {
	exact := make(map[string]domain.RegistryMod, len(found))
	folded := make(map[string]domain.RegistryMod, len(found))
	for _, m := range found {
		id := strings.TrimSpace(m.ID)
		if _, ok := exact[id]; !ok {
			exact[id] = m
		}
		if _, ok := folded[strings.ToLower(id)]; !ok {
			folded[strings.ToLower(id)] = m
		}
	}

	for i := range results {
		id := results[i].UniqueID
		m, ok := exact[id]
		if !ok {
			m, ok = folded[strings.ToLower(id)]
		}
		if ok {
			results[i].Mod = m
			results[i].Resolved = true
		}
	}
}

func (r *DependencyResolver) describe(ctx context.Context, results []domain.ResolvedDependency) {
	if r.describer == nil {
		return
	}
	for i := range results {
		if !results[i].Resolved || results[i].Mod.NexusID == 0 {
			continue
		}
		summary, err := r.describer.Describe(ctx, results[i].Mod.NexusID)
		if err != nil {
			r.log.Debugw("fetching nexus summary", "id", results[i].UniqueID, "nexus_id", results[i].Mod.NexusID, "error", err)
			continue
		}
		results[i].Summary = summary
	}
}

func sortResolved(results []domain.ResolvedDependency) {
	slices.SortStableFunc(results, func(a, b domain.ResolvedDependency) int {
		if a.Required != b.Required {
			if a.Required {
				return -1
			}
			return 1
		}
		return strings.Compare(a.UniqueID, b.UniqueID)
	})
}
