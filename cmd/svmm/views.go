package main

import (
	"time"

	"svmm/internal/domain"
)

// Views flatten domain values into the shapes printed by --json.

type modView struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Author      string           `json:"author"`
	Version     string           `json:"version"`
	Description string           `json:"description,omitempty"`
	Active      bool             `json:"active"`
	Path        string           `json:"path"`
	Modified    time.Time        `json:"modified"`
	Depends     []dependencyView `json:"dependencies,omitempty"`
	Links       *domain.ModLinks `json:"links,omitempty"`
}

type dependencyView struct {
	ID       string `json:"id"`
	Version  string `json:"version,omitempty"`
	Required bool   `json:"required"`
}

type profileView struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Active bool   `json:"active"`
}

type gapView struct {
	ID       string   `json:"id"`
	Required bool     `json:"required"`
	ForMods  []string `json:"for_mods"`
	Resolved bool     `json:"resolved"`
	Name     string   `json:"name,omitempty"`
	URL      string   `json:"url,omitempty"`
	Summary  string   `json:"summary,omitempty"`
}

type archiveView struct {
	Path     string    `json:"path"`
	Modified time.Time `json:"modified"`
	Mods     []string  `json:"mods"`
}

type switchView struct {
	ID         string     `json:"id"`
	From       string     `json:"from"`
	To         string     `json:"to"`
	Phase      string     `json:"phase"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

func toModView(m domain.InstalledMod) modView {
	v := modView{
		ID:          m.ID(),
		Name:        m.Name,
		Author:      m.Author,
		Version:     m.Version,
		Description: m.Description,
		Active:      m.Active,
		Path:        m.Path,
		Modified:    m.Modified,
	}
	for _, d := range m.Dependencies {
		v.Depends = append(v.Depends, dependencyView{ID: d.UniqueID, Version: d.Version, Required: d.IsRequired})
	}
	return v
}

func toModViews(mods []domain.InstalledMod) []modView {
	out := make([]modView, len(mods))
	for i, m := range mods {
		out[i] = toModView(m)
	}
	return out
}

func toProfileViews(profiles []domain.Profile) []profileView {
	out := make([]profileView, len(profiles))
	for i, p := range profiles {
		out[i] = profileView{Name: p.Name, Path: p.Path, Active: p.Active}
	}
	return out
}

func toGapViews(gaps []domain.MissingDependency) []gapView {
	out := make([]gapView, len(gaps))
	for i, g := range gaps {
		out[i] = gapView{ID: g.UniqueID, Required: g.Required, ForMods: g.ForMods}
	}
	return out
}

func toResolvedViews(resolved []domain.ResolvedDependency) []gapView {
	out := make([]gapView, len(resolved))
	for i, r := range resolved {
		out[i] = gapView{
			ID:       r.UniqueID,
			Required: r.Required,
			ForMods:  r.ForMods,
			Resolved: r.Resolved,
			Name:     r.Mod.Name,
			URL:      r.Mod.URL,
			Summary:  r.Summary,
		}
	}
	return out
}

func toArchiveView(c domain.ZipArchiveCandidate) archiveView {
	v := archiveView{Path: c.Path, Modified: c.ModTime, Mods: make([]string, 0, len(c.Manifests))}
	for _, m := range c.Manifests {
		v.Mods = append(v.Mods, m.Manifest.ID())
	}
	return v
}

func toSwitchViews(records ...domain.SwitchRecord) []switchView {
	out := make([]switchView, len(records))
	for i, r := range records {
		out[i] = switchView{ID: r.ID, From: r.From, To: r.To, Phase: string(r.Phase), StartedAt: r.StartedAt}
		if !r.FinishedAt.IsZero() {
			finished := r.FinishedAt
			out[i].FinishedAt = &finished
		}
	}
	return out
}
