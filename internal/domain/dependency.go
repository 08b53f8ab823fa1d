package domain

// MissingDependency is a dependency no active mod satisfies.
type MissingDependency struct {
	UniqueID string   // trimmed ID of the missing mod
	ForMods  []string // IDs of the active mods that declared it, without duplicates
	Required bool     // true if any declaring mod marked it required
}

// RegistryMod is metadata returned by the remote mod registry.
type RegistryMod struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	NexusID int    `json:"nexus_id,omitempty"` // 0 when the mod is not on Nexus Mods
}

// ResolvedDependency joins a gap with what the registry knows about it.
type ResolvedDependency struct {
	MissingDependency
	Mod      RegistryMod
	Resolved bool   // false when the registry returned nothing for the ID
	Summary  string // optional Nexus Mods summary
}
