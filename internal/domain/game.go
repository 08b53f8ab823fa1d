package domain

// Game describes the moddable game and the hosting sites its mods link to.
type Game struct {
	Name        string // Steam install directory name
	ModsDir     string // Folder under the install path the mod loader reads
	NexusDomain string // Nexus Mods game domain, e.g. "stardewvalley"
	ModDropSlug string // ModDrop game slug, e.g. "stardew-valley"
}

// StardewValley is the game this manager targets.
var StardewValley = Game{
	Name:        "Stardew Valley",
	ModsDir:     "Mods",
	NexusDomain: "stardewvalley",
	ModDropSlug: "stardew-valley",
}

// ModLinks are the web pages derived from a manifest's update keys.
// Empty fields mean the mod declared no key for that site.
type ModLinks struct {
	Nexus   string `json:"nexus,omitempty"`
	GitHub  string `json:"github,omitempty"`
	ModDrop string `json:"moddrop,omitempty"`
}

// IsEmpty reports whether no link was derived.
func (l ModLinks) IsEmpty() bool {
	return l.Nexus == "" && l.GitHub == "" && l.ModDrop == ""
}
