package smapi

// modRef names one mod in a lookup request.
type modRef struct {
	ID string `json:"id"`
}

// searchRequest is the body POSTed to the mods endpoint.
type searchRequest struct {
	Mods                    []modRef `json:"mods"`
	Platform                string   `json:"platform,omitempty"`
	IncludeExtendedMetadata bool     `json:"includeExtendedMetadata"`
}

// ModEntry is one element of the endpoint's response array.
type ModEntry struct {
	ID       string   `json:"id"`
	Metadata Metadata `json:"metadata"`
}

// Metadata is the extended metadata the registry knows for a mod.
type Metadata struct {
	Name    string   `json:"name"`
	NexusID int      `json:"nexusID"`
	Main    MainPage `json:"main"`
}

// MainPage is the mod's primary release page.
type MainPage struct {
	URL     string `json:"url"`
	Version string `json:"version"`
}
