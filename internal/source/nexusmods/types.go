package nexusmods

// ModData is the subset of a Nexus Mods mod record this manager reads.
type ModData struct {
	ModID        int    `graphql:"modId"`
	Name         string `graphql:"name"`
	Summary      string `graphql:"summary"`
	Version      string `graphql:"version"`
	Author       string `graphql:"author"`
	PictureURL   string `graphql:"pictureUrl"`
	Endorsements int    `graphql:"endorsements"`
	Downloads    int    `graphql:"downloads"`
}
