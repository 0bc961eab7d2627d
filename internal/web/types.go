package web

type CatalogGame struct {
	ID          string
	Name        string
	Type        string
	Description string
	MaxPlayers  int
	MaxTeams    int
	TeamsOnly   bool
}
