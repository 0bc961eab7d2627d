package server

import (
	"net/http"

	"github.com/josbon93/Elite-Games-Soccer-Room/internal/web"

	"github.com/a-h/templ"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	games := s.store.Games()
	catalog := make([]web.CatalogGame, 0, len(games))
	for _, game := range games {
		catalog = append(catalog, toCatalogGame(game))
	}
	templ.Handler(web.Home(catalog)).ServeHTTP(w, r)
}

func (s *Server) handleSetupView(w http.ResponseWriter, r *http.Request) {
	game, ok := s.store.GetGame(r.PathValue("gameID"))
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	templ.Handler(web.SetupView(toCatalogGame(*game))).ServeHTTP(w, r)
}

func (s *Server) handleBoardView(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	if _, ok := s.store.GetMatch(matchID); !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	templ.Handler(web.BoardView(matchID)).ServeHTTP(w, r)
}

func toCatalogGame(game Game) web.CatalogGame {
	return web.CatalogGame{
		ID:          game.ID,
		Name:        game.Name,
		Type:        game.Type,
		Description: game.Description,
		MaxPlayers:  game.MaxPlayers,
		MaxTeams:    game.MaxTeams,
		TeamsOnly:   game.TeamsOnly,
	}
}
