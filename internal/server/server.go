package server

import (
	"net/http"
	"sync"

	"github.com/josbon93/Elite-Games-Soccer-Room/internal/config"

	"gorm.io/gorm"
)

type Server struct {
	store    *Store
	db       *gorm.DB
	hub      *wsHub
	cfg      config.Config
	limiter  *rateLimiter
	clocksMu sync.Mutex
	clocks   map[string]chan struct{}
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	return &Server{
		store:   NewStore(),
		db:      conn,
		hub:     newWSHub(),
		cfg:     cfg,
		limiter: newRateLimiter(),
		clocks:  make(map[string]chan struct{}),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /setup/{gameID}", s.handleSetupView)
	mux.HandleFunc("GET /matches/{id}/board", s.handleBoardView)
	mux.HandleFunc("GET /api/games", s.handleListGames)
	mux.HandleFunc("GET /api/games/{id}", s.handleGetGame)
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("PATCH /api/sessions/{id}/status", s.handleSessionStatus)
	mux.HandleFunc("POST /api/sessions/{id}/match", s.handleCreateMatch)
	mux.HandleFunc("GET /api/matches/{id}", s.handleGetMatch)
	mux.HandleFunc("POST /api/matches/{id}/start", s.handleStartGame)
	mux.HandleFunc("POST /api/matches/{id}/rounds/start", s.handleStartRound)
	mux.HandleFunc("POST /api/matches/{id}/scores/adjust", s.handleAdjustScore)
	mux.HandleFunc("POST /api/matches/{id}/scores/set", s.handleSetScore)
	mux.HandleFunc("POST /api/matches/{id}/scores/submit", s.handleSubmitScores)
	mux.HandleFunc("POST /api/matches/{id}/advance", s.handleAdvance)
	mux.HandleFunc("POST /api/matches/{id}/continue", s.handleContinue)
	mux.HandleFunc("POST /api/matches/{id}/exit", s.handleExitMatch)
	mux.HandleFunc("POST /api/admin/reset", s.handleAdminReset)
	mux.HandleFunc("GET /ws/matches/{id}", s.handleMatchWebsocket)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	return mux
}

func (s *Server) matchDurations() matchDurations {
	return matchDurations{
		RoundSecondsSkeeball: s.cfg.RoundSecondsSkeeball,
		RoundSecondsShooter:  s.cfg.RoundSecondsShooter,
		RoundSecondsRelay:    s.cfg.RoundSecondsRelay,
		TotalSeconds:         s.cfg.TotalSeconds,
		CountdownSeconds:     s.cfg.CountdownSeconds,
	}
}
