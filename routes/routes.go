package routes

import (
	"github.com/fastfour/schleifchen-system/handlers"
	"github.com/fastfour/schleifchen-system/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes mounts the API. Reading drafts, rankings and logs is public;
// everything that mutates tournament state requires an organizer token.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	roundHandler *handlers.RoundHandler,
	rankingHandler *handlers.RankingHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.Get("/{tournamentID}", tournamentHandler.Get)
		r.Get("/{tournamentID}/draft", roundHandler.CurrentDraft)
		r.Get("/{tournamentID}/rounds/log", roundHandler.Log)
		r.Get("/{tournamentID}/ranking", rankingHandler.Ranking)
		r.Get("/{tournamentID}/ranking/table", rankingHandler.Table)
		r.Get("/{tournamentID}/semifinals", rankingHandler.Semifinals)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticator([]byte(jwtSecret)))

			r.Post("/", tournamentHandler.Create)
			r.Delete("/{tournamentID}", tournamentHandler.Delete)

			r.Put("/{tournamentID}/roster", tournamentHandler.LoadRoster)
			r.Post("/{tournamentID}/players", tournamentHandler.AddPlayer)
			r.Delete("/{tournamentID}/players/{name}", tournamentHandler.RemovePlayer)

			r.Post("/{tournamentID}/draw", roundHandler.Draw)
			r.Put("/{tournamentID}/draft", roundHandler.EditDraft)
			r.Post("/{tournamentID}/rounds", roundHandler.Commit)

			r.Post("/{tournamentID}/export", rankingHandler.Export)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
