package router

import (
	"net/http"
	"time"

	middleware2 "recruitment-service/pkg/middleware"

	"recruitment-service/internal/domain"
	"recruitment-service/internal/handler"
	"recruitment-service/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Health       *handler.HealthHandler
	User         *handler.UserHandler
	Team         *handler.TeamHandler
	Application  *handler.ApplicationHandler
	Invitation   *handler.InvitationHandler
	Swipe        *handler.SwipeHandler
	RequestLimit time.Duration
}

func SetupRouter(h Handlers, authService middleware.AuthService) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware2.LoggingMiddleware)
	if h.RequestLimit > 0 {
		r.Use(chimiddleware.Timeout(h.RequestLimit))
	}

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Public endpoints
	r.Get("/health", h.Health.Health)
	r.Head("/health", h.Health.Health)

	// Protected endpoints (require JWT authentication)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(authService))

		r.Post("/users/me", h.User.RegisterSelf)
		r.Get("/users/{userID}", h.User.GetUser)

		// Team endpoints
		r.Post("/teams", h.Team.CreateTeam)
		r.Route("/teams/{teamID}", func(r chi.Router) {
			r.Get("/", h.Team.GetTeam)
			r.Patch("/", h.Team.UpdateTeam)
			r.Post("/squad-full", h.Team.SetSquadFull)
			r.Post("/apply", h.Application.Apply)
			r.Get("/applications", h.Application.ListApplications)
			r.Post("/invite", h.Invitation.Invite)
			r.Get("/invitations", h.Invitation.ListTeamInvitations)
		})

		// Application endpoints
		r.Post("/applications/{applicationID}/approve", h.Application.Approve)
		r.Post("/applications/{applicationID}/reject", h.Application.Reject)
		r.Delete("/applications/{applicationID}", h.Application.Withdraw)

		// Invitation endpoints
		r.Get("/invitations/{invitationID}", h.Invitation.GetInvitation)
		r.Put("/invitations/{invitationID}", h.Invitation.Respond)

		// Swipe endpoints
		r.Post("/swipe/teams/{teamID}", h.Swipe.SwipeTeam)
		r.Post("/swipe/players/{playerID}", h.Swipe.SwipePlayer)
	})

	// Player-only endpoints
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(authService))
		r.Use(middleware.RequireRole(domain.RolePlayer))

		r.Get("/players/me/applications", h.Application.ListMyApplications)
		r.Get("/players/me/invitations", h.Invitation.ListMyInvitations)
	})

	return r
}
