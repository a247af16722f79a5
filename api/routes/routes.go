package routes

import (
	"fmt"
	"net/http"
	"time"

	"legalplatform/api/handler"
	"legalplatform/api/middleware"
	"legalplatform/internal/entity"
	"legalplatform/internal/metrics"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Identity       *handler.IdentityHandler
	Lawyers        *handler.LawyerHandler
	Admin          *handler.AdminHandler
	Documents      *handler.DocumentHandler
	Chat           *handler.ChatHandler
	AuthMiddleware middleware.AuthMiddleware
	Metrics        *metrics.Recorder
	AuthRate       *middleware.RateLimiter
	LoginRate      *middleware.RateLimiter
}

func NewRouter(
	e *echo.Echo,
	identity *handler.IdentityHandler,
	lawyers *handler.LawyerHandler,
	admin *handler.AdminHandler,
	documents *handler.DocumentHandler,
	chat *handler.ChatHandler,
	authMiddleware middleware.AuthMiddleware,
	recorder *metrics.Recorder,
) *Router {
	return &Router{
		Echo:           e,
		Identity:       identity,
		Lawyers:        lawyers,
		Admin:          admin,
		Documents:      documents,
		Chat:           chat,
		AuthMiddleware: authMiddleware,
		Metrics:        recorder,
		AuthRate:       middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo
	e.Use(middleware.Metrics(r.Metrics))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(r.Metrics.Handler()))

	e.POST("/auth/signup/local", r.Identity.SignupLocal, r.AuthRate.Middleware())
	e.POST("/auth/signup/lawyer", r.Identity.SignupLawyer, r.AuthRate.Middleware())
	e.POST("/auth/verify-otp", r.Identity.VerifyOtp, r.LoginRate.Middleware())
	e.POST("/auth/resend-otp", r.Identity.ResendOtp, r.LoginRate.Middleware())
	e.POST("/auth/login", r.Identity.Login, r.LoginRate.Middleware())

	auth := r.AuthMiddleware.RequireAuth
	lawyerOnly := middleware.RequireRole(entity.RoleLawyer)
	adminOnly := middleware.RequireRole(entity.RoleAdmin)
	clients := middleware.RequireRole(entity.RoleLocalPerson, entity.RoleLawyer)

	e.GET("/me", r.Identity.Me, auth)
	e.GET("/lawyers", r.Lawyers.Directory)
	e.PUT("/lawyers/me", r.Lawyers.UpdateMyProfile, auth, lawyerOnly)

	e.GET("/admin/lawyers/pending", r.Admin.ListPending, auth, adminOnly)
	e.PUT("/admin/lawyers/:id/approve", r.Admin.Approve, auth, adminOnly)
	e.PUT("/admin/lawyers/:id/reject", r.Admin.Reject, auth, adminOnly)

	e.POST("/documents", r.Documents.Upload, auth, clients, uploadLimit(r.Documents.MaxUploadBytes))
	e.GET("/documents", r.Documents.List, auth, clients)
	e.GET("/documents/:id/download", r.Documents.Download, auth, clients)

	e.POST("/chat/ask", r.Chat.Ask, auth, clients)
	e.POST("/chat/secure", r.Chat.SendMessage, auth, clients)
	e.POST("/chat/secure/file", r.Chat.SendFile, auth, clients, uploadLimit(r.Chat.MaxUploadBytes))
	e.GET("/chat/secure/:id", r.Chat.ReadConversation, auth, clients)
}

// uploadLimit rejects multipart bodies larger than the file limit plus room
// for part headers, before the handler parses the form.
func uploadLimit(maxUploadBytes int64) echo.MiddlewareFunc {
	return echoMiddleware.BodyLimit(fmt.Sprintf("%dB", maxUploadBytes+handler.MultipartOverhead))
}
