package api

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/torneohub/torneo-api/docs"
	v1 "github.com/torneohub/torneo-api/internal/api/handler/v1"
	"github.com/torneohub/torneo-api/internal/api/middleware"
	"github.com/torneohub/torneo-api/internal/cache"
	"github.com/torneohub/torneo-api/internal/config"
	"github.com/torneohub/torneo-api/internal/identity"
	"github.com/torneohub/torneo-api/internal/pkg/filestore"
	"github.com/torneohub/torneo-api/internal/repository"
	"github.com/torneohub/torneo-api/internal/repository/dao"
	"github.com/torneohub/torneo-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	files *filestore.Store
}

func NewServer(conf *config.AppConfig, db *gorm.DB, listCache *cache.Cache, identityClient *identity.Client, files *filestore.Store) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		files:  files,
	}

	s.MountMiddlewares()

	// Read the TTL through the config so a reload applies to later writes.
	ttl := func() time.Duration {
		return time.Duration(conf.API.CacheTTLSeconds) * time.Second
	}

	authHandler := s.initAuthHandler(db, identityClient)
	userHandler := s.initUserHandler(db, identityClient)
	tournamentHandler := s.initTournamentHandler(db, listCache, ttl)
	teamHandler := s.initTeamHandler(db)
	participationHandler := s.initParticipationHandler(db, listCache, ttl)
	s.MountHandlers(authHandler, userHandler, tournamentHandler, teamHandler, participationHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB, identityClient *identity.Client) *v1.AuthHandler {
	repo := repository.NewUserRepository(dao.NewUserDAO(db))
	outbox := repository.NewOutboxRepository(dao.NewOutboxDAO(db))
	svc := service.NewAuthService(repo, identityClient, outbox)
	oauthSvc := service.NewDiscordOAuthService(
		s.Config.Discord.ClientID,
		s.Config.Discord.ClientSecret,
		s.Config.Discord.RedirectURL,
		repo,
	)

	return v1.NewAuthHandler(s.Config.API, svc, oauthSvc)
}

func (s *Server) initUserHandler(db *gorm.DB, identityClient *identity.Client) *v1.UserHandler {
	repo := repository.NewUserRepository(dao.NewUserDAO(db))
	outbox := repository.NewOutboxRepository(dao.NewOutboxDAO(db))
	svc := service.NewUserService(repo, identityClient, outbox)

	return v1.NewUserHandler(svc)
}

func (s *Server) initTournamentHandler(db *gorm.DB, listCache *cache.Cache, ttl func() time.Duration) *v1.TournamentHandler {
	repo := repository.NewTournamentRepository(dao.NewTournamentDAO(db))
	svc := service.NewTournamentService(repo, s.files, listCache, ttl)

	return v1.NewTournamentHandler(svc)
}

func (s *Server) initTeamHandler(db *gorm.DB) *v1.TeamHandler {
	repo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewTeamService(repo, userRepo)

	return v1.NewTeamHandler(svc)
}

func (s *Server) initParticipationHandler(db *gorm.DB, listCache *cache.Cache, ttl func() time.Duration) *v1.ParticipationHandler {
	repo := repository.NewParticipationRepository(dao.NewParticipationDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewParticipationService(repo, userRepo, listCache, ttl)

	return v1.NewParticipationHandler(svc)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	tournamentHandler *v1.TournamentHandler,
	teamHandler *v1.TeamHandler,
	participationHandler *v1.ParticipationHandler,
) {
	const basePath = "/api"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	public := s.Router.Group(basePath)
	{
		public.POST("/register", authHandler.HandleRegister)
		public.POST("/login", authHandler.HandleLogin)
		public.GET("/auth/discord", authHandler.HandleDiscordAuth)
		public.GET("/auth/discord/callback", authHandler.HandleDiscordCallback)
	}

	authed := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		authed.GET("/users", userHandler.HandleListUsers)
		authed.GET("/users/:userID", userHandler.HandleGetUser)
		authed.PUT("/users/:userID", userHandler.HandleUpdateUser)
		authed.DELETE("/users/:userID", authenticator.RequireRole("admin"), userHandler.HandleDeleteUser)

		authed.GET("/tournaments", tournamentHandler.HandleListTournaments)
		authed.POST("/tournaments", authenticator.RequireRole("admin"), tournamentHandler.HandleCreateTournament)
		authed.PUT("/tournaments/:torneoID", authenticator.RequireRole("admin"), tournamentHandler.HandleUpdateTournament)
		authed.DELETE("/tournaments/:torneoID", authenticator.RequireRole("admin"), tournamentHandler.HandleDeleteTournament)

		authed.GET("/teams", teamHandler.HandleListTeams)
		authed.POST("/teams", authenticator.RequireRole("admin"), teamHandler.HandleCreateTeam)
		authed.GET("/teams/:teamID", teamHandler.HandleGetTeam)
		authed.DELETE("/teams/:teamID", authenticator.RequireRole("admin"), teamHandler.HandleDeleteTeam)

		authed.GET("/partecipanti/:torneoID", participationHandler.HandleListParticipants)
		authed.POST("/partecipazioni/:torneoID", participationHandler.HandleEnroll)
		authed.GET("/partecipazioni/:torneoID/utente/:userID", participationHandler.HandleCheckEnrollment)
	}

	s.Router.Static("/uploads", s.files.Dir())

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Title = "Torneo API"
	docs.SwaggerInfo.Description = "Tournament management API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
