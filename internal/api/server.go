package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/voyago/tour-booking-api/docs"
	v1 "github.com/voyago/tour-booking-api/internal/api/handler/v1"
	"github.com/voyago/tour-booking-api/internal/api/middleware"
	"github.com/voyago/tour-booking-api/internal/config"
	"github.com/voyago/tour-booking-api/internal/repository"
	"github.com/voyago/tour-booking-api/internal/repository/dao"
	"github.com/voyago/tour-booking-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	tourHandler := s.initTourHandler(db)
	availabilityHandler := s.initAvailabilityHandler(db)
	reviewHandler := s.initReviewHandler(db)
	vendorHandler := s.initVendorHandler(db)
	s.MountHandlers(authHandler, tourHandler, availabilityHandler, reviewHandler, vendorHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	vendorRepo := repository.NewVendorRepository(dao.NewVendorDAO(db))
	svc := service.NewAuthService(userRepo, vendorRepo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initTourHandler(db *gorm.DB) *v1.TourHandler {
	tourRepo := repository.NewTourRepository(dao.NewTourDAO(db))
	vendorRepo := repository.NewVendorRepository(dao.NewVendorDAO(db))
	svc := service.NewTourService(tourRepo, vendorRepo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	vSvc := service.NewVendorService(vendorRepo)
	handler := v1.NewTourHandler(svc, uSvc, vSvc)

	return handler
}

func (s *Server) initAvailabilityHandler(db *gorm.DB) *v1.AvailabilityHandler {
	availabilityRepo := repository.NewAvailabilityRepository(dao.NewAvailabilityDAO(db))
	tourRepo := repository.NewTourRepository(dao.NewTourDAO(db))
	vendorRepo := repository.NewVendorRepository(dao.NewVendorDAO(db))
	svc := service.NewAvailabilityService(availabilityRepo, tourRepo, vendorRepo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	vSvc := service.NewVendorService(vendorRepo)
	handler := v1.NewAvailabilityHandler(svc, uSvc, vSvc)

	return handler
}

func (s *Server) initReviewHandler(db *gorm.DB) *v1.ReviewHandler {
	reviewRepo := repository.NewReviewRepository(dao.NewReviewDAO(db))
	svc := service.NewReviewService(reviewRepo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewReviewHandler(svc, uSvc)

	return handler
}

func (s *Server) initVendorHandler(db *gorm.DB) *v1.VendorHandler {
	vendorRepo := repository.NewVendorRepository(dao.NewVendorDAO(db))
	svc := service.NewVendorService(vendorRepo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewVendorHandler(svc, uSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, tourHandler *v1.TourHandler, availabilityHandler *v1.AvailabilityHandler, reviewHandler *v1.ReviewHandler, vendorHandler *v1.VendorHandler) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	tours := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		tours.GET("/tours", tourHandler.HandleGetTours)
		tours.GET("/tours/:tourID", tourHandler.HandleGetTour)
		tours.POST("/tours", tourHandler.HandleCreateTour)
		tours.PUT("/tours/:tourID", tourHandler.HandleUpdateTour)
		tours.PATCH("/tours/:tourID/status", tourHandler.HandleUpdateTourStatus)

		tours.GET("/tours/:tourID/availabilities", availabilityHandler.HandleGetAvailabilities)
		tours.POST("/tours/:tourID/availabilities", availabilityHandler.HandleCreateAvailabilities)
		tours.DELETE("/tours/:tourID/availabilities", availabilityHandler.HandleDeleteAvailabilities)
		tours.DELETE("/availabilities/:availabilityID", availabilityHandler.HandleDeleteAvailability)

		tours.GET("/tours/:tourID/reviews", reviewHandler.HandleGetReviews)
		tours.POST("/tours/:tourID/reviews", reviewHandler.HandleCreateReview)
		tours.PUT("/reviews/:reviewID", reviewHandler.HandleUpdateReview)
		tours.DELETE("/reviews/:reviewID", reviewHandler.HandleDeleteReview)

		tours.GET("/vendors/:vendorID", vendorHandler.HandleGetVendor)
		tours.PATCH("/vendors/:vendorID/commission", vendorHandler.HandleUpdateCommissionRate)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Tour Booking API"
	docs.SwaggerInfo.Description = "Marketplace backend for tour vendors, travelers and admins."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
