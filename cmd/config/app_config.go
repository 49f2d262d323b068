package config

import (
	"time"

	"benigna-backend/domain"
	"benigna-backend/internal/api/handlers"
	"benigna-backend/internal/api/routes"
	"benigna-backend/internal/middleware"
	"benigna-backend/internal/utils"
	"benigna-backend/internal/utils/logging"
	"benigna-backend/internal/utils/mailing"
	"benigna-backend/internal/utils/storage"
	"benigna-backend/pkg/category"
	"benigna-backend/pkg/donation"
	"benigna-backend/pkg/institution"
	"benigna-backend/pkg/jwt"
	"benigna-backend/pkg/location"
	"benigna-backend/pkg/rating"
	"benigna-backend/pkg/statistics"
	"benigna-backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func NewApp(repos Repositories, log *zap.Logger) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: utils.GetConfig("APP_ENV") != "production",
		BodyLimit:         (domain.MaxDonationImages + 1) * domain.MaxDonationImageSize,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate
	tz := utils.Location()

	// setting up logging and limiter
	accessLog, err := logging.OpenAccessLog(logging.LogsDir)
	if err != nil {
		return nil, err
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   tz.String(),
		Output:     accessLog,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
	}))

	// utils
	fileStorage, uploadDir, err := newFileStorage(log)
	if err != nil {
		return nil, err
	}
	mailer := mailing.NewMailer(mailing.LoadMailConfig(), log)
	cache := newGeocodingCache(log)

	// Service
	jwtService := jwt.NewJWTService()
	locationService := location.NewLocationService(utils.GetConfig("NOMINATIM_URL"), utils.GetConfig("VIACEP_URL"), cache, log)
	userService := user.NewUserService(repos.Users, repos.Institutions, jwtService, fileStorage, locationService, log)
	institutionService := institution.NewInstitutionService(repos.Institutions, repos.Ratings, locationService, tz, log)
	donationService := donation.NewDonationService(repos.Donations, repos.Institutions, repos.Ratings, fileStorage, mailer, tz, log)
	ratingService := rating.NewRatingService(repos.Ratings, repos.Donations, log)
	categoryService := category.NewCategoryService(repos.Categories, log)
	statisticsService := statistics.NewStatisticsService(repos.Users, repos.Institutions, repos.Donations, repos.Ratings, log)

	// Handler
	routesConfig := routes.Config{
		App:                app,
		UserHandler:        handlers.NewUserHandler(userService, validator),
		InstitutionHandler: handlers.NewInstitutionHandler(institutionService, validator),
		DonationHandler:    handlers.NewDonationHandler(donationService, validator),
		RatingHandler:      handlers.NewRatingHandler(ratingService, validator),
		CategoryHandler:    handlers.NewCategoryHandler(categoryService, validator),
		LocationHandler:    handlers.NewLocationHandler(locationService, validator),
		StatisticsHandler:  handlers.NewStatisticsHandler(statisticsService),
		Middleware:         middlewares,
		JWTService:         jwtService,
		UploadDir:          uploadDir,
	}
	routesConfig.Setup()
	return app, nil
}

// newFileStorage picks S3 when a bucket is configured and the local upload
// directory otherwise. The directory is returned only for local storage so
// it can be served statically.
func newFileStorage(log *zap.Logger) (storage.FileStorage, string, error) {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	if bucket == "" {
		dir := utils.GetConfig("UPLOAD_DIR")
		log.Info("storing uploads on disk", zap.String("dir", dir))
		return storage.NewLocalStorage(dir), dir, nil
	}

	s3, err := storage.NewAwsS3(
		bucket,
		utils.GetConfig("AWS_S3_REGION"),
		utils.GetConfig("AWS_ACCESS_KEY"),
		utils.GetConfig("AWS_SECRET_KEY"),
	)
	if err != nil {
		return nil, "", err
	}
	log.Info("storing uploads on S3", zap.String("bucket", bucket))
	return s3, "", nil
}

func newGeocodingCache(log *zap.Logger) location.Cache {
	address := utils.GetConfig("REDIS_ADDRESS")
	if address == "" {
		return location.NewNoopCache()
	}
	client := location.NewRedisClient(address, utils.GetConfig("REDIS_USERNAME"), utils.GetConfig("REDIS_PASSWORD"))
	log.Info("caching geocoding lookups in redis", zap.String("address", address))
	return location.NewRedisCache(client, log)
}
