package routes

import (
	"benigna-backend/domain"
	"benigna-backend/internal/api/handlers"
	"benigna-backend/internal/middleware"
	"benigna-backend/internal/utils/storage"
	"benigna-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                *fiber.App
	UserHandler        handlers.UserHandler
	InstitutionHandler handlers.InstitutionHandler
	DonationHandler    handlers.DonationHandler
	RatingHandler      handlers.RatingHandler
	CategoryHandler    handlers.CategoryHandler
	LocationHandler    handlers.LocationHandler
	StatisticsHandler  handlers.StatisticsHandler
	Middleware         middleware.Middleware
	JWTService         jwt.JWTService
	// UploadDir is served under /uploads when set.
	UploadDir string
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Institutions()
	c.Donations()
	c.Ratings()
	c.Categories()
	c.Location()
	c.Statistics()
	c.Admin()
	c.GuestRoute()
}

func (c *Config) auth() fiber.Handler {
	return c.Middleware.AuthMiddleware(c.JWTService)
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.auth(), c.UserHandler.Me)
		user.Patch("/me", c.auth(), c.UserHandler.UpdateUser)
	}
}

func (c *Config) Institutions() {
	institutions := c.App.Group("/api/v1/institutions")
	{
		institutions.Get("", c.InstitutionHandler.GetInstitutions)
		institutions.Get("/nearby", c.InstitutionHandler.GetNearbyInstitutions)
		institutions.Patch("/me", c.auth(), c.Middleware.RoleMiddleware(domain.RoleInstitution), c.InstitutionHandler.UpdateInstitution)
		institutions.Get("/:id", c.InstitutionHandler.GetInstitutionProfile)
		institutions.Get("/:id/slots", c.InstitutionHandler.GetDeliverySlots)
		institutions.Get("/:id/open-days", c.InstitutionHandler.GetOpenDays)
		institutions.Get("/:id/ratings", c.RatingHandler.GetInstitutionRatings)
	}
}

func (c *Config) Donations() {
	donations := c.App.Group("/api/v1/donations", c.auth())
	donor := c.Middleware.RoleMiddleware(domain.RoleDonor)
	institution := c.Middleware.RoleMiddleware(domain.RoleInstitution)

	donations.Post("", donor, c.DonationHandler.CreateDonation)
	donations.Get("/me", donor, c.DonationHandler.GetDonorDonations)
	donations.Get("/institution", institution, c.DonationHandler.GetInstitutionDonations)
	donations.Get("/:id", c.DonationHandler.GetDonationByID)
	donations.Post("/:id/schedule", donor, c.DonationHandler.ScheduleDelivery)
	donations.Post("/:id/confirm", institution, c.DonationHandler.ConfirmDelivery)
	donations.Post("/:id/cancel", donor, c.DonationHandler.CancelDonation)
	donations.Delete("/:id", donor, c.DonationHandler.DeleteDonation)
}

func (c *Config) Ratings() {
	c.App.Post("/api/v1/ratings", c.auth(), c.Middleware.RoleMiddleware(domain.RoleDonor), c.RatingHandler.RateDonation)
}

func (c *Config) Categories() {
	c.App.Get("/api/v1/categories", c.CategoryHandler.GetCategories)
}

func (c *Config) Location() {
	location := c.App.Group("/api/v1/location")
	{
		location.Get("/geocode", c.LocationHandler.Geocode)
		location.Get("/reverse", c.LocationHandler.ReverseGeocode)
		location.Get("/zipcode/:zip", c.LocationHandler.LookupZipCode)
	}
}

func (c *Config) Statistics() {
	statistics := c.App.Group("/api/v1/statistics", c.auth())
	statistics.Get("/admin", c.Middleware.RoleMiddleware(domain.RoleAdmin), c.StatisticsHandler.GetAdminStatistics)
	statistics.Get("/me", c.StatisticsHandler.GetMyStatistics)
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/v1/admin", c.auth(), c.Middleware.RoleMiddleware(domain.RoleAdmin))
	admin.Patch("/institutions/:id/verify", c.InstitutionHandler.VerifyInstitution)
	admin.Post("/categories", c.CategoryHandler.CreateCategory)
	admin.Post("/categories/:id/subcategories", c.CategoryHandler.CreateSubcategory)
	admin.Delete("/categories/:id", c.CategoryHandler.DeleteCategory)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	if c.UploadDir != "" {
		c.App.Static(storage.PublicPrefix, c.UploadDir)
	}
}
