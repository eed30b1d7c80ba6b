package server

import (
	"github.com/labstack/echo/v4"

	"example.com/travel-genie/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	tripHandler *handlers.TripHandler,
	chatHandler *handlers.ChatHandler,
	expenseHandler *handlers.ExpenseHandler,
	travelerHandler *handlers.TravelerHandler,
	reservationHandler *handlers.ReservationHandler,
	budgetHandler *handlers.BudgetHandler,
	mapHandler *handlers.MapHandler,
	diaryHandler *handlers.DiaryHandler,
	resourcesHandler *handlers.ResourcesHandler,
	exportHandler *handlers.ExportHandler,
	notificationHandler *handlers.NotificationHandler,
	adminHandler *handlers.AdminHandler,
	authMiddleware echo.MiddlewareFunc,
	adminMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
	aiRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	trips := api.Group("/trips", authMiddleware)
	trips.GET("", tripHandler.List)
	trips.POST("", tripHandler.Create, aiRateLimiter)
	trips.GET("/:id", tripHandler.Get)
	trips.DELETE("/:id", tripHandler.Delete)

	trips.GET("/:id/chat", chatHandler.History)
	trips.POST("/:id/chat", chatHandler.Send, aiRateLimiter)
	trips.POST("/:id/itinerary/apply", chatHandler.Apply)

	trips.GET("/:id/expenses", expenseHandler.List)
	trips.POST("/:id/expenses", expenseHandler.Create)
	trips.DELETE("/:id/expenses/:expenseId", expenseHandler.Delete)
	trips.GET("/:id/settlement", expenseHandler.Settlement)

	trips.GET("/:id/travelers", travelerHandler.List)
	trips.POST("/:id/travelers", travelerHandler.Create)
	trips.PATCH("/:id/travelers/:travelerId/name", travelerHandler.Rename)
	trips.PATCH("/:id/travelers/:travelerId/advance", travelerHandler.SetAdvance)
	trips.DELETE("/:id/travelers/:travelerId", travelerHandler.Delete)

	trips.GET("/:id/reservations", reservationHandler.List)
	trips.POST("/:id/reservations", reservationHandler.Create)
	trips.DELETE("/:id/reservations/:reservationId", reservationHandler.Delete)

	trips.GET("/:id/budget", budgetHandler.Breakdown)

	trips.GET("/:id/map", mapHandler.Markers)
	trips.GET("/:id/days/:day/route", mapHandler.Route)

	trips.GET("/:id/diary", diaryHandler.List)
	trips.POST("/:id/diary", diaryHandler.Create)
	trips.PUT("/:id/diary/:noteId", diaryHandler.Update)
	trips.DELETE("/:id/diary/:noteId", diaryHandler.Delete)

	trips.GET("/:id/resources", resourcesHandler.Links)

	trips.GET("/:id/export/json", exportHandler.ExportJSON)
	trips.GET("/:id/export/csv", exportHandler.ExportCSV)

	events := api.Group("/events", authMiddleware)
	events.GET("/stream", notificationHandler.Stream)

	admin := api.Group("/admin", authMiddleware, adminMiddleware)
	admin.GET("/ai-requests", adminHandler.ListAIRequests)
	admin.GET("/usage", adminHandler.Usage)
}
