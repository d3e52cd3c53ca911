package router

import (
	"myntraMarket/internal/middleware"
	"myntraMarket/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("", handler.CreateUser)

	users.GET("", handler.GetAllUsers, authRequired, adminOnly)
	users.GET("/:id", handler.GetUserByID, authRequired, middleware.SelfOrAdmin())
	users.PUT("/:id", handler.UpdateUser, authRequired, middleware.SelfOrAdmin())
	users.DELETE("/:id", handler.DeleteUser, authRequired, middleware.SelfOrAdmin())
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID)
	products.POST("", handler.CreateProduct, authRequired, adminOnly)
	products.PUT("/:id", handler.UpdateProduct, authRequired, adminOnly)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, adminOnly)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, optionalAuth echo.MiddlewareFunc) {
	api.GET("/products/:id/recommendations", handler.Recommend, optionalAuth)
}

func SetupTrackingRoutes(api *echo.Group, handler *rest.TrackingHandler, authRequired echo.MiddlewareFunc, optionalAuth echo.MiddlewareFunc) {
	history := api.Group("/browsing-history")

	history.POST("", handler.TrackView, optionalAuth)
	history.GET("", handler.GetHistory, authRequired)
	history.DELETE("", handler.ClearHistory, authRequired)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	categories := api.Group("/categories")

	categories.GET("", handler.GetAllCategories)
	categories.GET("/:id", handler.GetCategoryByID)
	categories.POST("", handler.CreateCategory, authRequired, adminOnly)
	categories.PUT("/:id", handler.UpdateCategory, authRequired, adminOnly)
	categories.DELETE("/:id", handler.DeleteCategory, authRequired, adminOnly)
}

func SetupWishlistRoutes(api *echo.Group, handler *rest.WishlistHandler) {
	wishlist := api.Group("/wishlist", middleware.AuthMiddleware())

	wishlist.GET("", handler.GetWishlist)
	wishlist.POST("", handler.AddToWishlist)
	wishlist.DELETE("/:productId", handler.RemoveFromWishlist)
}

func SetupBagRoutes(api *echo.Group, handler *rest.BagHandler) {
	bag := api.Group("/bag", middleware.AuthMiddleware())

	bag.GET("", handler.GetBag)
	bag.POST("", handler.AddToBag)
	bag.PUT("/:productId", handler.UpdateQuantity)
	bag.DELETE("/:productId", handler.RemoveFromBag)
}
