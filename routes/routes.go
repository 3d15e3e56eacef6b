package routes

import (
	"net/http"

	"github.com/EkeneDeProgram/909ineFoods/controllers"
	"github.com/EkeneDeProgram/909ineFoods/middleware"
	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/EkeneDeProgram/909ineFoods/repository"
	"github.com/EkeneDeProgram/909ineFoods/services"
	"github.com/gin-gonic/gin"
)

// Controllers bundles the HTTP handlers.
type Controllers struct {
	Users   *controllers.UserController
	Vendors *controllers.VendorController
	Catalog *controllers.CatalogController
	Browse  *controllers.BrowseController
	Cart    *controllers.CartController
	Orders  *controllers.OrderController
}

// Auth carries what the session middleware needs. Sessions may be nil.
// AuthLimiter, when set, guards the code-issuing and verify endpoints.
type Auth struct {
	Tokens      services.TokenService
	Sessions    repository.SessionStore
	AuthLimiter gin.HandlerFunc
}

// RegisterRoutes mounts every endpoint on r.
func RegisterRoutes(r *gin.Engine, c Controllers, auth Auth) {
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "909inefoods"})
	})

	limited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if auth.AuthLimiter == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{auth.AuthLimiter, h}
	}

	userAuth := middleware.SessionAuth(auth.Tokens, auth.Sessions, models.AccountUser)
	vendorAuth := middleware.SessionAuth(auth.Tokens, auth.Sessions, models.AccountVendor)

	// Users
	users := r.Group("/users")
	users.POST("/register", limited(c.Users.Register)...)
	users.POST("/login", limited(c.Users.Login)...)
	users.POST("/verify", limited(c.Users.Verify)...)
	users.POST("/resend-code", limited(c.Users.ResendCode)...)

	userMe := users.Group("", userAuth)
	userMe.POST("/logout", c.Users.Logout)
	userMe.GET("/me", c.Users.Profile)
	userMe.DELETE("/me", c.Users.Delete)
	userMe.PUT("/me/email", c.Users.UpdateEmail)
	userMe.PUT("/me/phone", c.Users.UpdatePhone)
	userMe.PUT("/me/name", c.Users.UpdateName)
	userMe.PUT("/me/address", c.Users.UpdateAddress)
	userMe.POST("/me/image", c.Users.UploadImage)

	// Vendors
	vendors := r.Group("/vendors")
	vendors.POST("/register", limited(c.Vendors.Register)...)
	vendors.POST("/login", limited(c.Vendors.Login)...)
	vendors.POST("/verify", limited(c.Vendors.Verify)...)
	vendors.POST("/resend-code", limited(c.Vendors.ResendCode)...)

	vendorMe := vendors.Group("", vendorAuth)
	vendorMe.POST("/logout", c.Vendors.Logout)
	vendorMe.GET("/me", c.Vendors.Profile)
	vendorMe.PUT("/me", c.Vendors.UpdateDetails)
	vendorMe.DELETE("/me", c.Vendors.Delete)
	vendorMe.PUT("/me/email", c.Vendors.UpdateEmail)
	vendorMe.PUT("/me/contact-info", c.Vendors.UpdateContactInfo)
	vendorMe.POST("/me/image", c.Vendors.UploadImage)

	vendorMe.POST("/me/locations", c.Catalog.AddLocation)
	vendorMe.DELETE("/me/locations/:location_id", c.Catalog.DeleteLocation)
	vendorMe.GET("/me/items", c.Catalog.ListItems)
	vendorMe.POST("/me/items", c.Catalog.AddItem)
	vendorMe.PUT("/me/items/:item_id", c.Catalog.UpdateItem)
	vendorMe.DELETE("/me/items/:item_id", c.Catalog.DeleteItem)
	vendorMe.POST("/me/items/:item_id/image", c.Catalog.UploadItemImage)

	// Public catalog
	catalog := r.Group("/catalog")
	catalog.GET("/vendors", c.Browse.ListVendors)
	catalog.GET("/vendors/:vendor_id", c.Browse.GetVendor)
	catalog.GET("/vendors/:vendor_id/menu", c.Browse.VendorMenu)
	catalog.GET("/categories", c.Browse.ListCategories)
	catalog.GET("/categories/:category_id/vendors", c.Browse.VendorsByCategory)

	// Cart
	cart := r.Group("/cart", userAuth)
	cart.GET("", c.Cart.List)
	cart.DELETE("", c.Cart.Clear)
	cart.POST("/checkout", c.Cart.Checkout)
	cart.POST("/items/:item_id", c.Cart.AddItem)
	cart.PUT("/items/:item_id", c.Cart.UpdateQuantity)
	cart.DELETE("/items/:item_id", c.Cart.RemoveItem)

	// Orders
	orders := r.Group("/orders", userAuth)
	orders.GET("", c.Orders.List)
	orders.GET("/:order_id", c.Orders.Get)
	orders.PUT("/:order_id", c.Orders.UpdateQuantity)
}
