package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"storeapi/internal/assets"
	"storeapi/internal/config"
	"storeapi/internal/database"
	"storeapi/internal/handlers"
	"storeapi/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureCategoryIndexes(db); err != nil {
		log.Printf("category index warning: %v", err)
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureSectionIndexes(db); err != nil {
		log.Printf("section index warning: %v", err)
	}

	store, err := assets.NewCloudinaryStore(config.AppEnv.CloudinaryURL)
	if err != nil {
		log.Fatal("cloudinary init:", err)
	}
	images := assets.NewManager(store)

	adminOnly := middleware.AdminAuth(config.AppEnv.JWTSecret)

	r := gin.Default()

	r.POST("/api/auth/login", handlers.Login(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

	products := r.Group("/api/products")
	{
		products.GET("", handlers.GetProducts(db))
		products.GET("/:id", handlers.GetProductByID(db))
		products.POST("", adminOnly, handlers.CreateProduct(db, images))
		products.PUT("/:id", adminOnly, handlers.UpdateProduct(db, images))
		products.DELETE("/:id", adminOnly, handlers.DeleteProduct(db, images))
	}

	categories := r.Group("/api/categories")
	{
		categories.GET("", handlers.GetCategories(db))
		categories.GET("/:id", adminOnly, handlers.GetCategoryByID(db))
		categories.POST("", adminOnly, handlers.CreateCategory(db, images))
		categories.PUT("/:id", adminOnly, handlers.UpdateCategory(db, images))
		categories.DELETE("/:id", adminOnly, handlers.DeleteCategory(db, images))
	}

	banners := r.Group("/api/banners")
	{
		banners.GET("", handlers.GetBanners(db))
		banners.GET("/admin", adminOnly, handlers.GetBannersAdmin(db))
		banners.POST("", adminOnly, handlers.CreateBanner(db, images))
		banners.PUT("/:id", adminOnly, handlers.UpdateBanner(db, images))
		banners.DELETE("/:id", adminOnly, handlers.DeleteBanner(db, images))
	}

	sections := r.Group("/api/landing-sections")
	{
		sections.GET("", handlers.GetSections(db))
		sections.GET("/admin", adminOnly, handlers.GetSectionsAdmin(db))
		sections.POST("", adminOnly, handlers.CreateSection(db, images))
		sections.PUT("/order/update", adminOnly, handlers.UpdateSectionOrder(db))
		sections.PUT("/:id", adminOnly, handlers.UpdateSection(db, images))
		sections.DELETE("/:id", adminOnly, handlers.DeleteSection(db, images))
	}

	orders := r.Group("/api/orders")
	{
		orders.POST("", handlers.PlaceOrder(db))
		orders.GET("", adminOnly, handlers.GetOrders(db))
		orders.GET("/:id", adminOnly, handlers.GetOrderByID(db))
		orders.PUT("/:id/status", adminOnly, handlers.UpdateOrderStatus(db))
		orders.DELETE("/:id", adminOnly, handlers.DeleteOrder(db))
	}

	contacts := r.Group("/api/contacts")
	{
		contacts.POST("", handlers.CreateContact(db))
		contacts.GET("", adminOnly, handlers.GetContacts(db))
		contacts.GET("/stats", adminOnly, handlers.GetContactStats(db))
		contacts.GET("/:id", adminOnly, handlers.GetContactByID(db))
		contacts.PUT("/:id", adminOnly, handlers.UpdateContact(db))
		contacts.PUT("/:id/status", adminOnly, handlers.UpdateContactStatus(db))
		contacts.DELETE("/:id", adminOnly, handlers.DeleteContact(db))
	}

	r.Run(":" + config.AppEnv.Port)
}
