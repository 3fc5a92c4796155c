package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storeapi/internal/assets"
	"storeapi/internal/models"
)

func listBanners(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("banners").Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		defer cursor.Close(ctx)

		banners := make([]models.Banner, 0)
		if err := cursor.All(ctx, &banners); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, banners)
	}
}

func GetBanners(db *mongo.Database) gin.HandlerFunc {
	return listBanners(db)
}

func GetBannersAdmin(db *mongo.Database) gin.HandlerFunc {
	return listBanners(db)
}

/*
POST /api/banners (admin)
- multipart: image (required)
*/
func CreateBanner(db *mongo.Database, images *assets.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
			respondMultipartError(c, err)
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "image required"})
			return
		}

		url, err := uploadImageFile(c.Request.Context(), images.Store(), file)
		if err != nil {
			respondMultipartError(c, err)
			return
		}

		now := time.Now()
		banner := models.Banner{
			ImageURL:  url,
			CreatedAt: now,
			UpdatedAt: now,
		}

		result, err := db.Collection("banners").InsertOne(context.Background(), banner)
		if err != nil {
			log.Println("CreateBanner insert error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		banner.ID = result.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, gin.H{"banner": banner})
	}
}

/*
PUT /api/banners/:id (admin)
- a new image replaces the old one; the superseded asset is released
  best-effort after the write
*/
func UpdateBanner(db *mongo.Database, images *assets.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Banner not found"})
			return
		}

		var existing models.Banner
		err = db.Collection("banners").FindOne(context.Background(), bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Banner not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
			respondMultipartError(c, err)
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			if missingFile(err) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "no fields to update"})
				return
			}
			respondMultipartError(c, err)
			return
		}

		url, err := uploadImageFile(c.Request.Context(), images.Store(), file)
		if err != nil {
			respondMultipartError(c, err)
			return
		}

		var updated models.Banner
		err = db.Collection("banners").
			FindOneAndUpdate(
				context.Background(),
				bson.M{"_id": id},
				bson.M{"$set": bson.M{"imageUrl": url, "updatedAt": time.Now()}},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Banner not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		if existing.ImageURL != "" && existing.ImageURL != url {
			images.Release(c.Request.Context(), existing.ImageURL)
		}

		c.JSON(http.StatusOK, updated)
	}
}

func DeleteBanner(db *mongo.Database, images *assets.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Banner not found"})
			return
		}

		var existing models.Banner
		err = db.Collection("banners").FindOne(context.Background(), bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Banner not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		if existing.ImageURL != "" {
			images.Release(c.Request.Context(), existing.ImageURL)
		}

		if _, err := db.Collection("banners").DeleteOne(context.Background(), bson.M{"_id": id}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Banner deleted successfully"})
	}
}
