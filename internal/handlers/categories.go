package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storeapi/internal/assets"
	"storeapi/internal/models"
)

func GetCategories(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("categories").Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		defer cursor.Close(ctx)

		categories := make([]models.Category, 0)
		if err := cursor.All(ctx, &categories); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, categories)
	}
}

func GetCategoryByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var category models.Category
		err = db.Collection("categories").FindOne(ctx, bson.M{"_id": id}).Decode(&category)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, category)
	}
}

type categoryFormInput struct {
	Name             string
	NameSet          bool
	Discount         string
	DiscountSet      bool
	Subcategories    []string
	SubcategoriesSet bool
	AddToNavbar      bool
	AddToNavbarSet   bool
	AddToExplore     bool
	AddToExploreSet  bool
	ImageURL         string
	ImageSet         bool
}

func parseCategoryForm(c *gin.Context, store assets.Store) (categoryFormInput, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		return categoryFormInput{}, err
	}

	input := categoryFormInput{}

	if value, ok := c.GetPostForm("name"); ok {
		input.Name = strings.TrimSpace(value)
		input.NameSet = true
	}
	if value, ok := c.GetPostForm("discount"); ok {
		input.Discount = strings.TrimSpace(value)
		input.DiscountSet = true
	}
	if value, ok := c.GetPostForm("subcategories"); ok {
		input.Subcategories = parseSubcategories(value)
		input.SubcategoriesSet = true
	}
	if value, ok := c.GetPostForm("addToNavbar"); ok {
		parsed, err := parseBoolValue(value)
		if err != nil {
			return categoryFormInput{}, err
		}
		input.AddToNavbar = parsed
		input.AddToNavbarSet = true
	}
	if value, ok := c.GetPostForm("addToExplore"); ok {
		parsed, err := parseBoolValue(value)
		if err != nil {
			return categoryFormInput{}, err
		}
		input.AddToExplore = parsed
		input.AddToExploreSet = true
	}

	if file, err := c.FormFile("image"); err == nil {
		url, err := uploadImageFile(c.Request.Context(), store, file)
		if err != nil {
			return categoryFormInput{}, err
		}
		input.ImageURL = url
		input.ImageSet = true
	} else if !missingFile(err) {
		return categoryFormInput{}, err
	}

	return input, nil
}

// Admin clients send subcategories either as a JSON array or as a
// comma-separated value.
func parseSubcategories(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []string{}
	}
	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
			out := make([]string, 0, len(list))
			for _, v := range list {
				if s := strings.TrimSpace(v); s != "" {
					out = append(out, s)
				}
			}
			return out
		}
	}
	return splitList(trimmed)
}

/*
POST /api/categories (admin)
- duplicate name -> 400
*/
func CreateCategory(db *mongo.Database, images *assets.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		input, err := parseCategoryForm(c, images.Store())
		if err != nil {
			log.Println("CreateCategory form error:", err)
			respondMultipartError(c, err)
			return
		}

		if !input.NameSet || input.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "name required"})
			return
		}

		now := time.Now()
		category := models.Category{
			Name:          input.Name,
			Image:         input.ImageURL,
			Discount:      input.Discount,
			Subcategories: input.Subcategories,
			AddToNavbar:   input.AddToNavbar,
			AddToExplore:  input.AddToExplore,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if category.Subcategories == nil {
			category.Subcategories = []string{}
		}

		result, err := db.Collection("categories").InsertOne(context.Background(), category)
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Category name already exists"})
			return
		}
		if err != nil {
			log.Println("CreateCategory insert error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		category.ID = result.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, category)
	}
}

/*
PUT /api/categories/:id (admin)
- a new image replaces the old one; the superseded asset is released
  best-effort after the write
*/
func UpdateCategory(db *mongo.Database, images *assets.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}

		var existing models.Category
		err = db.Collection("categories").FindOne(context.Background(), bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		input, err := parseCategoryForm(c, images.Store())
		if err != nil {
			log.Println("UpdateCategory form error:", err)
			respondMultipartError(c, err)
			return
		}

		updateSet := bson.M{}
		if input.NameSet {
			if input.Name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"message": "name cannot be empty"})
				return
			}
			updateSet["name"] = input.Name
		}
		if input.DiscountSet {
			updateSet["discount"] = input.Discount
		}
		if input.SubcategoriesSet {
			updateSet["subcategories"] = input.Subcategories
		}
		if input.AddToNavbarSet {
			updateSet["addToNavbar"] = input.AddToNavbar
		}
		if input.AddToExploreSet {
			updateSet["addToExplore"] = input.AddToExplore
		}
		if input.ImageSet {
			updateSet["image"] = input.ImageURL
		}

		if len(updateSet) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "no fields to update"})
			return
		}
		updateSet["updatedAt"] = time.Now()

		var updated models.Category
		err = db.Collection("categories").
			FindOneAndUpdate(
				context.Background(),
				bson.M{"_id": id},
				bson.M{"$set": updateSet},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Category name already exists"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		if input.ImageSet && existing.Image != "" && existing.Image != input.ImageURL {
			images.Release(c.Request.Context(), existing.Image)
		}

		c.JSON(http.StatusOK, updated)
	}
}

func DeleteCategory(db *mongo.Database, images *assets.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}

		var existing models.Category
		err = db.Collection("categories").FindOne(context.Background(), bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		if existing.Image != "" {
			images.Release(c.Request.Context(), existing.Image)
		}

		if _, err := db.Collection("categories").DeleteOne(context.Background(), bson.M{"_id": id}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}
