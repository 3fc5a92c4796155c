package handlers

import (
	"context"
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

/*
GET /api/products
- filter + sort + pagination, see buildProductFilter
- response: products + totalCategory + pagination
*/
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		query := productQuery{
			Category:    c.Query("category"),
			Subcategory: c.Query("subcategory"),
			ProductType: c.Query("productType"),
			Fabric:      c.Query("fabric"),
			Brand:       c.Query("brand"),
			ScentType:   c.Query("scentType"),
			Gender:      c.Query("gender"),
			Search:      c.Query("search"),
			MinPrice:    c.Query("minPrice"),
			MaxPrice:    c.Query("maxPrice"),
			SortBy:      c.Query("sortBy"),
			SortOrder:   c.Query("sortOrder"),
		}

		log.Printf(
			"[%s] hit page=%s limit=%s category=%s search=%s",
			route,
			c.Query("page"),
			c.Query("limit"),
			query.Category,
			query.Search,
		)

		filter := buildProductFilter(query)
		page, limit := parsePagination(c.Query("page"), c.Query("limit"), 20)

		opts := options.Find().
			SetSort(buildProductSort(query)).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("products").Find(ctx, filter, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		total, err := db.Collection("products").CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		// cross-entity convenience count for the storefront UI
		totalCategory, err := db.Collection("categories").CountDocuments(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products":      products,
			"totalCategory": totalCategory,
			"pagination": gin.H{
				"page":  page,
				"limit": limit,
				"total": total,
				"pages": totalPages(total, limit),
			},
		})
	}
}

func GetProductByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

/*
POST /api/products (admin)
- multipart: image (required), images (<=10)
*/
func CreateProduct(db *mongo.Database, images *assets.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"message": "multipart/form-data required"})
			return
		}

		input, err := parseMultipartProductRequest(c, images.Store())
		if err != nil {
			log.Println("CreateProduct multipart error:", err)
			respondMultipartError(c, err)
			return
		}

		name := strings.TrimSpace(input.Name)
		if !input.NameSet || name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "name required"})
			return
		}

		productType := models.ProductTypeClothing
		if input.ProductTypeSet {
			if !models.ValidProductType(input.ProductType) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "invalid productType"})
				return
			}
			productType = input.ProductType
		}

		if input.GenderSet && input.Gender != "" && !models.ValidGender(input.Gender) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid gender"})
			return
		}

		if !input.OriginalPriceSet || !input.DiscountPriceSet {
			c.JSON(http.StatusBadRequest, gin.H{"message": "originalPrice and discountPrice are required"})
			return
		}

		if !input.ImageSet {
			c.JSON(http.StatusBadRequest, gin.H{"message": "image required"})
			return
		}

		now := time.Now()
		product := models.Product{
			Name:          name,
			ProductType:   productType,
			Fabric:        input.Fabric,
			Color:         input.Color,
			Brand:         input.Brand,
			ScentType:     input.ScentType,
			Volume:        input.Volume,
			Gender:        input.Gender,
			Description:   input.Description,
			OriginalPrice: input.OriginalPrice,
			DiscountPrice: input.DiscountPrice,
			DiscountTag:   input.DiscountTag,
			Image:         input.ImageURL,
			HoverImage:    input.HoverImageURL,
			Images:        append([]string{}, input.UploadedImages...),
			Details:       input.Details,
			Category:      input.Category,
			Subcategory:   input.Subcategory,
			NoPieces:      input.NoPieces,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if product.Details == nil {
			product.Details = []string{}
		}

		res, err := db.Collection("products").InsertOne(context.Background(), product)
		if err != nil {
			log.Println("CreateProduct insert error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		product.ID = res.InsertedID.(primitive.ObjectID)
		log.Println("CreateProduct insert success:", res.InsertedID)
		c.JSON(http.StatusCreated, product)
	}
}

/*
PUT /api/products/:id (admin)
- multipart: image, hoverImage, images (<=10), imagesToDelete (JSON)
- replaced primary/hover assets and listed gallery assets are released
  best-effort after the write
*/
func UpdateProduct(db *mongo.Database, images *assets.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}

		var existing models.Product
		err = db.Collection("products").FindOne(context.Background(), bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		if err != nil {
			log.Println("UpdateProduct find error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		input, err := parseMultipartProductRequest(c, images.Store())
		if err != nil {
			log.Println("UpdateProduct multipart error:", err)
			respondMultipartError(c, err)
			return
		}

		updateSet := bson.M{}

		if input.NameSet {
			name := strings.TrimSpace(input.Name)
			if name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"message": "name required"})
				return
			}
			updateSet["name"] = name
		}
		if input.ProductTypeSet {
			if !models.ValidProductType(input.ProductType) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "invalid productType"})
				return
			}
			updateSet["productType"] = input.ProductType
		}
		if input.GenderSet {
			if input.Gender != "" && !models.ValidGender(input.Gender) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "invalid gender"})
				return
			}
			updateSet["gender"] = input.Gender
		}
		if input.FabricSet {
			updateSet["fabric"] = input.Fabric
		}
		if input.ColorSet {
			updateSet["color"] = input.Color
		}
		if input.BrandSet {
			updateSet["brand"] = input.Brand
		}
		if input.ScentTypeSet {
			updateSet["scentType"] = input.ScentType
		}
		if input.VolumeSet {
			updateSet["volume"] = input.Volume
		}
		if input.DescriptionSet {
			updateSet["description"] = input.Description
		}
		if input.OriginalPriceSet {
			updateSet["originalPrice"] = input.OriginalPrice
		}
		if input.DiscountPriceSet {
			updateSet["discountPrice"] = input.DiscountPrice
		}
		if input.DiscountTagSet {
			updateSet["discountTag"] = input.DiscountTag
		}
		if input.CategorySet {
			updateSet["category"] = input.Category
		}
		if input.SubcategorySet {
			updateSet["subcategory"] = input.Subcategory
		}
		if input.NoPiecesSet {
			updateSet["noPieces"] = input.NoPieces
		}
		if input.DetailsSet {
			updateSet["details"] = input.Details
		}
		if input.ImageSet {
			updateSet["image"] = input.ImageURL
		}
		if input.HoverImageSet {
			updateSet["hoverImage"] = input.HoverImageURL
		}

		galleryChanged := len(input.ImagesToDelete) > 0 || len(input.UploadedImages) > 0
		var mergedGallery []string
		if galleryChanged {
			mergedGallery = images.MergeGallery(
				c.Request.Context(),
				existing.Images,
				input.ImagesToDelete,
				input.UploadedImages,
			)
			updateSet["images"] = mergedGallery
		}

		if len(updateSet) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "no fields to update"})
			return
		}
		updateSet["updatedAt"] = time.Now()

		result, err := db.Collection("products").UpdateOne(
			context.Background(),
			bson.M{"_id": id},
			bson.M{"$set": updateSet},
		)
		if err != nil {
			log.Println("UpdateProduct update error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}

		if input.ImageSet && existing.Image != "" && existing.Image != input.ImageURL {
			images.Release(c.Request.Context(), existing.Image)
		}
		if input.HoverImageSet && existing.HoverImage != "" && existing.HoverImage != input.HoverImageURL {
			images.Release(c.Request.Context(), existing.HoverImage)
		}

		var updated models.Product
		err = db.Collection("products").FindOne(context.Background(), bson.M{"_id": id}).Decode(&updated)
		if err != nil {
			log.Println("UpdateProduct find error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

/*
DELETE /api/products/:id (admin)
- releases every owned image before removing the document
*/
func DeleteProduct(db *mongo.Database, images *assets.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}

		var existing models.Product
		err = db.Collection("products").FindOne(context.Background(), bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		images.ReleaseAll(c.Request.Context(), existing.ImageURLs())

		if _, err := db.Collection("products").DeleteOne(context.Background(), bson.M{"_id": id}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
