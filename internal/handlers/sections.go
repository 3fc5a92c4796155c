package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
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

// sectionWithProducts is the API shape for landing sections: the stored
// document plus the product set resolved from its selection mode.
type sectionWithProducts struct {
	models.LandingPageSection
	Products []models.Product `json:"products"`
}

const publicSectionProductLimit = 10

// resolveSectionProducts computes a section's product set. Manual mode
// returns the referenced products in their stored order; category mode
// queries by the section's category filters. limit <= 0 means no limit.
func resolveSectionProducts(ctx context.Context, db *mongo.Database, section models.LandingPageSection, limit int64) ([]models.Product, error) {
	if section.SelectionMode == models.SelectionModeManual {
		if len(section.ManualProducts) == 0 {
			return []models.Product{}, nil
		}

		cursor, err := db.Collection("products").Find(ctx, bson.M{"_id": bson.M{"$in": section.ManualProducts}})
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		found := make([]models.Product, 0, len(section.ManualProducts))
		if err := cursor.All(ctx, &found); err != nil {
			return nil, err
		}

		byID := make(map[primitive.ObjectID]models.Product, len(found))
		for _, p := range found {
			byID[p.ID] = p
		}
		ordered := make([]models.Product, 0, len(found))
		for _, id := range section.ManualProducts {
			if p, ok := byID[id]; ok {
				ordered = append(ordered, p)
			}
		}
		return ordered, nil
	}

	filter := bson.M{}
	if section.Category != "" {
		filter["category"] = section.Category
	}
	if section.Subcategory != "" {
		filter["subcategory"] = section.Subcategory
	}

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := db.Collection("products").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func listSections(db *mongo.Database, productLimit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /landing-sections"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
		cursor, err := db.Collection("landingpagesections").Find(ctx, bson.M{}, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}
		defer cursor.Close(ctx)

		sections := make([]models.LandingPageSection, 0)
		if err := cursor.All(ctx, &sections); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		resolved := make([]sectionWithProducts, 0, len(sections))
		for _, section := range sections {
			products, err := resolveSectionProducts(ctx, db, section, productLimit)
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "Server error")
				return
			}
			resolved = append(resolved, sectionWithProducts{
				LandingPageSection: section,
				Products:           products,
			})
		}

		c.JSON(http.StatusOK, resolved)
	}
}

func GetSections(db *mongo.Database) gin.HandlerFunc {
	return listSections(db, publicSectionProductLimit)
}

func GetSectionsAdmin(db *mongo.Database) gin.HandlerFunc {
	return listSections(db, 0)
}

type sectionFormInput struct {
	BannerImage      string
	BannerImageSet   bool
	SubTitle         string
	SubTitleSet      bool
	MainTitle        string
	MainTitleSet     bool
	TagLine          string
	TagLineSet       bool
	Discount         string
	DiscountSet      bool
	CategoryName     string
	CategoryNameSet  bool
	Season           string
	SeasonSet        bool
	FabricType       string
	FabricTypeSet    bool
	Category         string
	CategorySet      bool
	Subcategory      string
	SubcategorySet   bool
	SelectionMode    string
	SelectionModeSet bool
	ManualProducts   []primitive.ObjectID
	ManualSet        bool
	Order            int
	OrderSet         bool
	IsActive         bool
	IsActiveSet      bool
}

func parseSectionForm(c *gin.Context, store assets.Store) (sectionFormInput, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		return sectionFormInput{}, err
	}

	input := sectionFormInput{}

	stringFields := []struct {
		name  string
		value *string
		set   *bool
	}{
		{"subTitle", &input.SubTitle, &input.SubTitleSet},
		{"mainTitle", &input.MainTitle, &input.MainTitleSet},
		{"tagLine", &input.TagLine, &input.TagLineSet},
		{"discount", &input.Discount, &input.DiscountSet},
		{"categoryName", &input.CategoryName, &input.CategoryNameSet},
		{"season", &input.Season, &input.SeasonSet},
		{"fabricType", &input.FabricType, &input.FabricTypeSet},
		{"category", &input.Category, &input.CategorySet},
		{"subcategory", &input.Subcategory, &input.SubcategorySet},
		{"productSelectionMode", &input.SelectionMode, &input.SelectionModeSet},
	}
	for _, field := range stringFields {
		if value, ok := c.GetPostForm(field.name); ok {
			*field.value = strings.TrimSpace(value)
			*field.set = true
		}
	}

	if value, ok := c.GetPostForm("manualProducts"); ok {
		var raw []string
		if strings.TrimSpace(value) != "" {
			if err := json.Unmarshal([]byte(value), &raw); err != nil {
				return sectionFormInput{}, errInvalidManualProducts
			}
		}
		ids := make([]primitive.ObjectID, 0, len(raw))
		for _, hex := range raw {
			id, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
			if err != nil {
				return sectionFormInput{}, errInvalidManualProducts
			}
			ids = append(ids, id)
		}
		input.ManualProducts = ids
		input.ManualSet = true
	}

	if value, ok := c.GetPostForm("order"); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return sectionFormInput{}, errInvalidOrder
		}
		input.Order = parsed
		input.OrderSet = true
	}

	if value, ok := c.GetPostForm("isActive"); ok {
		parsed, err := parseBoolValue(value)
		if err != nil {
			return sectionFormInput{}, err
		}
		input.IsActive = parsed
		input.IsActiveSet = true
	}

	// Banner image: an uploaded file wins; otherwise a pre-hosted URL
	// may arrive in the "image" field.
	if file, err := c.FormFile("image"); err == nil {
		url, err := uploadImageFile(c.Request.Context(), store, file)
		if err != nil {
			return sectionFormInput{}, err
		}
		input.BannerImage = url
		input.BannerImageSet = true
	} else if !missingFile(err) {
		return sectionFormInput{}, err
	} else if value, ok := c.GetPostForm("image"); ok && strings.TrimSpace(value) != "" {
		input.BannerImage = strings.TrimSpace(value)
		input.BannerImageSet = true
	}

	return input, nil
}

var (
	errInvalidManualProducts = jsonFieldError{"manualProducts must be a JSON array of product ids"}
	errInvalidOrder          = jsonFieldError{"order must be an integer"}
)

type jsonFieldError struct{ msg string }

func (e jsonFieldError) Error() string { return e.msg }

/*
POST /api/landing-sections (admin)
*/
func CreateSection(db *mongo.Database, images *assets.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		input, err := parseSectionForm(c, images.Store())
		if err != nil {
			log.Println("CreateSection form error:", err)
			respondMultipartError(c, err)
			return
		}

		if !input.BannerImageSet {
			c.JSON(http.StatusBadRequest, gin.H{"message": "banner image required"})
			return
		}

		mode := models.SelectionModeCategory
		if input.SelectionModeSet {
			if !models.ValidSelectionMode(input.SelectionMode) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "invalid productSelectionMode"})
				return
			}
			mode = input.SelectionMode
		}

		isActive := true
		if input.IsActiveSet {
			isActive = input.IsActive
		}

		now := time.Now()
		section := models.LandingPageSection{
			Banner: models.SectionBanner{
				Image:        input.BannerImage,
				SubTitle:     input.SubTitle,
				MainTitle:    input.MainTitle,
				TagLine:      input.TagLine,
				Discount:     input.Discount,
				CategoryName: input.CategoryName,
				Season:       input.Season,
				FabricType:   input.FabricType,
			},
			Category:       input.Category,
			Subcategory:    input.Subcategory,
			SelectionMode:  mode,
			ManualProducts: input.ManualProducts,
			Order:          input.Order,
			IsActive:       isActive,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if section.ManualProducts == nil {
			section.ManualProducts = []primitive.ObjectID{}
		}

		result, err := db.Collection("landingpagesections").InsertOne(context.Background(), section)
		if err != nil {
			log.Println("CreateSection insert error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		section.ID = result.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, section)
	}
}

/*
PUT /api/landing-sections/:id (admin)
*/
func UpdateSection(db *mongo.Database, images *assets.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Section not found"})
			return
		}

		var existing models.LandingPageSection
		err = db.Collection("landingpagesections").FindOne(context.Background(), bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Section not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		input, err := parseSectionForm(c, images.Store())
		if err != nil {
			log.Println("UpdateSection form error:", err)
			respondMultipartError(c, err)
			return
		}

		updateSet := bson.M{}
		if input.BannerImageSet {
			updateSet["banner.image"] = input.BannerImage
		}
		if input.SubTitleSet {
			updateSet["banner.subTitle"] = input.SubTitle
		}
		if input.MainTitleSet {
			updateSet["banner.mainTitle"] = input.MainTitle
		}
		if input.TagLineSet {
			updateSet["banner.tagLine"] = input.TagLine
		}
		if input.DiscountSet {
			updateSet["banner.discount"] = input.Discount
		}
		if input.CategoryNameSet {
			updateSet["banner.categoryName"] = input.CategoryName
		}
		if input.SeasonSet {
			updateSet["banner.season"] = input.Season
		}
		if input.FabricTypeSet {
			updateSet["banner.fabricType"] = input.FabricType
		}
		if input.CategorySet {
			updateSet["category"] = input.Category
		}
		if input.SubcategorySet {
			updateSet["subcategory"] = input.Subcategory
		}
		if input.SelectionModeSet {
			if !models.ValidSelectionMode(input.SelectionMode) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "invalid productSelectionMode"})
				return
			}
			updateSet["productSelectionMode"] = input.SelectionMode
		}
		if input.ManualSet {
			updateSet["manualProducts"] = input.ManualProducts
		}
		if input.OrderSet {
			updateSet["order"] = input.Order
		}
		if input.IsActiveSet {
			updateSet["isActive"] = input.IsActive
		}

		if len(updateSet) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "no fields to update"})
			return
		}
		updateSet["updatedAt"] = time.Now()

		var updated models.LandingPageSection
		err = db.Collection("landingpagesections").
			FindOneAndUpdate(
				context.Background(),
				bson.M{"_id": id},
				bson.M{"$set": updateSet},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Section not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		if input.BannerImageSet && existing.Banner.Image != "" && existing.Banner.Image != input.BannerImage {
			images.Release(c.Request.Context(), existing.Banner.Image)
		}

		c.JSON(http.StatusOK, updated)
	}
}

func DeleteSection(db *mongo.Database, images *assets.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Section not found"})
			return
		}

		var existing models.LandingPageSection
		err = db.Collection("landingpagesections").FindOne(context.Background(), bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Section not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		if existing.Banner.Image != "" {
			images.Release(c.Request.Context(), existing.Banner.Image)
		}

		if _, err := db.Collection("landingpagesections").DeleteOne(context.Background(), bson.M{"_id": id}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Section deleted successfully"})
	}
}

type sectionOrderRequest struct {
	Sections []struct {
		ID string `json:"_id" binding:"required"`
	} `json:"sections" binding:"required"`
}

/*
PUT /api/landing-sections/order/update (admin)
- reassigns each section's order index from its position in the array
*/
func UpdateSectionOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sectionOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "sections array is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		for index, section := range req.Sections {
			id, err := primitive.ObjectIDFromHex(section.ID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "invalid section id"})
				return
			}
			_, err = db.Collection("landingpagesections").UpdateOne(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": bson.M{"order": index, "updatedAt": time.Now()}},
			)
			if err != nil {
				log.Println("UpdateSectionOrder update error:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Section order updated successfully"})
	}
}
