package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"storeapi/internal/assets"
)

const maxImageSize = 10 << 20

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

/* =======================
   INPUT STRUCT
======================= */

type multipartProductInput struct {
	Name             string
	NameSet          bool
	ProductType      string
	ProductTypeSet   bool
	Fabric           string
	FabricSet        bool
	Color            string
	ColorSet         bool
	Brand            string
	BrandSet         bool
	ScentType        string
	ScentTypeSet     bool
	Volume           string
	VolumeSet        bool
	Gender           string
	GenderSet        bool
	Description      string
	DescriptionSet   bool
	OriginalPrice    float64
	OriginalPriceSet bool
	DiscountPrice    float64
	DiscountPriceSet bool
	DiscountTag      string
	DiscountTagSet   bool
	Category         string
	CategorySet      bool
	Subcategory      string
	SubcategorySet   bool
	NoPieces         string
	NoPiecesSet      bool
	Details          []string
	DetailsSet       bool
	ImagesToDelete   []string
	ImageURL         string
	ImageSet         bool
	HoverImageURL    string
	HoverImageSet    bool
	UploadedImages   []string
}

/* =======================
   PARSER
======================= */

func parseMultipartProductRequest(c *gin.Context, store assets.Store) (multipartProductInput, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		log.Println("PARSE ERROR:", err)
		return multipartProductInput{}, err
	}

	input := multipartProductInput{}

	// ---- STRING FIELDS ----

	stringFields := []struct {
		name  string
		value *string
		set   *bool
	}{
		{"name", &input.Name, &input.NameSet},
		{"productType", &input.ProductType, &input.ProductTypeSet},
		{"fabric", &input.Fabric, &input.FabricSet},
		{"color", &input.Color, &input.ColorSet},
		{"brand", &input.Brand, &input.BrandSet},
		{"scentType", &input.ScentType, &input.ScentTypeSet},
		{"volume", &input.Volume, &input.VolumeSet},
		{"gender", &input.Gender, &input.GenderSet},
		{"description", &input.Description, &input.DescriptionSet},
		{"discountTag", &input.DiscountTag, &input.DiscountTagSet},
		{"category", &input.Category, &input.CategorySet},
		{"subcategory", &input.Subcategory, &input.SubcategorySet},
		{"noPieces", &input.NoPieces, &input.NoPiecesSet},
	}
	for _, field := range stringFields {
		if value, ok := c.GetPostForm(field.name); ok {
			*field.value = strings.TrimSpace(value)
			*field.set = true
		}
	}

	// ---- NUMBER FIELDS ----

	if value, ok := c.GetPostForm("originalPrice"); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return multipartProductInput{}, fmt.Errorf("invalid originalPrice")
		}
		input.OriginalPrice = parsed
		input.OriginalPriceSet = true
	}

	if value, ok := c.GetPostForm("discountPrice"); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return multipartProductInput{}, fmt.Errorf("invalid discountPrice")
		}
		input.DiscountPrice = parsed
		input.DiscountPriceSet = true
	}

	// ---- JSON LIST FIELDS ----

	if value, ok := c.GetPostForm("details"); ok {
		var details []string
		if err := json.Unmarshal([]byte(value), &details); err != nil {
			return multipartProductInput{}, fmt.Errorf("details must be a JSON array of strings")
		}
		input.Details = details
		input.DetailsSet = true
	}

	if value, ok := c.GetPostForm("imagesToDelete"); ok && strings.TrimSpace(value) != "" {
		var toDelete []string
		if err := json.Unmarshal([]byte(value), &toDelete); err != nil {
			return multipartProductInput{}, fmt.Errorf("imagesToDelete must be a JSON array of URLs")
		}
		input.ImagesToDelete = toDelete
	}

	// ---- IMAGE FILES ----

	ctx := c.Request.Context()

	if file, err := c.FormFile("image"); err == nil {
		url, err := uploadImageFile(ctx, store, file)
		if err != nil {
			return multipartProductInput{}, err
		}
		input.ImageURL = url
		input.ImageSet = true
	} else if !missingFile(err) {
		return multipartProductInput{}, err
	}

	if file, err := c.FormFile("hoverImage"); err == nil {
		url, err := uploadImageFile(ctx, store, file)
		if err != nil {
			return multipartProductInput{}, err
		}
		input.HoverImageURL = url
		input.HoverImageSet = true
	} else if !missingFile(err) {
		return multipartProductInput{}, err
	}

	if form := c.Request.MultipartForm; form != nil {
		gallery := form.File["images"]
		if len(gallery) > 10 {
			return multipartProductInput{}, fmt.Errorf("at most 10 gallery images are allowed")
		}
		for _, file := range gallery {
			url, err := uploadImageFile(ctx, store, file)
			if err != nil {
				return multipartProductInput{}, err
			}
			input.UploadedImages = append(input.UploadedImages, url)
		}
	}

	return input, nil
}

/* =======================
   IMAGE UPLOAD
======================= */

func uploadImageFile(ctx context.Context, store assets.Store, file *multipart.FileHeader) (string, error) {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if extension == "" {
		return "", fmt.Errorf("image file extension is required")
	}
	if _, ok := allowedImageExtensions[extension]; !ok {
		return "", fmt.Errorf("unsupported image type: %s", extension)
	}
	if file.Size > maxImageSize {
		return "", fmt.Errorf("image file too large (max 10MB)")
	}

	in, err := file.Open()
	if err != nil {
		log.Printf("[UPLOAD] failed to open upload %s: %v", file.Filename, err)
		return "", err
	}
	defer in.Close()

	url, err := store.Upload(ctx, in, file.Filename)
	if err != nil {
		log.Printf("[UPLOAD] upload %s failed: %v", file.Filename, err)
		return "", err
	}

	log.Printf("[UPLOAD] stored %s as %s", file.Filename, url)
	return url, nil
}

/* =======================
   HELPERS
======================= */

// Gin version differences surface a missing file as either
// http.ErrMissingFile or a "no such file" error string.
func missingFile(err error) bool {
	return errors.Is(err, http.ErrMissingFile) ||
		strings.Contains(err.Error(), "no such file")
}

func parseBoolValue(value string) (bool, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "on" {
		return true, nil
	}
	return strconv.ParseBool(value)
}

func respondMultipartError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
}
