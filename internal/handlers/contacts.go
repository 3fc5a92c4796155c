package handlers

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storeapi/internal/models"
)

type createContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

/*
POST /api/contacts (public)
*/
func CreateContact(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /contacts"
		defer handlePanic(c, route)

		var req createContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Name, email, subject, and message are required")
			return
		}

		name := strings.TrimSpace(req.Name)
		email := strings.ToLower(strings.TrimSpace(req.Email))
		subject := strings.TrimSpace(req.Subject)
		message := strings.TrimSpace(req.Message)

		if name == "" || email == "" || subject == "" || message == "" {
			respondWithError(c, http.StatusBadRequest, route, "Name, email, subject, and message are required")
			return
		}
		if !models.ValidContactSubject(subject) {
			respondWithError(c, http.StatusBadRequest, route, "Invalid subject")
			return
		}

		now := time.Now()
		contact := models.Contact{
			Name:      name,
			Email:     email,
			Phone:     strings.TrimSpace(req.Phone),
			Subject:   subject,
			Message:   message,
			Status:    models.ContactStatusNew,
			Priority:  "medium",
			CreatedAt: now,
			UpdatedAt: now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("contacts").InsertOne(ctx, contact)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}
		contact.ID = result.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, gin.H{
			"message": "Contact message sent successfully",
			"contact": contact,
		})
	}
}

/*
GET /api/contacts (admin)
- status/subject filters, free-text search, pagination
*/
func GetContacts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := parsePagination(c.Query("page"), c.Query("limit"), 10)

		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["status"] = status
		}
		if subject := strings.TrimSpace(c.Query("subject")); subject != "" {
			filter["subject"] = subject
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			escaped := regexp.QuoteMeta(search)
			filter["$or"] = []bson.M{
				{"name": bson.M{"$regex": escaped, "$options": "i"}},
				{"email": bson.M{"$regex": escaped, "$options": "i"}},
				{"subject": bson.M{"$regex": escaped, "$options": "i"}},
				{"message": bson.M{"$regex": escaped, "$options": "i"}},
			}
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("contacts").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		defer cursor.Close(ctx)

		contacts := make([]models.Contact, 0)
		if err := cursor.All(ctx, &contacts); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		total, err := db.Collection("contacts").CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"contacts": contacts,
			"pagination": gin.H{
				"page":  page,
				"limit": limit,
				"total": total,
				"pages": totalPages(total, limit),
			},
		})
	}
}

/*
GET /api/contacts/stats (admin)
*/
func GetContactStats(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		pipeline := mongo.Pipeline{
			{{Key: "$group", Value: bson.M{
				"_id":   "$status",
				"count": bson.M{"$sum": 1},
			}}},
		}

		cursor, err := db.Collection("contacts").Aggregate(ctx, pipeline)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		defer cursor.Close(ctx)

		var grouped []struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.All(ctx, &grouped); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		byStatus := make(map[string]int64, len(grouped))
		for _, group := range grouped {
			byStatus[group.Status] = group.Count
		}

		total, err := db.Collection("contacts").CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total":    total,
			"byStatus": byStatus,
		})
	}
}

func GetContactByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Contact not found"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var contact models.Contact
		err = db.Collection("contacts").FindOne(ctx, bson.M{"_id": id}).Decode(&contact)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Contact not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"contact": contact})
	}
}

type updateContactRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Subject    *string `json:"subject"`
	Message    *string `json:"message"`
	Status     *string `json:"status"`
	Priority   *string `json:"priority"`
	AdminNotes *string `json:"adminNotes"`
}

/*
PUT /api/contacts/:id (admin)
- partial update; moving to responded stamps respondedAt/respondedBy
*/
func UpdateContact(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Contact not found"})
			return
		}

		var req updateContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
			return
		}

		updateSet := bson.M{}
		if req.Name != nil {
			updateSet["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Email != nil {
			updateSet["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
		}
		if req.Phone != nil {
			updateSet["phone"] = strings.TrimSpace(*req.Phone)
		}
		if req.Subject != nil {
			if !models.ValidContactSubject(*req.Subject) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid subject"})
				return
			}
			updateSet["subject"] = *req.Subject
		}
		if req.Message != nil {
			updateSet["message"] = strings.TrimSpace(*req.Message)
		}
		if req.Status != nil {
			if !models.ValidContactStatus(*req.Status) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Valid status is required (new, read, or responded)"})
				return
			}
			updateSet["status"] = *req.Status
			applyRespondedStamp(c, updateSet, *req.Status)
		}
		if req.Priority != nil {
			if !models.ValidContactPriority(*req.Priority) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid priority"})
				return
			}
			updateSet["priority"] = *req.Priority
		}
		if req.AdminNotes != nil {
			updateSet["adminNotes"] = strings.TrimSpace(*req.AdminNotes)
		}

		if len(updateSet) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "no fields to update"})
			return
		}
		updateSet["updatedAt"] = time.Now()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Contact
		err = db.Collection("contacts").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": updateSet},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Contact not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Contact updated successfully",
			"contact": updated,
		})
	}
}

type contactStatusRequest struct {
	Status string `json:"status"`
}

/*
PUT /api/contacts/:id/status (admin)
*/
func UpdateContactStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Contact not found"})
			return
		}

		var req contactStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil || !models.ValidContactStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Valid status is required (new, read, or responded)"})
			return
		}

		updateSet := bson.M{"status": req.Status, "updatedAt": time.Now()}
		applyRespondedStamp(c, updateSet, req.Status)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Contact
		err = db.Collection("contacts").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": updateSet},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Contact not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Contact status updated successfully",
			"contact": updated,
		})
	}
}

// applyRespondedStamp records who answered and when once a contact
// moves to responded. The admin id comes from the token claims set by
// the auth middleware.
func applyRespondedStamp(c *gin.Context, updateSet bson.M, status string) {
	if status != models.ContactStatusResponded {
		return
	}
	updateSet["respondedAt"] = time.Now()

	claimsValue, ok := c.Get("claims")
	if !ok {
		return
	}
	claims, ok := claimsValue.(jwt.MapClaims)
	if !ok {
		return
	}
	if sub, ok := claims["sub"].(string); ok {
		if adminID, err := primitive.ObjectIDFromHex(sub); err == nil {
			updateSet["respondedBy"] = adminID
		}
	}
}

func DeleteContact(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Contact not found"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("contacts").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Contact not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully"})
	}
}
