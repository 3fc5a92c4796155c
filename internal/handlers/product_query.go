package handlers

import (
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// productQuery carries the raw listing parameters straight off the
// query string. buildProductFilter turns them into a Mongo filter.
type productQuery struct {
	Category    string
	Subcategory string
	ProductType string
	Fabric      string
	Brand       string
	ScentType   string
	Gender      string
	Search      string
	MinPrice    string
	MaxPrice    string
	SortBy      string
	SortOrder   string
}

// Fields the listing may sort on. Anything else falls back to createdAt.
var productSortFields = map[string]struct{}{
	"createdAt":     {},
	"updatedAt":     {},
	"name":          {},
	"discountPrice": {},
	"originalPrice": {},
}

var searchFields = []string{"name", "description", "fabric", "color", "category", "subcategory"}

// anchored matches the whole field value, case-insensitively. The value
// is escaped first so regex metacharacters in user input match
// literally instead of rewriting the pattern.
func anchored(value string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(value) + "$", "$options": "i"}
}

func anchoredAny(values []string) bson.M {
	patterns := make([]primitive.Regex, 0, len(values))
	for _, v := range values {
		patterns = append(patterns, primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(v) + "$",
			Options: "i",
		})
	}
	return bson.M{"$in": patterns}
}

// splitList splits a comma-separated parameter, dropping empty and
// whitespace-only entries.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// setListFilter applies a one-or-many filter: a single value matches
// anchored, several values match any of the set.
func setListFilter(filter bson.M, field, raw string) {
	values := splitList(raw)
	switch {
	case len(values) > 1:
		filter[field] = anchoredAny(values)
	case len(values) == 1:
		filter[field] = anchored(values[0])
	}
}

func buildProductFilter(q productQuery) bson.M {
	filter := bson.M{}

	if v := strings.TrimSpace(q.Category); v != "" {
		filter["category"] = anchored(v)
	}
	if v := strings.TrimSpace(q.Subcategory); v != "" {
		filter["subcategory"] = anchored(v)
	}
	if v := strings.TrimSpace(q.ProductType); v != "" {
		filter["productType"] = anchored(v)
	}

	setListFilter(filter, "fabric", q.Fabric)
	setListFilter(filter, "brand", q.Brand)
	setListFilter(filter, "scentType", q.ScentType)
	setListFilter(filter, "gender", q.Gender)

	if search := strings.TrimSpace(q.Search); search != "" {
		escaped := regexp.QuoteMeta(search)
		or := make([]bson.M, 0, len(searchFields))
		for _, field := range searchFields {
			or = append(or, bson.M{field: bson.M{"$regex": escaped, "$options": "i"}})
		}
		filter["$or"] = or
	}

	price := bson.M{}
	if min, err := strconv.ParseFloat(strings.TrimSpace(q.MinPrice), 64); err == nil {
		price["$gte"] = min
	}
	if max, err := strconv.ParseFloat(strings.TrimSpace(q.MaxPrice), 64); err == nil {
		price["$lte"] = max
	}
	if len(price) > 0 {
		filter["discountPrice"] = price
	}

	return filter
}

func buildProductSort(q productQuery) bson.D {
	sortBy := strings.TrimSpace(q.SortBy)
	if _, ok := productSortFields[sortBy]; !ok {
		sortBy = "createdAt"
	}

	direction := -1
	if strings.EqualFold(strings.TrimSpace(q.SortOrder), "asc") {
		direction = 1
	}

	return bson.D{{Key: sortBy, Value: direction}}
}
