package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildProductFilterEmptyQueryMatchesAll(t *testing.T) {
	filter := buildProductFilter(productQuery{})
	if len(filter) != 0 {
		t.Fatalf("expected empty filter, got %v", filter)
	}
}

func TestBuildProductFilterAnchorsExactFields(t *testing.T) {
	filter := buildProductFilter(productQuery{Category: "Men", Subcategory: "Shirts", ProductType: "clothing"})

	category, ok := filter["category"].(bson.M)
	if !ok {
		t.Fatalf("expected category regex filter, got %v", filter["category"])
	}
	if category["$regex"] != "^Men$" || category["$options"] != "i" {
		t.Fatalf("expected anchored case-insensitive match, got %v", category)
	}
	if _, ok := filter["subcategory"]; !ok {
		t.Fatal("expected subcategory filter")
	}
	if _, ok := filter["productType"]; !ok {
		t.Fatal("expected productType filter")
	}
}

func TestBuildProductFilterEscapesRegexMetacharacters(t *testing.T) {
	filter := buildProductFilter(productQuery{Category: "a.b*"})

	category := filter["category"].(bson.M)
	if category["$regex"] != `^a\.b\*$` {
		t.Fatalf("expected escaped pattern, got %v", category["$regex"])
	}
}

func TestBuildProductFilterSingleListValueIsAnchored(t *testing.T) {
	filter := buildProductFilter(productQuery{Fabric: "Silk"})

	fabric, ok := filter["fabric"].(bson.M)
	if !ok {
		t.Fatalf("expected fabric filter, got %v", filter["fabric"])
	}
	if fabric["$regex"] != "^Silk$" {
		t.Fatalf("expected anchored single-value match, got %v", fabric)
	}
}

func TestBuildProductFilterMultiValueListBecomesSetMembership(t *testing.T) {
	filter := buildProductFilter(productQuery{Fabric: "Silk, Cotton , ,"})

	fabric, ok := filter["fabric"].(bson.M)
	if !ok {
		t.Fatalf("expected fabric filter, got %v", filter["fabric"])
	}
	patterns, ok := fabric["$in"].([]primitive.Regex)
	if !ok {
		t.Fatalf("expected $in of regexes, got %v", fabric["$in"])
	}
	if len(patterns) != 2 {
		t.Fatalf("expected empty entries discarded, got %d patterns", len(patterns))
	}
	if patterns[0].Pattern != "^Silk$" || patterns[0].Options != "i" {
		t.Fatalf("unexpected first pattern: %+v", patterns[0])
	}
	if patterns[1].Pattern != "^Cotton$" {
		t.Fatalf("unexpected second pattern: %+v", patterns[1])
	}
}

func TestBuildProductFilterSearchSpansAllTextFields(t *testing.T) {
	filter := buildProductFilter(productQuery{Search: "blue"})

	or, ok := filter["$or"].([]bson.M)
	if !ok {
		t.Fatalf("expected $or search filter, got %v", filter["$or"])
	}
	if len(or) != 6 {
		t.Fatalf("expected 6 search fields, got %d", len(or))
	}
	name := or[0]["name"].(bson.M)
	if name["$regex"] != "blue" {
		t.Fatalf("expected unanchored substring match, got %v", name["$regex"])
	}
}

func TestBuildProductFilterPriceRange(t *testing.T) {
	filter := buildProductFilter(productQuery{MinPrice: "100", MaxPrice: "200"})

	price, ok := filter["discountPrice"].(bson.M)
	if !ok {
		t.Fatalf("expected discountPrice filter, got %v", filter["discountPrice"])
	}
	if price["$gte"] != 100.0 || price["$lte"] != 200.0 {
		t.Fatalf("unexpected price bounds: %v", price)
	}

	onlyMin := buildProductFilter(productQuery{MinPrice: "50"})
	price = onlyMin["discountPrice"].(bson.M)
	if _, hasMax := price["$lte"]; hasMax {
		t.Fatal("expected no upper bound when maxPrice missing")
	}
}

func TestBuildProductSortDefaultsToCreatedAtDesc(t *testing.T) {
	sort := buildProductSort(productQuery{})
	if sort[0].Key != "createdAt" || sort[0].Value != -1 {
		t.Fatalf("unexpected default sort: %v", sort)
	}
}

func TestBuildProductSortRejectsUnknownFields(t *testing.T) {
	sort := buildProductSort(productQuery{SortBy: "$where", SortOrder: "asc"})
	if sort[0].Key != "createdAt" {
		t.Fatalf("expected fallback to createdAt, got %v", sort[0].Key)
	}
	if sort[0].Value != 1 {
		t.Fatalf("expected ascending direction, got %v", sort[0].Value)
	}
}

func TestBuildProductSortAllowsListedFields(t *testing.T) {
	sort := buildProductSort(productQuery{SortBy: "discountPrice", SortOrder: "asc"})
	if sort[0].Key != "discountPrice" || sort[0].Value != 1 {
		t.Fatalf("unexpected sort: %v", sort)
	}
}

func TestParsePaginationDefaultsAndClamps(t *testing.T) {
	tests := []struct {
		pageStr, limitStr string
		page, limit       int64
	}{
		{"", "", 1, 20},
		{"2", "10", 2, 10},
		{"0", "-5", 1, 20},
		{"-3", "abc", 1, 20},
		{"4611686018427387904", "4", 1000000, 4},
		{"9223372036854775807", "9223372036854775807", 1000000, 1000},
		{"2", "50000", 2, 1000},
	}
	for _, tt := range tests {
		page, limit := parsePagination(tt.pageStr, tt.limitStr, 20)
		if page != tt.page || limit != tt.limit {
			t.Fatalf("parsePagination(%q, %q) = %d, %d; want %d, %d",
				tt.pageStr, tt.limitStr, page, limit, tt.page, tt.limit)
		}
		if (page-1)*limit < 0 {
			t.Fatalf("skip underflow for page=%q limit=%q", tt.pageStr, tt.limitStr)
		}
	}
}

func TestTotalPages(t *testing.T) {
	if got := totalPages(25, 10); got != 3 {
		t.Fatalf("expected 3 pages for 25/10, got %d", got)
	}
	if got := totalPages(0, 10); got != 0 {
		t.Fatalf("expected 0 pages for empty result, got %d", got)
	}
	if got := totalPages(20, 10); got != 2 {
		t.Fatalf("expected 2 pages for 20/10, got %d", got)
	}
}
