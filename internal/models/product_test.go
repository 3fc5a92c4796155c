package models

import (
	"reflect"
	"testing"
)

func TestProductImageURLsCollectsEveryStoredImage(t *testing.T) {
	p := Product{
		Image:      "https://host/products/main.jpg",
		HoverImage: "https://host/products/hover.jpg",
		Images:     []string{"https://host/products/g1.jpg", "", "https://host/products/g2.jpg"},
	}

	want := []string{
		"https://host/products/main.jpg",
		"https://host/products/hover.jpg",
		"https://host/products/g1.jpg",
		"https://host/products/g2.jpg",
	}
	if got := p.ImageURLs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("ImageURLs() = %v, want %v", got, want)
	}
}

func TestProductImageURLsSkipsEmptyFields(t *testing.T) {
	p := Product{Images: []string{""}}
	if got := p.ImageURLs(); len(got) != 0 {
		t.Fatalf("expected no urls, got %v", got)
	}
}

func TestEnumValidation(t *testing.T) {
	if !ValidOrderStatus(OrderStatusShipped) || ValidOrderStatus("teleported") {
		t.Fatal("order status set broken")
	}
	if !ValidContactSubject("partnership") || ValidContactSubject("ransom") {
		t.Fatal("contact subject set broken")
	}
	if !ValidContactStatus(ContactStatusResponded) || ValidContactStatus("archived") {
		t.Fatal("contact status set broken")
	}
	if !ValidSelectionMode(SelectionModeManual) || ValidSelectionMode("random") {
		t.Fatal("selection mode set broken")
	}
	if !ValidProductType(ProductTypeFragrance) || ValidProductType("furniture") {
		t.Fatal("product type set broken")
	}
	if !ValidGender("unisex") || ValidGender("other") {
		t.Fatal("gender set broken")
	}
	if !ValidContactPriority("urgent") || ValidContactPriority("whenever") {
		t.Fatal("contact priority set broken")
	}
}
