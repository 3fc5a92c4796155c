package handlers

import (
	"mime/multipart"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseSectionFormParsesManualProductIDs(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	c := newMultipartContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("mainTitle", "Summer Picks")
		_ = w.WriteField("productSelectionMode", "manual")
		_ = w.WriteField("manualProducts", `["`+first.Hex()+`","`+second.Hex()+`"]`)
		_ = w.WriteField("order", "2")
		_ = w.WriteField("isActive", "on")
		_ = w.WriteField("image", "https://host/products/banner.jpg")
	})

	parsed, err := parseSectionForm(c, &fakeStore{})
	if err != nil {
		t.Fatalf("parseSectionForm returned error: %v", err)
	}
	if !parsed.ManualSet || len(parsed.ManualProducts) != 2 {
		t.Fatalf("expected 2 manual product ids, got %+v", parsed.ManualProducts)
	}
	if parsed.ManualProducts[0] != first || parsed.ManualProducts[1] != second {
		t.Fatalf("manual product order not preserved: %v", parsed.ManualProducts)
	}
	if !parsed.OrderSet || parsed.Order != 2 {
		t.Fatalf("expected order=2, got %+v", parsed)
	}
	if !parsed.IsActiveSet || !parsed.IsActive {
		t.Fatalf("expected isActive=true from checkbox value, got %+v", parsed)
	}
	if !parsed.BannerImageSet || parsed.BannerImage != "https://host/products/banner.jpg" {
		t.Fatalf("expected banner image from form value, got %+v", parsed)
	}
}

func TestParseSectionFormUploadedBannerWinsOverURLField(t *testing.T) {
	store := &fakeStore{}
	c := newMultipartContext(t, func(w *multipart.Writer) {
		part, _ := w.CreateFormFile("image", "banner.webp")
		_, _ = part.Write([]byte("webpdata"))
		_ = w.WriteField("image", "https://host/products/stale.jpg")
	})

	parsed, err := parseSectionForm(c, store)
	if err != nil {
		t.Fatalf("parseSectionForm returned error: %v", err)
	}
	if !parsed.BannerImageSet || parsed.BannerImage == "https://host/products/stale.jpg" {
		t.Fatalf("expected uploaded file to win, got %+v", parsed)
	}
	if len(store.uploads) != 1 {
		t.Fatalf("expected 1 upload, got %v", store.uploads)
	}
}

func TestParseSectionFormRejectsBadManualProducts(t *testing.T) {
	c := newMultipartContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("manualProducts", `["not-an-object-id"]`)
	})

	if _, err := parseSectionForm(c, &fakeStore{}); err != errInvalidManualProducts {
		t.Fatalf("expected errInvalidManualProducts, got %v", err)
	}
}

func TestParseSectionFormRejectsNonIntegerOrder(t *testing.T) {
	c := newMultipartContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("order", "first")
	})

	if _, err := parseSectionForm(c, &fakeStore{}); err != errInvalidOrder {
		t.Fatalf("expected errInvalidOrder, got %v", err)
	}
}
