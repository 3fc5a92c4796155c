package assets

import (
	"strings"
	"testing"
)

func TestUploadPublicIDRoundTrips(t *testing.T) {
	filenames := []string{
		"shirt.jpg",
		"summer.sale.jpg",
		"winter.collection.v2.png",
		".webp",
	}

	for _, filename := range filenames {
		id := uploadPublicID(filename)
		if strings.Contains(id, ".") {
			t.Fatalf("uploadPublicID(%q) = %q contains a dot", filename, id)
		}

		url := "https://res.cloudinary.com/demo/image/upload/v1700000000/" +
			UploadFolder + "/" + id + ".jpg"
		if got := PublicIDFromURL(url); got != UploadFolder+"/"+id {
			t.Fatalf("stored id %q resolves to %q; delete would miss the asset", id, got)
		}
	}
}

func TestUploadPublicIDsAreUnique(t *testing.T) {
	if uploadPublicID("shirt.jpg") == uploadPublicID("shirt.jpg") {
		t.Fatal("expected distinct ids for repeated filenames")
	}
}

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "delivery url",
			url:  "https://res.cloudinary.com/demo/image/upload/v1700000000/products/shirt-abc123.jpg",
			want: "products/shirt-abc123",
		},
		{
			name: "dotted filename truncates at first dot",
			url:  "https://res.cloudinary.com/demo/image/upload/products/summer.sale.banner.png",
			want: "products/summer",
		},
		{
			name: "no extension",
			url:  "https://res.cloudinary.com/demo/image/upload/products/shirt-abc123",
			want: "products/shirt-abc123",
		},
		{
			name: "bare filename without slashes",
			url:  "shirt-abc123.webp",
			want: "products/shirt-abc123",
		},
		{
			name: "empty url",
			url:  "",
			want: "",
		},
		{
			name: "whitespace only",
			url:  "   ",
			want: "",
		},
		{
			name: "trailing slash",
			url:  "https://res.cloudinary.com/demo/image/upload/products/",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PublicIDFromURL(tt.url); got != tt.want {
				t.Fatalf("PublicIDFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
