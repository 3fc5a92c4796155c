package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newJSONContext(t *testing.T, method, path string, payload interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = req
	return c, recorder
}

func errorMessage(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response %q: %v", recorder.Body.String(), err)
	}
	msg, _ := body["message"].(string)
	return msg
}

func TestPlaceOrderRejectsIncompletePayloads(t *testing.T) {
	customer := map[string]interface{}{
		"name": "Ada", "city": "Izmir", "mobile": "5550000000",
		"address": "Kordon 1", "zipCode": "35000", "email": "ada@example.com",
	}
	item := map[string]interface{}{
		"id": "665f1a2b3c4d5e6f70810000", "name": "Linen Shirt",
		"quantity": 1, "discountPrice": 149.9,
	}

	tests := []struct {
		name    string
		payload map[string]interface{}
	}{
		{"no items", map[string]interface{}{
			"items": []interface{}{}, "total": 149.9,
			"userDetails": customer, "paymentMethod": "cod",
		}},
		{"zero total", map[string]interface{}{
			"items": []interface{}{item}, "total": 0,
			"userDetails": customer, "paymentMethod": "cod",
		}},
		{"missing customer", map[string]interface{}{
			"items": []interface{}{item}, "total": 149.9,
			"paymentMethod": "cod",
		}},
		{"missing payment method", map[string]interface{}{
			"items": []interface{}{item}, "total": 149.9,
			"userDetails": customer,
		}},
		{"customer missing address", map[string]interface{}{
			"items": []interface{}{item}, "total": 149.9,
			"userDetails": map[string]interface{}{
				"name": "Ada", "city": "Izmir", "mobile": "5550000000",
				"zipCode": "35000", "email": "ada@example.com",
			},
			"paymentMethod": "cod",
		}},
		{"item without name", map[string]interface{}{
			"items": []interface{}{map[string]interface{}{
				"id": "665f1a2b3c4d5e6f70810000", "quantity": 1,
			}},
			"total": 149.9, "userDetails": customer, "paymentMethod": "cod",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, recorder := newJSONContext(t, "POST", "/api/orders", tt.payload)
			PlaceOrder(nil)(c)

			if recorder.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", recorder.Code, recorder.Body.String())
			}
			if errorMessage(t, recorder) != "All fields are required" {
				t.Fatalf("unexpected message: %s", recorder.Body.String())
			}
		})
	}
}

func TestPlaceOrderRejectsNonPositiveQuantity(t *testing.T) {
	payload := map[string]interface{}{
		"items": []interface{}{map[string]interface{}{
			"id": "665f1a2b3c4d5e6f70810000", "name": "Linen Shirt", "quantity": 0,
		}},
		"total": 149.9,
		"userDetails": map[string]interface{}{
			"name": "Ada", "city": "Izmir", "mobile": "5550000000",
			"address": "Kordon 1", "zipCode": "35000", "email": "ada@example.com",
		},
		"paymentMethod": "cod",
	}

	c, recorder := newJSONContext(t, "POST", "/api/orders", payload)
	PlaceOrder(nil)(c)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if errorMessage(t, recorder) != "quantity must be greater than zero" {
		t.Fatalf("unexpected message: %s", recorder.Body.String())
	}
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	c, recorder := newJSONContext(t, "PUT", "/api/orders/665f1a2b3c4d5e6f70810000/status",
		map[string]interface{}{"status": "teleported"})
	c.Params = gin.Params{{Key: "id", Value: "665f1a2b3c4d5e6f70810000"}}

	UpdateOrderStatus(nil)(c)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if errorMessage(t, recorder) != "Invalid status" {
		t.Fatalf("unexpected message: %s", recorder.Body.String())
	}
}

func TestUpdateOrderStatusRejectsMalformedID(t *testing.T) {
	c, recorder := newJSONContext(t, "PUT", "/api/orders/not-an-id/status",
		map[string]interface{}{"status": "shipped"})
	c.Params = gin.Params{{Key: "id", Value: "not-an-id"}}

	UpdateOrderStatus(nil)(c)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
}
