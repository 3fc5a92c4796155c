package models

// Closed value sets shared by every create and update path. Handlers
// must reject anything outside these before writing.

const (
	ProductTypeClothing  = "clothing"
	ProductTypeFragrance = "fragrance"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

const (
	ContactStatusNew       = "new"
	ContactStatusRead      = "read"
	ContactStatusResponded = "responded"
)

const (
	SelectionModeCategory = "category"
	SelectionModeManual   = "manual"
)

var productTypes = map[string]struct{}{
	ProductTypeClothing:  {},
	ProductTypeFragrance: {},
}

var genders = map[string]struct{}{
	"men":    {},
	"women":  {},
	"unisex": {},
}

var orderStatuses = map[string]struct{}{
	OrderStatusPending:   {},
	OrderStatusConfirmed: {},
	OrderStatusShipped:   {},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

var contactSubjects = map[string]struct{}{
	"general":     {},
	"order":       {},
	"complaint":   {},
	"feedback":    {},
	"partnership": {},
	"other":       {},
}

var contactStatuses = map[string]struct{}{
	ContactStatusNew:       {},
	ContactStatusRead:      {},
	ContactStatusResponded: {},
}

var contactPriorities = map[string]struct{}{
	"low":    {},
	"medium": {},
	"high":   {},
	"urgent": {},
}

var selectionModes = map[string]struct{}{
	SelectionModeCategory: {},
	SelectionModeManual:   {},
}

func ValidProductType(v string) bool {
	_, ok := productTypes[v]
	return ok
}

func ValidGender(v string) bool {
	_, ok := genders[v]
	return ok
}

func ValidOrderStatus(v string) bool {
	_, ok := orderStatuses[v]
	return ok
}

func ValidContactSubject(v string) bool {
	_, ok := contactSubjects[v]
	return ok
}

func ValidContactStatus(v string) bool {
	_, ok := contactStatuses[v]
	return ok
}

func ValidContactPriority(v string) bool {
	_, ok := contactPriorities[v]
	return ok
}

func ValidSelectionMode(v string) bool {
	_, ok := selectionModes[v]
	return ok
}
