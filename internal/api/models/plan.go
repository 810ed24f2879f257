package models

// PackagePlan represents a purchasable swap package.
// DurationDays is null for pay-per-use packages consumed by a single booking.
type PackagePlan struct {
	PackageID    int64  `json:"packageId"`
	PackageName  string `json:"packageName"`
	Description  string `json:"description,omitempty"`
	Price        string `json:"price"`
	DurationDays *int   `json:"durationDays"`
}

// PackagePlanCreateRequest is the body for creating or updating a plan.
type PackagePlanCreateRequest struct {
	PackageName  string `json:"packageName"`
	Description  string `json:"description"`
	Price        string `json:"price"`
	DurationDays *int   `json:"durationDays"`
}

// UserPackage represents a package purchased by a user.
type UserPackage struct {
	UserPackageID int64     `json:"userPackageId"`
	UserID        int64     `json:"userId"`
	PackageID     int64     `json:"packageId"`
	PurchasedAt   Timestamp `json:"purchasedAt"`
	Status        string    `json:"status"`
	RemainingDays *int      `json:"remainingDays"`
}

// UserPackagePurchaseRequest is the body for purchasing a package.
type UserPackagePurchaseRequest struct {
	UserID    int64 `json:"userId"`
	PackageID int64 `json:"packageId"`
}
