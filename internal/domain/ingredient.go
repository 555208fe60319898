package domain

import "time"

// Ingredient is a tracked food item owned by exactly one user.
type Ingredient struct {
	ID         string
	UserID     string
	Name       string
	Category   string
	AddedDate  Date
	ExpiryDate Date
	Memo       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ExpiresOn reports whether the ingredient's expiry date is exactly d.
func (i Ingredient) ExpiresOn(d Date) bool {
	return i.ExpiryDate.Equal(d)
}

// ExpiredAsOf reports whether the ingredient expired strictly before today.
// An ingredient expiring today is not expired.
func (i Ingredient) ExpiredAsOf(today Date) bool {
	return i.ExpiryDate.Before(today)
}
