package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User Model with Pointers for Nullable Fields.
// A "user" here is either a vendor (one storefront each) or a platform admin.
type User struct {
	ID           int64  `json:"id" db:"id"`
	Role         string `json:"role" db:"role"` // vendor | admin
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	BusinessName string `json:"businessName" db:"business_name"`
	StoreSlug    string `json:"storeSlug" db:"store_slug"` // unique, used for routing

	// --- Branding (Pointers = Clean JSON) ---
	LogoURL      *string `json:"logoUrl,omitempty" db:"logo_url"`
	BannerURL    *string `json:"bannerUrl,omitempty" db:"banner_url"`
	PrimaryColor *string `json:"primaryColor,omitempty" db:"primary_color"`
	Instagram    *string `json:"instagram,omitempty" db:"instagram"`
	WhatsApp     *string `json:"whatsapp,omitempty" db:"whatsapp"`

	// --- Payment collection (mobile money) ---
	MomoNumber      *string `json:"momoNumber,omitempty" db:"momo_number"`
	MomoAccountName *string `json:"momoAccountName,omitempty" db:"momo_account_name"`

	// --- Subscription ---
	Plan          string     `json:"plan" db:"plan"`             // free | pro
	PlanStatus    string     `json:"planStatus" db:"plan_status"` // active | expired
	PlanExpiresAt *time.Time `json:"planExpiresAt,omitempty" db:"plan_expires_at"`

	Suspended bool      `json:"suspended" db:"suspended"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// IsAdmin reports whether the account carries the platform admin flag.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// Password Helper (Standard)
type Password struct {
	Plaintext *string
	Hash      string
}

func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	p.Plaintext = &plaintextPassword
	return nil
}

func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
