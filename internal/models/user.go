package models

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleAdvertiser Role = "advertiser"
	RoleInfluencer Role = "influencer"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdvertiser:
		return RoleAdvertiser, nil
	case RoleInfluencer:
		return RoleInfluencer, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Caller is the authenticated identity carried by a bearer token.
type Caller struct {
	UserID string
	Email  string
	Role   Role
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type TermsAgreement struct {
	UserID    string    `json:"userId"`
	TermsType string    `json:"termsType"`
	Agreed    bool      `json:"agreed"`
	AgreedAt  time.Time `json:"agreedAt"`
}

type SignupRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=8,max=72"`
	Name        string   `json:"name" validate:"required"`
	Phone       string   `json:"phone" validate:"required,phone"`
	Role        string   `json:"role" validate:"required,oneof=advertiser influencer"`
	TermsAgreed []string `json:"termsAgreed" validate:"required,min=1,dive,required"`
}

type SignupResponse struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
	UserID      string `json:"userId"`
	Role        Role   `json:"role"`
}

type CurrentUserResponse struct {
	User      User `json:"user"`
	Role      Role `json:"role"`
	Onboarded bool `json:"onboarded"`
}
