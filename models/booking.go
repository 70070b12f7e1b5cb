package models

import "time"

// Booking lifecycle statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// BookingSource marks documents created by the conversational agent.
const BookingSource = "agent_chat"

// Booking is the persisted booking document.
type Booking struct {
	BookingID      string    `json:"booking_id" bson:"booking_id"`
	Service        string    `json:"service" bson:"service"`
	Package        string    `json:"package" bson:"package"`
	Name           string    `json:"name" bson:"name"`
	Email          string    `json:"email" bson:"email"`
	Phone          string    `json:"phone" bson:"phone"`
	PhoneCountry   string    `json:"phone_country" bson:"phone_country"`
	ServiceCountry string    `json:"service_country" bson:"service_country"`
	Address        string    `json:"address" bson:"address"`
	Pincode        string    `json:"pincode" bson:"pincode"`
	Date           string    `json:"date" bson:"date"`
	Language       string    `json:"language" bson:"language"`
	SessionID      string    `json:"session_id" bson:"session_id"`
	Stage          string    `json:"stage" bson:"stage"`
	Status         string    `json:"status" bson:"status"`
	OTPVerified    bool      `json:"otp_verified" bson:"otp_verified"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
	Source         string    `json:"source" bson:"source"`
}

// BookingFromIntent builds a pending booking document from a completed intent.
func BookingFromIntent(bookingID, sessionID string, intent *BookingIntent, stage BookingState) *Booking {
	now := time.Now().UTC()
	phoneCountry := ""
	if intent.PhoneDetail != nil {
		phoneCountry = intent.PhoneDetail.Country
	}
	return &Booking{
		BookingID:      bookingID,
		Service:        intent.Service,
		Package:        intent.Package,
		Name:           intent.Name,
		Email:          intent.Email,
		Phone:          intent.Phone,
		PhoneCountry:   phoneCountry,
		ServiceCountry: intent.ServiceCountry,
		Address:        intent.Address,
		Pincode:        intent.Pincode,
		Date:           intent.Date,
		Language:       intent.Language,
		SessionID:      sessionID,
		Stage:          string(stage),
		Status:         BookingStatusPending,
		OTPVerified:    false,
		CreatedAt:      now,
		UpdatedAt:      now,
		Source:         BookingSource,
	}
}

// KnowledgeEntry is one admin-managed knowledge base document.
type KnowledgeEntry struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Language  string    `json:"language" bson:"language"`
	Category  string    `json:"category" bson:"category"`
	Content   string    `json:"content" bson:"content"`
	IsActive  bool      `json:"is_active" bson:"is_active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
