package models

import "time"

// Booking statuses. Cancelled and completed bookings remain in history but
// do not occupy slot capacity.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents an appointment booked against a repair shop.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	ShopID          string    `bson:"shopId" json:"shopId"`
	UserID          string    `bson:"userId,omitempty" json:"userId,omitempty"`
	DiagnosisID     string    `bson:"diagnosisId,omitempty" json:"diagnosisId,omitempty"`
	AppointmentDate string    `bson:"appointmentDate" json:"appointmentDate"` // "YYYY-MM-DD"
	AppointmentTime string    `bson:"appointmentTime" json:"appointmentTime"` // "HH:MM"
	Status          string    `bson:"status" json:"status"`
	UserName        string    `bson:"userName" json:"userName"`
	UserEmail       string    `bson:"userEmail" json:"userEmail"`
	UserPhone       string    `bson:"userPhone,omitempty" json:"userPhone,omitempty"`
	Notes           string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsActive reports whether the booking occupies slot capacity.
func (b Booking) IsActive() bool {
	return IsActiveStatus(b.Status)
}

// IsActiveStatus reports whether a status counts toward capacity.
func IsActiveStatus(status string) bool {
	return status == BookingStatusPending || status == BookingStatusConfirmed
}

// IsValidStatus reports whether status is one of the four booking statuses.
func IsValidStatus(status string) bool {
	switch status {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// BookingRequest is the inbound shape for creating or rescheduling a booking.
type BookingRequest struct {
	ShopID          string `json:"shopId"`
	UserID          string `json:"userId,omitempty"`
	DiagnosisID     string `json:"diagnosisId,omitempty"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	Status          string `json:"status,omitempty"`
	UserName        string `json:"userName"`
	UserEmail       string `json:"userEmail"`
	UserPhone       string `json:"userPhone,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// BookingUpdate carries the mutable fields of a booking update; nil pointers
// leave the stored value untouched.
type BookingUpdate struct {
	AppointmentDate *string `json:"appointmentDate,omitempty"`
	AppointmentTime *string `json:"appointmentTime,omitempty"`
	Status          *string `json:"status,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}
