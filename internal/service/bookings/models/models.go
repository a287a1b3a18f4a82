package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// Requester кто выполняет запрос (из заголовков gateway)
type Requester struct {
	UserID  int64
	IsAdmin bool
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Requester Requester
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID    int64
	Requester Requester
	Status    *string
}

// GetPropertyBookingsRequest запрос бронирований объекта, только для администратора
type GetPropertyBookingsRequest struct {
	PropertyID int64
	Requester  Requester
	Status     *string
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64     `json:"id"`
	PropertyID int64     `json:"propertyId"`
	UserID     int64     `json:"userId"`
	StartDate  string    `json:"startDate"` // "2025-10-15"
	EndDate    string    `json:"endDate"`   // не включается в бронирование
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// ExpireResult результат прогона просрочки
type ExpireResult struct {
	Cutoff     time.Time
	ExpiredIDs []int64
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:         b.ID,
		PropertyID: b.PropertyID,
		UserID:     b.UserID,
		StartDate:  b.StartDate.Format(domain.DateFormat),
		EndDate:    b.EndDate.Format(domain.DateFormat),
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(strings.ToUpper(status))
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
