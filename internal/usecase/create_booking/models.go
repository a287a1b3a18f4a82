package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	PropertyID int64     // ID объекта
	UserID     int64     // ID пользователя
	StartDate  time.Time // Дата заезда
	EndDate    time.Time // Дата выезда, не входит в бронирование
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64
	PropertyID int64
	UserID     int64
	StartDate  time.Time
	EndDate    time.Time
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
