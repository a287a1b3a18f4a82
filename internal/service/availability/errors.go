package availability

import (
	"net/http"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

var (
	ErrInvalidInterval  = domain.ErrInvalidInterval
	ErrPropertyNotFound = domain.ErrPropertyNotFound

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = &domain.Error{Kind: domain.KindInternal, Status: http.StatusInternalServerError, Message: "availability: internal error"}
)
