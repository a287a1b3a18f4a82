package properties

import (
	"net/http"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

var (
	ErrPropertyNotFound = domain.ErrPropertyNotFound
	ErrDealerNotFound   = domain.ErrDealerNotFound
	ErrAccessDenied     = domain.ErrUnauthorized
	ErrInvalidInput     = domain.ErrInvalidInput

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = &domain.Error{Kind: domain.KindInternal, Status: http.StatusInternalServerError, Message: "properties: internal error"}
)
