package distribute_commission

import (
	"net/http"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

var (
	ErrInvalidInput             = domain.ErrInvalidInput
	ErrAccessDenied             = domain.ErrUnauthorized
	ErrPropertyOrDealerNotFound = domain.ErrPropertyOrDealerNotFound

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = &domain.Error{Kind: domain.KindInternal, Status: http.StatusInternalServerError, Message: "distribute_commission: internal error"}
)
