package dealers

import (
	"net/http"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

var (
	ErrDealerNotFound      = domain.ErrDealerNotFound
	ErrDealerAlreadyExists = domain.ErrDealerAlreadyExists
	ErrInvalidReferralCode = domain.ErrInvalidReferralCode
	ErrInvalidDealerState  = domain.ErrInvalidDealerState
	ErrTreeTooDeep         = domain.ErrTreeTooDeep
	ErrAccessDenied        = domain.ErrUnauthorized
	ErrInvalidInput        = domain.ErrInvalidInput

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = &domain.Error{Kind: domain.KindInternal, Status: http.StatusInternalServerError, Message: "dealers: internal error"}
)
