package dealer

import "errors"

var (
	// ErrDealerNotFound возвращается, когда дилер не найден
	ErrDealerNotFound = errors.New("dealer.repository: dealer not found")

	// ErrDealerExists возвращается, когда пользователь уже зарегистрирован дилером
	ErrDealerExists = errors.New("dealer.repository: dealer for user already exists")

	// ErrReferralCodeTaken возвращается при коллизии реферального кода
	ErrReferralCodeTaken = errors.New("dealer.repository: referral code already taken")

	// ErrStatusConflict возвращается, когда статус дилера изменился конкурентно
	ErrStatusConflict = errors.New("dealer.repository: dealer status changed concurrently")

	ErrBuildQuery = errors.New("dealer.repository: failed to build query")
	ErrExecQuery  = errors.New("dealer.repository: failed to execute query")
	ErrScanRow    = errors.New("dealer.repository: failed to scan row")
)
