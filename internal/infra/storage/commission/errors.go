package commission

import "errors"

var (
	ErrBuildQuery = errors.New("commission.repository: failed to build query")
	ErrExecQuery  = errors.New("commission.repository: failed to execute query")
	ErrScanRow    = errors.New("commission.repository: failed to scan row")
)
