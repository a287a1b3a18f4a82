package dealers

import (
	"strings"

	"github.com/google/uuid"
)

const referralCodeLength = 8

// UUIDCodeGenerator берет первые 8 hex-символов случайного UUID
type UUIDCodeGenerator struct{}

func (UUIDCodeGenerator) Generate() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:referralCodeLength])
}
