package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

// DefaultKey ключ снапшота настроек в Redis
const DefaultKey = "property-service:settings:v1"

var (
	// ErrCacheUnavailable возвращается при ошибках Redis
	ErrCacheUnavailable = errors.New("settings.cache: redis unavailable")

	// ErrCorruptedEntry возвращается, когда запись в кэше не удалось разобрать
	ErrCorruptedEntry = errors.New("settings.cache: corrupted entry")
)

// Cache read-through кэш снапшота настроек. Запись в БД должна сопровождаться Invalidate.
type Cache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, key: DefaultKey, ttl: ttl}
}

type entry struct {
	BookingDurationDays   int                     `json:"bookingDurationDays"`
	CommissionPercentages map[int]decimal.Decimal `json:"commissionPercentages"`
}

// Get возвращает снапшот. found=false при промахе.
func (c *Cache) Get(ctx context.Context) (*domain.Settings, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: get: %v", ErrCacheUnavailable, err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrCorruptedEntry, err)
	}
	if e.BookingDurationDays <= 0 {
		return nil, false, fmt.Errorf("%w: bookingDurationDays=%d", ErrCorruptedEntry, e.BookingDurationDays)
	}

	settings := &domain.Settings{
		BookingDurationDays:   e.BookingDurationDays,
		CommissionPercentages: e.CommissionPercentages,
	}
	if settings.CommissionPercentages == nil {
		settings.CommissionPercentages = map[int]decimal.Decimal{}
	}
	return settings, true, nil
}

// Set сохраняет снапшот с TTL
func (c *Cache) Set(ctx context.Context, settings *domain.Settings) error {
	data, err := json.Marshal(entry{
		BookingDurationDays:   settings.BookingDurationDays,
		CommissionPercentages: settings.CommissionPercentages,
	})
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrCorruptedEntry, err)
	}

	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// Invalidate удаляет снапшот
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("%w: del: %v", ErrCacheUnavailable, err)
	}
	return nil
}
