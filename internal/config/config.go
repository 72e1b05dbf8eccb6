// Package config loads the engine's numeric limits from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/divvyhq/divvy/internal/money"
)

// Limits are the configured bounds the allocation engine applies to raw
// amount input.
type Limits struct {
	// AmountCeiling is the largest accepted amount; anything above it gets
	// the extra-digit correction (floor-divide by 10).
	AmountCeiling money.Amount

	// AmountMinimum is the floor below which a non-zero expense is flagged
	// as too small to balance.
	AmountMinimum money.Amount
}

// Default limits: a ten-digit ceiling and a one-major-unit floor.
const (
	DefaultAmountCeiling = money.DefaultCeiling
	DefaultAmountMinimum = money.Amount(100)
)

// Load reads limits from the environment, picking up a .env file when one
// exists. Malformed values are configuration errors and fail immediately.
func Load() (Limits, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	limits := Limits{
		AmountCeiling: DefaultAmountCeiling,
		AmountMinimum: DefaultAmountMinimum,
	}

	var err error
	if limits.AmountCeiling, err = getEnvAmount("DIVVY_AMOUNT_CEILING", limits.AmountCeiling); err != nil {
		return Limits{}, err
	}
	if limits.AmountMinimum, err = getEnvAmount("DIVVY_AMOUNT_MINIMUM", limits.AmountMinimum); err != nil {
		return Limits{}, err
	}
	if err := limits.Validate(); err != nil {
		return Limits{}, err
	}
	return limits, nil
}

// Validate checks the limits are usable together.
func (l Limits) Validate() error {
	if l.AmountCeiling <= 0 {
		return fmt.Errorf("amount ceiling must be positive, got %d", l.AmountCeiling)
	}
	if l.AmountMinimum < 0 {
		return fmt.Errorf("amount minimum cannot be negative, got %d", l.AmountMinimum)
	}
	if l.AmountMinimum > l.AmountCeiling {
		return fmt.Errorf("amount minimum %d exceeds ceiling %d", l.AmountMinimum, l.AmountCeiling)
	}
	return nil
}

func getEnvAmount(key string, fallback money.Amount) (money.Amount, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid amount %q: %w", key, raw, err)
	}
	return money.Amount(v), nil
}
