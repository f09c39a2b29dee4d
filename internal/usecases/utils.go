package usecases

import (
	"strings"

	domainerrors "brickvest.backend/internal/domain/errors"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// normalizeEnum maps request enum values (lower case, snake) onto the
// stored form (upper case).
func normalizeEnum(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

func nullString(v string) null.String {
	if v == "" {
		return null.String{}
	}
	return null.StringFrom(v)
}

// parsePositiveDecimal parses a request money field, rejecting zero and
// negative values.
func parsePositiveDecimal(raw, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, domainerrors.BadRequest(field + " must be a number")
	}
	if !d.IsPositive() {
		return decimal.Zero, domainerrors.BadRequest(field + " must be positive")
	}
	return d, nil
}
