package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-03-15")
	assert.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 15, parsed.Day())

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "05/03/2024", FormatDate(d))
}

func TestGetCurrencySymbol(t *testing.T) {
	assert.Equal(t, "$", GetCurrencySymbol("USD"))
	assert.Equal(t, "R$", GetCurrencySymbol("BRL"))
	assert.Equal(t, "S/", GetCurrencySymbol("PEN"))

	// Unknown codes fall back to the code itself
	assert.Equal(t, "XYZ", GetCurrencySymbol("XYZ"))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$10.50", FormatCurrency(10.5, "USD"))
	assert.Equal(t, "€0.00", FormatCurrency(0, "EUR"))
	assert.Equal(t, "XYZ3.00", FormatCurrency(3, "XYZ"))
	assert.Equal(t, "$1,234.56", FormatCurrency(1234.56, "ARS"))
}
