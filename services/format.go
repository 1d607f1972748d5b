package services

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ParseDate parses a date string in typical formats (YYYY-MM-DD)
// It enforces strict checks but centralizes the logic for future format additions
func ParseDate(dateStr string) (time.Time, error) {
	// Primary format: ISO 8601 (standard for HTML5 date inputs)
	layout := "2006-01-02"

	parsedTime, err := time.Parse(layout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD")
	}

	return parsedTime, nil
}

// FormatDate renders a date the way the listings show it (day/month/year)
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// Moneda describes a currency the forms offer
type Moneda struct {
	Codigo  string
	Nombre  string
	Simbolo string
}

// Monedas is the known currency set. Lookup falls back to the code itself.
var Monedas = []Moneda{
	{Codigo: "USD", Nombre: "Dólar Estadounidense", Simbolo: "$"},
	{Codigo: "EUR", Nombre: "Euro", Simbolo: "€"},
	{Codigo: "MXN", Nombre: "Peso Mexicano", Simbolo: "$"},
	{Codigo: "BRL", Nombre: "Real Brasileño", Simbolo: "R$"},
	{Codigo: "ARS", Nombre: "Peso Argentino", Simbolo: "$"},
	{Codigo: "CLP", Nombre: "Peso Chileno", Simbolo: "$"},
	{Codigo: "COP", Nombre: "Peso Colombiano", Simbolo: "$"},
	{Codigo: "PEN", Nombre: "Sol Peruano", Simbolo: "S/"},
	{Codigo: "JPY", Nombre: "Yen Japonés", Simbolo: "¥"},
	{Codigo: "GBP", Nombre: "Libra Esterlina", Simbolo: "£"},
	{Codigo: "CAD", Nombre: "Dólar Canadiense", Simbolo: "C$"},
}

// GetCurrencySymbol returns the symbol for a known currency code, or the code
// itself when unrecognized
func GetCurrencySymbol(currencyCode string) string {
	for _, m := range Monedas {
		if m.Codigo == currencyCode {
			return m.Simbolo
		}
	}
	return currencyCode
}

var currencyPrinter = message.NewPrinter(language.MustParse("es-US"))

// FormatCurrency renders an amount with its currency symbol and two decimal
// places, with locale-aware digit grouping
func FormatCurrency(amount float64, currencyCode string) string {
	return currencyPrinter.Sprintf("%s%v",
		GetCurrencySymbol(currencyCode),
		number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)),
	)
}
