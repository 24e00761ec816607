package dto

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer con locale es-AR: separador de miles "." y decimal ",".
var printer = message.NewPrinter(language.MustParse("es-AR"))

// FormatBalance representación monetaria del saldo para la UI ("$ 1.234,50").
// Derivación pura de presentación: nunca se persiste.
func FormatBalance(balance decimal.Decimal) string {
	f, _ := balance.Round(2).Float64()
	return printer.Sprintf("$ %.2f", f)
}

// BalanceStatus etiqueta legible del saldo: a favor del cliente o deudor.
func BalanceStatus(balance decimal.Decimal) string {
	if balance.IsNegative() {
		return "Debe"
	}
	return "A Favor"
}
