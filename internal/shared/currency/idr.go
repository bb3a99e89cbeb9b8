package currency

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatIDR memformat rupiah tanpa desimal, mis. 2478000 -> "Rp 2.478.000".
func FormatIDR(amount int64) string {
	if amount < 0 {
		return "-Rp " + printer.Sprint(number.Decimal(-amount))
	}
	return "Rp " + printer.Sprint(number.Decimal(amount))
}

// FormatShort dipakai untuk label grafik, mis. 45000000 -> "45jt".
func FormatShort(amount int64) string {
	return fmt.Sprintf("%.0fjt", math.Round(float64(amount)/1_000_000))
}
