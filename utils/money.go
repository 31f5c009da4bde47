// utils/money.go
package utils

import "fmt"

// FormatCents renders an amount in integer cents as a BRL string,
// e.g. 123456 -> "R$ 1234,56".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%sR$ %d,%02d", sign, cents/100, cents%100)
}
