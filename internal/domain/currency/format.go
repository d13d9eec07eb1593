package currency

import (
	"strconv"
	"strings"

	"shortlet/internal/domain/shared/money"
)

// Format renders a minor-unit amount with the currency's symbol, thousands
// grouping and minor-unit precision, e.g. ₦100,210 or $67.14. Unknown codes
// fail; the caller owns any fallback policy.
func (c *Converter) Format(m money.Money) (string, error) {
	info, err := c.Table().Info(m.Currency)
	if err != nil {
		return "", err
	}
	return renderMinor(m.Amount, info), nil
}

// FormatMajor renders a decimal major-unit value, rounding half away from
// zero at the currency's precision (1234.5 NGN → ₦1,235).
func (c *Converter) FormatMajor(amount float64, code string) (string, error) {
	info, err := c.Table().Info(code)
	if err != nil {
		return "", err
	}
	return renderMinor(Round(amount*pow10(info.Exponent)), info), nil
}

// FormatMoney is Format against an explicit table, for callers holding a
// snapshot rather than the converter.
func (t *Table) FormatMoney(m money.Money) (string, error) {
	info, err := t.Info(m.Currency)
	if err != nil {
		return "", err
	}
	return renderMinor(m.Amount, info), nil
}

func renderMinor(amount int64, info Info) string {
	var b strings.Builder
	if amount < 0 {
		b.WriteByte('-')
		amount = -amount
	}
	b.WriteString(info.Symbol)
	scale := int64(1)
	for i := 0; i < info.Exponent; i++ {
		scale *= 10
	}
	whole := amount / scale
	b.WriteString(groupThousands(strconv.FormatInt(whole, 10)))
	if info.Exponent > 0 {
		frac := strconv.FormatInt(amount%scale, 10)
		b.WriteByte('.')
		b.WriteString(strings.Repeat("0", info.Exponent-len(frac)))
		b.WriteString(frac)
	}
	return b.String()
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
