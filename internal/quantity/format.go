package quantity

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders quantities with locale-aware digit grouping and
// decimal separators.
type Formatter struct {
	Precision int
	Language  language.Tag
}

// NewFormatter returns a Formatter for the given BCP 47 locale. An empty
// locale selects English.
func NewFormatter(precision int, locale string) (Formatter, error) {
	tag := language.English
	if locale != "" {
		t, err := language.Parse(locale)
		if err != nil {
			return Formatter{}, err
		}
		tag = t
	}
	if precision < 0 {
		precision = 0
	}
	return Formatter{Precision: precision, Language: tag}, nil
}

// Format renders q, e.g. "2,000.00 m" for English or "2.000,00 m" for German.
func (f Formatter) Format(q Quantity) string {
	p := message.NewPrinter(f.Language)
	num := p.Sprint(number.Decimal(q.value, number.Scale(f.Precision)))
	return withSymbol(num, q.symbol())
}
