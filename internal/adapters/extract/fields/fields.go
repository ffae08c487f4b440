// Package fields recognizes the labels and cell values shared by the attendance extractors
package fields

import (
	"strconv"
	"strings"
	"unicode"

	pstrings "pontual/internal/platform/strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Field is a recognized document label
type Field int

const (
	// None marks text that is not a known label
	None Field = iota
	Employee
	Period
	Signature
	Date
	Predicted
	Realized
	Total
)

func (f Field) String() string {
	switch f {
	case Employee:
		return "employee"
	case Period:
		return "period"
	case Signature:
		return "signature"
	case Date:
		return "date"
	case Predicted:
		return "predicted"
	case Realized:
		return "realized"
	case Total:
		return "total"
	}
	return "none"
}

// labels are folded (lowercase, no accents); first match wins, so longer labels go first
var labels = []struct {
	text  string
	field Field
}{
	{"nome do funcionario", Employee},
	{"funcionario", Employee},
	{"colaborador", Employee},
	{"employee", Employee},
	{"nome", Employee},
	{"name", Employee},
	{"competencia", Period},
	{"periodo", Period},
	{"period", Period},
	{"assinatura", Signature},
	{"signature", Signature},
	{"horas previstas", Predicted},
	{"previsto", Predicted},
	{"prevista", Predicted},
	{"predicted", Predicted},
	{"expected", Predicted},
	{"horas realizadas", Realized},
	{"realizado", Realized},
	{"realizada", Realized},
	{"realized", Realized},
	{"worked", Realized},
	{"totais", Total},
	{"total", Total},
	{"data", Date},
	{"date", Date},
	{"dia", Date},
}

// Fold lowercases s, strips combining accents and collapses whitespace
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(pstrings.Collapse(out))
}

// Label classifies a header cell or the label part of a "Label: value" line.
// Trailing colons are ignored
func Label(s string) Field {
	f := strings.TrimRight(Fold(s), ": ")
	if f == "" {
		return None
	}
	for _, l := range labels {
		if f == l.text {
			return l.field
		}
	}
	for _, l := range labels {
		if strings.HasPrefix(f, l.text+" ") || strings.HasPrefix(f, l.text+"(") {
			return l.field
		}
	}
	return None
}

// SplitLabel splits "Label: value" into its recognized field and trimmed value
func SplitLabel(line string) (Field, string) {
	i := strings.IndexByte(line, ':')
	if i <= 0 {
		return None, ""
	}
	f := Label(line[:i])
	if f == None {
		return None, ""
	}
	return f, pstrings.Collapse(line[i+1:])
}

// Minutes converts clock text "H:MM" or "HH:MM" into a minute count string.
// Anything else comes back trimmed and untouched so the normalizer can reject it
func Minutes(s string) string {
	s = strings.TrimSpace(s)
	h, m, ok := strings.Cut(s, ":")
	if !ok || h == "" || len(m) != 2 {
		return s
	}
	hh, err := strconv.Atoi(h)
	if err != nil || hh < 0 {
		return s
	}
	mm, err := strconv.Atoi(m)
	if err != nil || mm < 0 || mm > 59 {
		return s
	}
	return strconv.Itoa(hh*60 + mm)
}

// Signed reports whether a signature value carries an actual mark.
// Blank lines, underscores and explicit negatives count as unsigned
func Signed(v string) bool {
	f := Fold(v)
	f = strings.Trim(f, "_-. ")
	switch f {
	case "", "nao", "no", "n", "false", "pendente", "pending", "sem assinatura":
		return false
	}
	return true
}
