package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/E-Mello/controlefin.app/internal/domain"
)

// DisplayDateLayout is the masked dd/mm/yyyy form shown to users.
const DisplayDateLayout = "02/01/2006"

// InvalidDate labels anything that did not parse.
const InvalidDate = "Data inválida"

var monthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// Date renders dd/mm/yyyy.
func Date(d domain.Date) string {
	if !d.Valid() {
		return InvalidDate
	}
	return d.Time().Format(DisplayDateLayout)
}

// ISO renders the wire form YYYY-MM-DD.
func ISO(d domain.Date) string {
	return d.String()
}

// ParseDisplayDate converts masked dd/mm/yyyy input into a date.
func ParseDisplayDate(s string) (domain.Date, error) {
	t, err := time.Parse(DisplayDateLayout, strings.TrimSpace(s))
	if err != nil {
		return domain.Date{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
	}
	return domain.DateOf(t), nil
}

// MonthName returns the Portuguese month name, or "" out of range.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// MonthAbbrev returns the first three letters of the month name.
func MonthAbbrev(m time.Month) string {
	name := MonthName(m)
	if name == "" {
		return ""
	}
	return string([]rune(name)[:3])
}
