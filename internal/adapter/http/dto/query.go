package dto

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/E-Mello/controlefin.app/internal/cashbook"
	"github.com/E-Mello/controlefin.app/internal/domain"
	"github.com/E-Mello/controlefin.app/internal/format"
	"github.com/E-Mello/controlefin.app/internal/usecase"
)

// ErrInvalidQuery is returned for a malformed query parameter.
var ErrInvalidQuery = errors.New("invalid query parameter")

// Query parameter names shared by the list and report endpoints.
const (
	QuerySearch    = "q"
	QueryKind      = "tipo"
	QueryYear      = "ano"
	QueryMonth     = "mes"
	QueryStart     = "inicio"
	QueryEnd       = "fim"
	QuerySort      = "ordem"
	QueryDirection = "direcao"
	QueryFormat    = "formato"
)

// ParseListingQuery reads the list view selections from GET /contas/.
func ParseListingQuery(q url.Values) (usecase.ListingInput, error) {
	var in usecase.ListingInput

	sort, err := parseSort(q)
	if err != nil {
		return in, err
	}
	in.Sort = sort

	in.Filter.Search = q.Get(QuerySearch)

	if raw := strings.TrimSpace(q.Get(QueryKind)); raw != "" && !strings.EqualFold(raw, "todos") {
		kind, err := domain.ParseKind(raw)
		if err != nil {
			return in, fmt.Errorf("%w: %s=%q", ErrInvalidQuery, QueryKind, raw)
		}
		in.Filter.Kind = kind
	}

	if in.Filter.Year, err = parseInt(q, QueryYear, 0, 9999); err != nil {
		return in, err
	}
	if in.Filter.Month, err = parseInt(q, QueryMonth, 0, 12); err != nil {
		return in, err
	}

	if in.Filter.RangeStart, err = parseOptionalDate(q, QueryStart); err != nil {
		return in, err
	}
	if in.Filter.RangeEnd, err = parseOptionalDate(q, QueryEnd); err != nil {
		return in, err
	}

	return in, nil
}

// ParseReportQuery reads the report selections for kind. The returned
// format is lower case and defaults to "json".
func ParseReportQuery(kind string, q url.Values) (usecase.ReportInput, string, error) {
	var in usecase.ReportInput

	reportKind, err := cashbook.ParseReportKind(kind)
	if err != nil {
		return in, "", err
	}
	in.Params.Kind = reportKind

	if in.Sort, err = parseSort(q); err != nil {
		return in, "", err
	}
	if in.Params.Year, err = parseInt(q, QueryYear, 0, 9999); err != nil {
		return in, "", err
	}
	if in.Params.Month, err = parseInt(q, QueryMonth, 0, 12); err != nil {
		return in, "", err
	}

	start, err := parseOptionalDate(q, QueryStart)
	if err != nil {
		return in, "", err
	}
	if start != nil {
		in.Params.RangeStart = *start
	}

	end, err := parseOptionalDate(q, QueryEnd)
	if err != nil {
		return in, "", err
	}
	if end != nil {
		in.Params.RangeEnd = *end
	}

	formatName := strings.ToLower(strings.TrimSpace(q.Get(QueryFormat)))
	if formatName == "" {
		formatName = "json"
	}

	return in, formatName, nil
}

func parseSort(q url.Values) (cashbook.SortSpec, error) {
	if q.Get(QuerySort) == "" && q.Get(QueryDirection) == "" {
		return cashbook.DefaultSort(), nil
	}

	col, ok := cashbook.ParseSortColumn(q.Get(QuerySort))
	if !ok {
		return cashbook.SortSpec{}, fmt.Errorf("%w: %s=%q", ErrInvalidQuery, QuerySort, q.Get(QuerySort))
	}

	dir, ok := cashbook.ParseSortDirection(q.Get(QueryDirection))
	if !ok {
		return cashbook.SortSpec{}, fmt.Errorf("%w: %s=%q", ErrInvalidQuery, QueryDirection, q.Get(QueryDirection))
	}

	return cashbook.SortSpec{Column: col, Direction: dir}, nil
}

func parseInt(q url.Values, key string, lo, hi int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidQuery, key, raw)
	}

	return n, nil
}

// parseOptionalDate accepts ISO or dd/mm/yyyy.
func parseOptionalDate(q url.Values, key string) (*domain.Date, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}

	if d := domain.ParseDate(raw); d.Valid() {
		return &d, nil
	}

	d, err := format.ParseDisplayDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidQuery, key, raw)
	}

	return &d, nil
}
