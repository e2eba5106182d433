package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/E-Mello/controlefin.app/internal/adapter/http/dto"
	"github.com/E-Mello/controlefin.app/internal/domain"
	"github.com/E-Mello/controlefin.app/internal/usecase"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeValidation writes the 422 body listing every failed field.
func writeValidation(w http.ResponseWriter, details []dto.ValidationDetail) {
	writeJSON(w, http.StatusUnprocessableEntity, dto.ValidationErrorResponse{Detail: details})
}

// writeFile sends a binary attachment.
func writeFile(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", contentDisposition(filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// contentDisposition builds an attachment header with an ASCII filename,
// adding the RFC 6266 filename* parameter when the name is not plain ASCII.
func contentDisposition(filename string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(stripMarks, filename)
	if err != nil {
		ascii = filename
	}
	ascii = strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, ascii)

	header := `attachment; filename="` + ascii + `"`
	if ascii == filename {
		return header
	}
	return header + "; filename*=UTF-8''" + encodeExtValue(filename)
}

// encodeExtValue percent-encodes every byte outside the RFC 5987 attr-char set.
func encodeExtValue(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAttrChar(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isAttrChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", c) >= 0
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrContaNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrEmptyDescription):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidKind):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidDate):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidReportPeriod):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, dto.ErrInvalidQuery):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError maps err and hides internal failures from the client.
func writeDomainError(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := mapDomainError(err)
	if status == http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).Msg(message)
		writeError(w, status, message, "internal error")
		return
	}
	writeError(w, status, message, err.Error())
}
