package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
)

const msgInternalError = "внутренняя ошибка сервера"

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error   string              `json:"error"`
	Details []domain.FieldError `json:"details,omitempty"`
}

// DecodeJSON декодирует тело запроса. Пустое тело даёт io.EOF
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// Logger получает ошибки записи ответа
type Logger interface {
	Error(format string, v ...interface{})
}

var errorLog Logger

// SetLogger задаёт логгер для ошибок кодирования и записи ответа
func SetLogger(l Logger) {
	errorLog = l
}

func logError(format string, v ...interface{}) {
	if errorLog != nil {
		errorLog.Error(format, v...)
	}
}

// RespondJSON пишет JSON ответ с указанным статусом.
// Тело кодируется до записи статуса: если payload не кодируется, клиент получает 500.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logError("RespondJSON: failed to encode %T: %v", payload, err)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{Error: msgInternalError})
	}

	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logError("RespondJSON: failed to write response: %v", err)
	}
}

// RespondError пишет ошибку с сообщением
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondValidation пишет 422 со списком нарушенных правил.
// Ошибка без списка (например, некорректный параметр) отдаётся одним сообщением.
func RespondValidation(w http.ResponseWriter, message string, err error) {
	resp := ErrorResponse{Error: message}
	if errs, ok := domain.AsValidationErrors(err); ok {
		resp.Details = errs
	}
	RespondJSON(w, http.StatusUnprocessableEntity, resp)
}

// PathInt64 читает положительный int64 из переменной пути
func PathInt64(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, fmt.Errorf("missing path variable %s", name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

// ParseDate разбирает дату YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(domain.DateFormat, s, time.UTC)
}

// ParseDateTime разбирает дату и время без часового пояса ("2024-01-01T09:00")
// либо RFC3339; в последнем случае берётся указанное локальное время.
func ParseDateTime(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02T15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
}
