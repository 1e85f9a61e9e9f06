package main

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", slog.Any("error", err))
	app.render(w, r, http.StatusInternalServerError, "error", nil)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusNotFound, "not-found", app.newBaseTemplateData(r))
}

// redirect detects if the request is originating from a fetch API call or a top-level navigation and points the user
// to the correct URL.
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	if r.Header.Get("Sec-Fetch-Dest") == "empty" {
		w.Header().Set("Content-Location", path)
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, path, http.StatusSeeOther)
}

// flash stores a one-shot message shown on the next rendered page.
func (app *application) flash(r *http.Request, message string) {
	app.sessionManager.Put(r.Context(), "flash", message)
}

// parseDateField parses a yyyy-mm-dd form field, defaulting to today when the
// field is empty.
func parseDateField(value string) (time.Time, error) {
	if value == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, err //nolint:wrapcheck // caller adds the field name.
	}
	return date, nil
}

// formInt parses an int form field, returning fallback for empty or invalid
// values.
func formInt(r *http.Request, field string, fallback int) int {
	value, err := strconv.Atoi(r.Form.Get(field))
	if err != nil {
		return fallback
	}
	return value
}

// formFloat parses a float form field, returning nil for empty or invalid
// values. Optional numeric inputs map to nil rather than zero.
func formFloat(r *http.Request, field string) *float64 {
	value, err := strconv.ParseFloat(r.Form.Get(field), 64)
	if err != nil {
		return nil
	}
	return &value
}
