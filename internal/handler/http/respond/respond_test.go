package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body["error"]
}

func TestJSON(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		data         any
		expectedBody string
	}{
		{"map", http.StatusOK, map[string]string{"message": "success"}, `{"message":"success"}`},
		{"struct", http.StatusCreated, struct {
			Title string `json:"title"`
		}{Title: "Series B closed"}, `{"title":"Series B closed"}`},
		{"nil", http.StatusNoContent, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSON(w, tt.code, tt.data)

			if w.Code != tt.code {
				t.Errorf("Code = %v, want %v", w.Code, tt.code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %v, want application/json", ct)
			}
			if body := strings.TrimSpace(w.Body.String()); body != tt.expectedBody {
				t.Errorf("Body = %v, want %v", body, tt.expectedBody)
			}
		})
	}
}

func TestJSON_EncodingError(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, make(chan int))

	if w.Code != http.StatusOK {
		t.Errorf("Code = %v, want %v", w.Code, http.StatusOK)
	}
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusBadRequest, errors.New("bad group"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Code = %v, want %v", w.Code, http.StatusBadRequest)
	}
	if got := decodeError(t, w); got != "bad group" {
		t.Errorf("error = %q, want %q", got, "bad group")
	}
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name        string
		code        int
		err         error
		expectedMsg string
	}{
		{"missing fields", http.StatusBadRequest, errors.New("please fill in all fields: missing title"), "please fill in all fields: missing title"},
		{"invalid category", http.StatusBadRequest, errors.New("invalid category"), "invalid category"},
		{"unknown company", http.StatusNotFound, fmt.Errorf("company %q: company not found", "Acme"), `company "Acme": company not found`},
		{"internal message on 400", http.StatusBadRequest, errors.New("open /var/data/company_updates.json: permission denied"), "internal server error"},
		{"5xx always masked", http.StatusInternalServerError, errors.New("invalid character in state file"), "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			SafeError(w, tt.code, tt.err)

			if w.Code != tt.code {
				t.Errorf("Code = %v, want %v", w.Code, tt.code)
			}
			if got := decodeError(t, w); got != tt.expectedMsg {
				t.Errorf("error = %q, want %q", got, tt.expectedMsg)
			}
		})
	}
}

func TestSafeError_Nil(t *testing.T) {
	w := httptest.NewRecorder()
	SafeError(w, http.StatusBadRequest, nil)

	if w.Body.Len() != 0 {
		t.Errorf("Body = %q, want empty", w.Body.String())
	}
}

func TestAppError(t *testing.T) {
	cause := errors.New("rename failed")
	appErr := NewAppError(http.StatusInternalServerError, "could not save update", cause)

	if appErr.Error() != "rename failed" {
		t.Errorf("Error() = %q, want cause message", appErr.Error())
	}
	if !errors.Is(appErr, cause) {
		t.Error("errors.Is(appErr, cause) = false, want true")
	}

	noCause := NewAppError(http.StatusNotFound, "company not found", nil)
	if noCause.Error() != "company not found" {
		t.Errorf("Error() = %q, want user message", noCause.Error())
	}
}

func TestFail(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		err          error
		expectedCode int
		expectedMsg  string
	}{
		{
			name:         "AppError uses its own code and message",
			code:         http.StatusBadRequest,
			err:          NewAppError(http.StatusInternalServerError, "update store is unreadable", errors.New("corrupt update state: unexpected EOF")),
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "update store is unreadable",
		},
		{
			name:         "wrapped AppError",
			code:         http.StatusBadRequest,
			err:          fmt.Errorf("render feed: %w", NewAppError(http.StatusServiceUnavailable, "try again later", nil)),
			expectedCode: http.StatusServiceUnavailable,
			expectedMsg:  "try again later",
		},
		{
			name:         "plain error falls back to SafeError",
			code:         http.StatusInternalServerError,
			err:          errors.New("postgres://user:pw@db/x unreachable"),
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			Fail(w, tt.code, tt.err)

			if w.Code != tt.expectedCode {
				t.Errorf("Code = %v, want %v", w.Code, tt.expectedCode)
			}
			if got := decodeError(t, w); got != tt.expectedMsg {
				t.Errorf("error = %q, want %q", got, tt.expectedMsg)
			}
		})
	}
}
