package router_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/portfolio-backend/internal/config"
	"github.com/stemsi/portfolio-backend/internal/handler"
	"github.com/stemsi/portfolio-backend/internal/middleware"
	"github.com/stemsi/portfolio-backend/internal/router"
	"github.com/stemsi/portfolio-backend/internal/service"
	"github.com/stemsi/portfolio-backend/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
}

// newTestRouter wires every handler that can run without Redis or Postgres.
// The preference and contact services are only reached after validation, so
// nil clients are fine for the paths exercised here.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	validator.Setup()

	cfg := &config.Config{
		GinMode:          gin.TestMode,
		JWTSecret:        "test-secret",
		VisitorExpiry:    time.Hour,
		ThemeTTL:         time.Hour,
		MaxUploadBytes:   1 << 20,
		ContactRateLimit: 5,
	}
	log := zerolog.Nop()

	visitorService := service.NewVisitorService(cfg)
	handlers := &router.Handlers{
		Site:       handler.NewSiteHandler(),
		GPA:        handler.NewGPAHandler(service.NewGPAService(log), cfg.MaxUploadBytes, log),
		Preference: handler.NewPreferenceHandler(visitorService, service.NewPreferenceService(nil, cfg, log), log),
		Contact:    handler.NewContactHandler(service.NewContactService(nil, cfg, log), log),
		WS:         handler.NewWSHandler(log, nil),
	}

	return router.SetupRouter(visitorService, handlers, middleware.NewRateLimiter(cfg.ContactRateLimit, time.Minute), cfg, log)
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestHealthAndSite(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/public/site", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var site struct {
		Year         int    `json:"year"`
		DefaultTheme string `json:"default_theme"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &site))
	assert.Equal(t, time.Now().Year(), site.Year)
	assert.Equal(t, "light", site.DefaultTheme)
}

func TestGPAScale(t *testing.T) {
	r := newTestRouter(t)
	w, env := doJSON(t, r, http.MethodGet, "/api/v1/gpa/scale", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
	assert.Contains(t, string(env.Data), "First Class Honours")
}

func TestGPACalculate(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/gpa/calculate",
		`{"courses":[{"name":"Math","marks":95},{"name":"CS","marks":85}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		GPA            float64 `json:"gpa"`
		GPADisplay     string  `json:"gpa_display"`
		Classification string  `json:"classification"`
		CourseCount    int     `json:"course_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, 3.75, res.GPA)
	assert.Equal(t, "3.75", res.GPADisplay)
	assert.Equal(t, "First Class Honours", res.Classification)
	assert.Equal(t, 2, res.CourseCount)

	_, env = doJSON(t, r, http.MethodPost, "/api/v1/gpa/calculate", `{"courses":[{"name":"Math","marks":"55"}]}`)
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "2.00", res.GPADisplay)
	assert.Equal(t, "Pass", res.Classification)
}

func TestGPACalculateFailures(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		name  string
		body  string
		code  string
		field string
	}{
		{"empty batch", `{"courses":[]}`, "EMPTY_BATCH", ""},
		{"missing courses", `{}`, "EMPTY_BATCH", ""},
		{"empty name", `{"courses":[{"name":"","marks":80}]}`, "VALIDATION_ERROR", "courses[0].name"},
		{"marks out of range", `{"courses":[{"name":"X","marks":105}]}`, "VALIDATION_ERROR", "courses[0].marks"},
		{"missing marks", `{"courses":[{"name":"X","marks":70},{"name":"Y"}]}`, "VALIDATION_ERROR", "courses[1].marks"},
		{"non-numeric marks", `{"courses":[{"name":"X","marks":"abc"}]}`, "VALIDATION_ERROR", "courses[0].marks"},
		{"boolean marks", `{"courses":[{"name":"X","marks":true}]}`, "VALIDATION_ERROR", "courses[0].marks"},
		{"earlier empty name wins", `{"courses":[{"name":"","marks":80},{"name":"Y"}]}`, "VALIDATION_ERROR", "courses[0].name"},
		{"name checked before marks", `{"courses":[{"name":""}]}`, "VALIDATION_ERROR", "courses[0].name"},
		{"malformed body", `{"courses":[`, "INVALID_PAYLOAD", ""},
		{"courses not a list", `{"courses":"Math"}`, "INVALID_PAYLOAD", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := doJSON(t, r, http.MethodPost, "/api/v1/gpa/calculate", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.code, env.Error.Code)
			if tc.field != "" {
				assert.Len(t, env.Error.Fields, 1)
				assert.Contains(t, env.Error.Fields, tc.field)
			}
		})
	}
}

func multipartUpload(t *testing.T, field string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		fw, err := mw.CreateFormFile(field, "courses.xlsx")
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/gpa/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestGPAImport(t *testing.T) {
	r := newTestRouter(t)

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Course", "Marks"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Math", 95}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"CS", 85}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartUpload(t, "file", buf.Bytes()))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"gpa_display":"3.75"`)

	bad := excelize.NewFile()
	require.NoError(t, bad.SetSheetRow("Sheet1", "A1", &[]interface{}{"Course", "Marks"}))
	require.NoError(t, bad.SetSheetRow("Sheet1", "A3", &[]interface{}{"Math", 95}))
	require.NoError(t, bad.SetSheetRow("Sheet1", "A4", &[]interface{}{"CS"}))
	badBuf, err := bad.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, bad.Close())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartUpload(t, "file", badBuf.Bytes()))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, map[string]string{"sheet_rows[4].marks": "marks are required"}, env.Error.Fields)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartUpload(t, "", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "FILE_REQUIRED")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartUpload(t, "file", []byte("not a spreadsheet")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_SPREADSHEET")
}

func TestPreferencesRequireVisitorToken(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/preferences/theme", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_REQUIRED", env.Error.Code)

	w, env = doJSON(t, r, http.MethodPost, "/api/v1/visitor", "")
	assert.Equal(t, http.StatusCreated, w.Code)
	var tok struct {
		Token     string `json:"token"`
		VisitorID string `json:"visitor_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tok))
	assert.NotEmpty(t, tok.Token)
	assert.Len(t, tok.VisitorID, 36)
}

func TestContactValidation(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/contact/validate",
		`{"name":"A","email":"nope","subject":"Hello there","message":"short"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Valid  bool              `json:"valid"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.False(t, res.Valid)
	assert.Contains(t, res.Fields, "name")
	assert.Contains(t, res.Fields, "email")
	assert.Contains(t, res.Fields, "message")
	assert.NotContains(t, res.Fields, "subject")

	_, env = doJSON(t, r, http.MethodPost, "/api/v1/contact/validate",
		`{"name":"Ada","email":"ada@example.org","subject":"Hello there","message":"Lovely portfolio!"}`)
	res.Fields = nil
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.True(t, res.Valid)
	assert.Empty(t, res.Fields)

	w, env = doJSON(t, r, http.MethodPost, "/api/v1/contact/validate", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_PAYLOAD", env.Error.Code)
	assert.Contains(t, env.Error.Fields, "detail")

	w, env = doJSON(t, r, http.MethodPost, "/api/v1/contact",
		`{"name":"Ada","email":"ada@example","subject":"Hi","message":"Lovely portfolio!"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Fields, "email")
	assert.Contains(t, env.Error.Fields, "subject")
}

type wsEvent struct {
	Event          string `json:"event"`
	Code           string `json:"code"`
	Field          string `json:"field"`
	GPADisplay     string `json:"gpa_display"`
	Classification string `json:"classification"`
	State          struct {
		Rows []struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Marks string `json:"marks"`
		} `json:"rows"`
		Panel struct {
			Visible bool `json:"visible"`
		} `json:"panel"`
	} `json:"state"`
}

func TestCalculatorWebSocket(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/v1/gpa/calculator"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	send := func(v interface{}) wsEvent {
		t.Helper()
		require.NoError(t, conn.WriteJSON(v))
		var evt wsEvent
		require.NoError(t, conn.ReadJSON(&evt))
		return evt
	}

	var initial wsEvent
	require.NoError(t, conn.ReadJSON(&initial))
	require.Equal(t, "state", initial.Event)
	require.Len(t, initial.State.Rows, 1)
	first := initial.State.Rows[0].ID

	evt := send(map[string]string{"action": "remove_row", "row_id": first})
	assert.Equal(t, "error", evt.Event)
	assert.Equal(t, "LAST_ROW", evt.Code)

	evt = send(map[string]string{"action": "submit"})
	assert.Equal(t, "error", evt.Event)
	assert.Equal(t, "VALIDATION_ERROR", evt.Code)
	assert.Equal(t, "rows[0].name", evt.Field)

	evt = send(map[string]string{"action": "update_row", "row_id": first, "name": "Math", "marks": "95"})
	assert.Equal(t, "state", evt.Event)

	evt = send(map[string]string{"action": "add_row"})
	require.Len(t, evt.State.Rows, 2)
	second := evt.State.Rows[1].ID

	evt = send(map[string]string{"action": "update_row", "row_id": second, "name": "CS", "marks": "85"})
	assert.Equal(t, "CS", evt.State.Rows[1].Name)

	evt = send(map[string]string{"action": "submit"})
	assert.Equal(t, "result", evt.Event)
	assert.Equal(t, "3.75", evt.GPADisplay)
	assert.Equal(t, "First Class Honours", evt.Classification)
	assert.True(t, evt.State.Panel.Visible)

	evt = send(map[string]string{"action": "reset"})
	assert.Equal(t, "state", evt.Event)
	assert.Len(t, evt.State.Rows, 1)
	assert.False(t, evt.State.Panel.Visible)

	evt = send(map[string]string{"action": "ping"})
	assert.Equal(t, "pong", evt.Event)

	evt = send(map[string]string{"action": "dance"})
	assert.Equal(t, "error", evt.Event)
	assert.Equal(t, "INVALID_PAYLOAD", evt.Code)
}
