package errorx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gold2201/LocalNetworkProject/internal/i18n"
)

var errMissing = errors.New("missing row")

func newTestRouter(t *testing.T, route gin.HandlerFunc) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.DebugLevel)
	tr := i18n.NewI18n("en")
	require.NoError(t, tr.AddMessages("ru", map[string]string{
		i18n.MsgErrorValidation: "Ошибка валидации",
		i18n.MsgFieldRequired:   "Обязательное поле",
	}))

	h := NewErrorHandler(zap.New(core), tr, func(err error) *APIError {
		if errors.Is(err, errMissing) {
			return NotFoundError("computer", 7)
		}
		return nil
	})

	r := gin.New()
	r.Use(h.RecoveryMiddleware(), h.ErrorMiddleware())
	r.GET("/t", route)
	r.GET("/direct", func(c *gin.Context) {
		h.HandleError(c, FieldValidationError("email", i18n.MsgFieldRequired, nil))
	})
	return r, logs
}

func doGet(r http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleError_ValidationFieldsTranslated(t *testing.T) {
	r, _ := newTestRouter(t, func(c *gin.Context) {})

	w := doGet(r, "/direct", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Equal(t, "E1001", gjson.Get(body, "error.code").String())
	assert.Equal(t, "Validation failed", gjson.Get(body, "error.message").String())
	assert.Equal(t, "This field is required", gjson.Get(body, "error.details.fields.email").String())
	assert.NotEmpty(t, gjson.Get(body, "error.trace_id").String())

	w = doGet(r, "/direct", map[string]string{"X-Lang": "ru"})
	body = w.Body.String()
	assert.Equal(t, "Ошибка валидации", gjson.Get(body, "error.message").String())
	assert.Equal(t, "Обязательное поле", gjson.Get(body, "error.details.fields.email").String())
}

func TestErrorMiddleware_Classifier(t *testing.T) {
	r, _ := newTestRouter(t, func(c *gin.Context) {
		_ = c.Error(errMissing)
	})

	w := doGet(r, "/t", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "E4001", gjson.Get(w.Body.String(), "error.code").String())
	assert.Equal(t, "7", gjson.Get(w.Body.String(), "error.details.identifier").String())
}

func TestErrorMiddleware_GenericErrorDoesNotLeak(t *testing.T) {
	r, logs := newTestRouter(t, func(c *gin.Context) {
		_ = c.Error(errors.New("pq: password authentication failed"))
	})

	w := doGet(r, "/t", map[string]string{"X-Trace-Id": "trace-1"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := w.Body.String()
	assert.Equal(t, "E5001", gjson.Get(body, "error.code").String())
	assert.Equal(t, "trace-1", gjson.Get(body, "error.trace_id").String())
	assert.NotContains(t, body, "password authentication")
	assert.NotZero(t, logs.FilterField(zap.String("trace_id", "trace-1")).Len())
}

func TestRecoveryMiddleware_HidesPanicText(t *testing.T) {
	r, logs := newTestRouter(t, func(c *gin.Context) {
		panic("secret internal state")
	})

	w := doGet(r, "/t", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "E5000", gjson.Get(w.Body.String(), "error.code").String())
	assert.NotContains(t, w.Body.String(), "secret internal state")
	assert.Equal(t, 1, logs.FilterMessage("recovered from panic").Len())
}

func TestQueryExecutionError_IncludesDatabaseMessage(t *testing.T) {
	r, _ := newTestRouter(t, func(c *gin.Context) {
		_ = c.Error(QueryExecutionError(errors.New("no such table: nope")))
	})

	w := doGet(r, "/t", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "E5002", gjson.Get(w.Body.String(), "error.code").String())
	assert.Contains(t, gjson.Get(w.Body.String(), "error.message").String(), "no such table: nope")
}

func TestConstructorsDoNotMutateTemplates(t *testing.T) {
	_ = NotFoundError("user", 1)
	_ = ConflictError("ConflictEmail", nil)
	_ = FieldValidationError("x", "y", nil)

	assert.Empty(t, ErrResourceNotFound.Details)
	assert.Equal(t, i18n.MsgErrorConflict, ErrResourceExists.MessageID)
	assert.Empty(t, ErrInvalidInput.Fields)
}

func TestAPIError_Unwrap(t *testing.T) {
	cause := errors.New("duplicate key")
	err := ConflictError(i18n.MsgConflictEmail, cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "E4091")
	assert.Contains(t, err.JSON(), `"code":"E4091"`)
}
