package errorx

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gold2201/LocalNetworkProject/internal/common/cnst"
	"github.com/gold2201/LocalNetworkProject/internal/i18n"
)

// Classifier maps a domain error to an APIError, returning nil when it
// does not recognise err.
type Classifier func(err error) *APIError

// ErrorHandler provides unified error handling capabilities
type ErrorHandler struct {
	logger      *zap.Logger
	translator  *i18n.I18n
	errTrans    *ErrorTranslator
	classifiers []Classifier
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger, translator *i18n.I18n, classifiers ...Classifier) *ErrorHandler {
	return &ErrorHandler{
		logger:      logger,
		translator:  translator,
		errTrans:    NewErrorTranslator(translator),
		classifiers: classifiers,
	}
}

// HandleError converts any error to APIError, writes it as
// {"error": APIError} and aborts the chain.
func (h *ErrorHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	apiErr := h.ConvertToAPIError(err)
	apiErr.TraceID = ExtractTraceID(c)
	apiErr.Timestamp = time.Now().UTC().Format(time.RFC3339)

	lang := i18n.LanguageFromRequest(c.Request, h.defaultLang())
	if l := c.GetString(cnst.XLang); l != "" {
		lang = l
	}
	rendered := h.errTrans.TranslateError(apiErr, lang)

	h.logError(c, rendered, err)

	c.AbortWithStatusJSON(rendered.HTTPStatus, gin.H{
		"error": rendered,
	})
}

func (h *ErrorHandler) defaultLang() string {
	if h.translator != nil {
		return h.translator.DefaultLang()
	}
	return "en"
}

// ConvertToAPIError converts any error to APIError. The result is always a
// fresh copy.
func (h *ErrorHandler) ConvertToAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Clone()
	}

	for _, classify := range h.classifiers {
		if mapped := classify(err); mapped != nil {
			return mapped
		}
	}

	// the original error is logged, never returned
	return InternalError(err)
}

// logError logs the error with appropriate context and stack trace
func (h *ErrorHandler) logError(c *gin.Context, apiErr *APIError, originalErr error) {
	var stackTrace string
	if apiErr.Severity == SeverityCritical {
		buf := make([]byte, 1024*4)
		n := runtime.Stack(buf, false)
		stackTrace = string(buf[:n])
	}

	fields := []zap.Field{
		zap.String("trace_id", apiErr.TraceID),
		zap.String("error_code", apiErr.Code),
		zap.String("category", string(apiErr.Category)),
		zap.Int("http_status", apiErr.HTTPStatus),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("client_ip", c.ClientIP()),
	}

	if originalErr != nil {
		fields = append(fields, zap.Error(originalErr))
	}

	if len(apiErr.Details) > 0 {
		detailsJSON, _ := json.Marshal(apiErr.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	if stackTrace != "" {
		fields = append(fields, zap.String("stack_trace", stackTrace))
	}

	switch apiErr.Severity {
	case SeverityInfo:
		h.logger.Info(apiErr.Message, fields...)
	case SeverityWarning:
		h.logger.Warn(apiErr.Message, fields...)
	default:
		h.logger.Error(apiErr.Message, fields...)
	}
}

// ErrorMiddleware renders the last error attached with c.Error when the
// handler did not write a response itself.
func (h *ErrorHandler) ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			h.HandleError(c, c.Errors.Last().Err)
		}
	}
}

// RecoveryMiddleware returns a gin middleware for panic recovery. The panic
// value is logged but never sent to the client.
func (h *ErrorHandler) RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		h.logger.Error("recovered from panic",
			zap.String("panic", fmt.Sprintf("%v", recovered)),
			zap.String("path", c.Request.URL.Path),
		)
		h.HandleError(c, ErrPanic.Clone())
	})
}

// ExtractTraceID extracts trace ID from context or request
func ExtractTraceID(c *gin.Context) string {
	if traceID := c.GetString("trace_id"); traceID != "" {
		return traceID
	}

	if traceID := c.GetHeader("X-Trace-Id"); traceID != "" {
		c.Set("trace_id", traceID)
		return traceID
	}

	traceID := uuid.New().String()
	c.Set("trace_id", traceID)
	return traceID
}
