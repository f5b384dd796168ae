package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gold2201/LocalNetworkProject/internal/apiserver/database"
	"github.com/gold2201/LocalNetworkProject/internal/apiserver/validate"
	"github.com/gold2201/LocalNetworkProject/internal/auth"
	"github.com/gold2201/LocalNetworkProject/internal/auth/jwt"
	"github.com/gold2201/LocalNetworkProject/internal/common/cnst"
	"github.com/gold2201/LocalNetworkProject/internal/common/config"
	"github.com/gold2201/LocalNetworkProject/internal/common/errorx"
	"github.com/gold2201/LocalNetworkProject/internal/i18n"
	"github.com/gold2201/LocalNetworkProject/pkg/export"
	"github.com/gold2201/LocalNetworkProject/pkg/metrics"
)

// Handler serves the inventory API
type Handler struct {
	db        database.Database
	cfg       *config.APIServerConfig
	validator *validate.Validator
	exporter  *export.Service
	errs      *errorx.ErrorHandler
	i18n      *i18n.I18n
	jwt       *jwt.Service
	operator  *auth.Operator
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// Options are the collaborators of a Handler
type Options struct {
	DB       database.Database
	Config   *config.APIServerConfig
	Exporter *export.Service
	Errors   *errorx.ErrorHandler
	I18n     *i18n.I18n
	JWT      *jwt.Service
	Operator *auth.Operator
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
}

// NewHandler creates a new inventory handler
func NewHandler(opts Options) *Handler {
	lg := opts.Logger
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Handler{
		db:        opts.DB,
		cfg:       opts.Config,
		validator: validate.New(opts.Config.Validation),
		exporter:  opts.Exporter,
		errs:      opts.Errors,
		i18n:      opts.I18n,
		jwt:       opts.JWT,
		operator:  opts.Operator,
		metrics:   opts.Metrics,
		logger:    lg,
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.errs.HandleError(c, err)
}

func (h *Handler) translate(c *gin.Context, msgID string, data map[string]any) string {
	if h.i18n == nil {
		return msgID
	}
	return h.i18n.TranslateContext(c, msgID, data)
}

// pathID parses the :id parameter. Ids that are not positive integers
// cannot name a row, so they are reported as not found.
func pathID(c *gin.Context, resource string) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, errorx.NotFoundError(resource, raw)
	}
	return uint(id), nil
}

// bindBody decodes the JSON body into dst, which may already hold values
func bindBody(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return errorx.FieldValidationError("body", i18n.MsgFieldMalformedBody, nil).WithCause(err)
	}
	return nil
}

// exportFormat reads the optional format parameter
func exportFormat(c *gin.Context) (string, error) {
	switch f := c.Query("format"); f {
	case "", cnst.ExportFormatXLSX, cnst.ExportFormatCSV:
		return f, nil
	default:
		return "", errorx.FieldValidationError("format", i18n.MsgFieldUnknownChoice, map[string]any{"Value": f})
	}
}

func sendFile(c *gin.Context, f *export.File) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, f.Name))
	c.Data(http.StatusOK, f.ContentType, f.Data)
}
