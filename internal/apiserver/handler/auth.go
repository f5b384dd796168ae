package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gold2201/LocalNetworkProject/internal/auth"
	"github.com/gold2201/LocalNetworkProject/internal/common/cnst"
	"github.com/gold2201/LocalNetworkProject/internal/common/dto"
	"github.com/gold2201/LocalNetworkProject/internal/common/errorx"
)

// Login handles operator login
func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := bindBody(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	if err := h.operator.Verify(req.Username, req.Password); err != nil {
		if errors.Is(err, auth.ErrOperatorNotConfigured) {
			h.logger.Warn("login attempted without operator credentials configured")
		}
		h.fail(c, errorx.InvalidCredentialsError().WithCause(err))
		return
	}

	token, expires, err := h.jwt.GenerateToken(req.Username, cnst.RoleOperator)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("operator logged in", zap.String("username", req.Username))

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresAt: expires,
		Username:  req.Username,
		Role:      cnst.RoleOperator,
	})
}
