// Package httpapi exposes the MFA subsystem over HTTP for the surrounding
// application: enrollment, verification and status, mirroring the shape a
// host web application consumes.
package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mileusna/useragent"
	"github.com/tech-arch1tect/mfakit/server"
	"github.com/tech-arch1tect/mfakit/services/jwt"
	"github.com/tech-arch1tect/mfakit/services/logging"
	"github.com/tech-arch1tect/mfakit/services/mfa"
	"github.com/tech-arch1tect/mfakit/services/qrcode"
	"github.com/tech-arch1tect/mfakit/services/recovery"
	"go.uber.org/zap"
)

type Handler struct {
	mfaSvc      *mfa.Service
	jwtSvc      *jwt.Service
	qrSvc       *qrcode.Service
	recoverySvc *recovery.Service
	logger      *logging.Service
}

func NewHandler(mfaSvc *mfa.Service, jwtSvc *jwt.Service, qrSvc *qrcode.Service, recoverySvc *recovery.Service, logger *logging.Service) *Handler {
	return &Handler{
		mfaSvc:      mfaSvc,
		jwtSvc:      jwtSvc,
		qrSvc:       qrSvc,
		recoverySvc: recoverySvc,
		logger:      logger,
	}
}

func (h *Handler) Register(srv *server.Server) {
	group := srv.Group("/mfa")
	group.POST("/enroll", h.Enroll)
	group.POST("/verify", h.Verify)
	group.POST("/recover", h.Recover)
	group.GET("/status/:identity", h.Status)
}

type enrollRequest struct {
	Identity string `json:"identity"`
}

type enrollResponse struct {
	Secret          string `json:"secret"`
	ProvisioningURI string `json:"provisioning_uri"`
	QRCode          string `json:"qr_code,omitempty"`
}

func (h *Handler) Enroll(c echo.Context) error {
	var req enrollRequest
	if err := c.Bind(&req); err != nil || req.Identity == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "identity is required")
	}

	result, err := h.mfaSvc.BeginEnrollment(req.Identity)
	if err != nil {
		if errors.Is(err, mfa.ErrAlreadyActive) {
			return echo.NewHTTPError(http.StatusBadRequest, "MFA is already active")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "enrollment failed")
	}

	resp := enrollResponse{
		Secret:          result.Secret,
		ProvisioningURI: result.ProvisioningURI,
	}

	// The QR image is a convenience; enrollment still succeeds without it.
	if h.qrSvc != nil {
		if dataURL, err := h.qrSvc.GenerateDataURL(result.ProvisioningURI); err == nil {
			resp.QRCode = dataURL
		} else if h.logger != nil {
			h.logger.Warn("failed to render enrollment QR code",
				zap.Error(err),
				zap.String("identity", req.Identity))
		}
	}

	return c.JSON(http.StatusOK, resp)
}

type verifyRequest struct {
	Identity string `json:"identity"`
	Code     string `json:"code"`
}

type verifyResponse struct {
	Activated     bool     `json:"activated"`
	AccessToken   string   `json:"access_token,omitempty"`
	RefreshToken  string   `json:"refresh_token,omitempty"`
	RecoveryCodes []string `json:"recovery_codes,omitempty"`
}

type verifyErrorResponse struct {
	Error             string `json:"error"`
	AttemptsRemaining *int   `json:"attempts_remaining,omitempty"`
	RetryAfterSeconds *int   `json:"retry_after_seconds,omitempty"`
}

func (h *Handler) Verify(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil || req.Identity == "" || req.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "identity and code are required")
	}

	h.logAttempt(c, req.Identity)

	result, err := h.mfaSvc.Verify(req.Identity, req.Code, time.Now())
	if err != nil {
		var invalidErr *mfa.InvalidCodeError
		var lockedErr *mfa.LockedError

		switch {
		case errors.As(err, &lockedErr):
			retryAfter := int(lockedErr.RetryAfter.Seconds())
			return c.JSON(http.StatusTooManyRequests, verifyErrorResponse{
				Error:             "too many failed attempts",
				RetryAfterSeconds: &retryAfter,
			})
		case errors.As(err, &invalidErr):
			remaining := invalidErr.AttemptsRemaining
			return c.JSON(http.StatusUnauthorized, verifyErrorResponse{
				Error:             "invalid code",
				AttemptsRemaining: &remaining,
			})
		case errors.Is(err, mfa.ErrNotEnrolled):
			return echo.NewHTTPError(http.StatusBadRequest, "MFA is not enrolled")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "verification failed")
		}
	}

	resp := verifyResponse{Activated: result.Activated}

	if result.Activated && h.recoverySvc != nil {
		if codes, err := h.recoverySvc.Issue(req.Identity); err == nil {
			resp.RecoveryCodes = codes
		} else if !errors.Is(err, recovery.ErrDisabled) && h.logger != nil {
			h.logger.Error("failed to issue recovery codes",
				zap.Error(err),
				zap.String("identity", req.Identity))
		}
	}

	if err := h.attachTokens(&resp, req.Identity); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "token generation failed")
	}

	return c.JSON(http.StatusOK, resp)
}

type recoverRequest struct {
	Identity string `json:"identity"`
	Code     string `json:"code"`
}

func (h *Handler) Recover(c echo.Context) error {
	var req recoverRequest
	if err := c.Bind(&req); err != nil || req.Identity == "" || req.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "identity and code are required")
	}

	if h.recoverySvc == nil {
		return echo.NewHTTPError(http.StatusNotFound, "recovery codes are disabled")
	}

	h.logAttempt(c, req.Identity)

	if err := h.recoverySvc.Consume(req.Identity, req.Code); err != nil {
		switch {
		case errors.Is(err, recovery.ErrDisabled):
			return echo.NewHTTPError(http.StatusNotFound, "recovery codes are disabled")
		case errors.Is(err, recovery.ErrInvalidCode):
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid recovery code")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "recovery failed")
		}
	}

	resp := verifyResponse{}
	if err := h.attachTokens(&resp, req.Identity); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "token generation failed")
	}

	return c.JSON(http.StatusOK, resp)
}

type statusResponse struct {
	Active  bool `json:"active"`
	Pending bool `json:"pending"`
}

func (h *Handler) Status(c echo.Context) error {
	identity := c.Param("identity")
	if identity == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "identity is required")
	}

	status, err := h.mfaSvc.Status(identity)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "status lookup failed")
	}

	return c.JSON(http.StatusOK, statusResponse{
		Active:  status.Active,
		Pending: status.Pending,
	})
}

func (h *Handler) attachTokens(resp *verifyResponse, identity string) error {
	if h.jwtSvc == nil || !h.jwtSvc.Enabled() {
		return nil
	}

	accessToken, err := h.jwtSvc.GenerateAccessToken(identity)
	if err != nil {
		return err
	}
	refreshToken, err := h.jwtSvc.GenerateRefreshToken(identity)
	if err != nil {
		return err
	}

	resp.AccessToken = accessToken
	resp.RefreshToken = refreshToken
	return nil
}

func (h *Handler) logAttempt(c echo.Context, identity string) {
	if h.logger == nil {
		return
	}

	ua := useragent.Parse(c.Request().UserAgent())
	h.logger.Info("MFA attempt received",
		zap.String("identity", identity),
		zap.String("remote_ip", c.RealIP()),
		zap.String("browser", ua.Name),
		zap.String("os", ua.OS),
		zap.Bool("mobile", ua.Mobile))
}
