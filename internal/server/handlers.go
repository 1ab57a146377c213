package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "authstore/internal/errors"
	"authstore/internal/logging"
	"authstore/internal/password"
	"authstore/internal/validation"
)

const sessionTokenLen = 64

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	ID    uuid.UUID `json:"id"`
	Token string    `json:"token"`
}

type userResponse struct {
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"is_admin"`
}

func (s *Server) handleSignup(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.FormValidation("malformed request body")
	}

	if err := validation.ValidateCredentials(req.Email, req.Password); err != nil {
		return err
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	id := uuid.New()
	if err := s.users.Create(ctx, id, req.Email, hash, false); err != nil {
		return err
	}

	token, err := s.startSession(c, id)
	if err != nil {
		return err
	}

	logging.WithUser(id.String()).Info("user signed up")
	return c.JSON(http.StatusCreated, sessionResponse{ID: id, Token: token})
}

func (s *Server) handleLogin(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.FormValidation("malformed request body")
	}

	ctx := c.Request().Context()
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return apperrors.NotFound(apperrors.MsgEmailNotRegistered(req.Email))
		}
		return err
	}

	ok, err := password.Verify(req.Password, user.Password)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Unauthorized(apperrors.MsgBadCredentials)
	}

	token, err := s.startSession(c, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{ID: user.ID, Token: token})
}

func (s *Server) handleLogout(c echo.Context) error {
	userID := c.Get("userID").(uuid.UUID)
	if err := s.sessions.Remove(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleMe(c echo.Context) error {
	userID := c.Get("userID").(uuid.UUID)
	user, err := s.users.GetByID(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{ID: user.ID, Email: user.Email, IsAdmin: user.IsAdmin})
}

func (s *Server) handleDeleteAccount(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Get("userID").(uuid.UUID)

	if err := s.users.DeleteByID(ctx, userID); err != nil {
		return err
	}
	if err := s.sessions.Remove(ctx, userID); err != nil {
		return err
	}

	logging.WithUser(userID.String()).Info("account deleted")
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) startSession(c echo.Context, id uuid.UUID) (string, error) {
	token, err := password.RandToken(sessionTokenLen)
	if err != nil {
		return "", err
	}
	if err := s.sessions.Insert(c.Request().Context(), id, token); err != nil {
		return "", err
	}
	return token, nil
}

// requireSession authenticates requests carrying "Authorization: Bearer
// <user-id>.<token>" against the session store.
func (s *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, token, ok := parseBearer(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return apperrors.Unauthenticated()
		}

		stored, found, err := s.sessions.Get(c.Request().Context(), id)
		if err != nil {
			return err
		}
		if !found || subtle.ConstantTimeCompare([]byte(stored), []byte(token)) != 1 {
			return apperrors.Unauthenticated()
		}

		c.Set("userID", id)
		return next(c)
	}
}

func parseBearer(header string) (uuid.UUID, string, bool) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return uuid.Nil, "", false
	}

	idPart, token, ok := strings.Cut(raw, ".")
	if !ok || token == "" {
		return uuid.Nil, "", false
	}

	id, err := uuid.Parse(idPart)
	if err != nil {
		return uuid.Nil, "", false
	}
	return id, token, true
}

func (s *Server) handleLiveness(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// handleReadiness probes the session backend. The probe id never exists; any
// non-error reply means the backend answered.
func (s *Server) handleReadiness(c echo.Context) error {
	if _, _, err := s.sessions.Get(c.Request().Context(), uuid.Nil); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "session backend unavailable")
	}
	return c.NoContent(http.StatusNoContent)
}
