package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hiteshgarg/medium-blog/internal/auth"
	"github.com/hiteshgarg/medium-blog/internal/config"
	"github.com/hiteshgarg/medium-blog/internal/domain/user"
	"github.com/hiteshgarg/medium-blog/internal/security"
)

type UserStore interface {
	Create(ctx context.Context, email, passwordHash, name string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UsersHandler struct {
	users UserStore
	jwt   *auth.Manager
}

func NewUsersHandler(users UserStore, jwtManager *auth.Manager) *UsersHandler {
	return &UsersHandler{
		users: users,
		jwt:   jwtManager,
	}
}

func (h *UsersHandler) Signup(ctx *gin.Context) {
	var req user.SignupRequest

	if !BindJSON(ctx, &req) {
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondAuthError(ctx, "error while signing up")
		return
	}

	name := req.Name

	if name == "" {
		name = user.DefaultName
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	u, err := h.users.Create(cctx, req.Email, hash, name)

	if err != nil {
		// duplicate email and any other store failure share one body
		RespondAuthError(ctx, "error while signing up")
		return
	}

	token, err := h.jwt.Issue(u.ID)

	if err != nil {
		RespondInternal(ctx, "Could not generate token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"jwt":  token,
		"name": u.Name,
	})
}

func (h *UsersHandler) Signin(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}

	// structural presence check runs before schema validation
	var probe struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	_ = json.Unmarshal(body, &probe)

	if probe.Email == "" || probe.Password == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}

	var req user.SigninRequest

	if !BindBytes(ctx, body, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)
	if err != nil {
		RespondAuthError(ctx, "user not found")
		return
	}

	if !security.VerifyPassword(foundUser.PasswordHash, req.Password) {
		RespondAuthError(ctx, "invalid password")
		return
	}

	token, err := h.jwt.Issue(foundUser.ID)

	if err != nil {
		RespondInternal(ctx, "Could not generate token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"jwt":  token,
		"name": foundUser.Name,
	})
}
