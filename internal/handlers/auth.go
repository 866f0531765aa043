package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Sarathkio/resume-bot/internal/middleware"
	"github.com/Sarathkio/resume-bot/internal/models"
	"github.com/Sarathkio/resume-bot/internal/session"
	"github.com/Sarathkio/resume-bot/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"google.golang.org/api/idtoken"
)

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// RegisterHandler starts a registration. The account is not written yet;
// it waits on the verification code delivered to the given email.
func (h *Handler) RegisterHandler(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match."})
		return
	}
	for _, field := range []string{req.Username, req.Email, req.Phone, req.Password} {
		if strings.TrimSpace(field) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required."})
			return
		}
	}

	exists, err := h.Store.EmailExists(req.Email)
	if err != nil {
		log.Printf("ERROR: email existence check failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not process registration"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered."})
		return
	}

	code := session.NewOTPCode()
	pending := session.NewPendingSignup(req.Username, req.Email, req.Phone,
		store.HashPassword(req.Password), code, time.Now())

	sess := h.Sessions.Create()
	sess.SetPending(pending)

	if err := h.Mailer.SendOTP(req.Email, code); err != nil {
		log.Printf("ERROR: failed to deliver OTP to %s: %v", req.Email, err)
		h.Sessions.Delete(sess.ID)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not deliver verification code, please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "OTP sent to your email.",
		"signup_token": sess.ID,
	})
}

// VerifyHandler completes a registration: a matching code inserts the
// account row. A mismatch burns one of the three attempts; an expired or
// exhausted code discards the pending signup entirely.
func (h *Handler) VerifyHandler(c *gin.Context) {
	var req struct {
		SignupToken string `json:"signup_token"`
		Code        string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sess, ok := h.Sessions.Get(req.SignupToken)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No registration pending, please register again."})
		return
	}

	pending, err := sess.VerifyPending(req.Code, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, session.ErrOTPMismatch):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect verification code."})
		case errors.Is(err, session.ErrOTPExpired), errors.Is(err, session.ErrOTPExhausted):
			h.Sessions.Delete(sess.ID)
			c.JSON(http.StatusGone, gin.H{"error": "Verification code no longer valid, please register again."})
		default:
			c.JSON(http.StatusNotFound, gin.H{"error": "No registration pending, please register again."})
		}
		return
	}

	account := &models.Account{
		Username:     pending.Username,
		Email:        pending.Email,
		Phone:        pending.Phone,
		PasswordHash: pending.PasswordHash,
	}
	if err := h.Store.CreateAccount(account); err != nil {
		h.Sessions.Delete(sess.ID)
		if errors.Is(err, store.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered."})
			return
		}
		log.Printf("ERROR: failed to create account for %s: %v", pending.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create account"})
		return
	}
	h.Sessions.Delete(sess.ID)

	c.JSON(http.StatusOK, gin.H{"message": "Registered! Please login."})
}

// LoginHandler authenticates by email and password and opens a session.
func (h *Handler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	account, err := h.Store.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
			return
		}
		log.Printf("ERROR: authentication failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not process login"})
		return
	}

	h.openSession(c, account)
}

// GoogleAuthHandler signs a user in with a Google ID token, creating the
// account on first sight.
func (h *Handler) GoogleAuthHandler(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: token is required"})
		return
	}

	payload, err := idtoken.Validate(c.Request.Context(), req.Token, "")
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google ID Token"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google ID Token"})
		return
	}

	account, err := h.Store.FindByEmail(email)
	if errors.Is(err, store.ErrNotFound) {
		account = &models.Account{
			Username: name,
			Email:    email,
			// No usable password for Google accounts; a random one keeps
			// the password login path closed.
			PasswordHash:   store.HashPassword(uuid.NewString()),
			ProfilePicture: picture,
		}
		if err := h.Store.CreateAccount(account); err != nil && !errors.Is(err, store.ErrDuplicateEmail) {
			log.Printf("ERROR: failed to create account for %s: %v", email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not process user"})
			return
		}
	} else if err != nil {
		log.Printf("ERROR: account lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not process user"})
		return
	}

	h.openSession(c, account)
}

// LogoutHandler drops the session; every field in it is gone afterwards.
func (h *Handler) LogoutHandler(c *gin.Context) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}
	h.Sessions.Delete(sess.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}

func (h *Handler) openSession(c *gin.Context, account *models.Account) {
	sess := h.Sessions.Create()
	sess.Update(func(r *session.Record) {
		r.LoggedIn = true
		r.Username = account.Username
		r.Email = account.Email
		r.Phone = account.Phone
		if account.ProfilePicture != "" {
			r.ProfileImage = account.ProfilePicture
		}
	})

	token, err := middleware.NewToken(h.JWTSecret, sess.ID, account.Email, account.ID)
	if err != nil {
		log.Printf("ERROR: failed to sign session token: %v", err)
		h.Sessions.Delete(sess.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful!",
		"token":   token,
		"user": gin.H{
			"username":      account.Username,
			"email":         account.Email,
			"phone":         account.Phone,
			"profile_image": account.ProfilePicture,
		},
	})
}
