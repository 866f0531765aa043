package handlers

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Sarathkio/resume-bot/internal/mail"
	"github.com/Sarathkio/resume-bot/internal/middleware"
	"github.com/Sarathkio/resume-bot/internal/resume"
	"github.com/Sarathkio/resume-bot/internal/session"
	"github.com/Sarathkio/resume-bot/internal/speech"
	"github.com/Sarathkio/resume-bot/internal/storage"
	"github.com/Sarathkio/resume-bot/internal/store"
	"github.com/gin-gonic/gin"
)

// Generator is the LLM boundary: one prompt in, raw text out.
type Generator interface {
	GenerateFromPrompt(ctx context.Context, prompt string) (string, error)
}

type Handler struct {
	Store       store.Store
	Sessions    *session.Manager
	AI          Generator
	Transcriber speech.Transcriber
	Mailer      mail.Sender
	JWTSecret   string

	// Media is nil when no bucket is configured; profile pictures then go
	// to PicturesDir on local disk.
	Media       *storage.Client
	PicturesDir string
}

func New(s store.Store, sessions *session.Manager, ai Generator, transcriber speech.Transcriber, mailer mail.Sender, jwtSecret string) *Handler {
	return &Handler{
		Store:       s,
		Sessions:    sessions,
		AI:          ai,
		Transcriber: transcriber,
		Mailer:      mailer,
		JWTSecret:   jwtSecret,
		PicturesDir: "./profile_pictures",
	}
}

// UserProfileHandler returns the profile fields of the logged-in user.
func (h *Handler) UserProfileHandler(c *gin.Context) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}
	r := sess.Snapshot()

	c.JSON(http.StatusOK, gin.H{
		"username":      r.Username,
		"email":         r.Email,
		"phone":         r.Phone,
		"account_type":  r.AccountType,
		"profile_image": r.ProfileImage,
	})
}

// UploadsHistoryHandler lists the session's uploads, most recent first.
func (h *Handler) UploadsHistoryHandler(c *gin.Context) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}
	r := sess.Snapshot()

	uploads := make([]session.UploadEntry, 0, len(r.UploadHistory))
	for i := len(r.UploadHistory) - 1; i >= 0; i-- {
		uploads = append(uploads, r.UploadHistory[i])
	}

	c.JSON(http.StatusOK, gin.H{"uploads": uploads})
}

// ClearHistoryHandler empties the upload history.
func (h *Handler) ClearHistoryHandler(c *gin.Context) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}
	sess.ClearHistory()
	c.JSON(http.StatusOK, gin.H{"message": "Upload history cleared."})
}

func (h *Handler) UpdatePasswordHandler(c *gin.Context) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}
	var req struct {
		NewPassword     string `json:"new_password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password cannot be empty."})
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match."})
		return
	}

	email := sess.Snapshot().Email
	if err := h.Store.UpdatePassword(email, req.NewPassword); err != nil {
		log.Printf("ERROR: failed to update password for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed."})
}

func (h *Handler) UpdatePhoneHandler(c *gin.Context) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}
	var req struct {
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number cannot be empty."})
		return
	}

	email := sess.Snapshot().Email
	if err := h.Store.UpdatePhone(email, req.Phone); err != nil {
		log.Printf("ERROR: failed to update phone for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update phone number"})
		return
	}
	sess.Update(func(r *session.Record) { r.Phone = req.Phone })

	c.JSON(http.StatusOK, gin.H{"message": "Phone number updated."})
}

// ProfilePictureHandler stores a new profile image on the configured bucket
// or, without one, under PicturesDir.
func (h *Handler) ProfilePictureHandler(c *gin.Context) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Picture file is required"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read picture"})
		return
	}
	defer f.Close()
	data, err := resume.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read picture"})
		return
	}

	email := sess.Snapshot().Email
	var ref string
	if h.Media != nil {
		key := storage.ProfilePictureKey(email)
		ref, err = h.Media.Put(c.Request.Context(), key, data, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			log.Printf("ERROR: failed to upload profile picture for %s: %v", email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save profile picture"})
			return
		}
	} else {
		if err := os.MkdirAll(h.PicturesDir, 0o755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save profile picture"})
			return
		}
		ref = filepath.Join(h.PicturesDir, email+".jpg")
		if err := os.WriteFile(ref, data, 0o644); err != nil {
			log.Printf("ERROR: failed to write profile picture for %s: %v", email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save profile picture"})
			return
		}
	}

	if err := h.Store.UpdateProfilePicture(email, ref); err != nil {
		log.Printf("ERROR: failed to record profile picture for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save profile picture"})
		return
	}
	sess.Update(func(r *session.Record) { r.ProfileImage = ref })

	c.JSON(http.StatusOK, gin.H{"message": "Profile picture uploaded and saved!", "profile_image": ref})
}
