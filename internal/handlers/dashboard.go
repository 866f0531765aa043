package handlers

import (
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Sarathkio/resume-bot/internal/middleware"
	"github.com/Sarathkio/resume-bot/internal/prompt"
	"github.com/Sarathkio/resume-bot/internal/resume"
	"github.com/Sarathkio/resume-bot/internal/score"
	"github.com/Sarathkio/resume-bot/internal/session"
	"github.com/Sarathkio/resume-bot/internal/speech"
	"github.com/gin-gonic/gin"
)

const defaultVoiceTimeout = 5 * time.Second

// UploadResumeHandler takes a resume file, extracts its text and generates
// a fresh set of interview questions for the session.
func (h *Handler) UploadResumeHandler(c *gin.Context) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}

	text, filename, ok := h.extractUpload(c)
	if !ok {
		return
	}

	sess.AppendUpload(session.UploadEntry{
		Filename:  filename,
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
	})

	raw, err := h.AI.GenerateFromPrompt(c.Request.Context(), prompt.InterviewQuestions(text))
	if err != nil {
		log.Printf("WARNING: question generation failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Question generation failed, please try again."})
		return
	}
	questions := prompt.SplitQuestions(prompt.CleanFences(raw))

	sess.Update(func(r *session.Record) {
		r.Questions = questions
		r.VoiceAnswer = ""
	})

	c.JSON(http.StatusOK, gin.H{
		"filename":  filename,
		"questions": questions,
	})
}

// QuestionsHandler returns the questions cached by the last upload.
func (h *Handler) QuestionsHandler(c *gin.Context) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}
	r := sess.Snapshot()
	if len(r.Questions) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No questions yet, upload a resume first."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": r.Questions})
}

// VoiceAnswerHandler transcribes an uploaded audio clip and stores the
// transcript as the session's voice answer. An empty transcript is not an
// error: the user falls back to typing.
func (h *Handler) VoiceAnswerHandler(c *gin.Context) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio file is required"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read audio"})
		return
	}
	defer f.Close()
	data, err := resume.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read audio"})
		return
	}

	timeout := defaultVoiceTimeout
	if v := c.PostForm("timeout"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	mime := fileHeader.Header.Get("Content-Type")
	transcript := speech.CaptureOnce(c.Request.Context(), h.Transcriber, data, mime, timeout)

	sess.Update(func(r *session.Record) { r.VoiceAnswer = transcript })

	if transcript == "" {
		c.JSON(http.StatusOK, gin.H{"transcript": "", "message": "Voice not recognized."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transcript": transcript})
}

// FeedbackHandler asks the model to critique an answer. The voice answer,
// when present, wins over the typed one.
func (h *Handler) FeedbackHandler(c *gin.Context) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}
	var req struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question is required"})
		return
	}

	finalAnswer := sess.Snapshot().VoiceAnswer
	if finalAnswer == "" {
		finalAnswer = req.Answer
	}
	if finalAnswer == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide an answer by text or voice."})
		return
	}

	feedback, err := h.AI.GenerateFromPrompt(c.Request.Context(), prompt.AnswerFeedback(req.Question, finalAnswer))
	if err != nil {
		log.Printf("WARNING: feedback generation failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Feedback generation failed, please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"feedback": feedback, "answer": finalAnswer})
}

// ScoreResumeHandler grades a resume against the keyword rubric and records
// the score in the upload history.
func (h *Handler) ScoreResumeHandler(c *gin.Context) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}

	text, filename, ok := h.extractUpload(c)
	if !ok {
		return
	}

	result := score.Score(text)

	s := result.Score
	sess.AppendUpload(session.UploadEntry{
		Filename:  filename,
		Timestamp: time.Now().Format("2006-01-02 15:04"),
		Score:     &s,
	})

	c.JSON(http.StatusOK, result)
}

// extractUpload reads the multipart "resume" file and returns its text. It
// writes the error response itself, so callers just bail on !ok.
func (h *Handler) extractUpload(c *gin.Context) (text, filename string, ok bool) {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resume file is required"})
		return "", "", false
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read upload"})
		return "", "", false
	}
	defer f.Close()
	data, err := resume.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read upload"})
		return "", "", false
	}

	// Browsers send octet-stream for anything they don't recognize; fall
	// back to the file extension then.
	mime := fileHeader.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = mimeFromExtension(fileHeader.Filename)
	}

	text, err = resume.Extract(mime, data)
	if err != nil {
		if errors.Is(err, resume.ErrNoText) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No readable text found in the file. Scanned or corrupt PDFs cannot be analyzed."})
			return "", "", false
		}
		log.Printf("ERROR: extraction failed for %s: %v", fileHeader.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not process the file"})
		return "", "", false
	}
	return text, fileHeader.Filename, true
}

func mimeFromExtension(filename string) string {
	switch filepath.Ext(filename) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	default:
		return ""
	}
}
