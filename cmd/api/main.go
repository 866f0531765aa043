package main

import (
	"context"
	"log"
	"strings"

	"github.com/Sarathkio/resume-bot/internal/ai"
	"github.com/Sarathkio/resume-bot/internal/database"
	"github.com/Sarathkio/resume-bot/internal/handlers"
	"github.com/Sarathkio/resume-bot/internal/mail"
	"github.com/Sarathkio/resume-bot/internal/middleware"
	"github.com/Sarathkio/resume-bot/internal/session"
	"github.com/Sarathkio/resume-bot/internal/storage"
	"github.com/Sarathkio/resume-bot/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func main() {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Could not find config.yaml, using environment variables only.")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	jwtSecret := viper.GetString("jwt.secret_key")
	if jwtSecret == "" {
		log.Fatal("JWT secret key not found in config")
	}
	geminiAPIKey := viper.GetString("gemini.api_key")
	if geminiAPIKey == "" {
		log.Fatal("Gemini API key not found in config")
	}
	aiService, err := ai.NewService(geminiAPIKey)
	if err != nil {
		log.Fatalf("Could not initialize AI service: %v", err)
	}

	var mailer mail.Sender
	if host := viper.GetString("smtp.host"); host != "" {
		mailer = &mail.SMTPSender{
			Host:     host,
			Port:     viper.GetString("smtp.port"),
			From:     viper.GetString("smtp.sender"),
			Password: viper.GetString("smtp.password"),
		}
	} else {
		log.Println("SMTP not configured, OTP delivery will be simulated.")
		mailer = mail.SimulatedSender{}
	}

	h := handlers.New(store.New(db), session.NewManager(), aiService, aiService, mailer, jwtSecret)

	storageCfg := storage.Config{
		AccountID: viper.GetString("storage.account_id"),
		Bucket:    viper.GetString("storage.bucket"),
		AccessKey: viper.GetString("storage.access_key"),
		SecretKey: viper.GetString("storage.secret_key"),
	}
	if storageCfg.Complete() {
		media, err := storage.New(context.Background(), storageCfg)
		if err != nil {
			log.Fatalf("Could not initialize object storage: %v", err)
		}
		h.Media = media
	} else {
		log.Println("Object storage not configured, profile pictures stored on local disk.")
	}

	router := gin.Default()
	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/register", h.RegisterHandler)
		v1.POST("/auth/verify", h.VerifyHandler)
		v1.POST("/auth/login", h.LoginHandler)
		v1.POST("/auth/google", h.GoogleAuthHandler)

		authorized := v1.Group("/")
		authorized.Use(middleware.JWTMiddleware(jwtSecret, h.Sessions))
		{
			authorized.POST("/auth/logout", h.LogoutHandler)
			authorized.POST("/resumes/upload", h.UploadResumeHandler)
			authorized.POST("/resumes/score", h.ScoreResumeHandler)
			authorized.GET("/questions", h.QuestionsHandler)
			authorized.POST("/answers/voice", h.VoiceAnswerHandler)
			authorized.POST("/answers/feedback", h.FeedbackHandler)
			authorized.GET("/uploads", h.UploadsHistoryHandler)
			authorized.DELETE("/uploads", h.ClearHistoryHandler)
			authorized.GET("/users/me", h.UserProfileHandler)
			authorized.PUT("/users/password", h.UpdatePasswordHandler)
			authorized.PUT("/users/phone", h.UpdatePhoneHandler)
			authorized.POST("/users/picture", h.ProfilePictureHandler)
		}
	}

	log.Println("Starting server on port 8080...")
	if err := router.Run(":8080"); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
