package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/krishilink/krishi-api/internal/services"
)

// Handler bundles the database and services the route handlers need.
type Handler struct {
	DB              *mongo.Database
	NotificationSvc *services.NotificationService
	Inference       *services.InferenceClient
	UploadsDir      string
}

func NewHandler(db *mongo.Database, notificationSvc *services.NotificationService, inference *services.InferenceClient, uploadsDir string) *Handler {
	return &Handler{
		DB:              db,
		NotificationSvc: notificationSvc,
		Inference:       inference,
		UploadsDir:      uploadsDir,
	}
}

// serverError hides failure detail unless the app runs in development.
func serverError(c *gin.Context, message string, err error) {
	detail := "Internal server error"
	if os.Getenv("APP_ENV") == "development" && err != nil {
		detail = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": message, "error": detail})
}
