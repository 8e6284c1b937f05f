package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/krishilink/krishi-api/internal/services"
)

// AnalyzeCropImage forwards an uploaded crop photo to the hosted
// disease model and reshapes the prediction into a diagnosis with
// recommendations.
func (h *Handler) AnalyzeCropImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
		return
	}

	tempPath := filepath.Join(h.UploadsDir, uuid.New().String()+"_"+filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		log.Printf("Prediction error: failed to save upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prediction failed"})
		return
	}

	imageBytes, err := os.ReadFile(tempPath)
	if err != nil {
		log.Printf("Prediction error: failed to read upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prediction failed"})
		return
	}

	prediction, err := h.Inference.Predict(c.Request.Context(), file.Filename, imageBytes)
	if err != nil {
		log.Printf("Prediction error: %v", err)
		if errors.Is(err, services.ErrInvalidModelResponse) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid response format from model"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prediction failed"})
		return
	}

	// TODO: also remove the temp file on the failure paths above.
	os.Remove(tempPath)

	c.JSON(http.StatusOK, gin.H{
		"disease":         prediction.Label,
		"confidence":      prediction.ConfidencePercent(),
		"recommendations": services.RecommendationsFor(prediction.Label),
	})
}
