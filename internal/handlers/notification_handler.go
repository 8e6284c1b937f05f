package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/krishilink/krishi-api/internal/models"
)

// GetNotifications returns the authenticated user's notifications,
// newest first.
func (h *Handler) GetNotifications(c *gin.Context) {
	userIDHex, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	userID, err := primitive.ObjectIDFromHex(userIDHex.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID format"})
		return
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := h.DB.Collection("notifications").Find(context.TODO(), bson.M{"userId": userID}, findOptions)
	if err != nil {
		serverError(c, "Failed to retrieve notifications", err)
		return
	}
	defer cursor.Close(context.TODO())

	var notifications []models.Notification
	if err = cursor.All(context.TODO(), &notifications); err != nil {
		serverError(c, "Failed to retrieve notifications", err)
		return
	}
	if notifications == nil {
		notifications = make([]models.Notification, 0)
	}

	c.JSON(http.StatusOK, notifications)
}
