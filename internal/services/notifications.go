package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/krishilink/krishi-api/internal/models"
)

// NotificationService persists in-app notifications and sends SMS
// through the Textbelt API.
type NotificationService struct {
	DB *mongo.Database
}

func NewNotificationService(db *mongo.Database) *NotificationService {
	return &NotificationService{DB: db}
}

// Record stores an in-app notification for a user. Failures are logged
// and never surfaced; notifications are best-effort.
func (s *NotificationService) Record(ctx context.Context, userID primitive.ObjectID, message string) {
	notification := models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Message:   message,
		IsRead:    false,
		CreatedAt: time.Now(),
	}
	if _, err := s.DB.Collection("notifications").InsertOne(ctx, notification); err != nil {
		log.Printf("Failed to store notification for user %s: %v", userID.Hex(), err)
	}
}

// SendWelcome records a welcome notification and texts the new user.
func (s *NotificationService) SendWelcome(user *models.User) {
	message := fmt.Sprintf("Welcome to KrishiLink, %s! Your %s account is ready.", user.Name, user.Role)
	s.Record(context.Background(), user.ID, message)

	if user.Phone == "" {
		log.Println("SMS not sent: user has no phone number.")
		return
	}
	// Send in a goroutine so it doesn't block the API response
	go sendSmsWithTextbelt(user.Phone, message)
}

// SendListingConfirmation notifies an owner that their machine listing
// went live.
func (s *NotificationService) SendListingConfirmation(owner *models.User, machine *models.Machine) {
	message := fmt.Sprintf("Your listing %q (%s) is now live on KrishiLink.", machine.ToolName, machine.Category)
	s.Record(context.Background(), owner.ID, message)

	if owner.Phone == "" {
		log.Println("SMS not sent: owner has no phone number.")
		return
	}
	go sendSmsWithTextbelt(owner.Phone, message)
}

// --- Private Helper Function for Textbelt ---
func sendSmsWithTextbelt(phone, message string) {
	// Textbelt free key allows 1 SMS per day. Get a paid key for more.
	textbeltKey := os.Getenv("TEXTBELT_API_KEY")

	postBody, _ := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     textbeltKey,
	})

	resp, err := http.Post("https://textbelt.com/text", "application/json", bytes.NewBuffer(postBody))
	if err != nil {
		log.Printf("Failed to send Textbelt request for number %s: %v", phone, err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)

	success, _ := result["success"].(bool)
	if !success {
		errorMsg, _ := result["error"].(string)
		log.Printf("Failed to send SMS via Textbelt to %s. Reason: %s", phone, errorMsg)
	} else {
		log.Printf("Successfully sent SMS via Textbelt to %s", phone)
	}
}
