package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/krishilink/krishi-api/internal/models"
	"github.com/krishilink/krishi-api/internal/utils"
)

type RegisterUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// RegisterUser validates a registration payload, creates the user and
// returns a signed token with the redacted record.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	in, err := utils.ValidateRegistration(req.Name, req.Email, req.Password, req.Phone, req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	users := h.DB.Collection("users")

	// Email and phone uniqueness are reported separately so the client
	// can point at the offending field.
	err = users.FindOne(context.TODO(), bson.M{"email": in.Email}).Err()
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists with this email"})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		serverError(c, "Server error during registration", err)
		return
	}

	err = users.FindOne(context.TODO(), bson.M{"phone": in.Phone}).Err()
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists with this phone number"})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		serverError(c, "Server error during registration", err)
		return
	}

	hashedPassword, err := utils.HashPassword(in.Password)
	if err != nil {
		serverError(c, "Server error during registration", err)
		return
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      in.Name,
		Email:     in.Email,
		Password:  hashedPassword,
		Phone:     in.Phone,
		Role:      in.Role,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if in.Role == models.RoleFarmer {
		user.FarmerProfile = models.DefaultFarmerProfile()
	}

	if _, err := users.InsertOne(context.TODO(), user); err != nil {
		// The unique indexes race ahead of the explicit checks above.
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": duplicateKeyMessage(err)})
			return
		}
		serverError(c, "Server error during registration", err)
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		serverError(c, "Server error during registration", err)
		return
	}

	h.NotificationSvc.SendWelcome(&user)

	message := strings.ToUpper(in.Role[:1]) + in.Role[1:] + " registered successfully"
	c.JSON(http.StatusCreated, gin.H{
		"message": message,
		"token":   token,
		"user":    user,
	})
}

// duplicateKeyMessage maps a Mongo duplicate-key error to the field it
// tripped on.
func duplicateKeyMessage(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "email"):
		return "Email already exists"
	case strings.Contains(msg, "phone"):
		return "Phone number already exists"
	default:
		return "Duplicate field value"
	}
}

// Login authenticates by email and password. A missing user and a wrong
// password produce the same response on purpose.
func (h *Handler) Login(c *gin.Context) {
	var loginReq struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	var user models.User
	err := h.DB.Collection("users").FindOne(context.TODO(), bson.M{"email": loginReq.Email}).Decode(&user)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			log.Printf("Login: user lookup failed: %v", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	if !utils.CheckPasswordHash(loginReq.Password, user.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		serverError(c, "Server error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// GetProfile returns the authenticated user's record.
func (h *Handler) GetProfile(c *gin.Context) {
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

	var user models.User
	err = h.DB.Collection("users").FindOne(context.TODO(), bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}
