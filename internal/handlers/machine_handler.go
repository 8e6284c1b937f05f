package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/krishilink/krishi-api/internal/models"
	"github.com/krishilink/krishi-api/internal/utils"
)

type CreateMachineRequest struct {
	ToolName           string  `json:"toolName"`
	Category           string  `json:"category"`
	RentalPrice        float64 `json:"rentalPrice"`
	AvailabilityStatus string  `json:"availabilityStatus"`
	Description        string  `json:"description"`
	OwnerID            string  `json:"ownerid"`
	ImageBase64        string  `json:"imageBase64"`
}

// CreateMachine persists a new equipment listing with its image bytes
// embedded. The response carries the record without the binary payload.
func (h *Handler) CreateMachine(c *gin.Context) {
	var req CreateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if req.ToolName == "" || req.Category == "" || req.RentalPrice == 0 ||
		req.AvailabilityStatus == "" || req.Description == "" || req.OwnerID == "" || req.ImageBase64 == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "All fields including image are required",
		})
		return
	}

	if !models.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid category. Must be one of: Tractor, Tiller, Harvester",
		})
		return
	}

	imageData, contentType, err := utils.DecodeImageDataURI(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(req.OwnerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid owner ID"})
		return
	}

	machine := models.Machine{
		ID:                 primitive.NewObjectID(),
		ToolName:           req.ToolName,
		Category:           req.Category,
		RentalPrice:        req.RentalPrice,
		AvailabilityStatus: req.AvailabilityStatus,
		Description:        req.Description,
		Image: &models.MachineImage{
			Data:        imageData,
			ContentType: contentType,
		},
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	}

	if _, err := h.DB.Collection("machines").InsertOne(context.TODO(), machine); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	var owner models.User
	if err := h.DB.Collection("users").FindOne(context.TODO(), bson.M{"_id": ownerID}).Decode(&owner); err == nil {
		h.NotificationSvc.SendListingConfirmation(&owner, &machine)
	}

	// Don't send the image back in the response
	machine.Image = nil
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": machine})
}

// GetMachines lists all equipment without the binary image data and
// with the owner's name and email populated.
func (h *Handler) GetMachines(c *gin.Context) {
	findOptions := options.Find().SetProjection(bson.M{"image.data": 0})

	cursor, err := h.DB.Collection("machines").Find(context.TODO(), bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	defer cursor.Close(context.TODO())

	var machines []models.Machine
	if err = cursor.All(context.TODO(), &machines); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	if machines == nil {
		machines = make([]models.Machine, 0)
	}

	if err := h.populateOwners(machines); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(machines),
		"data":    machines,
	})
}

// populateOwners resolves owner references to their name and email in a
// single lookup.
func (h *Handler) populateOwners(machines []models.Machine) error {
	if len(machines) == 0 {
		return nil
	}

	seen := make(map[primitive.ObjectID]bool)
	ids := make([]primitive.ObjectID, 0, len(machines))
	for _, m := range machines {
		if !seen[m.OwnerID] {
			seen[m.OwnerID] = true
			ids = append(ids, m.OwnerID)
		}
	}

	findOptions := options.Find().SetProjection(bson.M{"name": 1, "email": 1})
	cursor, err := h.DB.Collection("users").Find(context.TODO(), bson.M{"_id": bson.M{"$in": ids}}, findOptions)
	if err != nil {
		return err
	}
	defer cursor.Close(context.TODO())

	var owners []models.User
	if err := cursor.All(context.TODO(), &owners); err != nil {
		return err
	}

	byID := make(map[primitive.ObjectID]*models.MachineOwner, len(owners))
	for _, o := range owners {
		byID[o.ID] = &models.MachineOwner{Name: o.Name, Email: o.Email}
	}
	for i := range machines {
		machines[i].Owner = byID[machines[i].OwnerID]
	}
	return nil
}

// GetMachineImage streams the stored image bytes with their recorded
// content type.
func (h *Handler) GetMachineImage(c *gin.Context) {
	machineID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Image not found"})
		return
	}

	findOptions := options.FindOne().SetProjection(bson.M{"image": 1})

	var machine models.Machine
	err = h.DB.Collection("machines").FindOne(context.TODO(), bson.M{"_id": machineID}, findOptions).Decode(&machine)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	if machine.Image == nil || len(machine.Image.Data) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Image not found"})
		return
	}

	c.Data(http.StatusOK, machine.Image.ContentType, machine.Image.Data)
}
