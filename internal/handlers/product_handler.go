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

type ProductRequest struct {
	VegName     string  `json:"vegName" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required"`
	Rate        float64 `json:"rate" binding:"required"`
	ImageURL    string  `json:"imageUrl"`
	Description string  `json:"description"`
}

// CreateProduct adds a produce listing to the marketplace.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	product := models.Product{
		ID:          primitive.NewObjectID(),
		VegName:     req.VegName,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Rate:        req.Rate,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	}

	if _, err := h.DB.Collection("products").InsertOne(context.TODO(), product); err != nil {
		serverError(c, "Failed to create product", err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetProducts lists every produce listing.
func (h *Handler) GetProducts(c *gin.Context) {
	cursor, err := h.DB.Collection("products").Find(context.TODO(), bson.M{})
	if err != nil {
		serverError(c, "Failed to retrieve products", err)
		return
	}
	defer cursor.Close(context.TODO())

	var products []models.Product
	if err = cursor.All(context.TODO(), &products); err != nil {
		serverError(c, "Failed to retrieve products", err)
		return
	}
	if products == nil {
		products = make([]models.Product, 0)
	}

	c.JSON(http.StatusOK, products)
}

// UpdateProduct replaces a listing's fields and returns the updated record.
func (h *Handler) UpdateProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	update := bson.M{"$set": bson.M{
		"vegName":     req.VegName,
		"category":    req.Category,
		"quantity":    req.Quantity,
		"rate":        req.Rate,
		"imageUrl":    req.ImageURL,
		"description": req.Description,
	}}

	findOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	err = h.DB.Collection("products").FindOneAndUpdate(context.TODO(), bson.M{"_id": productID}, update, findOptions).Decode(&product)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a listing.
func (h *Handler) DeleteProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
		return
	}

	result, err := h.DB.Collection("products").DeleteOne(context.TODO(), bson.M{"_id": productID})
	if err != nil {
		serverError(c, "Failed to delete product", err)
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
