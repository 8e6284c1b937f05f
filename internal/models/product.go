package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is a produce listing on the marketplace.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	VegName     string             `bson:"vegName" json:"vegName"`
	Category    string             `bson:"category" json:"category"`
	Quantity    float64            `bson:"quantity" json:"quantity"`
	Rate        float64            `bson:"rate" json:"rate"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}
