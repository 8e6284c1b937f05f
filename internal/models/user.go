package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser   = "user"
	RoleFarmer = "farmer"
)

// FarmerProfile is embedded on a User only when the role is "farmer".
type FarmerProfile struct {
	FarmName     string   `bson:"farmName" json:"farmName"`
	FarmLocation string   `bson:"farmLocation" json:"farmLocation"`
	CropTypes    []string `bson:"cropTypes" json:"cropTypes"`
	FarmSize     string   `bson:"farmSize" json:"farmSize"`
	Experience   string   `bson:"experience" json:"experience"`
	IsVerified   bool     `bson:"isVerified" json:"isVerified"`
}

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"password" json:"-"` // Hide from JSON responses
	Phone         string             `bson:"phone" json:"phone"`
	Role          string             `bson:"role" json:"role"` // "user" or "farmer"
	IsActive      bool               `bson:"isActive" json:"isActive"`
	FarmerProfile *FarmerProfile     `bson:"farmerProfile,omitempty" json:"farmerProfile,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// DefaultFarmerProfile is the empty profile attached at registration time.
func DefaultFarmerProfile() *FarmerProfile {
	return &FarmerProfile{
		CropTypes:  []string{},
		IsVerified: false,
	}
}
