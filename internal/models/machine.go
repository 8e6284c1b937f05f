package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MachineCategories is the closed set of rentable equipment types.
var MachineCategories = []string{"Tractor", "Tiller", "Harvester"}

// MachineImage holds the raw uploaded bytes alongside their MIME type.
// The Data field is never serialized in list responses; clients fetch
// it through the dedicated image endpoint instead.
type MachineImage struct {
	Data        []byte `bson:"data" json:"-"`
	ContentType string `bson:"contentType" json:"contentType"`
}

type Machine struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ToolName           string             `bson:"toolName" json:"toolName"`
	Category           string             `bson:"category" json:"category"`
	RentalPrice        float64            `bson:"rentalPrice" json:"rentalPrice"`
	AvailabilityStatus string             `bson:"availabilityStatus" json:"availabilityStatus"`
	Description        string             `bson:"description" json:"description"`
	Image              *MachineImage      `bson:"image,omitempty" json:"image,omitempty"`
	OwnerID            primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Owner              *MachineOwner      `bson:"-" json:"owner,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}

// MachineOwner is the populated owner reference returned in listings.
type MachineOwner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ValidCategory reports whether c is one of the allowed machine categories.
func ValidCategory(c string) bool {
	for _, v := range MachineCategories {
		if v == c {
			return true
		}
	}
	return false
}
