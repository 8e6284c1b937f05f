package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUser_PasswordNeverSerialized(t *testing.T) {
	user := User{
		ID:       primitive.NewObjectID(),
		Name:     "Ram Thapa",
		Email:    "ram@test.com",
		Password: "$2a$10$somethinghashed",
		Phone:    "+9779800000000",
		Role:     RoleUser,
		IsActive: true,
	}

	data, err := json.Marshal(user)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "password")
	assert.NotContains(t, string(data), "somethinghashed")
}

func TestUser_FarmerProfileOmittedForUsers(t *testing.T) {
	user := User{ID: primitive.NewObjectID(), Name: "Ram Thapa", Role: RoleUser}

	data, err := json.Marshal(user)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "farmerProfile")
}

func TestUser_FarmerProfileShape(t *testing.T) {
	user := User{
		ID:            primitive.NewObjectID(),
		Name:          "Ram Thapa",
		Role:          RoleFarmer,
		FarmerProfile: DefaultFarmerProfile(),
	}

	data, err := json.Marshal(user)
	assert.NoError(t, err)

	var decoded map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "farmerProfile")

	var profile FarmerProfile
	assert.NoError(t, json.Unmarshal(decoded["farmerProfile"], &profile))
	assert.False(t, profile.IsVerified)
	assert.Empty(t, profile.FarmName)
	assert.NotNil(t, profile.CropTypes)
}

func TestMachine_ImageBytesNeverSerialized(t *testing.T) {
	machine := Machine{
		ID:       primitive.NewObjectID(),
		ToolName: "Mini Tiller",
		Category: "Tiller",
		Image: &MachineImage{
			Data:        []byte("raw image bytes"),
			ContentType: "image/jpeg",
		},
	}

	data, err := json.Marshal(machine)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "raw image bytes")
	assert.Contains(t, string(data), "image/jpeg")
}

func TestValidCategory(t *testing.T) {
	for _, c := range MachineCategories {
		assert.True(t, ValidCategory(c))
	}
	assert.False(t, ValidCategory("Drone"))
	assert.False(t, ValidCategory("tractor")) // case-sensitive closed enum
}
