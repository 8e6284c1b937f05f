package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/krishilink/krishi-api/internal/utils"
)

func loginRequest(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_FailureResponsesAreUniform(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown email and wrong password are indistinguishable", func(mt *mtest.T) {
		h := NewHandler(mt.DB, nil, nil, "")
		r := gin.New()
		r.POST("/api/auth/login", h.Login)

		usersNS := mt.DB.Name() + ".users"

		// Unknown email: the user lookup returns no documents.
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))
		unknown := loginRequest(r, `{"email":"ghost@test.com","password":"Whatever1"}`)

		// Wrong password: the lookup finds the user but the hash mismatches.
		hash, err := utils.HashPassword("Correct1")
		assert.NoError(mt.T, err)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "name", Value: "Ram Thapa"},
			{Key: "email", Value: "ram@test.com"},
			{Key: "password", Value: hash},
			{Key: "phone", Value: "+9779800000000"},
			{Key: "role", Value: "user"},
			{Key: "isActive", Value: true},
		}))
		wrongPassword := loginRequest(r, `{"email":"ram@test.com","password":"Wrong1pass"}`)

		assert.Equal(mt.T, http.StatusBadRequest, unknown.Code)
		assert.Equal(mt.T, http.StatusBadRequest, wrongPassword.Code)
		assert.JSONEq(mt.T, `{"message":"Invalid credentials"}`, unknown.Body.String())
		assert.Equal(mt.T, unknown.Body.String(), wrongPassword.Body.String())
	})
}

func TestDuplicateKeyMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{errors.New("E11000 duplicate key error collection: krishi.users index: email_1 dup key"), "Email already exists"},
		{errors.New("E11000 duplicate key error collection: krishi.users index: phone_1 dup key"), "Phone number already exists"},
		{errors.New("E11000 duplicate key error collection: krishi.users index: other_1 dup key"), "Duplicate field value"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, duplicateKeyMessage(tc.err))
	}
}
