package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestCreateMachine_ResponseOmitsImage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("created listing is returned without its image", func(mt *mtest.T) {
		h := NewHandler(mt.DB, nil, nil, "")
		r := gin.New()
		r.POST("/api/machines", h.CreateMachine)

		// Insert succeeds; the owner lookup for the notification finds nothing.
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, mt.DB.Name()+".users", mtest.FirstBatch),
		)

		rawImage := []byte("raw image bytes")
		imageURI := "data:image/png;base64," + base64.StdEncoding.EncodeToString(rawImage)
		body := fmt.Sprintf(
			`{"toolName":"Mini Tiller","category":"Tiller","rentalPrice":1200,"availabilityStatus":"Available","description":"Compact tiller for small plots","ownerid":%q,"imageBase64":%q}`,
			primitive.NewObjectID().Hex(), imageURI,
		)

		req := httptest.NewRequest(http.MethodPost, "/api/machines", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(mt.T, http.StatusCreated, w.Code)

		var resp struct {
			Success bool                       `json:"success"`
			Data    map[string]json.RawMessage `json:"data"`
		}
		assert.NoError(mt.T, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(mt.T, resp.Success)
		assert.Equal(mt.T, "Mini Tiller", strings.Trim(string(resp.Data["toolName"]), `"`))
		assert.NotContains(mt.T, resp.Data, "image")
		assert.NotContains(mt.T, w.Body.String(), base64.StdEncoding.EncodeToString(rawImage))
	})
}
