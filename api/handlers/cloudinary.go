package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	cloudinary "github.com/cloudinary/cloudinary-go/v2/api"

	"github.com/barangayph/barangay-records-api/config"
)

// CloudinaryHandler exported for testing purposes
type CloudinaryHandler struct{}

// GenerateSignature signs an upload request for hearing remark attachments.
// The client uploads directly to Cloudinary with the returned signature, so
// the API secret never leaves the server.
func (c CloudinaryHandler) GenerateSignature(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Folder string `json:"folder"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if body.Folder == "" {
		body.Folder = "hearing-remarks"
	}

	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	if apiSecret == "" {
		config.ErrorStatus("cloudinary not configured", http.StatusInternalServerError, w,
			fmt.Errorf("CLOUDINARY_API_SECRET is not set"))
		return
	}

	timestamp := time.Now().Unix()
	params := url.Values{}
	params.Set("timestamp", fmt.Sprintf("%d", timestamp))
	params.Set("folder", body.Folder)

	signature, err := cloudinary.SignParameters(params, apiSecret)
	if err != nil {
		config.ErrorStatus("failed to sign parameters", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"signature": signature,
		"timestamp": timestamp,
		"folder":    body.Folder,
		"apiKey":    os.Getenv("CLOUDINARY_API_KEY"),
		"cloudName": os.Getenv("CLOUDINARY_CLOUD_NAME"),
	})
}
