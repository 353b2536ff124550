package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/barangayph/barangay-records-api/api"
	"github.com/barangayph/barangay-records-api/config"
	"github.com/barangayph/barangay-records-api/databases"
	"github.com/barangayph/barangay-records-api/models"
)

// User exported for testing purposes
type User struct {
	DB databases.UserDatabase
}

// UserCreateHandler creates a staff account. The password is stored as a
// bcrypt hash and never echoed back.
func (u User) UserCreateHandler(w http.ResponseWriter, r *http.Request) {
	var details models.UserDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if details.Email == "" || details.Password == "" {
		config.ErrorStatus("email and password are required", http.StatusBadRequest, w,
			fmt.Errorf("missing credentials"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	count, err := u.DB.CountDocuments(ctx, bson.M{"user.email": details.Email})
	if err != nil {
		config.ErrorStatus("failed to check existing users", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		config.ErrorStatus("email already in use", http.StatusConflict, w,
			fmt.Errorf("a user with email %s already exists", details.Email))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(details.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}
	details.Password = string(hash)

	now := primitive.NewDateTimeFromTime(time.Now())
	details.CreatedAt = now
	details.UpdatedAt = now

	user := models.User{
		ID:      uuid.New().String(),
		Details: details,
	}
	if _, err := u.DB.InsertOne(ctx, user); err != nil {
		config.ErrorStatus("failed to create user", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("user created", "email", details.Email, "role", details.Role)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "User created successfully",
		"_id":     user.ID,
	})
}
