package storage_test

import "github.com/julianstephens/skateday/internal/models"

func modelsUser(email string) models.User {
	return models.User{Name: "Ada", Email: email, PasswordHash: "hash"}
}
