package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var (
	// ValidImageExtensions contains valid image file extensions
	ValidImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

	// MaxImageSize defines maximum image size (10MB)
	MaxImageSize int64 = 10 * 1024 * 1024

	// MaxProofSize defines maximum achievement proof size (20MB, PDFs
	// included)
	MaxProofSize int64 = 20 * 1024 * 1024
)

// ValidateStruct runs validator tags on a request struct and returns
// per-field messages keyed by the lowercased field name.
func ValidateStruct(req interface{}) map[string]string {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": err.Error()}
	}

	details := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[strings.ToLower(fieldErr.Field())] = validationMessage(fieldErr)
	}
	return details
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fieldErr.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fieldErr.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fieldErr.Param())
	default:
		return fmt.Sprintf("failed %s validation", fieldErr.Tag())
	}
}

// ValidateImageUpload checks extension and size of an uploaded image.
func ValidateImageUpload(file *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	valid := false
	for _, allowed := range ValidImageExtensions {
		if ext == allowed {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("file type %s is not allowed", ext)
	}

	if file.Size > MaxImageSize {
		return fmt.Errorf("file exceeds maximum size of %d bytes", MaxImageSize)
	}
	return nil
}
