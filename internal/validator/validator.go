// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("priority", validatePriority)
		_ = v.RegisterValidation("incident_status", validateIncidentStatus)
		_ = v.RegisterValidation("leave_status", validateLeaveStatus)
		_ = v.RegisterValidation("document_status", validateDocumentStatus)
		_ = v.RegisterValidation("user_role", validateUserRole)
	}
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validatePriority(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "low", "medium", "high", "critical":
		return true
	}
	return false
}

func validateIncidentStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "open", "in_progress", "resolved", "closed":
		return true
	}
	return false
}

// Leave statuses are the Dutch labels the dashboard shows; they are part of
// the persisted data format.
func validateLeaveStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "In behandeling", "Goedgekeurd", "Afgewezen":
		return true
	}
	return false
}

func validateDocumentStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "verified", "rejected", "expired":
		return true
	}
	return false
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "admin", "caseworker", "volunteer":
		return true
	}
	return false
}
