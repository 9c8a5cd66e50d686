package server

import (
	"errors"
	"net/http"

	"github.com/rafael/talentmatch/internal/db"
	"github.com/rafael/talentmatch/internal/hiring"
	"github.com/rafael/talentmatch/internal/storage"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *hiring.ValidationError
	var conflictErr *hiring.ConflictError
	var notFoundErr *db.NotFoundError
	var permissionErr *db.PermissionError
	var schemaErr *db.SchemaMissingError
	var connectivityErr *db.ConnectivityError
	var uploadErr *storage.UploadError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &conflictErr):
		return http.StatusConflict
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &permissionErr):
		return http.StatusForbidden
	case errors.As(err, &schemaErr), errors.As(err, &connectivityErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &uploadErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
