package handler

import (
	"errors"

	"github.com/gold2201/LocalNetworkProject/internal/apiserver/database"
	"github.com/gold2201/LocalNetworkProject/internal/common/errorx"
	"github.com/gold2201/LocalNetworkProject/internal/i18n"
)

// ClassifyStoreError maps store sentinels onto API errors. It is installed
// on the error handler so handlers can return store errors unchanged.
func ClassifyStoreError(err error) *errorx.APIError {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return errorx.NotFoundError("record", "").WithCause(err)
	case errors.Is(err, database.ErrConflict):
		return errorx.ConflictError("", err)
	case errors.Is(err, database.ErrReference):
		return errorx.FieldValidationError("reference", i18n.MsgFieldReferenceMissing, nil).WithCause(err)
	case errors.Is(err, database.ErrNoDefaultNetwork):
		return errorx.ValidationError(nil).WithMessage(i18n.MsgErrorNoDefaultNetwork, nil).WithCause(err)
	}
	return nil
}

// notFound turns a missing row into a 404 naming the resource and id
func notFound(err error, resource string, id uint) error {
	if errors.Is(err, database.ErrNotFound) {
		return errorx.NotFoundError(resource, id).WithCause(err)
	}
	return err
}
