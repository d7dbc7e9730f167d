package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cppla/subforum/store"
	"github.com/cppla/subforum/utils"
)

// respondError maps the store's error kinds to client errors. Anything else
// is logged and reported as an opaque server error with the given code.
func respondError(ctx *gin.Context, err error, code int, message string) {
	var (
		validation *store.ValidationError
		reference  *store.ReferenceError
		conflict   *store.ConflictError
		notFound   *store.NotFoundError
	)
	switch {
	case errors.As(err, &validation):
		utils.Error(ctx, http.StatusBadRequest, 40001, validation.Error())
	case errors.As(err, &reference):
		utils.Error(ctx, http.StatusUnprocessableEntity, 42201, reference.Error())
	case errors.As(err, &conflict):
		utils.Error(ctx, http.StatusConflict, 40901, conflict.Error())
	case errors.As(err, &notFound):
		utils.Error(ctx, http.StatusNotFound, 40401, notFound.Error())
	default:
		utils.Sugar.Errorf("%s: %v", message, err)
		utils.Error(ctx, http.StatusInternalServerError, code, message)
	}
}

// pathID parses a positive id path parameter, answering 400 when it is not one.
func pathID(ctx *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(ctx.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the body into req, answering 400 on malformed JSON.
func bindJSON(ctx *gin.Context, req any) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40000, "invalid request payload")
		return false
	}
	return true
}
