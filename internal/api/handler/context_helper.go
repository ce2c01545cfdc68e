package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"uece-planner/pkg/response"
)

// MustGetConfirm reads the ?confirm= flag of destructive requests. A missing
// flag means false; an unparsable one writes a 400 and returns ok=false.
// Callers should return when ok is false.
func MustGetConfirm(c *gin.Context) (confirm bool, ok bool) {
	raw, present := c.GetQuery("confirm")
	if !present || raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		response.BadRequest(c, 10001, "parâmetro confirm inválido")
		return false, false
	}
	return v, true
}

// MustGetID reads the :id path parameter.
func MustGetID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "id não pode ser vazio")
		return "", false
	}
	return id, true
}

// bindFailed answers a request whose body could not be bound: 413 when the
// body hit the size limit, 400 otherwise.
func bindFailed(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "corpo da requisição muito grande")
		return
	}
	response.BadRequest(c, 10001, "parâmetros inválidos")
}
