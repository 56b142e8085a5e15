package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the error body of every non-2xx response. Server-side detail for
// 5xx errors goes to the log, not to the client.
type Err struct {
	StatusCode int    `json:"-"`
	Error      string `json:"error"`
}

func RenderErr(ctx *gin.Context, err *Err) {
	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Error:      err.Error(),
	}
}

func ErrNotFound(resource, key string, value any) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Error:      fmt.Sprintf("%v with %v %v is not found", resource, key, value),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		Error:      err.Error(),
	}
}

func ErrUnauthorized(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Error:      err.Error(),
	}
}

func ErrForbidden(err error) *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		Error:      err.Error(),
	}
}

// ErrWrongCredentials is deliberately identical for unknown email and wrong
// password.
func ErrWrongCredentials() *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Error:      "invalid credentials",
	}
}

func ErrInternalServerError(err error) *Err {
	zap.L().Error("internal server error", zap.Error(err))

	return &Err{
		StatusCode: http.StatusInternalServerError,
		Error:      "internal server error",
	}
}

// ErrUpstream passes the upstream store's diagnostics through.
func ErrUpstream(err error) *Err {
	zap.L().Error("upstream call failed", zap.Error(err))

	return &Err{
		StatusCode: http.StatusInternalServerError,
		Error:      err.Error(),
	}
}
