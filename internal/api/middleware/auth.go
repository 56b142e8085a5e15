package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/torneohub/torneo-api/internal/api/handler/v1/response"
	"github.com/torneohub/torneo-api/internal/domain"
	"github.com/torneohub/torneo-api/internal/pkg/jwthelper"
)

const principalKey = "principal"

var (
	errMissingToken = errors.New("missing or malformed Authorization header")
	errNoPrincipal  = errors.New("no authenticated principal in context")
	errInsufficient = errors.New("insufficient role")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT authenticates the bearer token and stores the principal on the
// request context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			ctx.Abort()

			return
		}

		principal, err := jwthelper.ParseToken(a.signingKey, parts[1])
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			ctx.Abort()

			return
		}

		ctx.Set(principalKey, principal)
		ctx.Next()
	}
}

// RequireRole gates a route on the principal's role tag.
func (a *Authenticator) RequireRole(role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		principal, err := PrincipalFromContext(ctx)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			ctx.Abort()

			return
		}

		if principal.Role != role {
			response.RenderErr(ctx, response.ErrForbidden(errInsufficient))
			ctx.Abort()

			return
		}

		ctx.Next()
	}
}

func PrincipalFromContext(ctx *gin.Context) (domain.Principal, error) {
	value, exists := ctx.Get(principalKey)
	if !exists {
		return domain.Principal{}, errNoPrincipal
	}

	principal, ok := value.(domain.Principal)
	if !ok {
		return domain.Principal{}, errNoPrincipal
	}

	return principal, nil
}
