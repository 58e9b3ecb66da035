package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Drolfothesgnir/bbpost/render"
	"github.com/Drolfothesgnir/bbpost/token"
	"github.com/gin-gonic/gin"
)

const (
	authorizationheaderKey  = "authorization"
	authorizationTypeBearer = "bearer"
	authorizationPayloadKey = "authorization_payload"
)

var ErrUnauthorized = errors.New("unauthorized")

// authMiddleware rejects the requests without a valid bearer token.
func authMiddleware(tokenMaker token.Maker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader(authorizationheaderKey)
		if header == "" {
			err := errors.New("authorization header is not provided")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, NewErrorResponse(err))
			return
		}

		authenticate(ctx, tokenMaker, header)
	}
}

// optionalAuthMiddleware lets the guests through, but rejects the requests with a broken token.
func optionalAuthMiddleware(tokenMaker token.Maker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader(authorizationheaderKey)
		if header == "" {
			ctx.Next()
			return
		}

		authenticate(ctx, tokenMaker, header)
	}
}

func authenticate(ctx *gin.Context, tokenMaker token.Maker, header string) {
	fields := strings.Fields(header)
	if len(fields) != 2 {
		err := errors.New("invalid authorization header format")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, NewErrorResponse(err))
		return
	}

	authType := strings.ToLower(fields[0])
	if authType != authorizationTypeBearer {
		err := fmt.Errorf("unsupported authorization type %s", authType)
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, NewErrorResponse(err))
		return
	}

	if tokenMaker == nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, NewErrorResponse(ErrUnauthorized))
		return
	}

	payload, err := tokenMaker.VerifyToken(fields[1])
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, NewErrorResponse(err))
		return
	}

	ctx.Set(authorizationPayloadKey, payload)
	ctx.Next()
}

// viewerFromCtx returns the reader identified by the token, or a guest.
func viewerFromCtx(ctx *gin.Context) render.Viewer {
	v, ok := ctx.Get(authorizationPayloadKey)
	if !ok {
		return render.Viewer{}
	}

	payload, ok := v.(*token.Payload)
	if !ok || payload.UserID <= 0 {
		return render.Viewer{}
	}

	role := render.ParseRole(payload.Role)
	if role == render.RoleGuest {
		role = render.RoleUser
	}

	return render.Viewer{UserID: payload.UserID, Role: role}
}
