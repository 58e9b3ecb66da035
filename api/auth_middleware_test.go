package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Drolfothesgnir/bbpost/render"
	"github.com/Drolfothesgnir/bbpost/token"
	"github.com/Drolfothesgnir/bbpost/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	userId := util.RandomInt(1, 1000)

	testCases := []struct {
		name          string
		optional      bool
		setupAuth     func(t *testing.T, request *http.Request, tokenMaker token.Maker)
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder, viewer render.Viewer)
	}{
		{
			name: "OK",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker token.Maker) {
				setAuthorizationHeader(t, tokenMaker, authorizationTypeBearer, userId, "moderator", time.Minute, request)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder, viewer render.Viewer) {
				require.Equal(t, http.StatusOK, recorder.Code)
				require.Equal(t, render.Viewer{UserID: userId, Role: render.RoleModerator}, viewer)
			},
		},
		{
			name: "NoRoleIsUser",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker token.Maker) {
				setAuthorizationHeader(t, tokenMaker, authorizationTypeBearer, userId, "", time.Minute, request)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder, viewer render.Viewer) {
				require.Equal(t, http.StatusOK, recorder.Code)
				require.Equal(t, render.Viewer{UserID: userId, Role: render.RoleUser}, viewer)
			},
		},
		{
			name:      "NoAuthorization",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker token.Maker) {},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder, viewer render.Viewer) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
		{
			name:      "OptionalNoAuthorization",
			optional:  true,
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker token.Maker) {},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder, viewer render.Viewer) {
				require.Equal(t, http.StatusOK, recorder.Code)
				require.Equal(t, render.Viewer{}, viewer)
			},
		},
		{
			name:     "OptionalInvalidHeaderFormat",
			optional: true,
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker token.Maker) {
				setAuthorizationHeader(t, tokenMaker, "", userId, "", time.Minute, request)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder, viewer render.Viewer) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
		{
			name: "UnsupportedAuthorizationType",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker token.Maker) {
				setAuthorizationHeader(t, tokenMaker, "unsupported", userId, "", time.Minute, request)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder, viewer render.Viewer) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
		{
			name:     "OptionalExpiredToken",
			optional: true,
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker token.Maker) {
				setAuthorizationHeader(t, tokenMaker, authorizationTypeBearer, userId, "", -time.Minute, request)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder, viewer render.Viewer) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tokenMaker, err := token.NewJWTMaker(testConfig.TokenSymmetricKey)
			require.NoError(t, err)

			service := newTestService(t, nil, tokenMaker, nil)

			authPath := "/auth"
			middleware := authMiddleware(service.tokenMaker)
			if tc.optional {
				middleware = optionalAuthMiddleware(service.tokenMaker)
			}

			var viewer render.Viewer
			service.router.GET(authPath, middleware, func(ctx *gin.Context) {
				viewer = viewerFromCtx(ctx)
				ctx.JSON(http.StatusOK, gin.H{})
			})

			recorder := httptest.NewRecorder()
			request, err := http.NewRequest(http.MethodGet, authPath, nil)
			require.NoError(t, err)
			tc.setupAuth(t, request, service.tokenMaker)

			service.router.ServeHTTP(recorder, request)
			tc.checkResponse(t, recorder, viewer)
		})
	}
}
