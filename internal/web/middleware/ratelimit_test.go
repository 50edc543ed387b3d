package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	limitmocks "gitee.com/flycash/push-platform/internal/pkg/ratelimit/mocks"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRateLimitBuilder(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name     string
		mock     func(ctrl *gomock.Controller) *limitmocks.MockLimiter
		wantCode int
	}{
		{
			name: "放行",
			mock: func(ctrl *gomock.Controller) *limitmocks.MockLimiter {
				l := limitmocks.NewMockLimiter(ctrl)
				l.EXPECT().Limit(gomock.Any(), "schedule:192.0.2.1").Return(false, nil)
				return l
			},
			wantCode: http.StatusOK,
		},
		{
			name: "限流",
			mock: func(ctrl *gomock.Controller) *limitmocks.MockLimiter {
				l := limitmocks.NewMockLimiter(ctrl)
				l.EXPECT().Limit(gomock.Any(), "schedule:192.0.2.1").Return(true, nil)
				return l
			},
			wantCode: http.StatusTooManyRequests,
		},
		{
			name: "限流器出错",
			mock: func(ctrl *gomock.Controller) *limitmocks.MockLimiter {
				l := limitmocks.NewMockLimiter(ctrl)
				l.EXPECT().Limit(gomock.Any(), "schedule:192.0.2.1").Return(false, errors.New("mock error"))
				return l
			},
			wantCode: http.StatusInternalServerError,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			server := gin.New()
			server.Use(NewRateLimitBuilder("schedule", tc.mock(ctrl)).Build())
			server.GET("/ping", func(ctx *gin.Context) {
				ctx.String(http.StatusOK, "pong")
			})

			req, err := http.NewRequest(http.MethodGet, "/ping", nil)
			require.NoError(t, err)
			req.RemoteAddr = "192.0.2.1:1234"
			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)
			assert.Equal(t, tc.wantCode, recorder.Code)
		})
	}
}
