package tracing

import (
	"testing"

	"gitee.com/flycash/push-platform/internal/domain"
	providermocks "gitee.com/flycash/push-platform/internal/service/provider/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"
)

func TestProvider_Send(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

	ctrl := gomock.NewController(t)
	mockProvider := providermocks.NewMockProvider(ctrl)
	mockProvider.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.ProviderResult{StatusCode: 400, Body: []byte(`{"errors":[]}`)}, nil)

	res, err := NewProvider(domain.ProviderOneSignal, mockProvider).
		Send(t.Context(), []string{"t1"}, []byte(`{}`))
	require.NoError(t, err)
	assert.False(t, res.OK())

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "Provider.Send", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}
