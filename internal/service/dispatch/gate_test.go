package dispatch

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gitee.com/flycash/push-platform/internal/domain"
	"gitee.com/flycash/push-platform/internal/errs"
	repomocks "gitee.com/flycash/push-platform/internal/repository/mocks"
	dispatchmocks "gitee.com/flycash/push-platform/internal/service/dispatch/mocks"
	"gitee.com/flycash/push-platform/internal/test/dlocktest"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestGate_Dispatch(t *testing.T) {
	t.Parallel()
	live := domain.DeliveryInstance{ID: 7, Provider: domain.ProviderDummy, AudienceKey: `["t1"]`}

	testCases := []struct {
		name    string
		mock    func(ctrl *gomock.Controller) (*repomocks.MockInstanceRepository, *dispatchmocks.MockExecutor)
		wantErr error
	}{
		{
			name: "存活的实例会被发送",
			mock: func(ctrl *gomock.Controller) (*repomocks.MockInstanceRepository, *dispatchmocks.MockExecutor) {
				repo := repomocks.NewMockInstanceRepository(ctrl)
				repo.EXPECT().GetByID(gomock.Any(), uint64(7)).Return(live, nil)
				exec := dispatchmocks.NewMockExecutor(ctrl)
				exec.EXPECT().Execute(gomock.Any(), live).Return(nil)
				return repo, exec
			},
		},
		{
			name: "实例不存在",
			mock: func(ctrl *gomock.Controller) (*repomocks.MockInstanceRepository, *dispatchmocks.MockExecutor) {
				repo := repomocks.NewMockInstanceRepository(ctrl)
				repo.EXPECT().GetByID(gomock.Any(), uint64(7)).
					Return(domain.DeliveryInstance{}, fmt.Errorf("%w: 7", errs.ErrInstanceNotFound))
				return repo, dispatchmocks.NewMockExecutor(ctrl)
			},
		},
		{
			name: "已经取消",
			mock: func(ctrl *gomock.Controller) (*repomocks.MockInstanceRepository, *dispatchmocks.MockExecutor) {
				repo := repomocks.NewMockInstanceRepository(ctrl)
				repo.EXPECT().GetByID(gomock.Any(), uint64(7)).Return(domain.DeliveryInstance{ID: 7, Canceled: true}, nil)
				return repo, dispatchmocks.NewMockExecutor(ctrl)
			},
		},
		{
			name: "已经发送",
			mock: func(ctrl *gomock.Controller) (*repomocks.MockInstanceRepository, *dispatchmocks.MockExecutor) {
				repo := repomocks.NewMockInstanceRepository(ctrl)
				repo.EXPECT().GetByID(gomock.Any(), uint64(7)).Return(domain.DeliveryInstance{ID: 7, SentAt: time.Now()}, nil)
				return repo, dispatchmocks.NewMockExecutor(ctrl)
			},
		},
		{
			name: "查询失败",
			mock: func(ctrl *gomock.Controller) (*repomocks.MockInstanceRepository, *dispatchmocks.MockExecutor) {
				repo := repomocks.NewMockInstanceRepository(ctrl)
				repo.EXPECT().GetByID(gomock.Any(), uint64(7)).Return(domain.DeliveryInstance{}, context.DeadlineExceeded)
				return repo, dispatchmocks.NewMockExecutor(ctrl)
			},
			wantErr: context.DeadlineExceeded,
		},
		{
			name: "发送失败",
			mock: func(ctrl *gomock.Controller) (*repomocks.MockInstanceRepository, *dispatchmocks.MockExecutor) {
				repo := repomocks.NewMockInstanceRepository(ctrl)
				repo.EXPECT().GetByID(gomock.Any(), uint64(7)).Return(live, nil)
				exec := dispatchmocks.NewMockExecutor(ctrl)
				exec.EXPECT().Execute(gomock.Any(), live).Return(errs.ErrProviderRejected)
				return repo, exec
			},
			wantErr: errs.ErrProviderRejected,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo, exec := tc.mock(ctrl)
			dclient := dlocktest.NewClient()
			g := NewGate(repo, exec, dclient)
			err := g.Dispatch(context.Background(), 7)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.False(t, dclient.Held("push:dispatch:7"))
			assert.Equal(t, int64(1), dclient.Acquired.Load())
		})
	}
}

func TestGate_DispatchLockFailed(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dclient := dlocktest.NewClient()
	dclient.NewLockErr = errors.New("redis 不可用")
	// 拿不到锁就不会查询，也不会发送
	g := NewGate(repomocks.NewMockInstanceRepository(ctrl), dispatchmocks.NewMockExecutor(ctrl), dclient)
	assert.Error(t, g.Dispatch(context.Background(), 7))
}

func TestGate_DispatchConcurrently(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dclient := dlocktest.NewClient()
	held, err := dclient.NewLock(context.Background(), "push:dispatch:7", time.Minute)
	assert.NoError(t, err)
	assert.NoError(t, held.Lock(context.Background()))

	// 别人正在发送，等不到锁就放弃
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*50)
	defer cancel()
	g := NewGate(repomocks.NewMockInstanceRepository(ctrl), dispatchmocks.NewMockExecutor(ctrl), dclient)
	assert.ErrorIs(t, g.Dispatch(ctx, 7), context.DeadlineExceeded)
	assert.NoError(t, held.Unlock(context.Background()))
}
