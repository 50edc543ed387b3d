package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"gitee.com/flycash/push-platform/internal/domain"
	delayqueuemocks "gitee.com/flycash/push-platform/internal/pkg/delayqueue/mocks"
	repomocks "gitee.com/flycash/push-platform/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRequeueCron_Do(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	before := now.Add(-defaultRequeueGrace)
	overdue := now.Add(-time.Hour)

	testCases := []struct {
		name    string
		mock    func(ctrl *gomock.Controller) (*repomocks.MockInstanceRepository, *delayqueuemocks.MockQueue)
		wantErr bool
	}{
		{
			name: "翻页重新投递",
			mock: func(ctrl *gomock.Controller) (*repomocks.MockInstanceRepository, *delayqueuemocks.MockQueue) {
				repo := repomocks.NewMockInstanceRepository(ctrl)
				queue := delayqueuemocks.NewMockQueue(ctrl)
				repo.EXPECT().FindLiveBefore(gomock.Any(), before, uint64(0), 2).
					Return([]domain.DeliveryInstance{{ID: 1, ScheduledAt: overdue}, {ID: 2, ScheduledAt: overdue}}, nil)
				repo.EXPECT().FindLiveBefore(gomock.Any(), before, uint64(2), 2).
					Return([]domain.DeliveryInstance{{ID: 3, ScheduledAt: overdue}}, nil)
				queue.EXPECT().Schedule(gomock.Any(), uint64(1), time.Duration(0)).Return(nil)
				queue.EXPECT().Schedule(gomock.Any(), uint64(2), time.Duration(0)).Return(nil)
				queue.EXPECT().Schedule(gomock.Any(), uint64(3), time.Duration(0)).Return(nil)
				return repo, queue
			},
		},
		{
			name: "过期的不再投递",
			mock: func(ctrl *gomock.Controller) (*repomocks.MockInstanceRepository, *delayqueuemocks.MockQueue) {
				repo := repomocks.NewMockInstanceRepository(ctrl)
				queue := delayqueuemocks.NewMockQueue(ctrl)
				repo.EXPECT().FindLiveBefore(gomock.Any(), before, uint64(0), 2).
					Return([]domain.DeliveryInstance{{ID: 1, ScheduledAt: now.Add(-time.Hour * 48)}}, nil)
				return repo, queue
			},
		},
		{
			name: "没有超时的实例",
			mock: func(ctrl *gomock.Controller) (*repomocks.MockInstanceRepository, *delayqueuemocks.MockQueue) {
				repo := repomocks.NewMockInstanceRepository(ctrl)
				repo.EXPECT().FindLiveBefore(gomock.Any(), before, uint64(0), 2).Return(nil, nil)
				return repo, delayqueuemocks.NewMockQueue(ctrl)
			},
		},
		{
			name: "查询失败",
			mock: func(ctrl *gomock.Controller) (*repomocks.MockInstanceRepository, *delayqueuemocks.MockQueue) {
				repo := repomocks.NewMockInstanceRepository(ctrl)
				repo.EXPECT().FindLiveBefore(gomock.Any(), before, uint64(0), 2).Return(nil, errors.New("db 不可用"))
				return repo, delayqueuemocks.NewMockQueue(ctrl)
			},
			wantErr: true,
		},
		{
			name: "投递失败",
			mock: func(ctrl *gomock.Controller) (*repomocks.MockInstanceRepository, *delayqueuemocks.MockQueue) {
				repo := repomocks.NewMockInstanceRepository(ctrl)
				queue := delayqueuemocks.NewMockQueue(ctrl)
				repo.EXPECT().FindLiveBefore(gomock.Any(), before, uint64(0), 2).
					Return([]domain.DeliveryInstance{{ID: 1, ScheduledAt: overdue}}, nil)
				queue.EXPECT().Schedule(gomock.Any(), uint64(1), time.Duration(0)).Return(errors.New("redis 不可用"))
				return repo, queue
			},
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo, queue := tc.mock(ctrl)
			c := NewRequeueCron(repo, queue, domain.Config{NotificationExpires: time.Hour * 24})
			c.batchSize = 2
			c.now = func() time.Time { return now }
			err := c.Do(context.Background())
			assert.Equal(t, tc.wantErr, err != nil)
		})
	}
}
