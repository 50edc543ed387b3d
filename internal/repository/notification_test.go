package repository

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"gitee.com/flycash/push-platform/internal/domain"
	"gitee.com/flycash/push-platform/internal/errs"
	"gitee.com/flycash/push-platform/internal/repository/dao"
	daomocks "gitee.com/flycash/push-platform/internal/repository/dao/mocks"
	ca "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

func TestNotificationRepositorySuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(NotificationRepositoryTestSuite))
}

type NotificationRepositoryTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	mockDAO *daomocks.MockNotificationDAO
	repo    NotificationRepository
}

func (s *NotificationRepositoryTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockDAO = daomocks.NewMockNotificationDAO(s.ctrl)
	s.repo = NewNotificationRepository(s.mockDAO, ca.New(time.Minute, time.Minute))
}

func (s *NotificationRepositoryTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *NotificationRepositoryTestSuite) TestGetEnabledBySlug() {
	t := s.T()
	s.mockDAO.EXPECT().GetEnabledBySlug(gomock.Any(), "a-slug").Return(dao.Notification{
		ID:            1,
		Slug:          "a-slug",
		Enabled:       true,
		Title:         "hi",
		Priority:      "high",
		CategoryID:    sql.NullInt64{Int64: 3, Valid: true},
		GCMTimeToLive: sql.NullInt32{Int32: 60, Valid: true},
		APNsCustom:    `{"k":"v"}`,
		OSTemplateID:  "tpl",
	}, nil).Times(1)
	s.mockDAO.EXPECT().FindSchedulers(gomock.Any(), int64(1)).Return([]dao.SchedulerRow{
		{BindingID: 10, OrderNum: 0, PolicyID: 5, Type: "MINUTES_LATER", Minutes: 5},
		{BindingID: 11, OrderNum: 1, PolicyID: 6, Type: "IN_TIME_RANGE", StartHour: 8, EndHour: 22},
	}, nil).Times(1)
	s.mockDAO.EXPECT().GetCategory(gomock.Any(), int64(3)).
		Return(dao.NotificationCategory{ID: 3, Name: "marketing", OptOut: true}, nil).Times(1)

	// 第二次走缓存
	for i := 0; i < 2; i++ {
		n, err := s.repo.GetEnabledBySlug(context.Background(), "a-slug")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n.ID)
		assert.Equal(t, domain.PriorityHigh, n.Priority)
		assert.Equal(t, `{"k":"v"}`, n.APNs.Custom)
		assert.Equal(t, "tpl", n.TemplateID)
		require.NotNil(t, n.GCM.TimeToLive)
		assert.Equal(t, 60, *n.GCM.TimeToLive)
		assert.Equal(t, &domain.Category{ID: 3, Name: "marketing", OptOut: true}, n.Category)
		assert.Equal(t, []domain.SchedulerBinding{
			{ID: 10, Order: 0, Policy: domain.SchedulerPolicyConfig{ID: 5, Type: domain.SchedulerPolicyMinutesLater, Minutes: 5}},
			{ID: 11, Order: 1, Policy: domain.SchedulerPolicyConfig{ID: 6, Type: domain.SchedulerPolicyInTimeRange, StartHour: 8, EndHour: 22}},
		}, n.Schedulers)
	}
}

func (s *NotificationRepositoryTestSuite) TestGetEnabledBySlug_NotFound() {
	t := s.T()
	// 不存在的不缓存
	s.mockDAO.EXPECT().GetEnabledBySlug(gomock.Any(), "missing").
		Return(dao.Notification{}, errs.ErrNotificationNotFound).Times(2)
	for i := 0; i < 2; i++ {
		_, err := s.repo.GetEnabledBySlug(context.Background(), "missing")
		assert.ErrorIs(t, err, errs.ErrNotificationNotFound)
	}
}

func (s *NotificationRepositoryTestSuite) TestGetEnabledBySlug_CategoryFailed() {
	t := s.T()
	s.mockDAO.EXPECT().GetEnabledBySlug(gomock.Any(), "b-slug").
		Return(dao.Notification{ID: 2, Slug: "b-slug", Priority: "normal", CategoryID: sql.NullInt64{Int64: 9, Valid: true}}, nil)
	s.mockDAO.EXPECT().FindSchedulers(gomock.Any(), int64(2)).Return(nil, nil)
	s.mockDAO.EXPECT().GetCategory(gomock.Any(), int64(9)).Return(dao.NotificationCategory{}, errors.New("db error"))

	n, err := s.repo.GetEnabledBySlug(context.Background(), "b-slug")
	require.NoError(t, err)
	assert.Nil(t, n.Category)
	assert.Empty(t, n.Schedulers)
}

func (s *NotificationRepositoryTestSuite) TestGetEnabledBySlug_Concurrent() {
	t := s.T()
	s.mockDAO.EXPECT().GetEnabledBySlug(gomock.Any(), "hot").
		DoAndReturn(func(ctx context.Context, slug string) (dao.Notification, error) {
			time.Sleep(time.Millisecond * 50)
			return dao.Notification{ID: 4, Slug: slug, Priority: "high"}, nil
		}).MinTimes(1).MaxTimes(2)
	s.mockDAO.EXPECT().FindSchedulers(gomock.Any(), int64(4)).Return(nil, nil).MinTimes(1).MaxTimes(2)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := s.repo.GetEnabledBySlug(context.Background(), "hot")
			assert.NoError(t, err)
			assert.Equal(t, int64(4), n.ID)
		}()
	}
	wg.Wait()
}
