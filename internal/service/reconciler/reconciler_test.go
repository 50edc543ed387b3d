package reconciler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gitee.com/flycash/push-platform/internal/domain"
	"gitee.com/flycash/push-platform/internal/repository"
	repomocks "gitee.com/flycash/push-platform/internal/repository/mocks"
	"gitee.com/flycash/push-platform/internal/test/dlocktest"
	"github.com/sony/sonyflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

func newIDGenerator() *sonyflake.Sonyflake {
	return sonyflake.NewSonyflake(sonyflake.Settings{
		StartTime: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		MachineID: func() (uint16, error) {
			return 1, nil
		},
	})
}

func TestDecide(t *testing.T) {
	t.Parallel()
	sentAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	testCases := []struct {
		name    string
		matched []domain.DeliveryInstance
		want    domain.ReconcileDecision
	}{
		{
			name: "窗口内没有实例",
			want: domain.ReconcileDecision{CancelIDs: []uint64{}},
		},
		{
			name:    "都没有发送，全部取消",
			matched: []domain.DeliveryInstance{{ID: 1}, {ID: 2}},
			want:    domain.ReconcileDecision{CancelIDs: []uint64{1, 2}},
		},
		{
			name:    "有一个已经发送，取消其他的并且抑制",
			matched: []domain.DeliveryInstance{{ID: 1}, {ID: 2, SentAt: sentAt}, {ID: 3}},
			want:    domain.ReconcileDecision{CancelIDs: []uint64{1, 3}, Suppress: true},
		},
		{
			name:    "已经取消的不用再取消",
			matched: []domain.DeliveryInstance{{ID: 1, Canceled: true}, {ID: 2}},
			want:    domain.ReconcileDecision{CancelIDs: []uint64{2}},
		},
		{
			name:    "取消之后又发送了，也算发送过",
			matched: []domain.DeliveryInstance{{ID: 1, Canceled: true, SentAt: sentAt}},
			want:    domain.ReconcileDecision{CancelIDs: []uint64{}, Suppress: true},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Decide(tc.matched))
		})
	}
}

func TestReconcilerSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReconcilerTestSuite))
}

type ReconcilerTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRepo *repomocks.MockInstanceRepository
	dclient  *dlocktest.Client
	svc      *service
	now      time.Time
}

func (s *ReconcilerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = repomocks.NewMockInstanceRepository(s.ctrl)
	s.dclient = dlocktest.NewClient()
	s.now = time.Date(2024, 5, 1, 10, 0, 0, 500_000_000, time.UTC)
	s.svc = NewService(s.mockRepo, s.dclient, newIDGenerator()).(*service)
	s.svc.now = func() time.Time { return s.now }
}

func (s *ReconcilerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ReconcilerTestSuite) TestAccepted() {
	t := s.T()
	window := s.now.Add(time.Minute * 5)
	s.mockRepo.EXPECT().Reconcile(gomock.Any(), gomock.Any(), time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), gomock.Any()).
		DoAndReturn(func(ctx context.Context, candidate domain.DeliveryInstance, from time.Time,
			decide func([]domain.DeliveryInstance) domain.ReconcileDecision,
		) (bool, error) {
			// 持有锁的时候才会操作数据库
			assert.True(t, s.dclient.Held(s.svc.lockKey(1, candidate.AudienceKey)))
			assert.NotZero(t, candidate.ID)
			assert.Equal(t, `["t1","t2"]`, candidate.AudienceKey)
			assert.Equal(t, domain.NormalizeTime(window), candidate.ScheduledAt)
			return true, nil
		})

	inst, outcome, err := s.svc.Reconcile(context.Background(), Request{
		NotificationID: 1,
		Provider:       domain.ProviderDummy,
		Tokens:         []string{"t2", "t1", "t2"},
		Payload:        []byte(`{"title":"hi"}`),
		Timezone:       "Europe/Paris",
		Window:         window,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAccepted, outcome)
	assert.NotZero(t, inst.ID)
	assert.Equal(t, "Europe/Paris", inst.Timezone)
	assert.True(t, inst.Live())
	// 结束之后释放锁
	assert.False(t, s.dclient.Held(s.svc.lockKey(1, inst.AudienceKey)))
}

func (s *ReconcilerTestSuite) TestSuppressed() {
	t := s.T()
	s.mockRepo.EXPECT().Reconcile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

	inst, outcome, err := s.svc.Reconcile(context.Background(), Request{
		NotificationID: 1,
		Tokens:         []string{"t1"},
		Window:         s.now,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSuppressed, outcome)
	assert.Zero(t, inst.ID)
}

func (s *ReconcilerTestSuite) TestDiscarded() {
	t := s.T()
	// 丢弃的时候什么也不做
	inst, outcome, err := s.svc.Reconcile(context.Background(), Request{NotificationID: 1, Tokens: []string{"t1"}})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeDiscarded, outcome)
	assert.Zero(t, inst.ID)
	assert.Zero(t, s.dclient.Acquired.Load())
}

func (s *ReconcilerTestSuite) TestWindowBeforeNow() {
	t := s.T()
	// 窗口早于当前时间的时候，查询区间退化成一个点
	window := s.now.Add(-time.Second * 3)
	s.mockRepo.EXPECT().Reconcile(gomock.Any(), gomock.Any(), domain.NormalizeTime(window), gomock.Any()).Return(true, nil)
	_, outcome, err := s.svc.Reconcile(context.Background(), Request{NotificationID: 1, Tokens: []string{"t1"}, Window: window})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAccepted, outcome)
}

func (s *ReconcilerTestSuite) TestRepositoryError() {
	t := s.T()
	s.mockRepo.EXPECT().Reconcile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, errors.New("deadlock"))
	_, _, err := s.svc.Reconcile(context.Background(), Request{NotificationID: 1, Tokens: []string{"t1"}, Window: s.now})
	assert.Error(t, err)
	assert.False(t, s.dclient.Held(s.svc.lockKey(1, `["t1"]`)))
}

func (s *ReconcilerTestSuite) TestLockFailed() {
	t := s.T()
	s.dclient.NewLockErr = errors.New("redis 不可用")
	_, _, err := s.svc.Reconcile(context.Background(), Request{NotificationID: 1, Tokens: []string{"t1"}, Window: s.now})
	assert.Error(t, err)
}

// memoryRepository 读和写之间没有任何原子性保证，用来验证分布式锁
type memoryRepository struct {
	repository.InstanceRepository
	mu        sync.Mutex
	instances []domain.DeliveryInstance
}

func (r *memoryRepository) Reconcile(_ context.Context, candidate domain.DeliveryInstance, from time.Time,
	decide func([]domain.DeliveryInstance) domain.ReconcileDecision,
) (bool, error) {
	r.mu.Lock()
	var matched []domain.DeliveryInstance
	for _, inst := range r.instances {
		if inst.NotificationID == candidate.NotificationID &&
			inst.AudienceKey == candidate.AudienceKey &&
			!inst.ScheduledAt.Before(from) && !inst.ScheduledAt.After(candidate.ScheduledAt) {
			matched = append(matched, inst)
		}
	}
	r.mu.Unlock()

	// 放大并发问题
	time.Sleep(time.Millisecond * 2)
	decision := decide(matched)

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.instances {
		for _, id := range decision.CancelIDs {
			if r.instances[i].ID == id && !r.instances[i].Sent() {
				r.instances[i].Canceled = true
			}
		}
	}
	if decision.Suppress {
		return false, nil
	}
	r.instances = append(r.instances, candidate)
	return true, nil
}

func (r *memoryRepository) live() []domain.DeliveryInstance {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []domain.DeliveryInstance
	for _, inst := range r.instances {
		if inst.Live() {
			res = append(res, inst)
		}
	}
	return res
}

func TestReconcile_Concurrent(t *testing.T) {
	t.Parallel()
	repo := &memoryRepository{}
	svc := NewService(repo, dlocktest.NewClient(), newIDGenerator())
	window := time.Now().Add(time.Minute * 5)

	const n = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		outcomes = map[domain.ReconcileOutcome]int{}
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// 接收者的顺序不影响结果
			tokens := []string{"t1", "t2", "t3"}
			if i%2 == 0 {
				tokens = []string{"t3", "t1", "t2"}
			}
			_, outcome, err := svc.Reconcile(context.Background(), Request{
				NotificationID: 1,
				Provider:       domain.ProviderDummy,
				Tokens:         tokens,
				Window:         window,
			})
			assert.NoError(t, err)
			mu.Lock()
			outcomes[outcome]++
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n, outcomes[domain.OutcomeAccepted])
	live := repo.live()
	require.Len(t, live, 1)
	assert.Equal(t, `["t1","t2","t3"]`, live[0].AudienceKey)
	assert.Len(t, repo.instances, n)
}

func TestReconcile_AlreadySent(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	key := domain.CanonicalAudienceKey([]string{"t1"})
	repo := &memoryRepository{instances: []domain.DeliveryInstance{
		{ID: 1, NotificationID: 1, AudienceKey: key, ScheduledAt: now.Add(time.Minute), SentAt: now.Add(time.Minute)},
		{ID: 2, NotificationID: 1, AudienceKey: key, ScheduledAt: now.Add(time.Minute * 2)},
		// 窗口之外的不受影响
		{ID: 3, NotificationID: 1, AudienceKey: key, ScheduledAt: now.Add(time.Hour)},
		// 其他的接收者不受影响
		{ID: 4, NotificationID: 1, AudienceKey: domain.CanonicalAudienceKey([]string{"t2"}), ScheduledAt: now.Add(time.Minute * 2)},
	}}
	svc := NewService(repo, dlocktest.NewClient(), newIDGenerator()).(*service)
	svc.now = func() time.Time { return now }

	_, outcome, err := svc.Reconcile(context.Background(), Request{
		NotificationID: 1,
		Tokens:         []string{"t1"},
		Window:         now.Add(time.Minute * 5),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSuppressed, outcome)
	assert.Len(t, repo.instances, 4)
	assert.True(t, repo.instances[1].Canceled)
	assert.False(t, repo.instances[0].Canceled)
	assert.True(t, repo.instances[2].Live())
	assert.True(t, repo.instances[3].Live())
}
