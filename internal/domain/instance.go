package domain

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/cespare/xxhash/v2"
)

// DeliveryInstance 通知实例，一次具体的、落库的推送
type DeliveryInstance struct {
	ID             uint64
	NotificationID int64
	Provider       string
	// 规范化之后的接收者集合，见 CanonicalAudienceKey
	AudienceKey string
	// 创建时就冻结的推送内容
	Payload  []byte
	Timezone string

	ScheduledAt time.Time
	// 取消是单向的，一旦取消就不会恢复
	Canceled bool
	// 零值表示还没有发送。只会被设置一次
	SentAt time.Time
	Result string

	Ctime int64
	Utime int64
}

func (i DeliveryInstance) Sent() bool {
	return !i.SentAt.IsZero()
}

// Live 既没有取消，也没有发送
func (i DeliveryInstance) Live() bool {
	return !i.Canceled && !i.Sent()
}

// Tokens 解析出接收者
func (i DeliveryInstance) Tokens() ([]string, error) {
	var tokens []string
	err := json.Unmarshal([]byte(i.AudienceKey), &tokens)
	return tokens, err
}

// AudienceHash 用来建索引和加锁
func (i DeliveryInstance) AudienceHash() uint64 {
	return AudienceHash(i.AudienceKey)
}

// CanonicalAudienceKey 把接收者排序、去重之后序列化。
// 同一批接收者不管传进来的顺序如何，得到的 key 都一样
func CanonicalAudienceKey(tokens []string) string {
	sorted := slices.Clone(tokens)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	if sorted == nil {
		sorted = []string{}
	}
	// []string 序列化不会出错
	val, _ := json.Marshal(sorted)
	return string(val)
}

func AudienceHash(audienceKey string) uint64 {
	return xxhash.Sum64String(audienceKey)
}

// NormalizeTime 去掉时区和秒以下的精度，统一之后再比较和存储
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// DelaySeconds 从 now 到 at 的整秒数，已经过了的就是 0，也就是立刻发送
func DelaySeconds(now, at time.Time) int64 {
	delay := int64(at.Sub(now) / time.Second)
	if delay < 0 {
		return 0
	}
	return delay
}

// ReconcileOutcome 一次调度请求的结果
type ReconcileOutcome string

const (
	OutcomeAccepted            ReconcileOutcome = "ACCEPTED"             // 创建了新的实例
	OutcomeSuppressed          ReconcileOutcome = "SUPPRESSED"           // 窗口内已经发送过
	OutcomeDiscarded           ReconcileOutcome = "DISCARDED"            // 调度链丢弃
	OutcomeUnknownNotification ReconcileOutcome = "UNKNOWN_NOTIFICATION" // 通知不存在或未启用
)

// ReconcileDecision 对窗口内已有实例的处理决定
type ReconcileDecision struct {
	// 需要取消的实例
	CancelIDs []uint64
	// 为 true 的时候不创建新实例
	Suppress bool
}

// ScheduleResult 调度结果，只有 Outcome 是 OutcomeAccepted 的时候 Instance 才有值
type ScheduleResult struct {
	Outcome  ReconcileOutcome
	Instance *DeliveryInstance
}
