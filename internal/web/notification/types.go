package notification

// ScheduleReq POST /notifications/schedule 的请求体
type ScheduleReq struct {
	// IANA 时区，默认 UTC
	Timezone string         `json:"timezone"`
	Slug     string         `json:"slug"`
	Tokens   []string       `json:"tokens"`
	Context  map[string]any `json:"context"`
	Provider string         `json:"provider"`
}

type ScheduleVO struct {
	Outcome string `json:"outcome"`
	// 只有 ACCEPTED 的时候才有
	InstanceID  uint64 `json:"instance_id,omitempty,string"`
	ScheduledAt string `json:"scheduled_at,omitempty"`
}

type Result struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

const (
	codeOK          = 0
	codeBadRequest  = 4
	codeSystemError = 5
)
