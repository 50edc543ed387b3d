package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"gitee.com/flycash/push-platform/internal/errs"
)

// Priority 推送优先级，APNs 里面对应 5 和 10
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// GCM 离线消息最多保存四周
const fourWeeksInSeconds = 4 * 7 * 24 * 3600

// DefaultLanguage 没有开启翻译的时候，渲染结果放在这个语言下
const DefaultLanguage = "en"

// Category 通知分类
type Category struct {
	ID   int64
	Name string
	// 用户是否可以退订这个分类
	OptOut bool
}

// APNs 苹果推送相关字段，非空的 Alert 字段会让 alert 变成 JSON 对象
type APNs struct {
	AlertTitleLocKey  string
	AlertTitleLocArgs string
	AlertLocKey       string
	AlertLocArgs      string
	AlertActionLocKey string
	AlertLaunchImage  string
	Custom            string
}

// GCM 谷歌推送相关字段
type GCM struct {
	Icon                  string
	Tag                   string
	Color                 string
	ClickAction           string
	BodyLocKey            string
	BodyLocArgs           string
	TitleLocKey           string
	TitleLocArgs          string
	CollapseKey           string
	ContentAvailable      string
	DelayWhileIdle        bool
	TimeToLive            *int // 秒
	RestrictedPackageName string
	Data                  string
}

// Notification 通知定义，由管理后台维护，这里只读
type Notification struct {
	ID          int64
	Name        string
	Slug        string
	Enabled     bool
	Description string
	Category    *Category

	Title    string
	Body     string
	Sound    string
	Priority Priority

	APNs APNs
	GCM  GCM
	// OneSignal 模板
	TemplateID string

	// 按照 Order 排好序的调度策略
	Schedulers []SchedulerBinding
}

func (n *Notification) Validate() error {
	if n.Slug == "" {
		return fmt.Errorf("%w: Slug = %q", errs.ErrInvalidParameter, n.Slug)
	}
	if n.Priority != PriorityNormal && n.Priority != PriorityHigh {
		return fmt.Errorf("%w: Priority = %q", errs.ErrInvalidParameter, n.Priority)
	}
	if ttl := n.GCM.TimeToLive; ttl != nil && (*ttl < 0 || *ttl > fourWeeksInSeconds) {
		return fmt.Errorf("%w: GCM.TimeToLive = %d", errs.ErrInvalidParameter, *ttl)
	}
	for i := range n.Schedulers {
		if err := n.Schedulers[i].Policy.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SchedulerChain 构造这个通知的调度链
func (n *Notification) SchedulerChain() (SchedulerChain, error) {
	return NewSchedulerChain(n.Schedulers)
}

// Payload 生成交给供应商的数据。title 和 body 会用 tplCtx 渲染，
// 渲染结果按照语言组织。生成之后就冻结在通知实例里，不会再变
func (n *Notification) Payload(tplCtx map[string]any, languages []string) ([]byte, error) {
	if len(languages) == 0 {
		languages = []string{DefaultLanguage}
	}
	res := map[string]any{
		"title":    n.Title,
		"body":     n.Body,
		"sound":    n.Sound,
		"priority": string(n.Priority),

		"apns_alert_title_loc_key":  n.APNs.AlertTitleLocKey,
		"apns_alert_title_loc_args": n.APNs.AlertTitleLocArgs,
		"apns_alert_loc_key":        n.APNs.AlertLocKey,
		"apns_alert_loc_args":       n.APNs.AlertLocArgs,
		"apns_alert_action_loc_key": n.APNs.AlertActionLocKey,
		"apns_alert_launch_image":   n.APNs.AlertLaunchImage,
		"apns_custom":               n.APNs.Custom,

		"gcm_notification_icon":              n.GCM.Icon,
		"gcm_notification_tag":               n.GCM.Tag,
		"gcm_notification_color":             n.GCM.Color,
		"gcm_notification_click_action":      n.GCM.ClickAction,
		"gcm_notification_body_loc_key":      n.GCM.BodyLocKey,
		"gcm_notification_body_loc_args":     n.GCM.BodyLocArgs,
		"gcm_notification_title_loc_key":     n.GCM.TitleLocKey,
		"gcm_notification_title_loc_args":    n.GCM.TitleLocArgs,
		"gcm_option_collapse_key":            n.GCM.CollapseKey,
		"gcm_option_content_available":       n.GCM.ContentAvailable,
		"gcm_option_delay_while_idle":        n.GCM.DelayWhileIdle,
		"gcm_option_time_to_live":            n.GCM.TimeToLive,
		"gcm_option_restricted_package_name": n.GCM.RestrictedPackageName,
		"gcm_data":                           n.GCM.Data,

		"os_template_id": n.TemplateID,
	}

	title, err := n.render("title", n.Title, tplCtx)
	if err != nil {
		return nil, err
	}
	body, err := n.render("body", n.Body, tplCtx)
	if err != nil {
		return nil, err
	}
	if body != "" {
		titles := make(map[string]string, len(languages))
		bodies := make(map[string]string, len(languages))
		for _, lang := range languages {
			titles[lang] = title
			bodies[lang] = body
		}
		res["title"] = titles
		res["body"] = bodies
	}
	if n.Body == "" {
		delete(res, "body")
	}
	res["data"] = map[string]string{"notification_id": n.Slug}
	return json.Marshal(res)
}

func (n *Notification) render(name, text string, tplCtx map[string]any) (string, error) {
	if text == "" {
		return "", nil
	}
	tpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("%w: 模板 %s 解析失败 %w", errs.ErrInvalidParameter, name, err)
	}
	buf := &bytes.Buffer{}
	if err = tpl.Execute(buf, tplCtx); err != nil {
		return "", fmt.Errorf("%w: 模板 %s 渲染失败 %w", errs.ErrInvalidParameter, name, err)
	}
	return buf.String(), nil
}
