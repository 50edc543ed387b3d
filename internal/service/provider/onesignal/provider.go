package onesignal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gitee.com/flycash/push-platform/internal/domain"
	"gitee.com/flycash/push-platform/internal/errs"
	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL   = "https://onesignal.com"
	notificationsAPI = "/api/v1/notifications"

	apnsPriorityNormal = 5
	apnsPriorityHigh   = 10
)

type Config struct {
	AppID   string        `yaml:"appID"`
	APIKey  string        `yaml:"apiKey"`
	BaseURL string        `yaml:"baseURL"`
	Timeout time.Duration `yaml:"timeout"`
}

// Provider 调用 OneSignal 的 REST API
type Provider struct {
	client *resty.Client
	appID  string
}

func NewProvider(cfg Config) *Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Authorization", "Basic "+cfg.APIKey).
		SetHeader("Content-Type", "application/json; charset=utf-8")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &Provider{
		client: client,
		appID:  cfg.AppID,
	}
}

func (p *Provider) Send(ctx context.Context, tokens []string, payload []byte) (domain.ProviderResult, error) {
	body, err := p.buildRequest(tokens, payload)
	if err != nil {
		return domain.ProviderResult{}, err
	}
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(notificationsAPI)
	if err != nil {
		return domain.ProviderResult{}, fmt.Errorf("请求 OneSignal 失败: %w", err)
	}
	return domain.ProviderResult{StatusCode: resp.StatusCode(), Body: resp.Body()}, nil
}

// payload 冻结在通知实例里的推送内容，只解析用得到的字段
type payload struct {
	Title            json.RawMessage   `json:"title"`
	Body             json.RawMessage   `json:"body"`
	Sound            string            `json:"sound"`
	Priority         string            `json:"priority"`
	TemplateID       string            `json:"os_template_id"`
	Data             map[string]string `json:"data"`
	CollapseKey      string            `json:"gcm_option_collapse_key"`
	TimeToLive       *int              `json:"gcm_option_time_to_live"`
	Icon             string            `json:"gcm_notification_icon"`
	Color            string            `json:"gcm_notification_color"`
	ContentAvailable string            `json:"gcm_option_content_available"`
}

type request struct {
	AppID            string            `json:"app_id"`
	IncludePlayerIDs []string          `json:"include_player_ids"`
	Headings         map[string]string `json:"headings,omitempty"`
	Contents         map[string]string `json:"contents,omitempty"`
	TemplateID       string            `json:"template_id,omitempty"`
	Data             map[string]string `json:"data,omitempty"`
	IOSSound         string            `json:"ios_sound,omitempty"`
	AndroidSound     string            `json:"android_sound,omitempty"`
	Priority         int               `json:"priority"`
	CollapseID       string            `json:"collapse_id,omitempty"`
	TTL              *int              `json:"ttl,omitempty"`
	SmallIcon        string            `json:"small_icon,omitempty"`
	AccentColor      string            `json:"android_accent_color,omitempty"`
	ContentAvailable bool              `json:"content_available,omitempty"`
}

func (p *Provider) buildRequest(tokens []string, raw []byte) (request, error) {
	var pl payload
	if err := json.Unmarshal(raw, &pl); err != nil {
		return request{}, fmt.Errorf("%w: 推送内容不是合法的JSON %w", errs.ErrInvalidParameter, err)
	}
	headings, err := localized(pl.Title)
	if err != nil {
		return request{}, err
	}
	contents, err := localized(pl.Body)
	if err != nil {
		return request{}, err
	}
	priority := apnsPriorityNormal
	if pl.Priority == string(domain.PriorityHigh) {
		priority = apnsPriorityHigh
	}
	return request{
		AppID:            p.appID,
		IncludePlayerIDs: tokens,
		Headings:         headings,
		Contents:         contents,
		TemplateID:       pl.TemplateID,
		Data:             pl.Data,
		IOSSound:         pl.Sound,
		AndroidSound:     pl.Sound,
		Priority:         priority,
		CollapseID:       pl.CollapseKey,
		TTL:              pl.TimeToLive,
		SmallIcon:        pl.Icon,
		AccentColor:      pl.Color,
		ContentAvailable: pl.ContentAvailable != "",
	}, nil
}

// localized title 和 body 可能是字符串，也可能是按照语言组织的对象
func localized(raw json.RawMessage) (map[string]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var byLang map[string]string
	if err := json.Unmarshal(raw, &byLang); err == nil {
		return byLang, nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil, fmt.Errorf("%w: 无法解析 %s", errs.ErrInvalidParameter, string(raw))
	}
	if text == "" {
		return nil, nil
	}
	return map[string]string{domain.DefaultLanguage: text}, nil
}
