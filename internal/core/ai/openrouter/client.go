package openrouter

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"eatease-backend/internal/core/detection"
	"eatease-backend/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL OpenRouter API 位址
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	// ProviderName 偵測來源名稱
	ProviderName = "openrouter"

	defaultMaxTokens   = 1024
	defaultMaxLabels   = 20
	defaultConfidence  = 0.5
	maxLoggedBodyBytes = 512
	retryWait          = 500 * time.Millisecond
)

const detectPrompt = `List the food ingredients visible in this image. ` +
	`Respond with only a JSON array such as [{"label":"tomato","confidence":0.92}]. ` +
	`Use short lowercase English or Filipino ingredient names, a confidence between 0 and 1, and at most %d items. ` +
	`Return [] if there is no food.`

// Options OpenRouter 客戶端設定
type Options struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
	Retries   int
	MaxLabels int
}

// ImagePreparer 上傳前的圖片處理，回傳處理後的資料與 MIME 類型
type ImagePreparer interface {
	Prepare(data []byte) ([]byte, string, error)
}

// ContentPart 訊息內容片段
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL 圖片內容，使用 data URI
type ImageURL struct {
	URL string `json:"url"`
}

// Message 請求訊息
type Message struct {
	Role    string        `json:"role"`
	Content []ContentPart `json:"content"`
}

// Request 表示 API 請求
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

// Response OpenRouter 響應結構
type Response struct {
	ID      string    `json:"id"`
	Choices []Choice  `json:"choices"`
	Usage   UsageInfo `json:"usage"`
}

// Choice 選擇結構
type Choice struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
}

// UsageInfo 使用量信息
type UsageInfo struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Error 表示 API 錯誤
type Error struct {
	Error struct {
		Message string      `json:"message"`
		Type    string      `json:"type"`
		Code    interface{} `json:"code"`
	} `json:"error"`
}

// Client 以視覺模型偵測食材
type Client struct {
	http     *resty.Client
	opts     Options
	preparer ImagePreparer
}

// NewClient 創建新的 OpenRouter 客戶端，preparer 可為 nil
func NewClient(opts Options, preparer ImagePreparer) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.MaxLabels <= 0 {
		opts.MaxLabels = defaultMaxLabels
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetHeader("Authorization", "Bearer "+opts.APIKey).
		SetHeader("HTTP-Referer", "https://eatease.app").
		SetHeader("X-Title", "EatEase").
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(retryWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return !errors.Is(err, context.Canceled)
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})

	return &Client{http: client, opts: opts, preparer: preparer}
}

// Name 偵測來源名稱
func (c *Client) Name() string {
	return ProviderName
}

// Detect 將圖片送給模型並解析回傳的食材清單
func (c *Client) Detect(ctx context.Context, image []byte) ([]detection.RawDetection, error) {
	data, mime := image, http.DetectContentType(image)
	if c.preparer != nil {
		var err error
		if data, mime, err = c.preparer.Prepare(image); err != nil {
			return nil, fmt.Errorf("failed to prepare image: %w", err)
		}
	}

	req := Request{
		Model: c.opts.Model,
		Messages: []Message{{
			Role: "user",
			Content: []ContentPart{
				{Type: "text", Text: fmt.Sprintf(detectPrompt, c.opts.MaxLabels)},
				{Type: "image_url", ImageURL: &ImageURL{
					URL: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
				}},
			},
		}},
		MaxTokens: c.opts.MaxTokens,
	}

	var result Response
	var apiErr Error
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&apiErr).
		Post("/chat/completions")
	if err == nil && resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = sanitizeResponse(resp.Body())
		}
		err = fmt.Errorf("openrouter returned status %d: %s", resp.StatusCode(), msg)
	}
	common.LogExternalCall(ProviderName, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if len(result.Choices) == 0 {
		return nil, errors.New("empty choices in openrouter response")
	}

	dets, err := ParseDetections(result.Choices[0].Message.Content, c.opts.MaxLabels)
	if err != nil {
		common.LogWarn("無法解析模型回應",
			zap.String("model", c.opts.Model),
			zap.String("response", sanitizeResponse([]byte(result.Choices[0].Message.Content))),
			zap.Error(err),
		)
		return nil, err
	}

	common.LogDebug("OpenRouter 偵測完成",
		zap.String("model", c.opts.Model),
		zap.Int("detections", len(dets)),
		zap.Int("total_tokens", result.Usage.TotalTokens),
	)
	return dets, nil
}

type labelItem struct {
	Label      string   `json:"label"`
	Name       string   `json:"name"`
	Confidence *float64 `json:"confidence"`
}

// ParseDetections 解析模型回應，接受物件陣列、字串陣列或 {"ingredients": [...]}
func ParseDetections(content string, limit int) ([]detection.RawDetection, error) {
	raw := common.QuoteJSONKeys(common.ExtractJSON(content))
	if raw == "" {
		return []detection.RawDetection{}, nil
	}

	var items []labelItem
	switch raw[0] {
	case '[':
		if err := common.ParseJSON(raw, &items); err != nil {
			var names []string
			if err2 := common.ParseJSON(raw, &names); err2 != nil {
				return nil, fmt.Errorf("failed to parse detections: %w", err)
			}
			items = items[:0]
			for _, n := range names {
				items = append(items, labelItem{Label: n})
			}
		}
	case '{':
		var wrapper struct {
			Ingredients []labelItem `json:"ingredients"`
			Detections  []labelItem `json:"detections"`
		}
		if err := common.ParseJSON(raw, &wrapper); err != nil {
			return nil, fmt.Errorf("failed to parse detections: %w", err)
		}
		items = append(wrapper.Ingredients, wrapper.Detections...)
	default:
		return nil, fmt.Errorf("no JSON found in model response")
	}

	out := make([]detection.RawDetection, 0, len(items))
	for _, it := range items {
		label := it.Label
		if label == "" {
			label = it.Name
		}
		label = strings.ToLower(strings.TrimSpace(label))
		if label == "" {
			continue
		}
		conf := defaultConfidence
		if it.Confidence != nil {
			conf = min(max(*it.Confidence, 0), 1)
		}
		out = append(out, detection.RawDetection{Label: label, Confidence: conf, Source: detection.SourceLabel})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// sanitizeResponse 移除圖片資料並截斷，避免寫入日誌
func sanitizeResponse(body []byte) string {
	s := string(body)
	if strings.Contains(s, "data:image/") || strings.Contains(s, ";base64,") {
		return "[IMAGE_DATA_REMOVED]"
	}
	if len(s) > maxLoggedBodyBytes {
		return s[:maxLoggedBodyBytes] + "..."
	}
	return s
}
