package vision

import (
	"context"
	"fmt"
	"strings"
	"time"

	annotator "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"eatease-backend/internal/core/detection"
	"eatease-backend/internal/pkg/common"
)

const (
	// ProviderName 偵測來源名稱
	ProviderName = "google"

	defaultMaxLabels  = 20
	defaultMaxObjects = 10
	defaultTimeout    = 15 * time.Second
)

// Options Google Cloud Vision 偵測器設定
type Options struct {
	CredentialsFile string
	CredentialsJSON string
	Timeout         time.Duration
	MaxLabels       int
	MaxObjects      int
}

type annotateFunc func(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error)

// Detector 使用標籤偵測與物件定位辨識食材
type Detector struct {
	annotate annotateFunc
	closeFn  func() error
	opts     Options
}

// ClientOptions 依設定組出憑證選項，JSON 內容優先於檔案路徑
func ClientOptions(opts Options) []option.ClientOption {
	creds := strings.TrimSpace(opts.CredentialsJSON)
	if creds == "" {
		creds = strings.TrimSpace(opts.CredentialsFile)
	}
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}

// NewDetector 建立 Vision 客戶端，未提供憑證時使用 Application Default Credentials
func NewDetector(ctx context.Context, opts Options) (*Detector, error) {
	client, err := annotator.NewImageAnnotatorClient(ctx, ClientOptions(opts)...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}
	d := newDetector(func(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error) {
		return client.BatchAnnotateImages(ctx, req)
	}, opts)
	d.closeFn = client.Close
	return d, nil
}

func newDetector(annotate annotateFunc, opts Options) *Detector {
	if opts.MaxLabels <= 0 {
		opts.MaxLabels = defaultMaxLabels
	}
	if opts.MaxObjects <= 0 {
		opts.MaxObjects = defaultMaxObjects
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Detector{annotate: annotate, opts: opts}
}

// Name 偵測來源名稱
func (d *Detector) Name() string {
	return ProviderName
}

// Close 關閉底層連線
func (d *Detector) Close() error {
	if d == nil || d.closeFn == nil {
		return nil
	}
	return d.closeFn()
}

// Detect 以單次批次請求同時取得標籤與物件
func (d *Detector) Detect(ctx context.Context, image []byte) ([]detection.RawDetection, error) {
	ctx, cancel := context.WithTimeout(ctx, d.opts.Timeout)
	defer cancel()

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image: &visionpb.Image{Content: image},
			Features: []*visionpb.Feature{
				{Type: visionpb.Feature_LABEL_DETECTION, MaxResults: int32(d.opts.MaxLabels)},
				{Type: visionpb.Feature_OBJECT_LOCALIZATION, MaxResults: int32(d.opts.MaxObjects)},
			},
		}},
	}

	start := time.Now()
	resp, err := d.annotate(ctx, req)
	if err != nil {
		err = fmt.Errorf("vision BatchAnnotateImages: %w", err)
	}
	common.LogExternalCall(ProviderName, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	dets, err := ConvertResponse(resp)
	if err != nil {
		return nil, err
	}
	common.LogDebug("Vision 偵測完成", zap.Int("detections", len(dets)))
	return dets, nil
}

// ConvertResponse 將 Vision 回應轉為原始偵測結果，標籤在前、物件在後
func ConvertResponse(resp *visionpb.BatchAnnotateImagesResponse) ([]detection.RawDetection, error) {
	out := []detection.RawDetection{}
	if resp == nil || len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return out, nil
	}

	r0 := resp.Responses[0]
	if r0.Error != nil && r0.Error.Message != "" {
		return nil, fmt.Errorf("vision annotate error: %s", r0.Error.Message)
	}

	for _, l := range r0.LabelAnnotations {
		if l == nil {
			continue
		}
		label := strings.ToLower(strings.TrimSpace(l.Description))
		if label == "" {
			continue
		}
		out = append(out, detection.RawDetection{
			Label:      label,
			Confidence: float64(l.Score),
			Source:     detection.SourceLabel,
		})
	}

	for _, o := range r0.LocalizedObjectAnnotations {
		if o == nil {
			continue
		}
		label := strings.ToLower(strings.TrimSpace(o.Name))
		if label == "" {
			continue
		}
		out = append(out, detection.RawDetection{
			Label:      label,
			Confidence: float64(o.Score),
			Source:     detection.SourceObject,
			Box:        boxFromPoly(o.BoundingPoly),
		})
	}
	return out, nil
}

// boxFromPoly 取左上與右下頂點
func boxFromPoly(p *visionpb.BoundingPoly) *detection.BoundingBox {
	if p == nil || len(p.NormalizedVertices) < 3 {
		return nil
	}
	tl, br := p.NormalizedVertices[0], p.NormalizedVertices[2]
	if tl == nil || br == nil {
		return nil
	}
	return &detection.BoundingBox{
		X1: float64(tl.X),
		Y1: float64(tl.Y),
		X2: float64(br.X),
		Y2: float64(br.Y),
	}
}
