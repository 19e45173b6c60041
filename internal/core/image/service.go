package image

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"path/filepath"
	"strings"

	_ "image/gif" // 支援 GIF
	_ "image/png" // 支援 PNG

	"eatease-backend/internal/infrastructure/config"
	"eatease-backend/internal/pkg/common"

	_ "golang.org/x/image/bmp" // 支援 BMP
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // 支援 WebP
)

const (
	// DefaultMaxSizeBytes 上傳圖片大小上限
	DefaultMaxSizeBytes = 10 << 20
	// DefaultMaxDimension 送出偵測前的最長邊
	DefaultMaxDimension = 1600

	jpegQuality = 85
)

// allowedExtensions 允許上傳的副檔名
var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"bmp":  true,
}

// supportedFormats 可解碼的圖片格式
var supportedFormats = map[string]bool{
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"bmp":  true,
	"webp": true,
}

// Service 圖片處理服務
type Service struct {
	maxSizeBytes int64
	maxDimension int
}

// NewService 創建新的圖片處理服務
func NewService(cfg config.ImageConfig) *Service {
	if cfg.MaxSizeBytes <= 0 {
		cfg.MaxSizeBytes = DefaultMaxSizeBytes
	}
	if cfg.MaxDimension <= 0 {
		cfg.MaxDimension = DefaultMaxDimension
	}
	return &Service{maxSizeBytes: cfg.MaxSizeBytes, maxDimension: cfg.MaxDimension}
}

// MaxSizeBytes 上傳大小上限
func (s *Service) MaxSizeBytes() int64 {
	return s.maxSizeBytes
}

// AllowedFile 檢查副檔名是否允許
func AllowedFile(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	return allowedExtensions[ext]
}

// ValidateUpload 檢查上傳檔名與宣告的大小
func (s *Service) ValidateUpload(filename string, size int64) error {
	if strings.TrimSpace(filename) == "" {
		return common.ErrNoImageSelected
	}
	if !AllowedFile(filename) {
		return common.ErrInvalidImageType
	}
	if size > s.maxSizeBytes {
		return common.ErrInvalidImageSize
	}
	return nil
}

// ReadUpload 讀取上傳內容，超過上限時回傳 ErrInvalidImageSize
func (s *Service) ReadUpload(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSizeBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if int64(len(data)) > s.maxSizeBytes {
		return nil, common.ErrInvalidImageSize
	}
	if len(data) == 0 {
		return nil, common.ErrNoImage
	}
	return data, nil
}

// Validate 解析圖片標頭，回傳格式名稱
func (s *Service) Validate(data []byte) (string, error) {
	if int64(len(data)) > s.maxSizeBytes {
		return "", common.ErrInvalidImageSize
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", common.ErrInvalidImageFormat.Wrap(err)
	}
	if !supportedFormats[format] {
		return "", common.ErrInvalidImageFormat.WithMessage(fmt.Sprintf("unsupported image format: %s", format))
	}
	return format, nil
}

// Prepare 將圖片縮到最長邊以內；JPEG 與 PNG 未超過尺寸時原樣回傳，其餘轉為 JPEG
func (s *Service) Prepare(data []byte) ([]byte, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", common.ErrInvalidImageFormat.Wrap(err)
	}

	fits := cfg.Width <= s.maxDimension && cfg.Height <= s.maxDimension
	if fits && (format == "jpeg" || format == "png") {
		return data, "image/" + format, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", common.ErrInvalidImageFormat.Wrap(err)
	}

	img := src
	if !fits {
		w, h := scaledSize(cfg.Width, cfg.Height, s.maxDimension)
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
		img = dst
	}

	// 將圖片轉換為 JPEG 格式
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("failed to encode image as JPEG: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}

// scaledSize 等比例縮放，使最長邊等於 limit
func scaledSize(w, h, limit int) (int, int) {
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}
