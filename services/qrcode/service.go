package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
	"github.com/tech-arch1tect/mfakit/config"
	"github.com/tech-arch1tect/mfakit/services/logging"
	"go.uber.org/zap"
)

var (
	ErrEmptyContent = errors.New("QR code content cannot be empty")
	ErrGeneration   = errors.New("failed to generate QR code")
)

const defaultSize = 256

type Service struct {
	config *config.Config
	logger *logging.Service
}

func NewService(cfg *config.Config, logger *logging.Service) *Service {
	return &Service{
		config: cfg,
		logger: logger,
	}
}

// GeneratePNG renders content as a PNG QR image at the configured size.
func (s *Service) GeneratePNG(content string) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	size := s.config.QRCode.Size
	if size <= 0 {
		size = defaultSize
	}

	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("QR code generation failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	return png, nil
}

// GenerateDataURL renders content as a base64 PNG data URL ready for direct
// embedding in an <img> tag.
func (s *Service) GenerateDataURL(content string) (string, error) {
	png, err := s.GeneratePNG(content)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(png)), nil
}
