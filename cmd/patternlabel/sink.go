package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/seqsense/patternlabel/depth/mask"
)

// pngSink writes masks to dir as <frame>_<name>.png.
type pngSink struct {
	dir    string
	frame  int
	logger *zap.Logger
}

func (s *pngSink) path(name string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%06d_%s.png", s.frame, name))
}

func (s *pngSink) Mask(name string, m *mask.Mask) {
	path := s.path(name)
	if err := s.write(path, m); err != nil {
		s.logger.Warn("failed to write debug mask", zap.String("path", path), zap.Error(err))
	}
}

func (s *pngSink) write(path string, m *mask.Mask) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, mask.Gray(m)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
