package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/snmishra/xcircuit-qt-sub002/internal/document"
	"github.com/snmishra/xcircuit-qt-sub002/internal/geom"
)

type Config struct {
	Port     int    `envconfig:"XC_PORT" default:"8080"`
	LogLevel string `envconfig:"XC_LOG_LEVEL" default:"info"`

	SnapOn     bool    `envconfig:"XC_SNAP" default:"true"`
	GridSpace  float32 `envconfig:"XC_GRID_SPACE" default:"32"`
	SnapSpace  float32 `envconfig:"XC_SNAP_SPACE" default:"16"`
	PinPointOn bool    `envconfig:"XC_PIN_POINT_ON" default:"false"`

	ViewWidth  int     `envconfig:"XC_VIEW_WIDTH" default:"1024"`
	ViewHeight int     `envconfig:"XC_VIEW_HEIGHT" default:"768"`
	ViewScale  float32 `envconfig:"XC_VIEW_SCALE" default:"0.5"`

	TextUnitsPerPixel float64 `envconfig:"XC_TEXT_UNITS_PER_PIXEL" default:"2.5"`
	MaxUploadMB       int64   `envconfig:"XC_MAX_UPLOAD_MB" default:"10"`
	AllowedOrigins    string  `envconfig:"XC_ALLOWED_ORIGINS" default:"localhost:5173,localhost:3000"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.ViewScale <= 0 {
		return nil, fmt.Errorf("XC_VIEW_SCALE must be positive, got %g", cfg.ViewScale)
	}
	if cfg.SnapSpace <= 0 {
		return nil, fmt.Errorf("XC_SNAP_SPACE must be positive, got %g", cfg.SnapSpace)
	}
	return &cfg, nil
}

// Snap returns the rescale snapping settings.
func (c *Config) Snap() document.Snap {
	return document.Snap{On: c.SnapOn, GridSpace: c.GridSpace, SnapSpace: c.SnapSpace}
}

// View returns the page area visible in a window of ViewWidth x ViewHeight
// pixels at ViewScale pixels per unit, centred on the origin.
func (c *Config) View() geom.BBox {
	w := int(float32(c.ViewWidth) / c.ViewScale)
	h := int(float32(c.ViewHeight) / c.ViewScale)
	return geom.BBox{LowerLeft: geom.Pt(-w/2, -h/2), Width: w, Height: h}
}

// Level returns the slog level named by LogLevel, defaulting to info.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Origins returns the websocket origin patterns.
func (c *Config) Origins() []string {
	var out []string
	for o := range strings.SplitSeq(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
