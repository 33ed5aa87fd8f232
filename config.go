package spineflow

import "time"

// Config tunes a Coordinator. Zero fields take their defaults, so a partial
// Config (or a partial [config] table in a layout file) is always usable.
type Config struct {
	// VerticalOffsetUnit is the synthetic spacing between screens and the
	// handle distance of the bridges (default: the mesh height).
	VerticalOffsetUnit float64 `toml:"vertical_offset_unit"`
	// MaxOffsetDecimals is the truncation precision of maxFlowOffset
	// (default 3).
	MaxOffsetDecimals int `toml:"max_offset_decimals"`

	SmoothingFactor    float64 `toml:"smoothing_factor"`    // default 0.2
	SmoothingThreshold float64 `toml:"smoothing_threshold"` // default 0.001

	// ReferenceUp is the follower's rest direction (default 0,-1,0).
	ReferenceUp Vec3 `toml:"reference_up"`

	DashRatio              float64 `toml:"dash_ratio"`               // default 0.88
	IngredientMinScale     float64 `toml:"ingredient_min_scale"`     // default 0
	IngredientTextureWidth float64 `toml:"ingredient_texture_width"` // default 800
	AlphaTransitionMax     float64 `toml:"alpha_transition_max"`     // default 1.35
	LayerActivation        float64 `toml:"layer_activation"`         // default 0.5

	MeshWidthSegments   int `toml:"mesh_width_segments"`   // default 1
	MeshHeightSegments  int `toml:"mesh_height_segments"`  // default 20
	CurveArcDivisions   int `toml:"curve_arc_divisions"`   // default 200
	MotionLineDivisions int `toml:"motion_line_divisions"` // default 200

	// Intro tweens the flow in from IntroFrom to 0 when the coordinator is
	// built. IntroFrom is a fraction of maxFlowOffset.
	Intro         bool          `toml:"intro"`
	IntroFrom     float64       `toml:"intro_from"`     // default 0.5
	IntroDuration time.Duration `toml:"intro_duration"` // default 2s

	BackdropColorSpeed    float64       `toml:"backdrop_color_speed"`    // default 0.005
	BackdropTimeEvery     int           `toml:"backdrop_time_every"`     // default 25 frames
	BackdropTweenDuration time.Duration `toml:"backdrop_tween_duration"` // default 1s

	// FrameRate is the frame rate dt is assumed to follow when callers pass
	// no duration (default 60).
	FrameRate int `toml:"frame_rate"`
}

// DefaultConfig returns a Config with every default filled in, except
// VerticalOffsetUnit, which depends on the mesh.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.MaxOffsetDecimals <= 0 {
		c.MaxOffsetDecimals = DefaultMaxOffsetDecimals
	}
	if c.SmoothingFactor <= 0 {
		c.SmoothingFactor = DefaultSmoothingFactor
	}
	if c.SmoothingThreshold <= 0 {
		c.SmoothingThreshold = DefaultSmoothingThreshold
	}
	if c.ReferenceUp == (Vec3{}) {
		c.ReferenceUp = DefaultReferenceUp
	}
	if c.DashRatio <= 0 {
		c.DashRatio = DefaultDashRatio
	}
	if c.IngredientTextureWidth <= 0 {
		c.IngredientTextureWidth = DefaultIngredientTextureWidth
	}
	if c.AlphaTransitionMax <= 0 {
		c.AlphaTransitionMax = DefaultAlphaTransitionMax
	}
	if c.LayerActivation <= 0 {
		c.LayerActivation = DefaultLayerActivation
	}
	if c.MeshWidthSegments <= 0 {
		c.MeshWidthSegments = 1
	}
	if c.MeshHeightSegments <= 0 {
		c.MeshHeightSegments = 20
	}
	if c.CurveArcDivisions <= 0 {
		c.CurveArcDivisions = DefaultArcDivisions
	}
	if c.MotionLineDivisions <= 0 {
		c.MotionLineDivisions = DefaultMotionLineDivisions
	}
	if c.IntroFrom <= 0 {
		c.IntroFrom = 0.5
	}
	if c.IntroDuration <= 0 {
		c.IntroDuration = 2 * time.Second
	}
	if c.BackdropColorSpeed <= 0 {
		c.BackdropColorSpeed = DefaultBackdropColorSpeed
	}
	if c.BackdropTimeEvery <= 0 {
		c.BackdropTimeEvery = DefaultBackdropTimeEvery
	}
	if c.BackdropTweenDuration <= 0 {
		c.BackdropTweenDuration = DefaultBackdropTweenDuration
	}
	if c.FrameRate <= 0 {
		c.FrameRate = 60
	}
	return c
}

// frameDuration is the nominal duration of one frame.
func (c Config) frameDuration() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}

// layerRange is the activation range shared by the secondary layers.
func (c Config) layerRange() ProgressRange {
	return ProgressRange{Min: c.LayerActivation, Max: 1}
}
