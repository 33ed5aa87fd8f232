package spineflow

import (
	"fmt"
	"sort"
)

// Param names. These are the stable contract between the coordinator and
// anything that reads or overrides a frame's outputs.
const (
	ParamProgress          = "progress"
	ParamPathOffset        = "pathOffset"
	ParamMaxFlowOffset     = "maxFlowOffset"
	ParamDashOffset        = "dashOffset"
	ParamIngredientOpacity = "ingredientOpacity"
	ParamIngredientScale   = "ingredientScale"
	ParamAlphaTransition   = "alphaTransition"
	ParamCameraY           = "cameraY"
	ParamBackdropColorMix  = "backdropColorMix"
	ParamBackdropTime      = "backdropTime"
)

// Params is everything one frame publishes.
type Params struct {
	Progress          float64 `json:"progress"`
	PathOffset        float64 `json:"pathOffset"`
	MaxFlowOffset     float64 `json:"maxFlowOffset"`
	DashOffset        float64 `json:"dashOffset"`
	IngredientOpacity float64 `json:"ingredientOpacity"`
	IngredientScale   float64 `json:"ingredientScale"`
	AlphaTransition   float64 `json:"alphaTransition"`
	CameraY           float64 `json:"cameraY"`
	BackdropColorMix  float64 `json:"backdropColorMix"`
	BackdropTime      float64 `json:"backdropTime"`

	FollowerPosition Vec3 `json:"followerPosition"`
	FollowerRotation Quat `json:"followerRotation"`
}

func (p *Params) field(name string) *float64 {
	switch name {
	case ParamProgress:
		return &p.Progress
	case ParamPathOffset:
		return &p.PathOffset
	case ParamMaxFlowOffset:
		return &p.MaxFlowOffset
	case ParamDashOffset:
		return &p.DashOffset
	case ParamIngredientOpacity:
		return &p.IngredientOpacity
	case ParamIngredientScale:
		return &p.IngredientScale
	case ParamAlphaTransition:
		return &p.AlphaTransition
	case ParamCameraY:
		return &p.CameraY
	case ParamBackdropColorMix:
		return &p.BackdropColorMix
	case ParamBackdropTime:
		return &p.BackdropTime
	}
	return nil
}

// Get returns the named scalar parameter.
func (p *Params) Get(name string) (float64, error) {
	f := p.field(name)
	if f == nil {
		return 0, fmt.Errorf("get %q: %w", name, ErrUnknownParam)
	}
	return *f, nil
}

// Set overrides the named scalar parameter.
func (p *Params) Set(name string, v float64) error {
	f := p.field(name)
	if f == nil {
		return fmt.Errorf("set %q: %w", name, ErrUnknownParam)
	}
	*f = v
	return nil
}

// Names returns every scalar parameter name, sorted.
func (p *Params) Names() []string {
	names := []string{
		ParamProgress, ParamPathOffset, ParamMaxFlowOffset, ParamDashOffset,
		ParamIngredientOpacity, ParamIngredientScale, ParamAlphaTransition,
		ParamCameraY, ParamBackdropColorMix, ParamBackdropTime,
	}
	sort.Strings(names)
	return names
}

// Inspector sees each frame's parameters before they reach the scene and may
// overwrite them, e.g. to pin a value while tuning.
type Inspector interface {
	Observe(p *Params)
}

// InspectorFunc adapts a function to Inspector.
type InspectorFunc func(p *Params)

// Observe calls f(p).
func (f InspectorFunc) Observe(p *Params) { f(p) }

// Overrides is an Inspector that pins parameters to fixed values.
type Overrides map[string]float64

// Observe writes every override into p. Unknown names are logged and
// skipped.
func (o Overrides) Observe(p *Params) {
	for name, v := range o {
		if err := p.Set(name, v); err != nil {
			Logger().Warn("spineflow: override", "error", err)
		}
	}
}
