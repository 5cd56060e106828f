package forecast

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strings"

	perr "crimecast/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

// Kind names the model family an artifact carries
type Kind string

const (
	// KindConstant predicts a single value
	KindConstant Kind = "constant"
	// KindAdditive predicts trend plus Fourier seasonality
	KindAdditive Kind = "additive"
)

// Artifact is the on-disk form of a fitted model. JSON artifacts decode too since JSON is YAML
type Artifact struct {
	Kind        Kind            `yaml:"kind" json:"kind"`
	Name        string          `yaml:"name,omitempty" json:"name,omitempty"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	Constant    *ConstantParams `yaml:"constant,omitempty" json:"constant,omitempty"`
	Additive    *AdditiveParams `yaml:"additive,omitempty" json:"additive,omitempty"`
	Fit         *FitStats       `yaml:"fit,omitempty" json:"fit,omitempty"`
}

// ConstantParams configure KindConstant
type ConstantParams struct {
	Value *float64 `yaml:"value" json:"value"`
}

// AdditiveParams configure KindAdditive. Origin is a YYYY-MM-DD date
type AdditiveParams struct {
	Origin    string     `yaml:"origin" json:"origin"`
	Intercept float64    `yaml:"intercept" json:"intercept"`
	Slope     float64    `yaml:"slope" json:"slope"`
	Yearly    []Harmonic `yaml:"yearly,omitempty" json:"yearly,omitempty"`
	Weekly    []Harmonic `yaml:"weekly,omitempty" json:"weekly,omitempty"`
	Floor     *float64   `yaml:"floor,omitempty" json:"floor,omitempty"`
}

// Decode reads one artifact strictly; unknown fields are rejected
func Decode(r io.Reader) (Artifact, error) {
	var a Artifact
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&a); err != nil {
		if errors.Is(err, io.EOF) {
			return Artifact{}, perr.Corruptf("artifact is empty")
		}
		return Artifact{}, perr.Wrap(err, perr.ErrorCodeCorrupt, "decode artifact")
	}
	return a, nil
}

// DecodeBytes is Decode over a byte slice
func DecodeBytes(b []byte) (Artifact, error) { return Decode(bytes.NewReader(b)) }

// Encode writes a as YAML
func Encode(w io.Writer, a Artifact) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(a); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "encode artifact")
	}
	return enc.Close()
}

// Model validates the artifact parameters and builds the model they describe
func (a Artifact) Model() (Model, error) {
	switch Kind(strings.ToLower(string(a.Kind))) {
	case KindConstant:
		if a.Constant == nil || a.Constant.Value == nil {
			return nil, perr.Corruptf("constant artifact has no value")
		}
		if !finite(*a.Constant.Value) {
			return nil, perr.Corruptf("constant value is not finite")
		}
		return Constant{Value: *a.Constant.Value}, nil

	case KindAdditive:
		p := a.Additive
		if p == nil {
			return nil, perr.Corruptf("additive artifact has no parameters")
		}
		origin, err := ParseDate(p.Origin)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeCorrupt, "additive origin")
		}
		coef := []float64{p.Intercept, p.Slope}
		for _, h := range append(append([]Harmonic(nil), p.Yearly...), p.Weekly...) {
			coef = append(coef, h.Sin, h.Cos)
		}
		if p.Floor != nil {
			coef = append(coef, *p.Floor)
		}
		for _, c := range coef {
			if !finite(c) {
				return nil, perr.Corruptf("additive coefficient is not finite")
			}
		}
		return Additive{
			Origin:    origin,
			Intercept: p.Intercept,
			Slope:     p.Slope,
			Yearly:    p.Yearly,
			Weekly:    p.Weekly,
			Floor:     p.Floor,
		}, nil

	case "":
		return nil, perr.Corruptf("artifact has no kind")
	default:
		return nil, perr.Corruptf("unknown model kind %q", a.Kind)
	}
}

// Load decodes an artifact and builds its model in one step
func Load(r io.Reader) (Model, Artifact, error) {
	a, err := Decode(r)
	if err != nil {
		return nil, Artifact{}, err
	}
	m, err := a.Model()
	if err != nil {
		return nil, a, err
	}
	return m, a, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
