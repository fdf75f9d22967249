package graphics

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrShaderCompile = errors.New("shader compile failed")
	ErrShaderLink    = errors.New("shader link failed")
)

// MaxLights bounds the point-light arrays of the built-in lit material
const MaxLights = 4

const glslVersion = "#version 410 core\n"

// Attributes bound at fixed locations and matrices set by the renderer for every draw.
const vertexPrelude = `layout(location = 0) in vec3 position;
layout(location = 1) in vec3 normal;
layout(location = 2) in vec2 uv;
uniform mat4 modelMatrix;
uniform mat4 modelViewMatrix;
uniform mat4 projectionMatrix;
uniform mat4 viewMatrix;
uniform mat3 normalMatrix;
uniform vec3 cameraPosition;
`

const fragmentPrelude = `out vec4 outColor;
uniform mat4 viewMatrix;
uniform vec3 cameraPosition;
`

var (
	//go:embed shaders/standard.vert
	standardVertex string
	//go:embed shaders/standard.frag
	standardFragment string
	//go:embed shaders/line.vert
	lineVertex string
	//go:embed shaders/line.frag
	lineFragment string
)

// Material supplies a shader program and the per-draw uniforms for it
type Material interface {
	// Source returns complete GLSL programs ready to compile
	Source() (vertex, fragment string)
	bind(s *Shader, env *drawEnv) error
}

// BuildSource assembles a stage from the version line, sorted #defines, the prelude and body
func BuildSource(vertex bool, defines map[string]any, body string) string {
	var b strings.Builder
	b.WriteString(glslVersion)

	keys := make([]string, 0, len(defines))
	for k := range defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "#define %s %s\n", k, formatDefine(defines[k]))
	}

	if vertex {
		b.WriteString(vertexPrelude)
	} else {
		b.WriteString(fragmentPrelude)
	}
	b.WriteString(body)
	return b.String()
}

func formatDefine(v any) string {
	switch x := v.(type) {
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	case bool:
		if x {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(v)
	}
}

// formatFloat always yields a GLSL float literal, so 1 becomes "1.0"
func formatFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'f', -1, bits)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Uniform wraps a value so callers can mutate it between frames
type Uniform struct {
	Value any
}

type Uniforms map[string]*Uniform

// ShaderMaterial renders with user supplied GLSL. The bodies are compiled after the
// version line, Defines and the built-in attribute/matrix declarations, and must
// write their result to outColor.
type ShaderMaterial struct {
	VertexShader   string
	FragmentShader string
	Defines        map[string]any
	Uniforms       Uniforms
}

func (m *ShaderMaterial) Source() (string, string) {
	return BuildSource(true, m.Defines, m.VertexShader), BuildSource(false, m.Defines, m.FragmentShader)
}

func (m *ShaderMaterial) bind(s *Shader, env *drawEnv) error {
	var errs []error
	unit := int32(0)
	for name, u := range m.Uniforms {
		if u == nil {
			continue
		}
		if tex, ok := u.Value.(*Texture); ok {
			env.bindTexture(unit, tex)
			s.SetInt(name, unit)
			unit++
			continue
		}
		if err := s.SetUniform(name, u.Value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// StandardMaterial is a metalness/roughness lit surface with an optional color map
type StandardMaterial struct {
	Color     Color
	Roughness float32
	Metalness float32
	Map       *Texture
}

// NewStandardMaterial returns a white, fully rough, non-metallic material
func NewStandardMaterial() *StandardMaterial {
	return &StandardMaterial{Color: White, Roughness: 1, Metalness: 0}
}

func (m *StandardMaterial) Source() (string, string) {
	defines := map[string]any{"MAX_LIGHTS": MaxLights}
	return BuildSource(true, defines, standardVertex), BuildSource(false, defines, standardFragment)
}

func (m *StandardMaterial) bind(s *Shader, env *drawEnv) error {
	s.SetVector3("diffuse", m.Color.Vec3())
	s.SetFloat("roughness", m.Roughness)
	s.SetFloat("metalness", m.Metalness)

	hasMap := m.Map != nil && env.bindTexture(0, m.Map)
	s.SetBool("hasMap", hasMap)
	s.SetInt("map", 0)

	l := env.lights
	s.SetInt("lightCount", int32(len(l.positions)))
	s.SetVector3Array("lightPositions", l.positions)
	s.SetVector3Array("lightColors", l.colors)
	s.SetFloatArray("lightDistances", l.distances)
	s.SetFloatArray("lightDecays", l.decays)
	return nil
}

// LineMaterial colors line segments flat or per vertex
type LineMaterial struct {
	Color        Color
	VertexColors bool
}

func (m *LineMaterial) Source() (string, string) {
	return BuildSource(true, nil, lineVertex), BuildSource(false, nil, lineFragment)
}

func (m *LineMaterial) bind(s *Shader, env *drawEnv) error {
	s.SetVector3("diffuse", m.Color.Vec3())
	s.SetBool("vertexColors", m.VertexColors)
	return nil
}

// lightUniforms is the flattened form of the scene's point lights
type lightUniforms struct {
	positions []mgl32.Vec3
	colors    []mgl32.Vec3
	distances []float32
	decays    []float32
}

func (l *lightUniforms) add(p *PointLight) bool {
	if len(l.positions) >= MaxLights {
		return false
	}
	l.positions = append(l.positions, p.WorldPosition())
	l.colors = append(l.colors, p.Color.Vec3().Mul(p.Intensity))
	l.distances = append(l.distances, p.Distance)
	l.decays = append(l.decays, p.Decay)
	return true
}

type drawEnv struct {
	lights      lightUniforms
	bindTexture func(unit int32, t *Texture) bool
}
