package graphics

import (
	_ "embed"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	//go:embed shaders/text.vert
	textVertex string
	//go:embed shaders/text.frag
	textFragment string
)

// TextRenderer draws screen-space text from a FontAtlas on top of the current frame
type TextRenderer struct {
	atlas   *FontAtlas
	shader  *Shader
	texture uint32
	vao     uint32
	vbo     uint32
}

// NewTextRenderer uploads the atlas; a GL context must be current
func NewTextRenderer(atlas *FontAtlas) (*TextRenderer, error) {
	shader, err := NewShader(textVertex, textFragment)
	if err != nil {
		return nil, err
	}
	tr := &TextRenderer{atlas: atlas, shader: shader}

	gl.GenTextures(1, &tr.texture)
	gl.BindTexture(gl.TEXTURE_2D, tr.texture)
	// single-channel rows are not 4-byte aligned
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED,
		int32(atlas.Image.Rect.Dx()), int32(atlas.Image.Rect.Dy()),
		0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(atlas.Image.Pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenVertexArrays(1, &tr.vao)
	gl.GenBuffers(1, &tr.vbo)
	gl.BindVertexArray(tr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 4, gl.FLOAT, false, 4*4, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return tr, nil
}

// Atlas returns the glyph sheet the renderer draws from
func (tr *TextRenderer) Atlas() *FontAtlas { return tr.atlas }

// DrawLines draws lines top to bottom starting at (x, y) in framebuffer pixels.
// width and height are the framebuffer size.
func (tr *TextRenderer) DrawLines(lines []string, x, y, scale float32, color Color, width, height int) {
	var vertices []float32
	step := tr.atlas.LineHeight * scale
	baseline := y + step
	for _, line := range lines {
		vertices = append(vertices, tr.atlas.Layout(line, x, baseline, scale)...)
		baseline += step
	}
	if len(vertices) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	tr.shader.Use()
	tr.shader.SetMatrix4("projection", mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1))
	tr.shader.SetVector3("textColor", color.Vec3())
	tr.shader.SetInt("atlas", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tr.texture)

	gl.BindVertexArray(tr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	// orphan then fill to avoid stalls on the dynamic buffer
	size := len(vertices) * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.STREAM_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(vertices))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/4))
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
}

func (tr *TextRenderer) Dispose() {
	gl.DeleteBuffers(1, &tr.vbo)
	gl.DeleteVertexArrays(1, &tr.vao)
	gl.DeleteTextures(1, &tr.texture)
	tr.shader.Delete()
}
