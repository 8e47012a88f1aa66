// Copyright (c) 2025, The Gomedia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sink

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const quadVertexShader = `#version 410 core
in vec3 position;
in vec2 texcoord;
out vec2 vtexcoord;
void main() {
	gl_Position = vec4(position, 1.0);
	vtexcoord = texcoord;
}
` + "\x00"

const quadFragmentShader = `#version 410 core
in vec2 vtexcoord;
out vec4 fragcolor;
uniform sampler2D tex;
void main() {
	fragcolor = texture(tex, vtexcoord);
}
` + "\x00"

// interleaved position (xyz) and texcoord (uv) for a fullscreen quad
var quadVertices = []float32{
	-1, -1, 0, 0, 0,
	1, -1, 0, 1, 0,
	1, 1, 0, 1, 1,
	-1, 1, 0, 0, 1,
}

var quadIndices = []uint16{0, 1, 2, 0, 2, 3}

// QuadRenderer is the default [Renderer]: it draws the frame texture
// on a fullscreen quad inside the viewport rectangle. All methods
// must run on the GL thread with a current context; the sink
// guarantees that.
type QuadRenderer struct {
	program uint32
	vao     uint32
	vbo     uint32
	ebo     uint32
	uniTex  int32
	vp      Rect
}

// NewQuadRenderer returns an uninitialized quad renderer. GL
// resources are allocated in [QuadRenderer.Init].
func NewQuadRenderer() *QuadRenderer {
	return &QuadRenderer{}
}

func (qr *QuadRenderer) Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("sink: gl init: %w", err)
	}
	prog, err := linkProgram(quadVertexShader, quadFragmentShader)
	if err != nil {
		return err
	}
	qr.program = prog
	qr.uniTex = gl.GetUniformLocation(prog, gl.Str("tex\x00"))

	gl.GenVertexArrays(1, &qr.vao)
	gl.BindVertexArray(qr.vao)

	gl.GenBuffers(1, &qr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, qr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(quadVertices), gl.Ptr(quadVertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &qr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, qr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 2*len(quadIndices), gl.Ptr(quadIndices), gl.STATIC_DRAW)

	pos := uint32(gl.GetAttribLocation(prog, gl.Str("position\x00")))
	gl.EnableVertexAttribArray(pos)
	gl.VertexAttribPointerWithOffset(pos, 3, gl.FLOAT, false, 5*4, 0)
	tc := uint32(gl.GetAttribLocation(prog, gl.Str("texcoord\x00")))
	gl.EnableVertexAttribArray(tc)
	gl.VertexAttribPointerWithOffset(tc, 2, gl.FLOAT, false, 5*4, 3*4)

	gl.BindVertexArray(0)
	return nil
}

func (qr *QuadRenderer) Viewport(r Rect) {
	qr.vp = r
}

func (qr *QuadRenderer) Draw(tex uint32) error {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Viewport(int32(qr.vp.X), int32(qr.vp.Y), int32(qr.vp.Width), int32(qr.vp.Height))

	gl.UseProgram(qr.program)
	gl.BindVertexArray(qr.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.Uniform1i(qr.uniTex, 0)
	gl.DrawElements(gl.TRIANGLES, int32(len(quadIndices)), gl.UNSIGNED_SHORT, gl.PtrOffset(0))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindVertexArray(0)
	gl.UseProgram(0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("sink: gl draw error 0x%x", e)
	}
	return nil
}

func (qr *QuadRenderer) Cleanup() {
	if qr.program != 0 {
		gl.DeleteProgram(qr.program)
		qr.program = 0
	}
	if qr.vbo != 0 {
		gl.DeleteBuffers(1, &qr.vbo)
		qr.vbo = 0
	}
	if qr.ebo != 0 {
		gl.DeleteBuffers(1, &qr.ebo)
		qr.ebo = 0
	}
	if qr.vao != 0 {
		gl.DeleteVertexArrays(1, &qr.vao)
		qr.vao = 0
	}
}

func compileShader(src string, typ uint32) (uint32, error) {
	sh := gl.CreateShader(typ)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(sh, 1, csrc, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(sh, n, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("sink: compile shader: %v", strings.TrimRight(log, "\x00"))
	}
	return sh, nil
}

func linkProgram(vsrc, fsrc string) (uint32, error) {
	vs, err := compileShader(vsrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fsrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetProgramInfoLog(prog, n, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("sink: link program: %v", strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}
