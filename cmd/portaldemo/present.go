// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"portalkit/glh"
	"portalkit/portal"
	"portalkit/rtarget"
	"portalkit/window"
)

const (
	vertexSourcePresent = `
#version 410
in vec2 position;
in vec2 texcoord;
out vec2 Texcoord;
uniform vec2 offset;
uniform vec2 scale;

void main() {
	Texcoord = texcoord;
	gl_Position = vec4(position * scale + offset, 0.0, 1.0);
}
`
	fragmentSourcePresent = `
#version 410
in vec2 Texcoord;
out vec4 frag_color;
uniform sampler2D tex;

void main() {
  frag_color = texture(tex, Texcoord);
}
`
)

// presenter blits the capture targets of both portals as insets on
// the default framebuffer. Must run on the main thread.
type presenter struct {
	prog     *glh.Program
	vao      *glh.VertexArray
	vbo      *glh.Buffer
	ebo      *glh.Buffer
	position uint32
	texcoord uint32
	offset   int32
	scale    int32
}

func newPresenter() (*presenter, error) {
	prog, err := glh.NewProgram(vertexSourcePresent, fragmentSourcePresent)
	if err != nil {
		return nil, err
	}
	p := &presenter{
		prog: prog,
		vao:  glh.NewVertexArray(),
		vbo:  glh.NewBuffer(glh.ArrayBuffer),
		ebo:  glh.NewBuffer(glh.ElementArrayBuffer),
	}
	vertices := []float32{
		// position, texcoord
		-1, 1, 0, 1, // top-left
		1, 1, 1, 1, // top-right
		1, -1, 1, 0, // bottom-right
		-1, -1, 0, 0, // bottom-left
	}
	elements := []uint32{
		0, 1, 2,
		2, 3, 0,
	}
	p.vao.Bind()
	p.vbo.Bind()
	p.vbo.SetData(4*len(vertices), glh.Ptr(vertices))
	p.ebo.Bind()
	p.ebo.SetData(4*len(elements), glh.Ptr(elements))
	p.position = prog.GetAttribLocation("position")
	p.texcoord = prog.GetAttribLocation("texcoord")
	p.offset = prog.GetUniformLocation("offset")
	p.scale = prog.GetUniformLocation("scale")
	return p, nil
}

func (p *presenter) drawInset(t rtarget.ColorTarget, ox, oy float32) {
	gl.Uniform2f(p.offset, ox, oy)
	gl.Uniform2f(p.scale, 0.4, 0.4)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, uint32(t.Handle()))
	gl.DrawElements(gl.TRIANGLES, 6, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (p *presenter) frame(a, b *portal.Portal) {
	w, h := window.Size()
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(w), int32(h))
	gl.ClearColor(0.05, 0.05, 0.07, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	p.prog.Use()
	p.vao.Bind()
	p.ebo.Bind()
	p.vbo.Bind()
	gl.EnableVertexAttribArray(p.position)
	gl.VertexAttribPointer(p.position, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(p.texcoord)
	gl.VertexAttribPointer(p.texcoord, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))

	if left, _, ok := a.Targets(); ok {
		p.drawInset(left, -0.5, 0)
	}
	if left, _, ok := b.Targets(); ok {
		p.drawInset(left, 0.5, 0)
	}
}
