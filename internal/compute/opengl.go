package compute

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// fieldShaderSrc is the distance estimator as a compute shader, one
// invocation per point. It must stay numerically identical to
// fractal.Estimate.
const fieldShaderSrc = `#version 430

layout(local_size_x = 256) in;

layout(std430, binding = 0) buffer Points { vec4 points[]; };
layout(std430, binding = 1) buffer Dists  { float dists[]; };

uniform float slice;
uniform vec4 c;
uniform int maxIter;
uniform int numPoints;

vec4 quatSq(vec4 q) {
    return vec4(
        q.x*q.x - q.y*q.y - q.z*q.z - q.w*q.w,
        2.0*q.x*q.y,
        2.0*q.x*q.z,
        2.0*q.x*q.w);
}

void main() {
    uint i = gl_GlobalInvocationID.x;
    if (i >= uint(numPoints)) return;

    vec4 z = vec4(points[i].xyz, slice);
    float dr = 1.0;
    float r = length(z);
    int iter = min(maxIter, 512);
    for (int n = 0; n < iter; n++) {
        if (r > 4.0) break;
        dr = 2.0 * r * dr;
        z = quatSq(z) + c;
        r = length(z);
    }
    dists[i] = 0.5 * abs(log(max(r, 1e-6))) * r / max(dr, 1e-6);
}
`

type OpenGLBackend struct {
	Program     uint32
	SSBOIn      uint32
	SSBOOut     uint32
	Capacity    int
	Initialized bool
}

func NewOpenGLBackend(capacity int) *OpenGLBackend {
	return &OpenGLBackend{Capacity: capacity}
}

func (c *OpenGLBackend) Name() string    { return "opengl" }
func (c *OpenGLBackend) Available() bool { return c.Initialized }

// Init compiles the field shader and allocates the point/distance
// buffers. It needs a current GL context.
func (c *OpenGLBackend) Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to init opengl: %v", err)
	}

	program, err := createComputeProgram(fieldShaderSrc)
	if err != nil {
		return err
	}
	c.Program = program

	gl.GenBuffers(1, &c.SSBOIn)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, c.SSBOIn)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, c.Capacity*4*4, nil, gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 0, c.SSBOIn)

	gl.GenBuffers(1, &c.SSBOOut)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, c.SSBOOut)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, c.Capacity*4, nil, gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 1, c.SSBOOut)

	c.Initialized = true
	return nil
}

func (c *OpenGLBackend) EvalField(points []float64, slice float64, cc [4]float64, maxIter int) []float64 {
	n := len(points) / 3
	if !c.Initialized || n > c.Capacity {
		cpu := NewCPUBackend()
		return cpu.EvalField(points, slice, cc, maxIter)
	}

	// Points are padded to vec4 for std430 alignment.
	upload := make([]float32, n*4)
	for i := 0; i < n; i++ {
		upload[i*4] = float32(points[i*3])
		upload[i*4+1] = float32(points[i*3+1])
		upload[i*4+2] = float32(points[i*3+2])
	}

	gl.UseProgram(c.Program)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, c.SSBOIn)
	gl.BufferSubData(gl.SHADER_STORAGE_BUFFER, 0, len(upload)*4, gl.Ptr(upload))

	gl.Uniform1f(gl.GetUniformLocation(c.Program, gl.Str("slice\x00")), float32(slice))
	gl.Uniform4f(gl.GetUniformLocation(c.Program, gl.Str("c\x00")),
		float32(cc[0]), float32(cc[1]), float32(cc[2]), float32(cc[3]))
	gl.Uniform1i(gl.GetUniformLocation(c.Program, gl.Str("maxIter\x00")), int32(maxIter))
	gl.Uniform1i(gl.GetUniformLocation(c.Program, gl.Str("numPoints\x00")), int32(n))

	numGroups := (n + 255) / 256
	gl.DispatchCompute(uint32(numGroups), 1, 1)
	gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT)

	download := make([]float32, n)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, c.SSBOOut)
	gl.GetBufferSubData(gl.SHADER_STORAGE_BUFFER, 0, n*4, gl.Ptr(download))

	out := make([]float64, n)
	for i, v := range download {
		out[i] = float64(v)
	}
	return out
}

func (c *OpenGLBackend) Cleanup() {
	if !c.Initialized {
		return
	}
	gl.DeleteBuffers(1, &c.SSBOIn)
	gl.DeleteBuffers(1, &c.SSBOOut)
	gl.DeleteProgram(c.Program)
	c.Initialized = false
}

func createComputeProgram(source string) (uint32, error) {
	content := source + "\x00"

	shader := gl.CreateShader(gl.COMPUTE_SHADER)
	csources, free := gl.Strs(content)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to compile compute shader: %v", log)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, shader)
	gl.LinkProgram(program)

	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		return 0, fmt.Errorf("failed to link program")
	}

	gl.DeleteShader(shader)
	return program, nil
}
