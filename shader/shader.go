package shader

// TimeUniform is the name of the float uniform both stages read.
const TimeUniform = "_Time"

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const vertexShaderSourceGL = `#version 410 core
layout (location = 0) in vec3 vPos;
layout (location = 1) in vec4 vCol;
out vec4 Color;
uniform float _Time;
void main() {
    Color = vCol;
    gl_Position = vec4(vPos.x * abs(sin(_Time * 0.25)), vPos.y * abs(cos(_Time * 0.25)), vPos.z, 1.0);
}
`

const fragmentShaderSourceGL = `#version 410 core
in vec4 Color;
out vec4 FragColor;
uniform float _Time;
void main() {
    FragColor = abs(sin(_Time)) * Color;
}
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

const vertexShaderSourceGLES = `#version 300 es
precision highp float;
layout (location = 0) in vec3 vPos;
layout (location = 1) in vec4 vCol;
out vec4 Color;
uniform float _Time;
void main() {
    Color = vCol;
    gl_Position = vec4(vPos.x * abs(sin(_Time * 0.25)), vPos.y * abs(cos(_Time * 0.25)), vPos.z, 1.0);
}
`

const fragmentShaderSourceGLES = `#version 300 es
precision highp float;
in vec4 Color;
out vec4 FragColor;
uniform float _Time;
void main() {
    FragColor = abs(sin(_Time)) * Color;
}
`

// ────────────────────────────────── Public API ─────────────────────────────────

func GetVertexShader(isGLES bool) string {
	if isGLES {
		return vertexShaderSourceGLES
	}
	return vertexShaderSourceGL
}

func GetFragmentShader(isGLES bool) string {
	if isGLES {
		return fragmentShaderSourceGLES
	}
	return fragmentShaderSourceGL
}
