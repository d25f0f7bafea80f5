package glterm

// Shader sources: a flat-quad program for cell backgrounds and the cursor,
// and a glyph-atlas sampling program for text, both driven by an
// orthographic pixel-space projection.

const quadVertexShader = `
#version 410 core
layout (location = 0) in vec2 aPos;
uniform mat4 uProjection;
uniform vec2 uOffset;
uniform vec2 uSize;
uniform vec4 uColor;
out vec4 vColor;
void main() {
    vec2 pos = aPos * uSize + uOffset;
    gl_Position = uProjection * vec4(pos, 0.0, 1.0);
    vColor = uColor;
}
` + "\x00"

const quadFragmentShader = `
#version 410 core
in vec4 vColor;
out vec4 FragColor;
void main() {
    FragColor = vColor;
}
` + "\x00"

const textVertexShader = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;
uniform mat4 uProjection;
uniform vec2 uOffset;
uniform vec2 uSize;
out vec2 vUV;
void main() {
    vec2 pos = aPos * uSize + uOffset;
    gl_Position = uProjection * vec4(pos, 0.0, 1.0);
    vUV = aUV;
}
` + "\x00"

const textFragmentShader = `
#version 410 core
in vec2 vUV;
uniform sampler2D uAtlas;
uniform vec4 uColor;
out vec4 FragColor;
void main() {
    float a = texture(uAtlas, vUV).r;
    FragColor = vec4(uColor.rgb, uColor.a * a);
}
` + "\x00"
