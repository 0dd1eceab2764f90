package shading

// GLSL bodies for the three shells. Each is compiled behind a header that
// carries the #version line and the palette/shell #defines (see Preprocess).

const glslVersion = "#version 330"

// auroraChunk is shared by every fragment stage. y is in model space, the
// gate uses y normalized by the shell radius.
const auroraChunk = `
float auroraWave(float y) {
    float a = sin(y * 10.0 + time) * 0.5 + 0.5;
    return a * smoothstep(0.8, 1.0, abs(y / SHELL_RADIUS));
}

vec3 auroraTerm(float y) {
    return AURORA_COLOR * auroraWave(y) * 0.3;
}
`

const surfaceVertex = `
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;

uniform mat4 mvp;
uniform mat4 matView;
uniform mat4 matNormal;

out vec2 vUv;
out vec3 vNormal;
out vec3 vPosition;

void main() {
    vUv = vertexTexCoord;
    vNormal = normalize(mat3(matView) * mat3(matNormal) * vertexNormal);
    vPosition = vertexPosition;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const surfaceFragment = `
in vec2 vUv;
in vec3 vNormal;
in vec3 vPosition;

uniform sampler2D earthTexture;
uniform float time;

out vec4 finalColor;

AURORA_CHUNK

void main() {
    vec4 texColor = texture(earthTexture, vUv);
    texColor.rgb = pow(texColor.rgb, vec3(0.9));

    float brightness = dot(texColor.rgb, vec3(0.299, 0.587, 0.114));

    vec3 enhanced;
    if (brightness >= LAND_THRESHOLD) {
        enhanced = texColor.rgb * LAND_TINT;
        enhanced += vec3(sin(vUv.x * 100.0) * sin(vUv.y * 100.0) * 0.02);
    } else {
        enhanced = texColor.rgb * OCEAN_TINT;
        enhanced += vec3(sin(vUv.x * 50.0 + time * 2.0) * sin(vUv.y * 50.0 + time * 2.0) * 0.02);
    }

    vec3 n = normalize(vNormal);
    float light = max(0.0, dot(n, normalize(vec3(1.0, 1.0, 1.0))))
                + max(0.0, dot(n, normalize(vec3(-1.0, -1.0, -1.0)))) * 0.5
                + max(0.0, dot(n, normalize(vec3(-1.0, -1.0, 0.0)))) * 0.7;
    light = pow(light, LIGHT_POWER);

    float rim = pow(1.0 - max(0.0, dot(n, vec3(0.0, 0.0, 1.0))), 1.5);

    vec3 color = enhanced * (0.85 + 0.15 * light) + rim * RIM_COLOR + auroraTerm(vPosition.y);
    color = max(color, vec3(0.15));
    color = pow(color, vec3(0.95));

    finalColor = vec4(color, 1.0);
}
`

const atmosphereVertex = `
in vec3 vertexPosition;
in vec3 vertexNormal;

uniform mat4 mvp;
uniform mat4 matView;
uniform mat4 matNormal;

out vec3 vNormal;
out vec3 vPosition;

void main() {
    vNormal = normalize(mat3(matView) * mat3(matNormal) * vertexNormal);
    vPosition = vertexPosition;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const atmosphereFragment = `
in vec3 vNormal;
in vec3 vPosition;

uniform float time;

out vec4 finalColor;

AURORA_CHUNK

void main() {
    float facing = 0.7 - dot(vNormal, vec3(0.0, 0.0, 1.0));
    float intensity = facing * facing;

    float light = dot(vNormal, normalize(vec3(1.0, 1.0, 1.0)));
    light = light * light;

    vec3 color = ATMOSPHERE_COLOR * intensity * (0.7 + 0.3 * light) + auroraTerm(vPosition.y);
    finalColor = vec4(color, intensity * 0.3);
}
`

const glowVertex = `
in vec3 vertexPosition;
in vec3 vertexNormal;

uniform mat4 mvp;
uniform mat4 matView;
uniform mat4 matNormal;
uniform vec3 viewVector;

out float intensity;
out vec3 vPosition;

void main() {
    mat3 normalMatrix = mat3(matView) * mat3(matNormal);
    vec3 n = normalize(normalMatrix * vertexNormal);
    vec3 v = normalize(normalMatrix * viewVector);
    float facing = 0.6 - dot(n, v);
    intensity = facing * facing;
    vPosition = vertexPosition;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const glowFragment = `
in float intensity;
in vec3 vPosition;

uniform float time;

out vec4 finalColor;

AURORA_CHUNK

void main() {
    float variation = sin(time * 0.5) * 0.5 + 0.5;
    vec3 color = mix(GLOW_BASE, GLOW_PEAK, variation);
    finalColor = vec4(color * intensity + auroraTerm(vPosition.y), 1.0);
}
`
