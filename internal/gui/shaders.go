package gui

// The two fragment shaders of the GPU pipeline. Both must stay
// numerically in lockstep with their CPU counterparts: raymarchFS with
// internal/march + internal/shade, taaFS with taa.Resolver.Resolve.
// Hit depth travels in the alpha channel of the main target so the
// resolve pass can reconstruct world positions without a depth texture.

const raymarchFS = `#version 330

in vec2 fragTexCoord;
out vec4 finalColor;

uniform vec2 resolution;
uniform vec2 jitter;
uniform float elapsed;

uniform vec3 camPos;
uniform vec3 camForward;
uniform vec3 camRight;
uniform vec3 camUp;
uniform float focal;
uniform mat4 viewProj;

uniform vec4 c;
uniform float slice;

// Counts, modes and flags arrive as floats; raylib's uniform API is
// float-typed. Flags are 0 or 1, modes are small whole numbers.
uniform float maxIter;

uniform float shadows;
uniform float aoOn;
uniform float specular;
uniform float smoothColor;
uniform float adaptiveStep;

uniform float clipMode;
uniform float clipDistance;

uniform float palette;
uniform float saturation;
uniform float brightness;
uniform float contrast;
uniform float phaseShift;

uniform float effectKind;
uniform float trapType;
uniform float trapRadius;
uniform float trapIntensity;
uniform float physType;
uniform float physFrequency;
uniform float physWaves;
uniform float physIntensity;
uniform float physBalance;

const float ESCAPE_RADIUS = 4.0;
const float HIT_THRESHOLD = 1e-4;
const float MAX_DIST = 150.0;
const int MAX_MARCH_STEPS = 256;
const float SAFE_STEP = 0.002;
const float CROSS_SECTION_THRESHOLD = 0.01;
const vec3 LIGHT_POS = vec3(10.0, 10.0, 10.0);

vec4 quatSq(vec4 q) {
    return vec4(
        q.x*q.x - q.y*q.y - q.z*q.z - q.w*q.w,
        2.0*q.x*q.y,
        2.0*q.x*q.z,
        2.0*q.x*q.w);
}

float estimate(vec3 p) {
    vec4 z = vec4(p, slice);
    float dr = 1.0;
    float r = length(z);
    int iters = int(maxIter + 0.5);
    for (int i = 0; i < 512; i++) {
        if (i >= iters) break;
        r = length(z);
        if (r > ESCAPE_RADIUS) break;
        dr = 2.0 * r * dr;
        z = quatSq(z) + c;
    }
    r = max(r, 1e-6);
    dr = max(dr, 1e-6);
    return abs(0.5 * log(r) * r / dr);
}

float iterCount(vec3 p) {
    vec4 z = vec4(p, slice);
    int iters = int(maxIter + 0.5);
    for (int i = 0; i < 512; i++) {
        if (i >= iters) break;
        float r = length(z);
        if (r > ESCAPE_RADIUS) {
            if (smoothColor > 0.5) {
                return float(i) - log2(log2(r)) + 4.0;
            }
            return float(i);
        }
        z = quatSq(z) + c;
    }
    return float(iters);
}

float orbitTrap(vec3 p) {
    vec4 z = vec4(p, slice);
    float minDist = 1e9;
    int iters = int(maxIter + 0.5);
    int trap = int(trapType + 0.5);
    for (int i = 0; i < 512; i++) {
        if (i >= iters) break;
        if (length(z) > ESCAPE_RADIUS) break;
        float d;
        if (trap == 1) {
            d = min(abs(z.x), min(abs(z.y), abs(z.z)));
        } else if (trap == 2) {
            d = abs(length(z) - trapRadius);
        } else if (trap == 3) {
            d = min(length(z.xy), min(length(z.yz), length(z.zx)));
        } else {
            d = length(z);
        }
        minDist = min(minDist, d);
        z = quatSq(z) + c;
    }
    if (minDist > 1e8) return 1.0;
    return clamp(minDist / ESCAPE_RADIUS, 0.0, 1.0);
}

float stepSize(float d) {
    if (adaptiveStep < 0.5) return d;
    if (d < 0.01) return 0.5 * d;
    if (d > 0.5) return 2.0 * d;
    return d * (1.0 + (d - 0.01) * 1.8);
}

// March returns the hit distance, negative on a miss.
float march(vec3 origin, vec3 dir) {
    float t = 0.0;
    bool peeling = false;
    bool peeled = false;
    int clip = int(clipMode + 0.5);
    for (int i = 0; i < MAX_MARCH_STEPS; i++) {
        vec3 p = origin + dir * t;
        float d = estimate(p);
        if (d >= HIT_THRESHOLD && peeling) {
            peeling = false;
            peeled = true;
        }
        if (d < HIT_THRESHOLD) {
            if (clip == 1 && !peeled) {
                peeling = true;
                t += SAFE_STEP;
                continue;
            }
            if (clip == 2 && abs(t - clipDistance) > CROSS_SECTION_THRESHOLD) {
                t += SAFE_STEP;
                continue;
            }
            if (clip == 3 && t > clipDistance) {
                t += SAFE_STEP;
                continue;
            }
            return t;
        }
        t += stepSize(d);
        if (t > MAX_DIST) break;
    }
    return -1.0;
}

vec3 normalAt(vec3 p) {
    const float e = 0.001;
    vec3 n = vec3(
        estimate(p + vec3(e, 0, 0)) - estimate(p - vec3(e, 0, 0)),
        estimate(p + vec3(0, e, 0)) - estimate(p - vec3(0, e, 0)),
        estimate(p + vec3(0, 0, e)) - estimate(p - vec3(0, 0, e)));
    if (length(n) < 1e-12) return vec3(0.0, 1.0, 0.0);
    return normalize(n);
}

float softShadow(vec3 p) {
    vec3 l = normalize(LIGHT_POS - p);
    float maxT = length(LIGHT_POS - p);
    float res = 1.0;
    float t = 10.0 * HIT_THRESHOLD;
    for (int i = 0; i < 32; i++) {
        if (t >= maxT) break;
        float d = estimate(p + l * t);
        if (d < 5.0 * HIT_THRESHOLD) return 0.0;
        res = min(res, 10.0 * d / t);
        t += d;
    }
    return clamp(res, 0.0, 1.0);
}

float ambientOcclusion(vec3 p, vec3 n) {
    float occ = 0.0;
    for (int i = 0; i < 5; i++) {
        float h = 0.02 + 0.12 * float(i);
        float d = estimate(p + n * h);
        if (d < h) occ += (h - d) / h;
    }
    occ = clamp(occ / 5.0, 0.0, 1.0);
    return 1.0 - occ * 0.5;
}

vec3 cosPalette(float t, vec3 a, vec3 b, vec3 cc, vec3 d) {
    return a + b * cos(6.28318530718 * (cc * t + d));
}

vec3 paletteColor(float t) {
    t = clamp(t, 0.0, 1.0);
    int pal = int(palette + 0.5);
    if (pal == 1) return clamp(vec3(3.0*t, 3.0*t - 1.0, 3.0*t - 2.0), 0.0, 1.0);
    if (pal == 2) return cosPalette(t, vec3(0.0, 0.3, 0.5), vec3(0.0, 0.4, 0.5), vec3(1.0), vec3(0.0, 0.25, 0.5));
    if (pal == 3) return cosPalette(t, vec3(0.3, 0.5, 0.4), vec3(0.5, 0.5, 0.4), vec3(1.0, 1.0, 0.7), vec3(0.1, 0.4, 0.8));
    if (pal == 4) return cosPalette(t, vec3(0.5, 0.3, 0.2), vec3(0.5, 0.3, 0.3), vec3(1.0, 0.8, 0.6), vec3(0.0, 0.1, 0.3));
    if (pal == 5) return vec3(pow(t, 0.6));
    if (pal == 6) return vec3(
        0.5 + 0.5 * sin(6.28318 * t),
        0.5 + 0.5 * sin(6.28318 * t + 2.0944),
        0.5 + 0.5 * sin(6.28318 * t + 4.18879));
    if (pal == 7) return vec3(t*t, pow(t, 1.5), sqrt(t));
    if (pal == 8) return cosPalette(t, vec3(0.2, 0.4, 0.2), vec3(0.3, 0.4, 0.2), vec3(1.0), vec3(0.1, 0.3, 0.2));
    if (pal == 9) return cosPalette(t, vec3(0.5), vec3(0.5), vec3(2.0, 1.0, 0.0), vec3(0.5, 0.2, 0.25));
    if (pal == 10) {
        float s = t * t * (3.0 - 2.0 * t);
        return mix(vec3(0.25, 0.1, 0.4), vec3(0.95, 0.75, 0.3), s);
    }
    return vec3(1.0);
}

vec3 rotateHue(vec3 col, float angle) {
    const vec3 k = vec3(0.57735026919);
    float cosA = cos(angle);
    float sinA = sin(angle);
    return col * cosA + cross(k, col) * sinA + k * dot(k, col) * (1.0 - cosA);
}

vec3 applyDynamics(vec3 col) {
    float phase = phaseShift;
    if (phase != 0.0) col = rotateHue(col, phase);
    float lum = dot(col, vec3(0.299, 0.587, 0.114));
    col = mix(vec3(lum), col, saturation);
    col *= brightness;
    col = (col - 0.5) * contrast + 0.5;
    return clamp(col, 0.0, 1.0);
}

vec3 applyOrbitTrapEffect(vec3 base, vec3 p) {
    float trap = orbitTrap(p);
    float glow = pow(1.0 - trap, 3.0);
    vec3 tint = vec3(
        0.5 + 0.5 * sin(6.28318 * trap),
        0.5 + 0.5 * sin(6.28318 * trap + 2.0944),
        0.5 + 0.5 * sin(6.28318 * trap + 4.18879));
    vec3 mixed = clamp(base * tint + tint * glow * 0.5, 0.0, 1.0);
    return mix(base, mixed, clamp(trapIntensity, 0.0, 1.0));
}

vec3 applyPhysicsEffect(vec3 base, vec3 p) {
    float f = physFrequency;
    int pt = int(physType + 0.5);
    float w;
    if (pt == 1) {
        w = sin(f * p.x) * sin(f * p.y) * sin(f * p.z);
    } else if (pt == 2) {
        w = sin(f * length(p) * physWaves - elapsed);
    } else {
        float d1 = length(p - vec3(1.0, 0.0, 0.0));
        float d2 = length(p + vec3(1.0, 0.0, 0.0));
        w = (sin(f * d1) + sin(f * d2)) * 0.5;
    }
    w = w * 0.5 + 0.5;
    vec3 warm = vec3(1.0, 0.6, 0.2);
    vec3 cold = vec3(0.2, 0.5, 1.0);
    vec3 tint = mix(cold, warm, clamp(physBalance, 0.0, 1.0));
    return clamp(mix(base, tint * w, clamp(physIntensity, 0.0, 1.0)), 0.0, 1.0);
}

void main() {
    float aspect = resolution.x / resolution.y;
    vec2 uv = fragTexCoord;
    float px = ((uv.x * resolution.x + jitter.x) / resolution.x * 2.0 - 1.0) * aspect;
    float py = 1.0 - (uv.y * resolution.y + jitter.y) / resolution.y * 2.0;
    vec3 dir = normalize(camForward * focal + camRight * px + camUp * py);

    float t = march(camPos, dir);
    if (t < 0.0) {
        float g = clamp(py * 0.5 + 0.5, 0.0, 1.0);
        finalColor = vec4(0.02 + 0.04*g, 0.02 + 0.05*g, 0.04 + 0.08*g, 1.0);
        return;
    }

    vec3 p = camPos + dir * t;
    vec3 n = normalAt(p);
    vec3 l = normalize(LIGHT_POS - p);
    float diffuse = clamp(dot(n, l), 0.0, 1.0);

    float shadow = 1.0;
    if (shadows > 0.5) shadow = softShadow(p);

    vec3 base = vec3(1.0);
    if (palette > 0.5) {
        base = paletteColor(iterCount(p) / maxIter);
    }

    vec3 col = base * (0.2 + 0.8 * diffuse * shadow);
    if (specular > 0.5) {
        vec3 h = normalize(l - dir);
        float spec = pow(clamp(dot(n, h), 0.0, 1.0), 32.0) * shadow;
        col += vec3(spec) * 0.5;
    }
    if (aoOn > 0.5) col *= ambientOcclusion(p, n);
    col = clamp(col, 0.0, 1.0);

    int effect = int(effectKind + 0.5);
    if (effect == 1) col = applyOrbitTrapEffect(col, p);
    if (effect == 2) col = applyPhysicsEffect(col, p);
    col = applyDynamics(col);

    vec4 clip = viewProj * vec4(p, 1.0);
    float depth = clip.w > 0.0 ? clamp(clip.z / clip.w * 0.5 + 0.5, 0.0, 1.0) : 1.0;
    finalColor = vec4(col, depth);
}
`

const taaFS = `#version 330

in vec2 fragTexCoord;
out vec4 finalColor;

uniform sampler2D texture0;   // current frame, depth in alpha
uniform sampler2D historyTex; // previous raw frame

uniform vec2 resolution;
uniform mat4 projInv;
uniform mat4 viewInv;
uniform mat4 prevViewProj;
uniform float blendFactor;
uniform float taaEnabled;
uniform float hasHistory;

void main() {
    vec4 current = texture(texture0, fragTexCoord);
    if (taaEnabled < 0.5 || hasHistory < 0.5) {
        finalColor = vec4(current.rgb, 1.0);
        return;
    }

    float depth = current.a;
    if (depth >= 1.0) {
        finalColor = vec4(current.rgb, 1.0);
        return;
    }

    vec2 uv = fragTexCoord;
    vec4 ndc = vec4(uv.x * 2.0 - 1.0, 1.0 - uv.y * 2.0, depth * 2.0 - 1.0, 1.0);
    vec4 viewPos = projInv * ndc;
    if (viewPos.w == 0.0) {
        finalColor = vec4(current.rgb, 1.0);
        return;
    }
    viewPos /= viewPos.w;
    vec4 world = viewInv * viewPos;

    vec4 prev = prevViewProj * world;
    if (prev.w <= 0.0) {
        finalColor = vec4(current.rgb, 1.0);
        return;
    }
    vec2 prevUV = vec2(
        prev.x / prev.w * 0.5 + 0.5,
        (1.0 - prev.y / prev.w) * 0.5);
    if (prevUV.x < 0.0 || prevUV.x > 1.0 || prevUV.y < 0.0 || prevUV.y > 1.0) {
        finalColor = vec4(current.rgb, 1.0);
        return;
    }

    vec3 history = texture(historyTex, prevUV).rgb;

    vec2 texel = 1.0 / resolution;
    vec3 minC = current.rgb;
    vec3 maxC = current.rgb;
    for (int dy = -1; dy <= 1; dy++) {
        for (int dx = -1; dx <= 1; dx++) {
            vec3 nb = texture(texture0, uv + vec2(float(dx), float(dy)) * texel).rgb;
            minC = min(minC, nb);
            maxC = max(maxC, nb);
        }
    }
    history = clamp(history, minC, maxC);

    finalColor = vec4(mix(current.rgb, history, blendFactor), 1.0);
}
`
