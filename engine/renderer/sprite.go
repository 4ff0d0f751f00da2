package renderer

import (
	"image/color"

	"github.com/Carmen-Shannon/imgsphere/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// spriteUniform mirrors the Sprite struct in spriteShaderSource. Rect is in surface pixels.
type spriteUniform struct {
	Rect   [4]float32
	Tint   [4]float32
	Params [4]float32 // opacity, rounded, unused, unused
}

// spriteSlot owns the GPU resources for one drawable: a uniform buffer, its current texture,
// and the bind group tying them together. Each slot is drawn at most once per frame.
type spriteSlot struct {
	label     string
	uniform   *wgpu.Buffer
	texture   *wgpu.Texture
	view      *wgpu.TextureView
	bindGroup *wgpu.BindGroup

	// contentKey identifies what is currently uploaded, so unchanged content is not re-sent.
	contentKey string
	lastFrame  uint64
}

func newSpriteUniform(r common.Rect, scroll float64, tint color.RGBA, opacity float64, rounded bool) spriteUniform {
	u := spriteUniform{
		Rect: [4]float32{float32(r.X), float32(r.Y - scroll), float32(r.W), float32(r.H)},
		Tint: [4]float32{
			float32(tint.R) / 255,
			float32(tint.G) / 255,
			float32(tint.B) / 255,
			float32(tint.A) / 255,
		},
	}
	u.Params[0] = float32(opacity)
	if rounded {
		u.Params[1] = 1
	}
	return u
}

var whitePixel = common.TextureStagingData{Pixels: []byte{255, 255, 255, 255}, Width: 1, Height: 1}

// spriteShaderSource draws one textured quad per call from the vertex index alone.
// Rounded sprites are masked to the inscribed circle with an anti-aliased edge.
const spriteShaderSource = `
struct View {
    proj: mat4x4<f32>,
};

struct Sprite {
    rect: vec4<f32>,
    tint: vec4<f32>,
    params: vec4<f32>,
};

@group(0) @binding(0) var<uniform> view: View;
@group(1) @binding(0) var<uniform> sprite: Sprite;
@group(1) @binding(1) var spriteTexture: texture_2d<f32>;
@group(1) @binding(2) var spriteSampler: sampler;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
};

@vertex
fn vs_main(@builtin(vertex_index) index: u32) -> VertexOutput {
    var corners = array<vec2<f32>, 6>(
        vec2<f32>(0.0, 0.0),
        vec2<f32>(1.0, 0.0),
        vec2<f32>(1.0, 1.0),
        vec2<f32>(0.0, 0.0),
        vec2<f32>(1.0, 1.0),
        vec2<f32>(0.0, 1.0),
    );
    let corner = corners[index];
    let pixel = sprite.rect.xy + corner * sprite.rect.zw;

    var out: VertexOutput;
    out.position = view.proj * vec4<f32>(pixel, 0.0, 1.0);
    out.uv = corner;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    var color = textureSample(spriteTexture, spriteSampler, in.uv) * sprite.tint;

    let d = length(in.uv - vec2<f32>(0.5, 0.5)) * 2.0;
    let edge = max(fwidth(d), 0.0001);
    let mask = 1.0 - smoothstep(1.0 - edge, 1.0, d);
    if (sprite.params.y > 0.5) {
        color.a = color.a * mask;
    }

    color.a = color.a * sprite.params.x;
    return color;
}
`
