// Package primitives draws lit unit meshes (cube, sphere) with an arbitrary model matrix.
package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Shape selects a cached mesh.
type Shape int

const (
	Cube   Shape = iota // 1x1x1, centered
	Sphere              // diameter 1, centered
)

const (
	sphereRings  = 16
	sphereSlices = 16
)

type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// Registry maps shapes to mesh+material. Meshes are created on first use
// so that GPU resources are allocated after the window/OpenGL context exists.
type Registry struct {
	cache    map[Shape]cached
	viewPos  [3]float32 // camera position, set each frame for specular
	lightDir [3]float32 // direction to light, set each frame
}

// NewRegistry returns an empty registry lit from above-right.
func NewRegistry() *Registry {
	return &Registry{
		cache:    make(map[Shape]cached),
		lightDir: [3]float32{0.5, 1, 0.5},
	}
}

// SetView sets the camera position and direction-to-light for this frame.
// Call once per frame before drawing.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

func (r *Registry) ensure(s Shape) (cached, bool) {
	if c, ok := r.cache[s]; ok {
		return c, true
	}
	var mesh rl.Mesh
	switch s {
	case Cube:
		mesh = rl.GenMeshCube(1, 1, 1)
	case Sphere:
		mesh = rl.GenMeshSphere(0.5, sphereRings, sphereSlices)
	default:
		return cached{}, false
	}
	mtl := rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	c := cached{mesh: mesh, mtl: mtl}
	r.cache[s] = c
	return c, true
}

// Draw draws shape with the given model matrix (scale, rotation and translation) tinted by color.
// Must be called between BeginMode3D and EndMode3D.
func (r *Registry) Draw(s Shape, model rl.Matrix, color rl.Color) {
	c, ok := r.ensure(s)
	if !ok {
		return
	}
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = color
	}
	r.setUniforms(c.mtl.Shader)
	rl.DrawMesh(c.mesh, c.mtl, model)
}

// DrawSphere draws a sphere of the given radius centered at center.
func (r *Registry) DrawSphere(center rl.Vector3, radius float32, color rl.Color) {
	d := 2 * radius
	model := rl.MatrixMultiply(rl.MatrixScale(d, d, d), rl.MatrixTranslate(center.X, center.Y, center.Z))
	r.Draw(Sphere, model, color)
}

var (
	ambient    = [4]float32{0.2, 0.22, 0.26, 1.0}
	lightColor = [3]float32{1.0, 0.98, 0.95}
)

const (
	lightIntensity   = float32(0.75)
	specularPower    = float32(48.0)
	specularStrength = float32(0.35)
)

// setUniforms uploads the per-frame light parameters (cgo-safe: local arrays).
func (r *Registry) setUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := r.viewPos
	lightDir := r.lightDir
	amb := ambient
	lc := lightColor
	vec3s := map[string][]float32{"viewPos": viewPos[:], "lightDir": lightDir[:], "lightColor": lc[:]}
	for name, v := range vec3s {
		if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
			rl.SetShaderValueV(shader, loc, v, rl.ShaderUniformVec3, 1)
		}
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	floats := map[string]float32{
		"lightIntensity":   lightIntensity,
		"specularPower":    specularPower,
		"specularStrength": specularStrength,
	}
	for name, v := range floats {
		if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
			rl.SetShaderValue(shader, loc, []float32{v}, rl.ShaderUniformFloat)
		}
	}
}

// Directional light + ambient + Blinn-Phong specular. Same vertex attributes as raylib meshes.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = colDiffuse.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * colDiffuse.rgb;
  float spec = pow(max(dot(N, normalize(L + V)), 0.0), specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, colDiffuse.a);
}
`
)
