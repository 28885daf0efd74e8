// Package phong provides the shading core of an instanced Blinn-Phong model
// rendering pass for Go.
//
// # Overview
//
// phong implements the two programmable stages of a classic normal-mapped
// model pipeline: a vertex transform stage that carries mesh attributes and
// per-instance transforms into clip space and tangent space, and a fragment
// lighting stage that evaluates a single-point-light Blinn-Phong model per
// fragment. Both stages exist twice, with identical semantics:
//
//   - as pure Go functions ([TransformVertex], [FragmentStage.Shade]) that
//     can be evaluated and tested on the CPU, and
//   - as a WGSL shader (package shader) plus the wgpu pipeline and binding
//     contract (package pipeline) for GPU execution via gogpu/wgpu.
//
// # Quick Start
//
//	cam := phong.Camera{ViewPos: phong.Vec4{Z: 5, W: 1}, View: view, Proj: proj}
//	light := phong.Light{Position: phong.Vec3{Y: 5}, Color: phong.Vec3{X: 1, Y: 1, Z: 1}}
//
//	// Vertex stage: one VertexInput + one InstanceInput -> one VertexOutput.
//	out := phong.TransformVertex(&cam, &light, vertex, instance)
//
//	// Fragment stage: built once per compiled feature set.
//	stage, _ := phong.NewFragmentStage(phong.FeatureColorMap, phong.SurfaceBindings{
//	    Diffuse: diffuseTex,
//	})
//	color := stage.Shade(&light, out)
//
// # Feature Sets
//
// The optional color map and normal map are compile-time features: each
// combination is a separately composed shader and a separately created
// pipeline, never a runtime branch over possibly-unbound resources. The same
// [FeatureSet] value drives WGSL composition (package shader), bind group
// layout construction (package pipeline), and the software fragment stage.
//
// # Coordinate Conventions
//
// Matrices are column-major, matching WGSL. Clip-space composition order is
// fixed: clip = proj * view * world. The tangent-space basis built in the
// vertex stage maps world-space vectors into tangent space; the reverse
// transform is never used.
//
// # Scope
//
// phong owns only the math pipeline and its binding contract. Mesh and
// texture loading, camera controllers, frame scheduling and presentation
// belong to the host application.
package phong

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
