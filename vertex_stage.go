package phong

// TransformVertex is the vertex transform stage: one VertexInput plus one
// InstanceInput produce exactly one VertexOutput. It is a pure function with
// no fallible paths; malformed matrices are a caller contract violation and
// propagate silently as non-finite outputs.
//
// The stage:
//
//  1. Transforms normal, tangent and bitangent by the instance normal
//     matrix, then normalizes each. Normalization happens after the matrix
//     multiply; under non-uniform scale the other order would be wrong.
//  2. Builds the tangent-space basis as the transpose of the column matrix
//     (tangent, bitangent, normal). For an orthonormal triple the transpose
//     is the inverse, mapping world-space vectors into tangent space.
//  3. Computes world position, then clip position as proj * view * world.
//  4. Projects the camera position, the light position and the fragment's
//     own world position through the same basis, and passes the texture
//     coordinate and world normal through.
//
// If the incoming triple is not orthogonal (an authoring error upstream),
// the basis is still built exactly as specified; no Gram-Schmidt pass is
// applied, and the resulting shading artifacts are the mesh's problem, not
// this stage's.
func TransformVertex(cam *Camera, light *Light, in VertexInput, inst InstanceInput) VertexOutput {
	worldNormal := inst.NormalMatrix.MulVec3(in.Normal).Normalize()
	worldTangent := inst.NormalMatrix.MulVec3(in.Tangent).Normalize()
	worldBitangent := inst.NormalMatrix.MulVec3(in.Bitangent).Normalize()

	tangentMatrix := Mat3FromCols(worldTangent, worldBitangent, worldNormal).Transpose()

	worldPosition := inst.Model.MulVec4(in.Position.Point4())

	return VertexOutput{
		ClipPosition:         cam.Proj.Mul(cam.View).MulVec4(worldPosition),
		TexCoords:            in.TexCoords,
		WorldNormal:          worldNormal,
		TangentPosition:      tangentMatrix.MulVec3(worldPosition.XYZ()),
		TangentLightPosition: tangentMatrix.MulVec3(light.Position),
		TangentViewPosition:  tangentMatrix.MulVec3(cam.ViewPos.XYZ()),
	}
}
