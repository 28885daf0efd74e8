package pipeline

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/phong"
)

func TestSurfaceLayoutEntries(t *testing.T) {
	tests := []struct {
		name         string
		features     phong.FeatureSet
		wantBindings []uint32
	}{
		{"none", 0, nil},
		{"color map", phong.FeatureColorMap, []uint32{0, 1}},
		{"normal map", phong.FeatureNormalMap, []uint32{2, 3}},
		{"both", phong.AllFeatures, []uint32{0, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := surfaceLayoutEntries(tt.features)
			if len(entries) != len(tt.wantBindings) {
				t.Fatalf("entry count: got %d, want %d", len(entries), len(tt.wantBindings))
			}
			for i, e := range entries {
				if e.Binding != tt.wantBindings[i] {
					t.Errorf("entry %d binding: got %d, want %d", i, e.Binding, tt.wantBindings[i])
				}
				if e.Visibility != gputypes.ShaderStageFragment {
					t.Errorf("entry %d visibility: got %v, want fragment", i, e.Visibility)
				}
				// Even bindings are textures, odd bindings their samplers.
				if e.Binding%2 == 0 {
					if e.Texture == nil || e.Sampler != nil {
						t.Errorf("binding %d should be a texture entry", e.Binding)
					}
				} else {
					if e.Sampler == nil || e.Texture != nil {
						t.Errorf("binding %d should be a sampler entry", e.Binding)
					}
				}
			}
		})
	}
}

func TestUniformLayoutEntries(t *testing.T) {
	entries := uniformLayoutEntries()
	if len(entries) != 1 {
		t.Fatalf("entry count: got %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Binding != 0 {
		t.Errorf("binding: got %d, want 0", e.Binding)
	}
	if e.Buffer == nil || e.Buffer.Type != gputypes.BufferBindingTypeUniform {
		t.Error("uniform entry should have a uniform buffer layout")
	}
	if e.Visibility&gputypes.ShaderStageVertex == 0 || e.Visibility&gputypes.ShaderStageFragment == 0 {
		t.Error("uniform entry should be visible to vertex and fragment stages")
	}
}

func TestModelVertexLayouts(t *testing.T) {
	layouts := modelVertexLayouts()
	if len(layouts) != 2 {
		t.Fatalf("layout count: got %d, want 2", len(layouts))
	}

	vert, inst := layouts[0], layouts[1]

	if vert.ArrayStride != phong.VertexStride {
		t.Errorf("vertex stride: got %d, want %d", vert.ArrayStride, phong.VertexStride)
	}
	if vert.StepMode != gputypes.VertexStepModeVertex {
		t.Error("vertex buffer should step per vertex")
	}
	if inst.ArrayStride != phong.InstanceStride {
		t.Errorf("instance stride: got %d, want %d", inst.ArrayStride, phong.InstanceStride)
	}
	if inst.StepMode != gputypes.VertexStepModeInstance {
		t.Error("instance buffer should step per instance")
	}

	// Locations 0-4 then 5-11, contiguous across the two buffers.
	var locations []uint32
	for _, a := range vert.Attributes {
		locations = append(locations, a.ShaderLocation)
	}
	for _, a := range inst.Attributes {
		locations = append(locations, a.ShaderLocation)
	}
	if len(locations) != 12 {
		t.Fatalf("attribute count: got %d, want 12", len(locations))
	}
	for i, loc := range locations {
		if loc != uint32(i) { //nolint:gosec // i < 12
			t.Errorf("attribute %d: got location %d", i, loc)
		}
	}

	// Offsets must cover the stride without overlap.
	wantVertOffsets := []uint64{0, 12, 20, 32, 44}
	for i, a := range vert.Attributes {
		if a.Offset != wantVertOffsets[i] {
			t.Errorf("vertex attribute %d offset: got %d, want %d", i, a.Offset, wantVertOffsets[i])
		}
	}
	wantInstOffsets := []uint64{0, 16, 32, 48, 64, 76, 88}
	for i, a := range inst.Attributes {
		if a.Offset != wantInstOffsets[i] {
			t.Errorf("instance attribute %d offset: got %d, want %d", i, a.Offset, wantInstOffsets[i])
		}
	}

	// Model matrix columns are vec4, everything else vec3 except tex coords.
	if vert.Attributes[1].Format != gputypes.VertexFormatFloat32x2 {
		t.Error("tex_coords should be float32x2")
	}
	for i := 0; i < 4; i++ {
		if inst.Attributes[i].Format != gputypes.VertexFormatFloat32x4 {
			t.Errorf("model column %d should be float32x4", i)
		}
	}
	for i := 4; i < 7; i++ {
		if inst.Attributes[i].Format != gputypes.VertexFormatFloat32x3 {
			t.Errorf("normal row %d should be float32x3", i-4)
		}
	}
}
