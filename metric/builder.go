package metric

// PointBuffers holds the flattened vertex positions, 3 float32 per vertex
type PointBuffers struct {
	Positions []float32
}

// LineBuffers holds the flattened curve geometry as non-indexed line
// segments: every consecutive sample pair of every curve contributes two
// points (6 float32). SegmentOffsets[k] is the float index into Positions
// where edge k's segments begin, so per-edge styling can be correlated
// with buffer ranges; it has one extra trailing entry equal to
// len(Positions).
type LineBuffers struct {
	Positions      []float32
	SegmentOffsets []int
}

// SurfaceBuffers holds the flattened surface mesh: positions and normals
// as 3 float32 per surface vertex, UVs as 2 float32, and a triangle index
// list referencing the surface vertex grid.
type SurfaceBuffers struct {
	Positions []float32
	Normals   []float32
	UVs       []float32
	Indices   []uint32
}

// Buffers bundles everything a rendering backend needs to upload
type Buffers struct {
	Points  PointBuffers
	Lines   LineBuffers
	Surface SurfaceBuffers
}

// BuildPointBuffers flattens the vertex positions
func BuildPointBuffers(vertices []Vertex) PointBuffers {
	pb := PointBuffers{Positions: make([]float32, 0, len(vertices)*3)}
	for _, v := range vertices {
		pb.Positions = appendVec3(pb.Positions, v.Position)
	}
	return pb
}

// BuildLineBuffers flattens all curves into consecutive-pair line segments,
// preserving edge order
func BuildLineBuffers(curves []Curve) LineBuffers {
	total := 0
	for _, c := range curves {
		if len(c) >= 2 {
			total += (len(c) - 1) * 2
		}
	}

	lb := LineBuffers{
		Positions:      make([]float32, 0, total*3),
		SegmentOffsets: make([]int, 0, len(curves)+1),
	}
	for _, c := range curves {
		lb.SegmentOffsets = append(lb.SegmentOffsets, len(lb.Positions))
		for k := 0; k+1 < len(c); k++ {
			lb.Positions = appendVec3(lb.Positions, c[k])
			lb.Positions = appendVec3(lb.Positions, c[k+1])
		}
	}
	lb.SegmentOffsets = append(lb.SegmentOffsets, len(lb.Positions))
	return lb
}

// BuildSurfaceBuffers flattens a surface mesh. The index list is shared
// (not copied) since SurfaceMesh snapshots are not mutated after creation.
func BuildSurfaceBuffers(mesh *SurfaceMesh) SurfaceBuffers {
	sb := SurfaceBuffers{}
	if mesh == nil {
		return sb
	}

	sb.Positions = make([]float32, 0, len(mesh.Positions)*3)
	sb.Normals = make([]float32, 0, len(mesh.Normals)*3)
	sb.UVs = make([]float32, 0, len(mesh.UVs)*2)

	for _, p := range mesh.Positions {
		sb.Positions = appendVec3(sb.Positions, p)
	}
	for _, n := range mesh.Normals {
		sb.Normals = appendVec3(sb.Normals, n)
	}
	for _, uv := range mesh.UVs {
		sb.UVs = append(sb.UVs, float32(uv[0]), float32(uv[1]))
	}
	sb.Indices = mesh.Indices
	return sb
}

// BuildBuffers converts an engine snapshot plus an optional surface mesh
// into renderer-agnostic buffer bundles. Pure transformation: the snapshot
// is only read, never retained.
func BuildBuffers(snap Snapshot, mesh *SurfaceMesh) Buffers {
	return Buffers{
		Points:  BuildPointBuffers(snap.Vertices),
		Lines:   BuildLineBuffers(snap.Curves),
		Surface: BuildSurfaceBuffers(mesh),
	}
}

func appendVec3(dst []float32, v Vec3) []float32 {
	return append(dst, float32(v.X), float32(v.Y), float32(v.Z))
}
