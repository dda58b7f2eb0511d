package geometry

// Derived adjacency queries shared by backends that store only
// face->vertex incidence. Callers validate the input handle first;
// these helpers assume it is known to the backend.

func derivedAdjacentFaces(q Query, v VertexHandle) ([]FaceHandle, error) {
	var out []FaceHandle
	for _, f := range q.Faces() {
		vs, err := q.FaceVertices(f)
		if err != nil {
			return nil, err
		}
		for _, fv := range vs {
			if fv == v {
				out = append(out, f)
				break
			}
		}
	}
	return out, nil
}

func derivedIncidentEdges(q Query, v VertexHandle) ([]EdgeHandle, error) {
	edges, err := UniqueEdges(q)
	if err != nil {
		return nil, err
	}
	var out []EdgeHandle
	for _, e := range edges {
		if e.lo == v.id || e.hi == v.id {
			out = append(out, e)
		}
	}
	return out, nil
}

func derivedFaceNeighbors(q Query, f FaceHandle) ([]FaceHandle, error) {
	vs, err := q.FaceVertices(f)
	if err != nil {
		return nil, err
	}
	mine := make(map[VertexHandle]struct{}, len(vs))
	for _, v := range vs {
		mine[v] = struct{}{}
	}
	var out []FaceHandle
	for _, other := range q.Faces() {
		if other == f {
			continue
		}
		ovs, err := q.FaceVertices(other)
		if err != nil {
			return nil, err
		}
		shared := 0
		for _, v := range ovs {
			if _, ok := mine[v]; ok {
				shared++
			}
		}
		// Sharing a full facet (an edge in 2D) makes two faces neighbors.
		if shared >= 2 {
			out = append(out, other)
		}
	}
	return out, nil
}
