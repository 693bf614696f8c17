package cavemesh

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/arl/gogeo/f32/d3"
)

// navMeshMagic and navMeshVersion identify the on-disk format. Per
// spec.md §6 the persisted form MUST NOT embed Go type paths (which
// rules out encoding/gob), so this follows detour/structs.go's
// navMeshSetHeader convention instead: a magic+version header followed
// by fixed-width fields written in a known order.
const (
	navMeshMagic   int32 = 0x43415645 // "CAVE"
	navMeshVersion int32 = 1
)

// Save writes m in the schema-versioned binary format to w.
func (m *NavMesh) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if err := writeInt32s(bw, navMeshMagic, navMeshVersion); err != nil {
		return err
	}

	if err := writeInt32s(bw, int32(len(m.g.level0))); err != nil {
		return err
	}
	for _, n := range m.g.level0 {
		if err := writeVec3(bw, n.Pos); err != nil {
			return err
		}
		if err := writeVec3(bw, n.Normal); err != nil {
			return err
		}
		if err := writeInt32s(bw, n.ZoneID); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, n.Clearance); err != nil {
			return err
		}
		if err := writeEdgeList(bw, n.IntraZone); err != nil {
			return err
		}
		if err := writeEdgeList(bw, n.CrossZone); err != nil {
			return err
		}
	}

	if err := writeInt32s(bw, int32(len(m.g.zones))); err != nil {
		return err
	}
	for _, z := range m.g.zones {
		if err := binary.Write(bw, binary.LittleEndian, z.Clearance); err != nil {
			return err
		}
		if err := writeEdgeList(bw, z.Members); err != nil {
			return err
		}
		if err := writeInt32s(bw, z.Node); err != nil {
			return err
		}
	}

	if err := writeInt32s(bw, int32(len(m.g.entrances))); err != nil {
		return err
	}
	for _, e := range m.g.entrances {
		if err := writeInt32s(bw, e.ZoneA, e.ZoneB, e.Node); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, e.Clearance); err != nil {
			return err
		}
		if err := writeEdgeList(bw, e.Members); err != nil {
			return err
		}
	}

	if err := writeInt32s(bw, int32(len(m.g.level1))); err != nil {
		return err
	}
	for _, n := range m.g.level1 {
		if err := writeVec3(bw, n.Pos); err != nil {
			return err
		}
		if err := writeVec3(bw, n.Normal); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, n.Clearance); err != nil {
			return err
		}
		if err := writeInt32s(bw, int32(n.Kind), n.ZoneID, n.EntranceIdx); err != nil {
			return err
		}
		if err := writeEdgeList(bw, n.Neighbors); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Load reconstructs a NavMesh previously written by Save and rebuilds
// its spatial index (spec.md §4.9: "rebuilt after deserialisation" — the
// tree is derived data, not part of the persisted schema).
func Load(r io.Reader) (*NavMesh, error) {
	br := bufio.NewReader(r)

	magic, version, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	if magic != navMeshMagic {
		return nil, invalidInput("not a cavemesh file (bad magic %#x)", magic)
	}
	if version != navMeshVersion {
		return nil, invalidInput("unsupported cavemesh schema version %d", version)
	}

	g := &graph{}

	n0, err := readInt32(br)
	if err != nil {
		return nil, err
	}
	g.level0 = make([]*Level0Node, n0)
	for i := int32(0); i < n0; i++ {
		pos, err := readVec3(br)
		if err != nil {
			return nil, err
		}
		normal, err := readVec3(br)
		if err != nil {
			return nil, err
		}
		zoneID, err := readInt32(br)
		if err != nil {
			return nil, err
		}
		var clearance float32
		if err := binary.Read(br, binary.LittleEndian, &clearance); err != nil {
			return nil, err
		}
		node := newLevel0Node(i, pos, normal, zoneID, clearance)
		node.IntraZone, err = readEdgeList(br)
		if err != nil {
			return nil, err
		}
		node.CrossZone, err = readEdgeList(br)
		if err != nil {
			return nil, err
		}
		g.level0[i] = node
	}
	// dist caches are not persisted; recompute them from positions now
	// that every node is loaded.
	for _, n := range g.level0 {
		for _, m := range n.IntraZone {
			n.dist[m] = n.Pos.Dist(g.level0[m].Pos)
		}
		for _, m := range n.CrossZone {
			n.dist[m] = n.Pos.Dist(g.level0[m].Pos)
		}
	}

	nz, err := readInt32(br)
	if err != nil {
		return nil, err
	}
	g.zones = make([]*Zone, nz)
	for i := int32(0); i < nz; i++ {
		var clearance float32
		if err := binary.Read(br, binary.LittleEndian, &clearance); err != nil {
			return nil, err
		}
		z := newZone(i, clearance)
		z.Members, err = readEdgeList(br)
		if err != nil {
			return nil, err
		}
		z.Node, err = readInt32(br)
		if err != nil {
			return nil, err
		}
		if len(z.Members) > 0 {
			z.centroid = centroidOfNodes(g.level0, z.Members)
			z.normal = normalOfNodes(g.level0, z.Members)
			z.hasCentroid = true
		}
		g.zones[i] = z
	}

	ne, err := readInt32(br)
	if err != nil {
		return nil, err
	}
	g.entrances = make([]*Entrance, ne)
	for i := int32(0); i < ne; i++ {
		zoneA, err := readInt32(br)
		if err != nil {
			return nil, err
		}
		zoneB, err := readInt32(br)
		if err != nil {
			return nil, err
		}
		node, err := readInt32(br)
		if err != nil {
			return nil, err
		}
		var clearance float32
		if err := binary.Read(br, binary.LittleEndian, &clearance); err != nil {
			return nil, err
		}
		members, err := readEdgeList(br)
		if err != nil {
			return nil, err
		}
		g.entrances[i] = &Entrance{Index: i, ZoneA: zoneA, ZoneB: zoneB, Node: node, Clearance: clearance, Members: members}
	}
	for _, e := range g.entrances {
		g.zones[e.ZoneA].addEntrance(e.ZoneB, e.Index)
		g.zones[e.ZoneB].addEntrance(e.ZoneA, e.Index)
	}

	n1, err := readInt32(br)
	if err != nil {
		return nil, err
	}
	g.level1 = make([]*Level1Node, n1)
	for i := int32(0); i < n1; i++ {
		pos, err := readVec3(br)
		if err != nil {
			return nil, err
		}
		normal, err := readVec3(br)
		if err != nil {
			return nil, err
		}
		var clearance float32
		if err := binary.Read(br, binary.LittleEndian, &clearance); err != nil {
			return nil, err
		}
		kind, err := readInt32(br)
		if err != nil {
			return nil, err
		}
		zoneID, err := readInt32(br)
		if err != nil {
			return nil, err
		}
		entranceIdx, err := readInt32(br)
		if err != nil {
			return nil, err
		}
		node := newLevel1Node(i, pos, normal, clearance, Level1Kind(kind))
		node.ZoneID = zoneID
		node.EntranceIdx = entranceIdx
		node.Neighbors, err = readEdgeList(br)
		if err != nil {
			return nil, err
		}
		g.level1[i] = node
	}
	for _, n := range g.level1 {
		for _, m := range n.Neighbors {
			n.dist[m] = n.Pos.Dist(g.level1[m].Pos)
		}
	}

	nm := &NavMesh{g: g}
	nm.index = buildSpatialIndex(g.level0)
	nm.pool0 = newSearchPool(len(g.level0))
	nm.pool1 = newSearchPool(len(g.level1))
	return nm, nil
}

func writeInt32s(w io.Writer, vals ...int32) error {
	for _, v := range vals {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}

func readInt32(r io.Reader) (int32, error) {
	var v int32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readHeader(r io.Reader) (magic, version int32, err error) {
	if magic, err = readInt32(r); err != nil {
		return
	}
	version, err = readInt32(r)
	return
}

func writeVec3(w io.Writer, v d3.Vec3) error {
	var a [3]float32
	copy(a[:], v)
	return binary.Write(w, binary.LittleEndian, a)
}

func readVec3(r io.Reader) (d3.Vec3, error) {
	var a [3]float32
	if err := binary.Read(r, binary.LittleEndian, &a); err != nil {
		return nil, err
	}
	return d3.NewVec3XYZ(a[0], a[1], a[2]), nil
}

func writeEdgeList(w io.Writer, s []int32) error {
	if err := writeInt32s(w, int32(len(s))); err != nil {
		return err
	}
	return writeInt32s(w, s...)
}

func readEdgeList(r io.Reader) ([]int32, error) {
	n, err := readInt32(r)
	if err != nil {
		return nil, err
	}
	s := make([]int32, n)
	for i := range s {
		if s[i], err = readInt32(r); err != nil {
			return nil, err
		}
	}
	return s, nil
}
