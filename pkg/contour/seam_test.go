package contour

import "testing"

// referenceCoarseIndex spells out the coarse cube offset along one axis for
// a center parity p and fine cube offset c.
func referenceCoarseIndex(p, c int, outward bool) int {
	if p == 0 {
		if c == 0 {
			if outward {
				return 1
			}
			return 0
		}
		return 1
	}
	if c == 1 {
		if outward {
			return 2
		}
		return 1
	}
	return 1
}

func TestNextLODCornerTable(t *testing.T) {
	for d := range dirCount {
		for px := range 2 {
			for py := range 2 {
				for pz := range 2 {
					parity := [3]int{px, py, pz}
					for slot := range 8 {
						cube := [3]int{slot & 1, slot >> 2, (slot >> 1) & 1}
						var want [3]int
						for axis := range 3 {
							outward := axis == d.axis() && d.positive()
							want[axis] = referenceCoarseIndex(parity[axis], cube[axis], outward)
						}
						wantIdx := want[1]*9 + want[2]*3 + want[0]
						got := int(nextLODCorner[d][px][py][pz][slot])
						if got != wantIdx {
							t.Errorf("nextLODCorner[%s][%d][%d][%d][%d] = %d, want %d",
								directionNames[d], px, py, pz, slot, got, wantIdx)
						}
					}
				}
			}
		}
	}
}

func TestSeamCornerSingleFace(t *testing.T) {
	for d := range dirCount {
		parity := [3]int{1, 0, 1}
		for slot := range 8 {
			got := seamCorner(1<<d, parity, slot)
			want := int(nextLODCorner[d][1][0][1][slot])
			if got != want {
				t.Errorf("seamCorner(%s, slot %d) = %d, want %d", directionNames[d], slot, got, want)
			}
		}
	}
}

func TestSeamCornerEdge(t *testing.T) {
	// slot 3: cx=1, cy=0, cz=1 on the X+ and Z+ faces with odd parity
	// everywhere moves outward on both X and Z.
	got := seamCorner(HigherNeighborLODXPositive|HigherNeighborLODZPositive, [3]int{1, 1, 1}, 3)
	want := 1*9 + 2*3 + 2
	if got != want {
		t.Errorf("seamCorner = %d, want %d", got, want)
	}

	// the negative Z face keeps the tangent mapping on Z
	got = seamCorner(HigherNeighborLODXPositive|HigherNeighborLODZNegative, [3]int{1, 1, 1}, 3)
	want = 1*9 + 1*3 + 2
	if got != want {
		t.Errorf("seamCorner = %d, want %d", got, want)
	}
}

func TestSeamCandidates(t *testing.T) {
	faceSets := []NeighborLOD{
		HigherNeighborLODXPositive,
		HigherNeighborLODYPositive,
		HigherNeighborLODYNegative,
		HigherNeighborLODZPositive,
		HigherNeighborLODZNegative,
		HigherNeighborLODXPositive | HigherNeighborLODZPositive,
		HigherNeighborLODXNegative | HigherNeighborLODYPositive | HigherNeighborLODZNegative,
	}
	for _, faces := range faceSets {
		for px := range 2 {
			for py := range 2 {
				for pz := range 2 {
					parity := [3]int{px, py, pz}
					for slot := range 8 {
						checkSeamCandidates(t, faces, parity, slot)
					}
				}
			}
		}
	}
}

// checkSeamCandidates compares seamCandidates with the coarse cubes that
// overlap the fine cube along every tangential axis, for a window centered
// at absolute coordinate 10+parity.
func checkSeamCandidates(t *testing.T, faces NeighborLOD, parity [3]int, slot int) {
	t.Helper()
	cube := [3]int{slot & 1, slot >> 2, (slot >> 1) & 1}
	base := seamCorner(faces, parity, slot)
	baseComp := [3]int{base % 3, base / 9, (base / 3) % 3}

	want := map[int]bool{}
	var add func(axis int, comp [3]int)
	add = func(axis int, comp [3]int) {
		if axis == 3 {
			want[comp[1]*9+comp[2]*3+comp[0]] = true
			return
		}
		if faces.hasDirection(direction(2*axis)) || faces.hasDirection(direction(2*axis+1)) {
			add(axis+1, comp)
			return
		}
		first := (10+parity[axis])>>1 - 1
		origin := 9 + parity[axis] + cube[axis]
		for _, m := range []int{origin >> 1, (origin + 1) >> 1} {
			comp[axis] = m - first
			add(axis+1, comp)
		}
	}
	add(0, baseComp)

	cands, n := seamCandidates(faces, parity, slot)
	if cands[0] != base {
		t.Errorf("%s parity %v slot %d: first candidate %d, want seamCorner %d", faces, parity, slot, cands[0], base)
	}
	got := map[int]bool{}
	for _, c := range cands[:n] {
		if c < 0 || c >= 27 {
			t.Fatalf("%s parity %v slot %d: candidate %d out of the window", faces, parity, slot, c)
		}
		got[c] = true
	}
	if len(got) != n || len(got) != len(want) {
		t.Errorf("%s parity %v slot %d: candidates %v, want %v", faces, parity, slot, cands[:n], want)
		return
	}
	for c := range want {
		if !got[c] {
			t.Errorf("%s parity %v slot %d: missing coarse cube %d in %v", faces, parity, slot, c, cands[:n])
		}
	}
}

func TestSeamCandidatesEdge(t *testing.T) {
	// slot 0 with even parity straddles two coarse cubes on Y and Z, the X+
	// face pins X.
	cands, n := seamCandidates(HigherNeighborLODXPositive, [3]int{0, 0, 0}, 0)
	want := [4]int{1, 10, 4, 13}
	if n != 4 || cands != want {
		t.Errorf("seamCandidates = %v (%d), want %v", cands[:n], n, want)
	}

	// an edge cube pins two axes and straddles only on Y
	cands, n = seamCandidates(HigherNeighborLODXPositive|HigherNeighborLODZPositive, [3]int{1, 1, 1}, 7)
	want = [4]int{2*3 + 1*9 + 2, 2*3 + 2*9 + 2}
	if n != 2 || cands != want {
		t.Errorf("seamCandidates = %v (%d), want %v", cands[:n], n, want[:2])
	}
}

func TestNeighborLODString(t *testing.T) {
	tests := []struct {
		in   NeighborLOD
		want string
	}{
		{0, "none"},
		{HigherNeighborLODXPositive, "X+"},
		{HigherNeighborLODYNegative | HigherNeighborLODZPositive, "Y-|Z+"},
		{AllNeighborLODs, "X+|X-|Y+|Y-|Z+|Z-"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.in, got, tt.want)
		}
		if tt.in != 0 {
			if got := ParseNeighborLOD(tt.want); got != tt.in {
				t.Errorf("ParseNeighborLOD(%q) = %d, want %d", tt.want, got, tt.in)
			}
		}
	}
}

func TestNeighborLODBits(t *testing.T) {
	bits := []NeighborLOD{
		HigherNeighborLODXPositive, HigherNeighborLODXNegative,
		HigherNeighborLODYPositive, HigherNeighborLODYNegative,
		HigherNeighborLODZPositive, HigherNeighborLODZNegative,
	}
	for i, b := range bits {
		if b != 1<<i {
			t.Errorf("flag %d = %d, want %d", i, b, 1<<i)
		}
	}
}
