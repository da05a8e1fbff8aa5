// Package smiles implements a SMILES (Simplified Molecular-Input Line-Entry
// System) parser and a canonical SMILES generator whose output matches
// RDKit's canonicalization for the molecules exercised by this package's
// tests. Parsing and generation are pure, synchronous, and side-effect free:
// a Molecule is a plain value with no shared mutable state, so callers may
// process many molecules concurrently without any coordination.
package smiles

// BondType enumerates the bond orders a SMILES bond can carry.
type BondType int

const (
	Single BondType = iota + 1
	Double
	Triple
	Quadruple
	Aromatic
)

func (t BondType) String() string {
	switch t {
	case Single:
		return "SINGLE"
	case Double:
		return "DOUBLE"
	case Triple:
		return "TRIPLE"
	case Quadruple:
		return "QUADRUPLE"
	case Aromatic:
		return "AROMATIC"
	default:
		return "UNKNOWN"
	}
}

// symbol returns the bond-order character used in SMILES text, or "" if the
// bond order has no dedicated symbol (SINGLE and organic AROMATIC bonds are
// usually omitted by the emitter).
func (t BondType) symbol() string {
	switch t {
	case Single:
		return "-"
	case Double:
		return "="
	case Triple:
		return "#"
	case Quadruple:
		return "$"
	case Aromatic:
		return ":"
	default:
		return ""
	}
}

// BondStereo describes the directional marker on a single bond adjacent to
// a double bond, used for E/Z configuration.
type BondStereo int

const (
	StereoNone BondStereo = iota
	StereoUp              // '/'
	StereoDown            // '\'
	StereoEither
)

// ChiralTag identifies an atom's local chirality, either the plain tetrahedral
// markers ('@', '@@') or one of the OpenSMILES extended tags ("TH1", "SP3",
// "TB12", "OH30", ...). The empty string means no chirality was specified.
type ChiralTag string

const (
	ChiralNone           ChiralTag = ""
	ChiralAnticlockwise  ChiralTag = "@"
	ChiralClockwise      ChiralTag = "@@"
)

// Atom is a single node of a Molecule graph.
type Atom struct {
	ID           int
	Symbol       string
	AtomicNumber int
	Aromatic     bool
	Hydrogens    int
	Charge       int
	HasIsotope   bool
	Isotope      int
	Chiral       ChiralTag
	HasAtomClass bool
	AtomClass    int
	IsBracket    bool
}

// Bond connects two atoms, identified by their Atom.ID, in the same Molecule.
type Bond struct {
	Atom1, Atom2 int
	Type         BondType
	Stereo       BondStereo
}

// OtherAtom returns the id at the far end of the bond from id, or -1 if id
// is not one of the bond's endpoints.
func (b *Bond) OtherAtom(id int) int {
	switch id {
	case b.Atom1:
		return b.Atom2
	case b.Atom2:
		return b.Atom1
	default:
		return -1
	}
}

// Molecule is an ordered sequence of atoms and bonds forming one connected
// component. Molecule values are treated as immutable by the canonical
// ranker and emitter; they may attach side-band rank data but never mutate
// atom or bond identity.
type Molecule struct {
	Atoms []*Atom
	Bonds []*Bond

	// adjacency maps an atom id to the bonds touching it, in insertion
	// order. It is built lazily by Adjacency and cached here.
	adjacency map[int][]*Bond
}

// Adjacency returns, for each atom id, the bonds incident to it.
func (m *Molecule) Adjacency() map[int][]*Bond {
	if m.adjacency != nil {
		return m.adjacency
	}
	adj := make(map[int][]*Bond, len(m.Atoms))
	for _, a := range m.Atoms {
		adj[a.ID] = nil
	}
	for _, b := range m.Bonds {
		adj[b.Atom1] = append(adj[b.Atom1], b)
		adj[b.Atom2] = append(adj[b.Atom2], b)
	}
	m.adjacency = adj
	return adj
}

// Degree returns the number of bonds incident to the atom with the given id.
func (m *Molecule) Degree(id int) int {
	return len(m.Adjacency()[id])
}

// AtomByID returns the atom with the given id, or nil if absent.
func (m *Molecule) AtomByID(id int) *Atom {
	for _, a := range m.Atoms {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// invalidateAdjacency clears the cached adjacency map; called whenever bonds
// are mutated after construction (aromaticity promotion, stereo rewriting).
func (m *Molecule) invalidateAdjacency() {
	m.adjacency = nil
}

// ParseResult is the outcome of parsing a SMILES string: zero or more
// connected-component molecules, plus any errors encountered. A non-empty
// Errors slice means the result may be partial; callers must check it before
// trusting Molecules.
type ParseResult struct {
	Molecules []*Molecule
	Errors    []string
}
