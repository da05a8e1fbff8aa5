package smiles

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// emitter renders one connected-component Molecule back to SMILES text via
// a depth-first walk of a spanning tree, with non-tree bonds turned into
// ring-closure digits.
type emitter struct {
	m          *Molecule
	rank       map[int]int // canonical mode only
	canonical  bool
	visited    map[int]bool
	visitOrder map[int]int
	processed  map[*Bond]bool
	children   map[int][]*Bond
	ringBonds  []*Bond
	ringDigit  map[*Bond]int
	openAt     map[int][]*Bond // atom id -> ring bonds opened here, in digit order
	closeAt    map[int][]*Bond
	stereo     map[*Bond]BondStereo // canonical mode only: E/Z override per bond
	sb         strings.Builder
}

// generate renders mol as SMILES text. In canonical mode, traversal order
// and ring-digit assignment are driven by canonicalRanks so that structurally
// identical molecules always produce the same string.
func generate(mol *Molecule, canonical bool) string {
	if len(mol.Atoms) == 0 {
		return ""
	}
	e := &emitter{
		m:          mol,
		canonical:  canonical,
		visited:    make(map[int]bool),
		visitOrder: make(map[int]int),
		processed:  make(map[*Bond]bool),
		children:   make(map[int][]*Bond),
		ringDigit:  make(map[*Bond]int),
		openAt:     make(map[int][]*Bond),
		closeAt:    make(map[int][]*Bond),
	}
	if canonical {
		e.rank = canonicalRanks(mol)
	}

	start := e.startAtom()
	e.walk(start, nil)
	if canonical {
		e.stereo = e.computeStereoOverrides()
	}
	e.assignRingDigits()
	e.render(start, nil)
	return e.sb.String()
}

func (e *emitter) startAtom() int {
	if !e.canonical {
		return e.m.Atoms[0].ID
	}
	best := e.m.Atoms[0].ID
	for _, a := range e.m.Atoms {
		if e.rank[a.ID] < e.rank[best] {
			best = a.ID
		}
	}
	return best
}

// orderedBonds returns the bonds touching id in the order they should be
// explored: by ascending canonical rank of the far endpoint in canonical
// mode, or by ascending atom id (original parse order) otherwise.
func (e *emitter) orderedBonds(id int) []*Bond {
	bonds := append([]*Bond(nil), e.m.Adjacency()[id]...)
	if e.canonical {
		sort.Slice(bonds, func(i, j int) bool {
			return e.rank[bonds[i].OtherAtom(id)] < e.rank[bonds[j].OtherAtom(id)]
		})
	} else {
		sort.Slice(bonds, func(i, j int) bool {
			return bonds[i].OtherAtom(id) < bonds[j].OtherAtom(id)
		})
	}
	return bonds
}

// walk performs the DFS that classifies every bond as a tree edge (added to
// children) or a ring-closure back edge (added to ringBonds), and records
// each atom's position in the traversal.
func (e *emitter) walk(id int, incoming *Bond) {
	e.visited[id] = true
	e.visitOrder[id] = len(e.visitOrder)
	if incoming != nil {
		e.processed[incoming] = true
	}
	for _, b := range e.orderedBonds(id) {
		if e.processed[b] {
			continue
		}
		other := b.OtherAtom(id)
		if !e.visited[other] {
			e.processed[b] = true
			e.children[id] = append(e.children[id], b)
			e.walk(other, b)
		} else {
			e.processed[b] = true
			e.ringBonds = append(e.ringBonds, b)
		}
	}
}

// assignRingDigits sweeps ring bonds in visitation order, handing out the
// smallest digit not currently open and returning it to the pool once its
// closing atom has been visited, so digits are reused across a long chain.
func (e *emitter) assignRingDigits() {
	type event struct {
		index int
		open  bool
		bond  *Bond
	}
	var events []event
	for _, b := range e.ringBonds {
		early, late := b.Atom1, b.Atom2
		if e.visitOrder[early] > e.visitOrder[late] {
			early, late = late, early
		}
		events = append(events, event{index: e.visitOrder[early], open: true, bond: b})
		events = append(events, event{index: e.visitOrder[late], open: false, bond: b})
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].index != events[j].index {
			return events[i].index < events[j].index
		}
		// Free digits before handing out new ones at the same atom.
		return !events[i].open && events[j].open
	})

	free := map[int]bool{}
	next := 1
	allocate := func() int {
		best := -1
		for d := range free {
			if best == -1 || d < best {
				best = d
			}
		}
		if best != -1 {
			delete(free, best)
			return best
		}
		d := next
		next++
		return d
	}

	for _, ev := range events {
		early, late := ev.bond.Atom1, ev.bond.Atom2
		if e.visitOrder[early] > e.visitOrder[late] {
			early, late = late, early
		}
		if ev.open {
			d := allocate()
			e.ringDigit[ev.bond] = d
			e.openAt[early] = append(e.openAt[early], ev.bond)
		} else {
			d := e.ringDigit[ev.bond]
			free[d] = true
			e.closeAt[late] = append(e.closeAt[late], ev.bond)
		}
	}
}

func (e *emitter) render(id int, incoming *Bond) {
	e.sb.WriteString(e.atomText(e.m.AtomByID(id)))

	for _, b := range e.openAt[id] {
		d := e.ringDigit[b]
		e.sb.WriteString(e.ringBondText(b, id))
		e.sb.WriteString(ringDigitText(d))
	}
	for _, b := range e.closeAt[id] {
		d := e.ringDigit[b]
		e.sb.WriteString(ringDigitText(d))
	}

	kids := e.children[id]
	for i, b := range kids {
		last := i == len(kids)-1
		child := b.OtherAtom(id)
		bondStr := e.bondText(b, id)
		if last {
			e.sb.WriteString(bondStr)
			e.render(child, b)
		} else {
			e.sb.WriteString("(")
			e.sb.WriteString(bondStr)
			e.render(child, b)
			e.sb.WriteString(")")
		}
	}
}

// computeStereoOverrides derives the canonical E/Z bond markers for every
// double bond whose configuration is fully determined (both ends have at
// least one marked substituent). At each end the substituent with the
// highest canonical rank becomes the reference position. Marks are chosen
// as read from the reference substituent toward its double-bond atom: the
// reference at the end visited first is marked "/", and the other
// reference is marked "\" when the two sit on opposite sides of the double
// bond (trans/E) or "/" when they sit on the same side (cis/Z). For the
// usual linear spelling this renders as the all-"/" trans / mixed "/\" cis
// canonical form. Any other marked substituent at either end is cleared,
// since canonical output carries at most one marker per double-bond
// terminus. Must run after walk() has populated visitOrder, since the
// stored raw value needed to reproduce a given rendered symbol depends on
// which endpoint of the bond render() will treat as "from".
func (e *emitter) computeStereoOverrides() map[*Bond]BondStereo {
	overrides := make(map[*Bond]BondStereo)
	for _, b := range e.m.Bonds {
		if b.Type != Double {
			continue
		}
		end1, end2 := b.Atom1, b.Atom2
		if e.visitOrder[end1] > e.visitOrder[end2] {
			end1, end2 = end2, end1
		}
		ref1, marked1, ok1 := referenceSubstituent(e.m, end1, end2, e.rank)
		ref2, marked2, ok2 := referenceSubstituent(e.m, end2, end1, e.rank)
		if !ok1 || !ok2 {
			continue
		}

		// Equal marks (both bonds pointing the same way once each is read
		// substituent-to-double-bond-atom) put the two reference
		// substituents on the same side of the double bond (cis/Z);
		// opposite marks put them on opposite sides (trans/E).
		trans := marked1.stereo != marked2.stereo

		e.setStereoOverride(overrides, ref1, end1, StereoUp)
		if marked1.bond != ref1 {
			overrides[marked1.bond] = StereoNone
		}
		desired2 := StereoUp
		if trans {
			desired2 = StereoDown
		}
		e.setStereoOverride(overrides, ref2, end2, desired2)
		if marked2.bond != ref2 {
			overrides[marked2.bond] = StereoNone
		}
	}
	return overrides
}

// setStereoOverride stores the raw value for substituent bond b so that it
// renders as mark when read from the substituent toward center, its
// double-bond atom. render() reads a bond from whichever endpoint visitOrder
// ranks first, so the symbol is flipped when that endpoint is center; and
// bondText/ringBondText flip a bond's marker whenever its Atom1 is not that
// endpoint, so the stored value is flipped once more in that case.
func (e *emitter) setStereoOverride(overrides map[*Bond]BondStereo, b *Bond, center int, mark BondStereo) {
	from := b.Atom1
	if e.visitOrder[b.Atom2] < e.visitOrder[b.Atom1] {
		from = b.Atom2
	}
	if from == center {
		mark = flipStereo(mark)
	}
	if from != b.Atom1 {
		mark = flipStereo(mark)
	}
	overrides[b] = mark
}

// effectiveStereo returns the bond marker to render: the canonical override
// when one was computed for b, otherwise the marker as parsed.
func (e *emitter) effectiveStereo(b *Bond) BondStereo {
	if e.canonical {
		if s, ok := e.stereo[b]; ok {
			return s
		}
	}
	return b.Stereo
}

func ringDigitText(d int) string {
	if d >= 10 {
		return "%" + fmt.Sprintf("%02d", d)
	}
	return strconv.Itoa(d)
}

// bondText renders the bond symbol for a tree edge traversed from `from`
// toward its child, flipping a directional marker if the bond is stored in
// the opposite orientation from the traversal direction.
func (e *emitter) bondText(b *Bond, from int) string {
	aromaticBoth := e.m.AtomByID(b.Atom1).Aromatic && e.m.AtomByID(b.Atom2).Aromatic
	stereo := e.effectiveStereo(b)
	if stereo != StereoNone && stereo != StereoEither && b.Atom1 != from {
		stereo = flipStereo(stereo)
	}
	return bondSymbolText(b.Type, stereo, aromaticBoth)
}

// ringBondText renders the bond symbol printed at a ring-closure's opening
// occurrence only; the closing digit is left bare.
func (e *emitter) ringBondText(b *Bond, from int) string {
	aromaticBoth := e.m.AtomByID(b.Atom1).Aromatic && e.m.AtomByID(b.Atom2).Aromatic
	stereo := e.effectiveStereo(b)
	if stereo != StereoNone && stereo != StereoEither && b.Atom1 != from {
		stereo = flipStereo(stereo)
	}
	return bondSymbolText(b.Type, stereo, aromaticBoth)
}

func bondSymbolText(t BondType, stereo BondStereo, aromaticBoth bool) string {
	switch stereo {
	case StereoUp:
		return "/"
	case StereoDown:
		return "\\"
	}
	if t == Single {
		return ""
	}
	if t == Aromatic && aromaticBoth {
		return ""
	}
	return t.symbol()
}

func (e *emitter) atomText(a *Atom) string {
	if canWriteBare(e.m, a) {
		if a.Aromatic {
			return a.Symbol
		}
		return strings.ToUpper(a.Symbol[:1]) + a.Symbol[1:]
	}

	var b strings.Builder
	b.WriteString("[")
	if a.HasIsotope {
		b.WriteString(strconv.Itoa(a.Isotope))
	}
	b.WriteString(a.Symbol)
	if a.Chiral != ChiralNone {
		b.WriteString(string(a.Chiral))
	}
	if a.Hydrogens > 0 {
		b.WriteString("H")
		if a.Hydrogens > 1 {
			b.WriteString(strconv.Itoa(a.Hydrogens))
		}
	}
	if a.Charge != 0 {
		sign := "+"
		mag := a.Charge
		if mag < 0 {
			sign = "-"
			mag = -mag
		}
		b.WriteString(sign)
		if mag > 1 {
			b.WriteString(strconv.Itoa(mag))
		}
	}
	if a.HasAtomClass {
		b.WriteString(":")
		b.WriteString(strconv.Itoa(a.AtomClass))
	}
	b.WriteString("]")
	return b.String()
}

// canWriteBare reports whether a can be written without brackets: no
// isotope, charge, chirality or atom class, a symbol in the organic subset,
// and an implicit-hydrogen count matching what a reader would infer by
// default (so brackets used only to pin down a redundant H count vanish on
// canonicalization).
func canWriteBare(m *Molecule, a *Atom) bool {
	if a.HasIsotope || a.Charge != 0 || a.Chiral != ChiralNone || a.HasAtomClass {
		return false
	}
	if a.Symbol == "*" {
		return true
	}
	if a.Aromatic {
		if !aromaticOrganicSubset[a.Symbol] {
			return false
		}
	} else {
		if !organicSubset[a.Symbol] {
			return false
		}
	}
	return a.Hydrogens == computeDefaultHydrogens(m, a)
}
