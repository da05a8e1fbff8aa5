package smiles

// checkStereo enforces two structural preconditions for the chirality and
// directional-bond markers a parse may have collected: a tetrahedral tag is
// meaningless with fewer than three explicit neighbors, and a directional
// bond only encodes E/Z configuration when it sits next to a double bond.
func checkStereo(m *Molecule, errs *[]string) {
	for _, a := range m.Atoms {
		if a.Chiral == ChiralNone {
			continue
		}
		if m.Degree(a.ID) < 3 {
			a.Chiral = ChiralNone
		}
	}

	for _, b := range m.Bonds {
		if b.Stereo == StereoNone {
			continue
		}
		if !adjacentToDoubleBond(m, b.Atom1) && !adjacentToDoubleBond(m, b.Atom2) {
			// Syntactically valid but stereochemically meaningless: the bond
			// is kept, its marker is cleared, and no parse error is recorded.
			b.Stereo = StereoNone
		}
	}
}

func adjacentToDoubleBond(m *Molecule, atomID int) bool {
	for _, b := range m.Adjacency()[atomID] {
		if b.Type == Double {
			return true
		}
	}
	return false
}
