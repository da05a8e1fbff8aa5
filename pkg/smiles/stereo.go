package smiles

import "sort"

// normalizeStereoBonds rewrites every directional bond (StereoUp/StereoDown)
// so it is always stored as substituent-then-double-bond-atom, flipping the
// symbol when the input wrote it the other way around. Two SMILES strings
// that describe the same E/Z configuration with differently-oriented slashes
// (e.g. "C(\F)=C/F" and "F/C=C/F") end up with identical bond storage after
// this pass, so downstream E/Z reasoning only has to consider one convention.
func normalizeStereoBonds(m *Molecule) {
	doubleBondAtoms := make(map[int]bool)
	for _, b := range m.Bonds {
		if b.Type == Double {
			doubleBondAtoms[b.Atom1] = true
			doubleBondAtoms[b.Atom2] = true
		}
	}

	for _, b := range m.Bonds {
		if b.Stereo == StereoNone || b.Stereo == StereoEither {
			continue
		}
		// A directional bond's "anchor" is the endpoint touching a double
		// bond; the other endpoint is the substituent that should lead.
		if doubleBondAtoms[b.Atom1] && !doubleBondAtoms[b.Atom2] {
			b.Atom1, b.Atom2 = b.Atom2, b.Atom1
			b.Stereo = flipStereo(b.Stereo)
		}
	}
}

func flipStereo(s BondStereo) BondStereo {
	switch s {
	case StereoUp:
		return StereoDown
	case StereoDown:
		return StereoUp
	default:
		return s
	}
}

// substituentMark pairs a substituent bond with the directional marker that
// applies to it, oriented substituent-to-double-bond-atom.
type substituentMark struct {
	bond   *Bond
	stereo BondStereo
}

// referenceSubstituent picks, among center's neighbors other than exclude,
// the substituent with the highest canonical rank, and reports the
// directional marker for the double bond's configuration as seen from that
// position. When the highest-ranked substituent carries no marker of its
// own but a same-position sibling does, the marker is derived by flipping
// the sibling's: an alkene carbon has at most two substituent positions,
// and they always point opposite ways around the double bond. ok is false
// when neither substituent position at center carries any marker at all.
func referenceSubstituent(m *Molecule, center, exclude int, rank map[int]int) (ref *Bond, marked substituentMark, ok bool) {
	var subs []*Bond
	for _, bd := range m.Adjacency()[center] {
		if bd.OtherAtom(center) == exclude {
			continue
		}
		subs = append(subs, bd)
	}
	if len(subs) == 0 {
		return nil, substituentMark{}, false
	}
	sort.Slice(subs, func(i, j int) bool {
		return rank[subs[i].OtherAtom(center)] > rank[subs[j].OtherAtom(center)]
	})
	best := subs[0]

	for _, bd := range subs {
		if bd.Stereo != StereoUp && bd.Stereo != StereoDown {
			continue
		}
		if bd == best {
			return best, substituentMark{bond: bd, stereo: bd.Stereo}, true
		}
		return best, substituentMark{bond: bd, stereo: flipStereo(bd.Stereo)}, true
	}
	return nil, substituentMark{}, false
}

