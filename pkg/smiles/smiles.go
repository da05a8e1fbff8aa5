package smiles

import "sort"

// Parse reads a SMILES string and returns every connected-component
// molecule it describes, plus any errors found along the way. Parsing never
// panics or aborts early on malformed input: syntax problems, unbalanced
// brackets, dangling ring closures, valence violations and aromaticity
// violations are all collected into Errors while parsing continues as far
// as it can. Stereo markers that carry no meaning (a chiral tag on an atom
// with fewer than three neighbors, a directional bond not next to a double
// bond) are dropped silently rather than reported.
func Parse(input string) ParseResult {
	p := newParser(input)
	p.run()

	if len(p.runes) == 0 {
		// True empty (or whitespace-only) input describes zero molecules
		// and is not itself an error.
		return ParseResult{}
	}

	if len(p.atoms) == 0 {
		errs := p.errs
		if len(errs) == 0 {
			errs = append(errs, "no atoms found in SMILES input")
		}
		return ParseResult{Errors: errs}
	}

	molecules := splitComponents(p.atoms, p.bonds)

	errs := append([]string(nil), p.errs...)
	for _, mol := range molecules {
		checkAromaticity(mol, &errs)
		fillImplicitHydrogens(mol)
		checkValence(mol, &errs)
		normalizeStereoBonds(mol)
		checkStereo(mol, &errs)
	}

	return ParseResult{Molecules: molecules, Errors: errs}
}

// Generate renders a single connected-component molecule back to SMILES
// text. In canonical mode the traversal start atom, neighbor visitation
// order, and ring-closure digit assignment are all driven by a Morgan-style
// canonical rank, so any molecule with the same graph produces the same
// string regardless of how it was originally written.
func Generate(mol *Molecule, canonical bool) string {
	if mol == nil {
		return ""
	}
	return generate(mol, canonical)
}

// GenerateAll renders a set of disconnected fragments, joined by '.'. In
// canonical mode the fragments themselves are also ordered deterministically
// (by their own canonical text), matching how a canonicalizer normalizes a
// multi-component input regardless of the order components first appeared.
func GenerateAll(molecules []*Molecule, canonical bool) string {
	parts := make([]string, 0, len(molecules))
	for _, mol := range molecules {
		parts = append(parts, Generate(mol, canonical))
	}
	if canonical {
		sort.Strings(parts)
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}
