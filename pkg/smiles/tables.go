package smiles

// elementAtomicNumbers maps every standard element symbol to its atomic
// number. It is read-only reference data, stipulated by the periodic table
// rather than derived, and is never mutated after package initialization.
var elementAtomicNumbers = map[string]int{
	"H": 1, "He": 2, "Li": 3, "Be": 4, "B": 5, "C": 6, "N": 7, "O": 8, "F": 9, "Ne": 10,
	"Na": 11, "Mg": 12, "Al": 13, "Si": 14, "P": 15, "S": 16, "Cl": 17, "Ar": 18,
	"K": 19, "Ca": 20, "Sc": 21, "Ti": 22, "V": 23, "Cr": 24, "Mn": 25, "Fe": 26,
	"Co": 27, "Ni": 28, "Cu": 29, "Zn": 30, "Ga": 31, "Ge": 32, "As": 33, "Se": 34,
	"Br": 35, "Kr": 36, "Rb": 37, "Sr": 38, "Y": 39, "Zr": 40, "Nb": 41, "Mo": 42,
	"Tc": 43, "Ru": 44, "Rh": 45, "Pd": 46, "Ag": 47, "Cd": 48, "In": 49, "Sn": 50,
	"Sb": 51, "Te": 52, "I": 53, "Xe": 54, "Cs": 55, "Ba": 56, "La": 57, "Ce": 58,
	"Pr": 59, "Nd": 60, "Pm": 61, "Sm": 62, "Eu": 63, "Gd": 64, "Tb": 65, "Dy": 66,
	"Ho": 67, "Er": 68, "Tm": 69, "Yb": 70, "Lu": 71, "Hf": 72, "Ta": 73, "W": 74,
	"Re": 75, "Os": 76, "Ir": 77, "Pt": 78, "Au": 79, "Hg": 80, "Tl": 81, "Pb": 82,
	"Bi": 83, "Po": 84, "At": 85, "Rn": 86, "Fr": 87, "Ra": 88, "Ac": 89, "Th": 90,
	"Pa": 91, "U": 92, "Np": 93, "Pu": 94, "Am": 95, "Cm": 96, "Bk": 97, "Cf": 98,
	"Es": 99, "Fm": 100, "Md": 101, "No": 102, "Lr": 103, "Rf": 104, "Db": 105,
	"Sg": 106, "Bh": 107, "Hs": 108, "Mt": 109, "Ds": 110, "Rg": 111, "Cn": 112,
	"Nh": 113, "Fl": 114, "Mc": 115, "Lv": 116, "Ts": 117, "Og": 118,
}

// organicSubset is the set of elements that may be written without brackets
// (the "organic subset" of the OpenSMILES grammar), keyed by their upper-case
// symbol as written in SMILES text.
var organicSubset = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true, "S": true,
	"F": true, "Cl": true, "Br": true, "I": true,
}

// aromaticOrganicSubset is the set of lower-case aromatic organic-subset atom
// symbols, permitted bare (outside brackets).
var aromaticOrganicSubset = map[string]bool{
	"b": true, "c": true, "n": true, "o": true, "p": true, "s": true,
}

// bracketOnlyAromatic covers aromatic element spellings that OpenSMILES only
// permits inside brackets, since they are two characters and would otherwise
// be ambiguous with sequences of one-letter organic-subset atoms.
var bracketOnlyAromatic = map[string]bool{
	"se": true, "as": true,
}

// defaultValences lists, per element symbol, the permitted total bond-order
// sums (including implicit hydrogens) for an organic-subset or unspecified
// bracket atom, in ascending order. The smallest entry not less than the
// atom's actual bonded valence sum is chosen when filling implicit hydrogens.
var defaultValences = map[string][]int{
	"B": {3}, "C": {4}, "N": {3, 5}, "O": {2}, "P": {3, 5}, "S": {2, 4, 6},
	"F": {1}, "Cl": {1}, "Br": {1}, "I": {1},
}

// elementSymbol title-cases an aromatic lower-case symbol back to its
// canonical upper-case element spelling, used for atomic-number lookups and
// valence-table lookups (e.g. "c" -> "C", "se" -> "Se").
func elementSymbol(sym string) string {
	if sym == "" || sym[0] < 'a' || sym[0] > 'z' {
		return sym
	}
	if len(sym) == 1 {
		return string(sym[0] - 'a' + 'A')
	}
	return string(sym[0]-'a'+'A') + sym[1:]
}
