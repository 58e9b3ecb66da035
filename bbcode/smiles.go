package bbcode

import (
	"cmp"
	"slices"
)

// Smile maps an emoticon code, as typed in the post, to the identifier of the
// image resource which represents it.
type Smile struct {
	Code     string
	Resource string
}

// SmileTable is an immutable ordered list of emoticons.
// It is safe for concurrent use by multiple parsers.
type SmileTable struct {
	smiles []Smile
	index  map[string]string
}

// NewSmileTable creates a SmileTable. Longer codes are ordered first, so ":happy:"
// wins over ":h" when both could match. Codes of equal length keep the given order.
// Every code must start with ':' to ever be matched.
func NewSmileTable(smiles ...Smile) *SmileTable {
	sorted := slices.Clone(smiles)
	slices.SortStableFunc(sorted, func(a, b Smile) int {
		return cmp.Compare(len(b.Code), len(a.Code))
	})

	index := make(map[string]string, len(sorted))
	for _, s := range sorted {
		index[s.Code] = s.Resource
	}

	return &SmileTable{smiles: sorted, index: index}
}

// Match looks for an emoticon code starting at the byte position i of src.
// A colon which is immediately followed by a line break never starts an emoticon.
func (t *SmileTable) Match(src string, i int) (Smile, bool) {
	if t == nil || i >= len(src) || src[i] != ':' {
		return Smile{}, false
	}

	if i+1 < len(src) && src[i+1] == '\n' {
		return Smile{}, false
	}

	rest := len(src) - i

	for _, s := range t.smiles {
		l := len(s.Code)
		if l > rest {
			continue
		}

		if src[i:i+l] == s.Code {
			return s, true
		}
	}

	return Smile{}, false
}

// Resource returns the resource identifier of the code.
func (t *SmileTable) Resource(code string) (string, bool) {
	if t == nil {
		return "", false
	}
	r, ok := t.index[code]
	return r, ok
}

// Smiles returns a copy of the ordered table.
func (t *SmileTable) Smiles() []Smile {
	return slices.Clone(t.smiles)
}

// DefaultSmiles is the emoticon set of the forum.
var DefaultSmiles = NewSmileTable(
	Smile{":happy:", "happy"},
	Smile{":rolleyes:", "rolleyes"},
	Smile{":laugh:", "laugh"},
	Smile{":lol:", "lol"},
	Smile{":lol_girl:", "lol_girl"},
	Smile{":huh:", "huh"},
	Smile{":blink:", "blink"},
	Smile{":wub:", "wub"},
	Smile{":wacko:", "wacko"},
	Smile{":mellow:", "mellow"},
	Smile{":unsure:", "unsure"},
	Smile{":angry:", "angry"},
	Smile{":dry:", "dry"},
	Smile{":sorry:", "sorry"},
	Smile{":thank_you:", "thank_you"},
	Smile{":shok:", "shok"},
	Smile{":yes2:", "yes2"},
	Smile{":yes:", "yes"},
	Smile{":no:", "no"},
	Smile{":acute:", "acute"},
	Smile{":clapping:", "clapping"},
	Smile{":crazy:", "crazy"},
	Smile{":nea:", "nea"},
	Smile{":drinks:", "drinks"},
	Smile{":beee:", "beee"},
	Smile{":bye:", "bye"},
	Smile{":girl_cray:", "girl_cray"},
	Smile{":girl_hide:", "girl_hide"},
	Smile{":scratch_one-s_head:", "scratch_one-s_head"},
	Smile{":victory:", "victory"},
	Smile{":derisive:", "derisive"},
	Smile{":facepalm:", "facepalm"},
	Smile{":good:", "good"},
	Smile{":help:", "help"},
	Smile{":rofl:", "rofl"},
	Smile{":-D", "biggrin"},
	Smile{":D", "biggrin"},
	Smile{":-)", "smile"},
	Smile{":)", "smile"},
	Smile{":-(", "sad"},
	Smile{":(", "sad"},
	Smile{":-P", "tongue"},
	Smile{":P", "tongue"},
)
