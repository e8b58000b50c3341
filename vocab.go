package halftone

import (
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Parameter names.
const (
	ParamOrigin      = "origin"
	ParamOffset      = "offset" // accepted by SetParam as an alias of origin
	ParamSize        = "size"
	ParamAngle       = "angle"
	ParamType        = "type"
	ParamColorDark   = "color_dark"
	ParamColorLight  = "color_light"
	ParamAmount      = "amount"
	ParamBlendMethod = "blend_method"
	ParamName        = "name"
	ParamVersion     = "version"
)

// Layer identity reported by the "name" and "version" parameters.
const (
	LayerName    = "halftone2"
	LayerVersion = "0.0"
)

// Hint tells an editor how to present a parameter.
type Hint int

// Parameter hints.
const (
	HintNone Hint = iota
	HintDistance
	HintEnum
	HintColor
	HintAngle
)

// EnumValue is one choice of an enumerated parameter.
type EnumValue struct {
	Value     int
	Name      string
	LocalName string
}

// ParamDesc describes one named parameter.
type ParamDesc struct {
	Name        string
	LocalName   string
	Description string
	Hint        Hint
	// Origin names the parameter this one is measured from, if any.
	Origin     string
	EnumValues []EnumValue
}

// IsDistance reports whether the parameter is a world-space distance.
func (d ParamDesc) IsDistance() bool { return d.Hint == HintDistance }

// Vocab is the parameter schema of a filter, with names localized for one
// language.
type Vocab struct {
	lang   language.Tag
	params []ParamDesc
}

// Languages with translated parameter names.
var vocabLanguages = []language.Tag{language.English, language.German}

var vocabMatcher = language.NewMatcher(vocabLanguages)

// English source string -> German.
var germanStrings = map[string]string{
	"Mask Origin":                          "Maskenursprung",
	"Point where you want the origin to be": "Punkt, an dem der Ursprung liegen soll",
	"Mask Size":                            "Maskengröße",
	"Size of the pattern":                  "Größe des Musters",
	"Mask Angle":                           "Maskenwinkel",
	"Rotation of the pattern":              "Drehung des Musters",
	"Type":                                 "Typ",
	"Type of the halftone":                 "Art des Rasters",
	"Dark Color":                           "Dunkle Farbe",
	"Color of the dark areas":              "Farbe der dunklen Bereiche",
	"Light Color":                          "Helle Farbe",
	"Color of the light areas":             "Farbe der hellen Bereiche",
	"Amount":                               "Menge",
	"Opacity of the halftone":              "Deckkraft des Rasters",
	"Blend Method":                         "Mischmethode",
	"How the halftone is blended":          "Wie das Raster gemischt wird",
	"Symmetric":                            "Symmetrisch",
	"Light On Dark":                        "Hell auf Dunkel",
	"Diamond":                              "Raute",
	"Stripe":                               "Streifen",
}

var (
	catalogOnce sync.Once
	vocabCat    *catalog.Builder
)

func vocabCatalog() *catalog.Builder {
	catalogOnce.Do(func() {
		b := catalog.NewBuilder(catalog.Fallback(language.English))
		for en, de := range germanStrings {
			// Keys never contain format verbs, so SetString cannot fail.
			_ = b.SetString(language.English, en, en)
			_ = b.SetString(language.German, en, de)
		}
		vocabCat = b
	})
	return vocabCat
}

var kindLocalNames = [kindCount]string{
	KindSymmetric:   "Symmetric",
	KindLightOnDark: "Light On Dark",
	KindDiamond:     "Diamond",
	KindStripe:      "Stripe",
}

// NewVocab builds the parameter schema with local names for tag. Languages
// without a translation get English names.
func NewVocab(tag language.Tag) *Vocab {
	_, idx, _ := vocabMatcher.Match(tag)
	lang := vocabLanguages[idx]
	p := message.NewPrinter(lang, message.Catalog(vocabCatalog()))
	tr := func(s string) string { return p.Sprintf(message.Key(s, s)) }

	kinds := make([]EnumValue, 0, kindCount)
	for k := range kindCount {
		kinds = append(kinds, EnumValue{
			Value:     int(k),
			Name:      k.String(),
			LocalName: tr(kindLocalNames[k]),
		})
	}

	methods := BlendMethods()
	blends := make([]EnumValue, 0, len(methods))
	for _, m := range methods {
		blends = append(blends, EnumValue{Value: int(m), Name: m.String(), LocalName: m.String()})
	}

	return &Vocab{
		lang: lang,
		params: []ParamDesc{
			{Name: ParamOrigin, LocalName: tr("Mask Origin"), Description: tr("Point where you want the origin to be"), Hint: HintDistance},
			{Name: ParamSize, LocalName: tr("Mask Size"), Description: tr("Size of the pattern"), Hint: HintDistance, Origin: ParamOrigin},
			{Name: ParamAngle, LocalName: tr("Mask Angle"), Description: tr("Rotation of the pattern"), Hint: HintAngle, Origin: ParamOrigin},
			{Name: ParamType, LocalName: tr("Type"), Description: tr("Type of the halftone"), Hint: HintEnum, EnumValues: kinds},
			{Name: ParamColorDark, LocalName: tr("Dark Color"), Description: tr("Color of the dark areas"), Hint: HintColor},
			{Name: ParamColorLight, LocalName: tr("Light Color"), Description: tr("Color of the light areas"), Hint: HintColor},
			{Name: ParamAmount, LocalName: tr("Amount"), Description: tr("Opacity of the halftone")},
			{Name: ParamBlendMethod, LocalName: tr("Blend Method"), Description: tr("How the halftone is blended"), Hint: HintEnum, EnumValues: blends},
		},
	}
}

var (
	defaultVocabOnce sync.Once
	defaultVocabVal  *Vocab
)

func defaultVocab() *Vocab {
	defaultVocabOnce.Do(func() {
		defaultVocabVal = NewVocab(language.English)
	})
	return defaultVocabVal
}

// Language returns the language of the local names.
func (v *Vocab) Language() language.Tag {
	return v.lang
}

// Params returns the parameter descriptions in display order.
func (v *Vocab) Params() []ParamDesc {
	out := make([]ParamDesc, len(v.params))
	copy(out, v.params)
	return out
}

// Lookup returns the description of a parameter. The alias "offset"
// resolves to "origin".
func (v *Vocab) Lookup(name string) (ParamDesc, bool) {
	if name == ParamOffset {
		name = ParamOrigin
	}
	for _, d := range v.params {
		if d.Name == name {
			return d, true
		}
	}
	return ParamDesc{}, false
}
