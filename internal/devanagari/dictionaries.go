package devanagari

// Dictionaries parameterise the transliterator. The engine never mutates
// them; callers that build a custom set must not modify it after handing
// it over.
type Dictionaries struct {
	// Words maps a complete lowercase Latin name or word to its Devanagari
	// rendering. Consulted against the whole normalised input only.
	Words map[string]string
	// Syllables maps 2-4 character consonant+vowel clusters to Devanagari
	// graphemes, used for compositional matching.
	Syllables map[string]string
	// Fallback maps each of the 26 Latin letters to a default grapheme.
	Fallback map[rune]string
}

// defaultWords covers the first names, surnames, honorifics, and place words
// the admission desk sees most often. Whole-word hits skip the greedy
// scanner entirely, so spellings here are authoritative.
var defaultWords = map[string]string{
	// honorifics
	"shri":   "श्री",
	"shree":  "श्री",
	"smt":    "श्रीमती",
	"sau":    "सौ",
	"kumari": "कुमारी",
	"devi":   "देवी",
	"bai":    "बाई",
	"tai":    "ताई",
	"dr":     "डॉ",

	// male given names
	"ram":         "राम",
	"shyam":       "श्याम",
	"suresh":      "सुरेश",
	"ramesh":      "रमेश",
	"ganesh":      "गणेश",
	"mahesh":      "महेश",
	"rajesh":      "राजेश",
	"dinesh":      "दिनेश",
	"mukesh":      "मुकेश",
	"prakash":     "प्रकाश",
	"vikas":       "विकास",
	"vijay":       "विजय",
	"ajay":        "अजय",
	"sanjay":      "संजय",
	"amit":        "अमित",
	"anil":        "अनिल",
	"sunil":       "सुनील",
	"rahul":       "राहुल",
	"rohan":       "रोहन",
	"sachin":      "सचिन",
	"nitin":       "नितीन",
	"sagar":       "सागर",
	"akshay":      "अक्षय",
	"ashok":       "अशोक",
	"arun":        "अरुण",
	"kiran":       "किरण",
	"deepak":      "दीपक",
	"manoj":       "मनोज",
	"raju":        "राजू",
	"krishna":     "कृष्णा",
	"arjun":       "अर्जुन",
	"balaji":      "बालाजी",
	"tukaram":     "तुकाराम",
	"pandurang":   "पांडुरंग",
	"vitthal":     "विठ्ठल",
	"shankar":     "शंकर",
	"mahadev":     "महादेव",
	"namdev":      "नामदेव",
	"dnyaneshwar": "ज्ञानेश्वर",
	"bhagwan":     "भगवान",
	"baban":       "बबन",

	// female given names
	"priya":    "प्रिया",
	"pooja":    "पूजा",
	"puja":     "पूजा",
	"sneha":    "स्नेहा",
	"swati":    "स्वाती",
	"jyoti":    "ज्योती",
	"aarti":    "आरती",
	"arti":     "आरती",
	"savita":   "सविता",
	"kavita":   "कविता",
	"sunita":   "सुनीता",
	"anita":    "अनिता",
	"lata":     "लता",
	"asha":     "आशा",
	"usha":     "उषा",
	"shobha":   "शोभा",
	"rekha":    "रेखा",
	"meena":    "मीना",
	"sita":     "सीता",
	"gita":     "गीता",
	"geeta":    "गीता",
	"radha":    "राधा",
	"laxmi":    "लक्ष्मी",
	"lakshmi":  "लक्ष्मी",
	"sarita":   "सरिता",
	"vandana":  "वंदना",
	"manisha":  "मनीषा",
	"varsha":   "वर्षा",
	"archana":  "अर्चना",
	"seema":    "सीमा",
	"shital":   "शीतल",
	"komal":    "कोमल",
	"payal":    "पायल",
	"sakshi":   "साक्षी",
	"shraddha": "श्रद्धा",
	"vaishali": "वैशाली",
	"madhuri":  "माधुरी",
	"sangita":  "संगीता",
	"sangeeta": "संगीता",

	// surnames
	"sharma":    "शर्मा",
	"patil":     "पाटील",
	"deshmukh":  "देशमुख",
	"deshpande": "देशपांडे",
	"kulkarni":  "कुलकर्णी",
	"joshi":     "जोशी",
	"jadhav":    "जाधव",
	"pawar":     "पवार",
	"more":      "मोरे",
	"shinde":    "शिंदे",
	"kale":      "काळे",
	"gaikwad":   "गायकवाड",
	"chavan":    "चव्हाण",
	"kadam":     "कदम",
	"salunkhe":  "साळुंखे",
	"bhosale":   "भोसले",
	"thorat":    "थोरात",
	"mane":      "माने",
	"sawant":    "सावंत",
	"kamble":    "कांबळे",
	"wagh":      "वाघ",
	"naik":      "नाईक",
	"rane":      "राणे",
	"gupta":     "गुप्ता",
	"singh":     "सिंग",
	"kumar":     "कुमार",
	"yadav":     "यादव",
	"mishra":    "मिश्रा",
	"verma":     "वर्मा",
	"khan":      "खान",
	"shaikh":    "शेख",
	"sheikh":    "शेख",
	"patel":     "पटेल",
	"rao":       "राव",
	"reddy":     "रेड्डी",

	// place words that show up in address fields
	"nagar":    "नगर",
	"gaon":     "गाव",
	"wadi":     "वाडी",
	"pune":     "पुणे",
	"mumbai":   "मुंबई",
	"nashik":   "नाशिक",
	"nagpur":   "नागपूर",
	"solapur":  "सोलापूर",
	"kolhapur": "कोल्हापूर",
	"satara":   "सातारा",
	"sangli":   "सांगली",
	"latur":    "लातूर",
	"beed":     "बीड",
}

// consonantSigns maps Latin consonant clusters to their Devanagari signs.
// Multi-letter clusters double as bare syllable keys for word-final use.
var consonantSigns = map[string]string{
	"k":   "क",
	"kh":  "ख",
	"g":   "ग",
	"gh":  "घ",
	"ch":  "च",
	"chh": "छ",
	"j":   "ज",
	"jh":  "झ",
	"t":   "त",
	"th":  "थ",
	"d":   "द",
	"dh":  "ध",
	"n":   "न",
	"p":   "प",
	"ph":  "फ",
	"f":   "फ",
	"b":   "ब",
	"bh":  "भ",
	"m":   "म",
	"y":   "य",
	"r":   "र",
	"l":   "ल",
	"v":   "व",
	"w":   "व",
	"s":   "स",
	"sh":  "श",
	"shh": "ष",
	"h":   "ह",
	"ksh": "क्ष",
	"dny": "ज्ञ",
	"tr":  "त्र",
	"shr": "श्र",
}

// vowelMatras maps Latin vowel spellings to the matra appended to a
// consonant sign. The bare "a" carries the inherent vowel, hence empty.
var vowelMatras = map[string]string{
	"a":  "",
	"aa": "ा",
	"i":  "ि",
	"ee": "ी",
	"u":  "ु",
	"oo": "ू",
	"e":  "े",
	"ai": "ै",
	"o":  "ो",
	"au": "ौ",
}

// standaloneVowels are the independent vowel letters used when a vowel
// digraph starts a segment rather than following a consonant.
var standaloneVowels = map[string]string{
	"aa": "आ",
	"ee": "ई",
	"oo": "ऊ",
	"ai": "ऐ",
	"au": "औ",
}

// syllableOverrides pins spellings the generated barakhadi would get wrong.
var syllableOverrides = map[string]string{
	"shri": "श्री",
	"ksha": "क्ष",
	"dnya": "ज्ञ",
	"gya":  "ज्ञ",
	"om":   "ओम",
}

// defaultFallback is total over a-z so the scanner always produces at least
// one grapheme per Latin letter.
var defaultFallback = map[rune]string{
	'a': "अ", 'b': "ब", 'c': "क", 'd': "द", 'e': "ए",
	'f': "फ", 'g': "ग", 'h': "ह", 'i': "इ", 'j': "ज",
	'k': "क", 'l': "ल", 'm': "म", 'n': "न", 'o': "ओ",
	'p': "प", 'q': "क", 'r': "र", 's': "स", 't': "त",
	'u': "उ", 'v': "व", 'w': "व", 'x': "क्स", 'y': "य", 'z': "झ",
}

// buildSyllables composes the barakhadi: every consonant sign combined with
// every vowel spelling, bare multi-letter consonants, standalone vowel
// digraphs, then explicit overrides. Keys outside the scanner's 2-4
// character window are skipped.
func buildSyllables() map[string]string {
	out := make(map[string]string, len(consonantSigns)*len(vowelMatras))
	for cons, sign := range consonantSigns {
		for vowel, matra := range vowelMatras {
			key := cons + vowel
			if len(key) < 2 || len(key) > 4 {
				continue
			}
			out[key] = sign + matra
		}
		if len(cons) >= 2 && len(cons) <= 4 {
			out[cons] = sign
		}
	}
	for key, value := range standaloneVowels {
		out[key] = value
	}
	for key, value := range syllableOverrides {
		out[key] = value
	}
	return out
}

var defaultSyllables = buildSyllables()

// DefaultDictionaries returns the dictionary set shipped with the package.
// The maps are shared; callers must treat them as read-only.
func DefaultDictionaries() Dictionaries {
	return Dictionaries{
		Words:     defaultWords,
		Syllables: defaultSyllables,
		Fallback:  defaultFallback,
	}
}
