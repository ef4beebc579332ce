package config

// Default returns the built-in tables. Entries were accumulated from manual
// review of the corpus; they are corrections data, not parsing logic, and a
// YAML override file can extend or replace any section.
func Default() *Tables {
	return &Tables{
		TargetEmails: []string{
			"jeeitunes@gmail.com",
			"jeevacation@gmail.com",
			"jeeproject@yahoo.com",
			"deevacation@gmail.com", // OCR: j read as d
			"j.epstein@lsnyc.net",
			"jepstein@lsnyc.net",
			"e:jeeitunes@gmail.com",
			"e:jeevacation@gmail.com",
			"e:jeeproject@yahoo.com",
		},

		TargetNamePatterns: []string{
			"jeffrey epstein",
			"jeffrey e.",
			"jeffrey e",
			"jeff epstein",
			"epstein, jeffrey",
			"jeevacation",
			"jeeitunes",
			"jeeproject",
			"jee",
		},

		AssociateNames: []string{
			"ghislaine maxwell",
			"lesley groff",
			"leslie groff",
			"darren indyke",
			"richard kahn",
			"rich kahn",
			"jean luc brunel",
			"jean-luc brunel",
			"sarah kellen",
			"sarah kensington",
			"nadia marcinkova",
			"nadia",
			"adriana ross",
			"adriana mucinska",
			"halidah sedgwick",
			"alan dershowitz",
			"alan m. dershowitz",
		},

		EmailCorrections: map[string]string{
			// jeevacation variants
			"jeeyacation@gmail.com":     "jeevacation@gmail.com", // y for v
			"jeevacation@qmail.com":     "jeevacation@gmail.com", // q for g
			"jeevacation@dmail.com":     "jeevacation@gmail.com",
			"jeevacation@omail.com":     "jeevacation@gmail.com",
			"jeevacation@gmail.corn":    "jeevacation@gmail.com", // corn for com
			"jeevacation@gmai1.com":     "jeevacation@gmail.com", // digit 1 for l
			"jeevacation@grnail.com":    "jeevacation@gmail.com", // rn for m
			"jeevacation@gmail.com":     "jeevacation@gmail.com",
			"jeevacationagmail.com":     "jeevacation@gmail.com", // missing @
			"ieevacation@gmail.com":     "jeevacation@gmail.com",
			"leevacation@gmail.com":     "jeevacation@gmail.com",
			"jeevacation@email.com":     "jeevacation@gmail.com",
			"eevacation@gmail.com":      "jeevacation@gmail.com",
			"jeevacation@cimail.com":    "jeevacation@gmail.com",
			"jeevacation@gmail. corn":   "jeevacation@gmail.com",
			"jeevacation@gmail. com":    "jeevacation@gmail.com",
			"jeevacation@gma il.com":    "jeevacation@gmail.com",
			"jeevacation@grnail.corn":   "jeevacation@gmail.com",
			"jeevacation©gmail.com":     "jeevacation@gmail.com", // © for @
			"jeevacation(4mail.com":     "jeevacation@gmail.com",
			"jeeyacationornail.com":     "jeevacation@gmail.com",
			// jeeitunes variants
			"jeetunes@gmail.com":  "jeeitunes@gmail.com",
			"jeeltunes@gmail.com": "jeeitunes@gmail.com",
			"jeeitunes@qmail.com": "jeeitunes@gmail.com",
			"jeeitunes@gmail.com": "jeeitunes@gmail.com",
			// e: prefix variants
			"e:jeeyacation@gmail.com": "jeevacation@gmail.com",
			"e:jeevacation@qmail.com": "jeevacation@gmail.com",
		},

		NameCorrections: map[string]string{
			"l seckel":  "Al Seckel",
			"al seckel": "Al Seckel",
			"al seckel 4111111111111.1111111111111111": "Al Seckel",

			"alan m. dershowil":  "Alan Dershowitz",
			"alan dershowitz":    "Alan Dershowitz",
			"alan m. dershowitz": "Alan Dershowitz",
			"alan m dershowitz":  "Alan Dershowitz",

			"anasalrasheed":  "Anas Alrasheed",
			"anasalrasheec":  "Anas Alrasheed",
			"anas alrasheed": "Anas Alrasheed",

			"darren lndyke": "Darren Indyke",
			"darren indyke": "Darren Indyke",

			"lesley groffl":  "Lesley Groff",
			"lesley groff i": "Lesley Groff",
			"tesley groff":   "Lesley Groff",
			"lesley groff":   "Lesley Groff",

			"lisa ne":  "Lisa New",
			"lisa new": "Lisa New",

			"tom barrack private": "Tom Barrack",
			"tom barrack privat":  "Tom Barrack",
			"tom barrack":         "Tom Barrack",

			"barry j. cohen .111": "Barry J. Cohen",
			"barry j. cohen":      "Barry J. Cohen",

			"kathy ruemmler f": "Kathy Ruemmler",
			"kathy ruemmler i": "Kathy Ruemmler",
			"kathy ruemmlerl":  "Kathy Ruemmler",
			"kathy ruemmler":   "Kathy Ruemmler",
			"kathy":            "Kathy Ruemmler",

			"lhs i i": "Lhs",
			"lhs":     "Lhs",

			"larry summer":  "Larry Summers",
			"larry summers": "Larry Summers",

			"landon'":            "Landon Thomas Jr.",
			"landon":             "Landon Thomas Jr.",
			"landon thomas":      "Landon Thomas Jr.",
			"landon thomas jr":   "Landon Thomas Jr.",
			"landon thomas jr.":  "Landon Thomas Jr.",
			"thomas jr., landon": "Landon Thomas Jr.",
			"thomas jr":          "Landon Thomas Jr.",

			"steve bannon i":   "Steve Bannon",
			"steve bannon'il":  "Steve Bannon",
			"steve bannon`":    "Steve Bannon",
			"steve bannon":     "Steve Bannon",
			"stephen bannon":   "Steve Bannon",

			"joichi ito": "Joi Ito",
			"joi ito":    "Joi Ito",

			"peggy siega":    "Peggy Siegal",
			"peggy siegal":   "Peggy Siegal",
			"peggy siegal f": "Peggy Siegal",

			"nicholas ribi":  "Nicholas Ribis",
			"nicholas ribis": "Nicholas Ribis",
			"nicholas.ribis": "Nicholas Ribis",

			"ehbarak":    "Ehud Barak",
			"ehud barak": "Ehud Barak",

			"thorbjon jagian":   "Thorbjorn Jagland",
			"thorbjon jagland":  "Thorbjorn Jagland",
			"thorbjorn jagland": "Thorbjorn Jagland",

			"faith kate":  "Faith Kates",
			"faith kates": "Faith Kates",

			"lang":      "Jack Lang",
			"jack lang": "Jack Lang",

			"jean luc brune": "Jean Luc Brune",

			"joscha bachl": "Joscha Bach",
			"joscha bach":  "Joscha Bach",

			"starr":     "Ken Starr",
			"ken starr": "Ken Starr",

			"lajcak miroslav/minister/mzv": "Lajcak Miroslav",
			"lajcak miroslay/minister/mzv": "Lajcak Miroslav",

			"leon blac":  "Leon Black",
			"leon black": "Leon Black",

			"melanie spineila": "Melanie Spinella",
			"melanie spinella": "Melanie Spinella",

			"michael woli":  "Michael Wolff",
			"michael wolff": "Michael Wolff",

			"nadja2102@yahoo.com": "Nadia",
			"nadia":               "Nadia",

			"paul barrett .": "Paul Barrett",
			"paul barrett":   "Paul Barrett",

			"peter mandelsor":    "Peter Mandelson",
			"peter mandelson bt": "Peter Mandelson",
			"peter mandelson.":   "Peter Mandelson",
			"peter mandelson":    "Peter Mandelson",

			"pritzker":     "Tom Pritzker",
			"tom pritzker": "Tom Pritzker",

			"rich kahn":    "Richard Kahn",
			"richard kahn": "Richard Kahn",

			"robert kuhn":          "Robert Kuhn",
			"robert lawrence kuhn": "Robert Kuhn",

			"soon yi previ":  "Soon Yi Previn",
			"soon yi previn": "Soon Yi Previn",

			"stephen hanson": "Stephen Hanson",
			"steve hanson":   "Stephen Hanson",

			"steven pfeiffer a=11": "Steven Pfeiffer",
			"steven pfeiffer":      "Steven Pfeiffer",

			"sultan bin sulayerr": "Sultan Bin Sulayem",
			"sultan bin sulayem":  "Sultan Bin Sulayem",

			"brad s karp": "Brad Karp",
			"brad karp":   "Brad Karp",
			"karp":        "Brad Karp",

			"g maxwell":         "Ghislaine Maxwell",
			"gmax":              "Ghislaine Maxwell",
			"ghislaine maxwell": "Ghislaine Maxwell",

			"kensington2": "Kensington",

			"anil.ambani": "Anil Ambani",
			"anil ambani": "Anil Ambani",

			"ed":        "Ed Boyden",
			"ed boyden": "Ed Boyden",
		},

		CanonicalSenders: map[string]string{
			// Name-only forms of the tracked target, seen without addresses.
			"jeffrey e.":      "jeevacation@gmail.com",
			"jeffrey e":       "jeevacation@gmail.com",
			"jeffrey":         "jeevacation@gmail.com",
			"jeffrey epstein": "jeevacation@gmail.com",
			"j":               "jeevacation@gmail.com",
			"jep":             "jeevacation@gmail.com",
			"j jep":           "jeevacation@gmail.com",
			"jeevacation":     "jeevacation@gmail.com",
		},

		CanonicalDisclaimer: "Please note: The information contained in this communication is confidential, may be attorney-client privileged, may constitute inside information, and is intended only for the use of the addressee. It is the property of JEE. Unauthorized use, disclosure or copying of this communication or any part thereof is strictly prohibited and may be unlawful. If you have received this communication in error, please notify us immediately by return e-mail or by e-mail to jeevacation@gmail.com, and destroy this communication and all copies thereof, including all attachments.",

		BoundaryMarkers: []string{
			"HOUSE_OVERSIGHT",
			"HOUSE OVERSIGHT",
		},

		BadTLDs: []string{"corn", "cam", "cpm"},

		SpamSenders: []string{"asmallworld@"},

		SegmentationWords: []string{
			// 7+ characters
			"through", "without", "because", "between", "another", "however",
			"opening", "everything", "something", "anything", "nothing",
			"everyone", "someone", "anyone", "watching",
			// 4-6 characters
			"please", "watch", "would", "could", "should", "which", "their",
			"there", "these", "those", "about", "after", "where", "while",
			"being", "until", "again", "never", "every", "other", "under",
			"might", "think", "still", "since", "first", "three", "years",
			"light", "right", "world", "house", "point", "bring", "found",
			"given", "asked", "going", "makes", "place", "seems", "taken",
			"knows", "human", "shall", "before", "around", "during", "always",
			"become", "change", "little", "moment", "turned", "wanted",
			"people", "looked", "almost", "enough", "family", "really",
			"within", "others", "myself", "opened",
			// short words
			"the", "for", "and", "you", "that", "with", "have", "this",
			"will", "your", "from", "they", "know", "want", "been", "more",
			"when", "make", "like", "time", "just", "him", "see", "get",
			"may", "way", "day", "too", "any", "say", "she", "two", "how",
			"our", "out", "now", "man", "old", "put", "why", "let", "off",
			"did", "got", "new", "set", "who", "yet", "all", "can", "her",
			"was", "one", "had", "but", "not", "are", "his", "has", "were",
			"eyes", "eye", "is", "as", "at", "be", "by", "do", "go", "he",
			"if", "in", "it", "me", "my", "no", "of", "on", "or", "so",
			"to", "up", "us", "we", "test", "best", "rest", "next", "last",
			"must", "back", "take", "give", "keep", "both", "each", "even",
			"ever", "also", "such", "same", "well", "much", "very",
			// seen as OCR damage
			"eys",
		},
	}
}
