package extract

// DefaultDomainPhrases is the built-in expected-content allow-list,
// tuned for Czech financial and legal boilerplate. Deployments working in
// another domain should replace it via config rather than edit this list.
func DefaultDomainPhrases() []string {
	return []string{
		`smlouva\s+o\s+dílo`,
		`kupní\s+smlouva`,
		`nájemní\s+smlouva`,
		`smlouva\s+o\s+půjčce`,
		`smluvní\s+strany`,
		`smluvní\s+pokuta`,
		`předmět\s+smlouvy`,
		`rodné\s+číslo\s*:?\s*\d{6}\s*/?\s*\d{3,4}`,
		`číslo\s+účtu\s*:?\s*[\d-]+/?\d*`,
		`bankovní\s+spojení`,
		`variabilní\s+symbol`,
		`ič[o]?\s*:?\s*\d{8}`,
		`dič\s*:?\s*cz\d{8,10}`,
		`obchodní\s+rejstřík`,
		`kupní\s+cena`,
		`splatnost\s+faktury`,
		`den\s+podpisu`,
		`výpovědní\s+lhůta`,
	}
}

// DefaultNoiseWords is the deny-list of tokens that look like words but
// come from the container format, its libraries, or application internals.
func DefaultNoiseWords() []string {
	return []string{
		"apple", "pages", "iwork", "iwa", "index", "document",
		"quicklook", "preview", "thumbnail", "metadata", "buildversion",
		"tswp", "tsp", "tsd", "tsk", "tst", "tsa", "tsch",
		"protobuf", "snappy", "bplist", "plist", "pdfkit", "coretext",
		"xml", "version", "encoding", "charset", "mimetype", "obj",
		"null", "true", "false", "root", "body", "data",
	}
}
