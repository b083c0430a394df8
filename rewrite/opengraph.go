package rewrite

// openGraphURLProperties lists the OpenGraph meta properties whose "content"
// attribute holds a URL (per https://ogp.me/), consulted by findHandler so
// HTML5 also rewrites <meta property="og:image" content="..."> and friends,
// not just conventional href/src attributes. Property names are compared
// lowercased, matching HTML's case-insensitive attribute values.
var openGraphURLProperties = map[string]struct{}{
	"image":               {},
	"og:url":              {},
	"og:image":            {},
	"og:image:url":        {},
	"og:image:secure_url": {},
	"og:video":            {},
	"og:video:url":        {},
	"og:video:secure_url": {},
	"og:audio":            {},
	"og:audio:url":        {},
	"og:audio:secure_url": {},
}

func isOpenGraphURLProperty(name string) bool {
	_, ok := openGraphURLProperties[name]
	return ok
}
