package lobby

type countryDef struct {
	id   string
	name string
	flag string
}

func (d countryDef) country(side Team) *Country {
	return &Country{ID: d.id, Name: d.name, FlagImage: d.flag, Side: side}
}

var axisCatalog = []countryDef{
	{"germany", "Germany", "/map/flags/Germans.png"},
	{"italy", "Italy", "/map/flags/Italians.png"},
	{"japan", "Japan", "/map/flags/Japanese.png"},
}

var alliedCatalog = []countryDef{
	{"united_states", "United States", "/map/flags/Americans.png"},
	{"soviet_union", "Soviet Union", "/map/flags/Russians.png"},
	{"united_kingdom_europe", "UK Europe", "/map/flags/UK_Europe.png"},
	{"united_kingdom_pacific", "UK Pacific", "/map/flags/UK_Pacific.png"},
	{"france", "France", "/map/flags/French.png"},
	{"china", "China", "/map/flags/Chinese.png"},
	{"anzac", "ANZAC", "/map/flags/ANZAC.png"},
}

// Palette is the set of default player colours.
var Palette = []string{
	"bg-red-700",
	"bg-blue-700",
	"bg-green-700",
	"bg-yellow-600",
	"bg-purple-700",
	"bg-pink-600",
	"bg-orange-600",
	"bg-cyan-700",
}
