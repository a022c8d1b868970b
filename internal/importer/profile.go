package importer

// Profile describes the header layout of a repair request export.
// Adding a new layout is just adding a new Profile to the profiles slice.
type Profile struct {
	Name       string
	NameCol    string
	ContactCol string
	BrandCol   string
	ModelCol   string
	ProblemCol string
	PriceCol   string // optional
}

func (p Profile) requiredCols() []string {
	return []string{p.NameCol, p.ContactCol, p.BrandCol, p.ModelCol, p.ProblemCol}
}

var profiles = []Profile{
	{
		Name:       "ru",
		NameCol:    "имя",
		ContactCol: "контакт",
		BrandCol:   "бренд",
		ModelCol:   "модель",
		ProblemCol: "проблема",
		PriceCol:   "цена",
	},
	{
		Name:       "api",
		NameCol:    "name",
		ContactCol: "contact",
		BrandCol:   "device_brand",
		ModelCol:   "device_model",
		ProblemCol: "problem_description",
		PriceCol:   "estimated_price",
	},
}
